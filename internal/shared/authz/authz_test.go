package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanEdit(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		actor   Actor
		ownerID uuid.UUID
		wantErr bool
	}{
		{"owner can edit", Actor{ID: owner, Role: RoleUser}, owner, false},
		{"other user cannot edit", Actor{ID: other, Role: RoleUser}, owner, true},
		{"admin cannot edit someone else's content", Actor{ID: other, Role: RoleAdmin}, owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanEdit(tt.actor, tt.ownerID)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		actor   Actor
		ownerID uuid.UUID
		wantErr bool
	}{
		{"owner can delete", Actor{ID: owner, Role: RoleUser}, owner, false},
		{"admin can delete anything", Actor{ID: other, Role: RoleAdmin}, owner, false},
		{"other user cannot delete", Actor{ID: other, Role: RoleUser}, owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanDelete(tt.actor, tt.ownerID)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanAccept(t *testing.T) {
	questionAuthor := uuid.New()
	other := uuid.New()

	// Only the question author may accept; not even admins.
	assert.NoError(t, CanAccept(Actor{ID: questionAuthor, Role: RoleUser}, questionAuthor))
	assert.ErrorIs(t, CanAccept(Actor{ID: other, Role: RoleUser}, questionAuthor), ErrForbidden)
	assert.ErrorIs(t, CanAccept(Actor{ID: other, Role: RoleAdmin}, questionAuthor), ErrForbidden)
}

func TestCanManageTags(t *testing.T) {
	assert.NoError(t, CanManageTags(Actor{ID: uuid.New(), Role: RoleAdmin}))
	assert.ErrorIs(t, CanManageTags(Actor{ID: uuid.New(), Role: RoleUser}), ErrForbidden)
}
