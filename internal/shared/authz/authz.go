package authz

import (
	"errors"

	"github.com/google/uuid"
)

// ErrForbidden is returned whenever an actor is not allowed to perform an
// action. Denial is always explicit, never a silent no-op.
var ErrForbidden = errors.New("forbidden")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Actor is the authenticated identity performing a request, resolved by the
// auth middleware from the JWT claims.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanEdit allows only the resource owner to edit.
func CanEdit(actor Actor, ownerID uuid.UUID) error {
	if actor.ID != ownerID {
		return ErrForbidden
	}
	return nil
}

// CanDelete allows the resource owner or an admin.
func CanDelete(actor Actor, ownerID uuid.UUID) error {
	if actor.ID != ownerID && !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// CanAccept allows only the author of the parent question to accept an
// answer. This is the one rule that crosses the question/answer relationship.
func CanAccept(actor Actor, questionAuthorID uuid.UUID) error {
	if actor.ID != questionAuthorID {
		return ErrForbidden
	}
	return nil
}

// CanManageTags restricts tag CRUD to admins.
func CanManageTags(actor Actor) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
