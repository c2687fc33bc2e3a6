package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	up := DirectionUp
	down := DirectionDown

	tests := []struct {
		name      string
		existing  *Direction
		requested Direction
		want      Outcome
	}{
		{"no existing vote creates", nil, DirectionUp, OutcomeCreated},
		{"same direction removes", &up, DirectionUp, OutcomeRemoved},
		{"same downvote removes", &down, DirectionDown, OutcomeRemoved},
		{"opposite direction switches", &up, DirectionDown, OutcomeSwitched},
		{"opposite downvote switches", &down, DirectionUp, OutcomeSwitched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.existing, tt.requested))
		})
	}
}

func TestCastVoteRequestValidate(t *testing.T) {
	assert.NoError(t, CastVoteRequest{Direction: "upvote"}.Validate())
	assert.NoError(t, CastVoteRequest{Direction: "downvote"}.Validate())
	assert.Error(t, CastVoteRequest{Direction: ""}.Validate())
	assert.Error(t, CastVoteRequest{Direction: "sideways"}.Validate())
}
