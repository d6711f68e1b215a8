package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
)

// GameSessionManager hosts running game sessions.
type GameSessionManager interface {
	// NewSession starts a session at the given difficulty and returns its id.
	NewSession(ctx context.Context, d game.Difficulty) (uuid.UUID, error)

	// Snapshot returns a read-only copy of the session state.
	Snapshot(id uuid.UUID) (game.Snapshot, error)

	// Submit queues one input event for the next tick of the session.
	Submit(id uuid.UUID, in game.Input) error

	// EndSession stops the session and forgets it.
	EndSession(id uuid.UUID) error
}
