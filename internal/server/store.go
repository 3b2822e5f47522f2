package server

import (
	"context"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// Store is the abstract keyed persistence for Team and GameState records.
// Implementations must provide atomic per-record writes: UpdateTeam and
// UpdateGameState are read-modify-write against current persisted state, and
// two concurrent updates to the same record must both land with neither lost.
type Store interface {
	ListTeams(ctx context.Context) ([]bingo.Team, error)
	GetTeam(ctx context.Context, id string) (bingo.Team, error)

	// CreateTeam inserts a new team, enforcing case-insensitive name
	// uniqueness atomically. Returns bingo.ErrNameTaken on a duplicate.
	CreateTeam(ctx context.Context, team bingo.Team) error

	// UpdateTeam applies mutate to the team's current persisted state and
	// writes the result in one atomic step. An error from mutate aborts the
	// update with no persisted effect. Returns bingo.ErrNotFound for an
	// unknown id.
	UpdateTeam(ctx context.Context, id string, mutate func(*bingo.Team) error) (bingo.Team, error)

	// PutTeam overwrites the whole record (upsert).
	PutTeam(ctx context.Context, team bingo.Team) error

	// DeleteTeam is idempotent: deleting an absent team is a no-op.
	DeleteTeam(ctx context.Context, id string) error

	// GameState returns the global record, seeding defaults on first call.
	GameState(ctx context.Context) (bingo.GameState, error)
	UpdateGameState(ctx context.Context, mutate func(*bingo.GameState) error) (bingo.GameState, error)

	// AdminPasswordHash returns the stored bcrypt hash of the shared admin
	// password, or bingo.ErrNotFound when unset.
	AdminPasswordHash(ctx context.Context) (string, error)
	SetAdminPasswordHash(ctx context.Context, hash string) error

	Ping(ctx context.Context) error
}
