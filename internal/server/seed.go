package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// EnsureDefaults seeds the global game state record and the admin password
// hash on first boot. Idempotent: existing values are left alone, so a
// password changed at runtime survives restarts.
func EnsureDefaults(ctx context.Context, logger *slog.Logger, store Store, adminPassword string) error {
	state, err := store.GameState(ctx)
	if err != nil {
		return fmt.Errorf("seeding game state: %w", err)
	}
	logger.Info("game state ready", "duration", state.Duration)

	_, err = store.AdminPasswordHash(ctx)
	if errors.Is(err, bingo.ErrNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		if err := store.SetAdminPasswordHash(ctx, string(hash)); err != nil {
			return fmt.Errorf("seeding admin password: %w", err)
		}
		logger.Info("admin password seeded")
		return nil
	}
	return err
}
