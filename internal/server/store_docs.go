package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// DocStore implements Store on SQLite with one JSONB document per record.
// Each team is its own row, so concurrent writers to different teams never
// rewrite each other's state. Writes to the same record use optimistic
// concurrency: read the version, write only if unchanged, retry on a miss.
type DocStore struct {
	db       *sql.DB
	defaults bingo.GameState
}

func NewDocStore(ctx context.Context, db *sql.DB, defaults bingo.GameState) (*DocStore, error) {
	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS teams (
			id         TEXT PRIMARY KEY,
			name_lower TEXT UNIQUE NOT NULL,
			version    INTEGER NOT NULL,
			data       JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS game_state (
			id      INTEGER PRIMARY KEY CHECK (id = 1),
			version INTEGER NOT NULL,
			data    JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("creating table: %w", err)
		}
	}

	return &DocStore{db: db, defaults: defaults}, nil
}

func (s *DocStore) ListTeams(ctx context.Context) ([]bingo.Team, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT json(data) FROM teams ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []bingo.Team
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var t bingo.Team
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *DocStore) GetTeam(ctx context.Context, id string) (bingo.Team, error) {
	var t bingo.Team
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT json(data) FROM teams WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return t, bingo.ErrNotFound
	}
	if err != nil {
		return t, err
	}
	return t, json.Unmarshal([]byte(data), &t)
}

func (s *DocStore) CreateTeam(ctx context.Context, team bingo.Team) error {
	data, err := json.Marshal(team)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name_lower, version, data) VALUES (?, ?, 1, jsonb(?))`,
		team.ID, strings.ToLower(team.Name), string(data),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return bingo.ErrNameTaken
	}
	return err
}

const updateTeamRetries = 5

func (s *DocStore) UpdateTeam(ctx context.Context, id string, mutate func(*bingo.Team) error) (bingo.Team, error) {
	for range updateTeamRetries {
		var (
			data    string
			version int64
		)
		err := s.db.QueryRowContext(ctx,
			`SELECT version, json(data) FROM teams WHERE id = ?`, id,
		).Scan(&version, &data)
		if errors.Is(err, sql.ErrNoRows) {
			return bingo.Team{}, bingo.ErrNotFound
		}
		if err != nil {
			return bingo.Team{}, err
		}

		var team bingo.Team
		if err := json.Unmarshal([]byte(data), &team); err != nil {
			return team, err
		}
		if err := mutate(&team); err != nil {
			return team, err
		}

		updated, err := json.Marshal(team)
		if err != nil {
			return team, err
		}
		res, err := s.db.ExecContext(ctx,
			`UPDATE teams SET name_lower = ?, version = version + 1, data = jsonb(?)
			 WHERE id = ? AND version = ?`,
			strings.ToLower(team.Name), string(updated), id, version,
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return team, bingo.ErrNameTaken
			}
			return team, err
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return team, nil
		}
		// Concurrent writer got there first; re-read and try again.
	}
	return bingo.Team{}, fmt.Errorf("updating team %s: too many concurrent writes", id)
}

func (s *DocStore) PutTeam(ctx context.Context, team bingo.Team) error {
	data, err := json.Marshal(team)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name_lower, version, data) VALUES (?, ?, 1, jsonb(?))
		 ON CONFLICT(id) DO UPDATE SET
			name_lower = excluded.name_lower,
			version    = teams.version + 1,
			data       = excluded.data`,
		team.ID, strings.ToLower(team.Name), string(data),
	)
	return err
}

func (s *DocStore) DeleteTeam(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	return err
}

func (s *DocStore) GameState(ctx context.Context) (bingo.GameState, error) {
	var state bingo.GameState
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT json(data) FROM game_state WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		state = s.defaults
		return state, s.seedGameState(ctx, state)
	}
	if err != nil {
		return state, err
	}
	return state, json.Unmarshal([]byte(data), &state)
}

func (s *DocStore) UpdateGameState(ctx context.Context, mutate func(*bingo.GameState) error) (bingo.GameState, error) {
	for range updateTeamRetries {
		var (
			data    string
			version int64
		)
		state := s.defaults
		err := s.db.QueryRowContext(ctx,
			`SELECT version, json(data) FROM game_state WHERE id = 1`,
		).Scan(&version, &data)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := s.seedGameState(ctx, state); err != nil {
				return state, err
			}
			continue
		case err != nil:
			return state, err
		}
		if err := json.Unmarshal([]byte(data), &state); err != nil {
			return state, err
		}

		if err := mutate(&state); err != nil {
			return state, err
		}

		updated, err := json.Marshal(state)
		if err != nil {
			return state, err
		}
		res, err := s.db.ExecContext(ctx,
			`UPDATE game_state SET version = version + 1, data = jsonb(?)
			 WHERE id = 1 AND version = ?`,
			string(updated), version,
		)
		if err != nil {
			return state, err
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return state, nil
		}
	}
	return bingo.GameState{}, errors.New("updating game state: too many concurrent writes")
}

func (s *DocStore) seedGameState(ctx context.Context, state bingo.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO game_state (id, version, data) VALUES (1, 1, jsonb(?))
		 ON CONFLICT(id) DO NOTHING`,
		string(data),
	)
	return err
}

const adminPasswordKey = "admin_password_hash"

func (s *DocStore) AdminPasswordHash(ctx context.Context) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, adminPasswordKey,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", bingo.ErrNotFound
	}
	return hash, err
}

func (s *DocStore) SetAdminPasswordHash(ctx context.Context, hash string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		adminPasswordKey, hash,
	)
	return err
}

func (s *DocStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
