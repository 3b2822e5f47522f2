package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// teamRecord wraps a team document with a version counter for optimistic
// concurrency: UpdateTeam replaces the document only if the version it read
// is still current, retrying otherwise.
type teamRecord struct {
	ID        string     `bson:"_id"`
	NameLower string     `bson:"name_lower"`
	Version   int64      `bson:"version"`
	Team      bingo.Team `bson:"team"`
}

type stateRecord struct {
	ID    string          `bson:"_id"`
	State bingo.GameState `bson:"state"`
}

type settingRecord struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoStore implements Store on MongoDB, one document per team. Suited for
// multi-node deployments where several API instances share one database.
type MongoStore struct {
	teams    *mongo.Collection
	state    *mongo.Collection
	settings *mongo.Collection
	client   *mongo.Client
	defaults bingo.GameState
}

const updateRetries = 5

func NewMongoStore(ctx context.Context, client *mongo.Client, database string, defaults bingo.GameState) (*MongoStore, error) {
	db := client.Database(database)
	s := &MongoStore{
		teams:    db.Collection("teams"),
		state:    db.Collection("game_state"),
		settings: db.Collection("settings"),
		client:   client,
		defaults: defaults,
	}

	// Unique index on the case-folded name backs CreateTeam's conflict check.
	_, err := s.teams.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_lower", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating team name index: %w", err)
	}
	return s, nil
}

func (s *MongoStore) ListTeams(ctx context.Context) ([]bingo.Team, error) {
	// Sort on registration time to match the sqlite store's insertion order.
	cursor, err := s.teams.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "team.registeredat", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("finding teams: %w", err)
	}
	defer cursor.Close(ctx)

	var records []teamRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding teams: %w", err)
	}

	teams := make([]bingo.Team, len(records))
	for i, r := range records {
		teams[i] = r.Team
	}
	return teams, nil
}

func (s *MongoStore) GetTeam(ctx context.Context, id string) (bingo.Team, error) {
	var rec teamRecord
	err := s.teams.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bingo.Team{}, bingo.ErrNotFound
	}
	if err != nil {
		return bingo.Team{}, fmt.Errorf("finding team %s: %w", id, err)
	}
	return rec.Team, nil
}

func (s *MongoStore) CreateTeam(ctx context.Context, team bingo.Team) error {
	_, err := s.teams.InsertOne(ctx, teamRecord{
		ID:        team.ID,
		NameLower: strings.ToLower(team.Name),
		Version:   1,
		Team:      team,
	})
	if mongo.IsDuplicateKeyError(err) {
		return bingo.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("inserting team %s: %w", team.ID, err)
	}
	return nil
}

func (s *MongoStore) UpdateTeam(ctx context.Context, id string, mutate func(*bingo.Team) error) (bingo.Team, error) {
	for range updateRetries {
		var rec teamRecord
		err := s.teams.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bingo.Team{}, bingo.ErrNotFound
		}
		if err != nil {
			return bingo.Team{}, fmt.Errorf("finding team %s: %w", id, err)
		}

		if err := mutate(&rec.Team); err != nil {
			return rec.Team, err
		}

		res, err := s.teams.ReplaceOne(ctx,
			bson.M{"_id": id, "version": rec.Version},
			teamRecord{
				ID:        id,
				NameLower: strings.ToLower(rec.Team.Name),
				Version:   rec.Version + 1,
				Team:      rec.Team,
			},
		)
		if mongo.IsDuplicateKeyError(err) {
			return rec.Team, bingo.ErrNameTaken
		}
		if err != nil {
			return rec.Team, fmt.Errorf("replacing team %s: %w", id, err)
		}
		if res.MatchedCount == 1 {
			return rec.Team, nil
		}
		// Concurrent writer got there first; re-read and try again.
	}
	return bingo.Team{}, fmt.Errorf("updating team %s: too many concurrent writes", id)
}

func (s *MongoStore) PutTeam(ctx context.Context, team bingo.Team) error {
	_, err := s.teams.UpdateOne(ctx,
		bson.M{"_id": team.ID},
		bson.M{
			"$set": bson.M{"name_lower": strings.ToLower(team.Name), "team": team},
			"$inc": bson.M{"version": 1},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upserting team %s: %w", team.ID, err)
	}
	return nil
}

func (s *MongoStore) DeleteTeam(ctx context.Context, id string) error {
	if _, err := s.teams.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("deleting team %s: %w", id, err)
	}
	return nil
}

const stateDocID = "game"

func (s *MongoStore) GameState(ctx context.Context) (bingo.GameState, error) {
	// Seed the default document if absent, then read whatever is current.
	_, err := s.state.UpdateOne(ctx,
		bson.M{"_id": stateDocID},
		bson.M{"$setOnInsert": bson.M{"state": s.defaults}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return bingo.GameState{}, fmt.Errorf("seeding game state: %w", err)
	}

	var rec stateRecord
	if err := s.state.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&rec); err != nil {
		return bingo.GameState{}, fmt.Errorf("finding game state: %w", err)
	}
	return rec.State, nil
}

func (s *MongoStore) UpdateGameState(ctx context.Context, mutate func(*bingo.GameState) error) (bingo.GameState, error) {
	state, err := s.GameState(ctx)
	if err != nil {
		return state, err
	}
	if err := mutate(&state); err != nil {
		return state, err
	}
	_, err = s.state.UpdateOne(ctx,
		bson.M{"_id": stateDocID},
		bson.M{"$set": bson.M{"state": state}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return state, fmt.Errorf("updating game state: %w", err)
	}
	return state, nil
}

func (s *MongoStore) AdminPasswordHash(ctx context.Context) (string, error) {
	var rec settingRecord
	err := s.settings.FindOne(ctx, bson.M{"_id": adminPasswordKey}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", bingo.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("finding admin password: %w", err)
	}
	return rec.Value, nil
}

func (s *MongoStore) SetAdminPasswordHash(ctx context.Context, hash string) error {
	_, err := s.settings.UpdateOne(ctx,
		bson.M{"_id": adminPasswordKey},
		bson.M{"$set": bson.M{"value": hash}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("storing admin password: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
