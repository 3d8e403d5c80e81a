package sqlite

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"codeberg.org/miketth/softboard/pkg/statestore/sqlite/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type StateStore struct {
	db      *sql.DB
	querier *Queries
}

func NewStateStore(filename string, log *zap.SugaredLogger) (*StateStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &StateStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *StateStore) Close() error {
	return s.db.Close()
}

func (s *StateStore) GetState(app string) (keyboard.EngineState, bool, error) {
	row, err := s.querier.GetState(context.Background(), app)
	if errors.Is(err, sql.ErrNoRows) {
		return keyboard.EngineState{}, false, nil
	}
	if err != nil {
		return keyboard.EngineState{}, false, fmt.Errorf("sqlite select: %w", err)
	}

	return keyboard.EngineState{
		Layout:      keyboard.State(row.Layout),
		Orientation: keyboard.Orientation(row.Orientation),
	}, true, nil
}

func (s *StateStore) SetState(app string, state keyboard.EngineState) error {
	if err := s.querier.SetState(context.Background(), SetStateParams{
		App:         app,
		Layout:      string(state.Layout),
		Orientation: string(state.Orientation),
	}); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}
