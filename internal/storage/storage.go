// Package storage persists body-mass records and conversation states in
// PostgreSQL. Mass records are append-only; conversation state writes append
// history rows and reads resolve to the latest one.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clavicordio/bodymass-telegram-bot/internal/model"
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(ctx context.Context, postgresDsn string) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(postgresDsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("error pinging pool: %w", err)
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) AddRecord(ctx context.Context, userID int64, date time.Time, mass float64) error {
	query := `INSERT INTO users_mass (user_id, record_date, body_mass) VALUES ($1, $2, $3)`
	_, err := s.pool.Exec(ctx, query, userID, date, mass)
	return err
}

// AddRecords inserts all records in a single transaction, so a failing row
// leaves nothing committed.
func (s *Storage) AddRecords(ctx context.Context, userID int64, records []model.MassRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO users_mass (user_id, record_date, body_mass) VALUES ($1, $2, $3)`
	for _, r := range records {
		if _, err := tx.Exec(ctx, query, userID, r.Date, r.Mass); err != nil {
			return fmt.Errorf("error inserting record: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// RecordsByUser returns all of a user's records in ascending date order.
func (s *Storage) RecordsByUser(ctx context.Context, userID int64) ([]model.MassRecord, error) {
	query := `SELECT user_id, record_date, body_mass FROM users_mass WHERE user_id = $1 ORDER BY record_date ASC, id ASC`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.MassRecord
	for rows.Next() {
		var r model.MassRecord
		if err := rows.Scan(&r.UserID, &r.Date, &r.Mass); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func (s *Storage) DeleteRecords(ctx context.Context, userID int64) error {
	query := `DELETE FROM users_mass WHERE user_id = $1`
	_, err := s.pool.Exec(ctx, query, userID)
	return err
}

// State returns the user's current conversation state, defaulting to init
// when the user has never been seen. The table holds one row per state
// write; the newest row wins.
func (s *Storage) State(ctx context.Context, userID int64) (model.ConversationState, error) {
	query := `SELECT state FROM users_conversation WHERE user_id = $1 ORDER BY id DESC LIMIT 1`
	var raw string
	err := s.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.StateInit, nil
	}
	if err != nil {
		return model.StateInit, err
	}
	return model.ParseConversationState(raw)
}

func (s *Storage) SetState(ctx context.Context, userID int64, state model.ConversationState) error {
	query := `INSERT INTO users_conversation (user_id, state) VALUES ($1, $2)`
	_, err := s.pool.Exec(ctx, query, userID, string(state))
	return err
}
