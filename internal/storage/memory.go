package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clavicordio/bodymass-telegram-bot/internal/model"
)

// Memory is an in-memory implementation of the record and conversation
// stores with the same semantics as the PostgreSQL one. It backs unit tests
// and local experiments that don't warrant a database.
type Memory struct {
	mu      sync.Mutex
	records map[int64][]model.MassRecord
	states  map[int64][]model.ConversationState
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[int64][]model.MassRecord),
		states:  make(map[int64][]model.ConversationState),
	}
}

func (m *Memory) AddRecord(_ context.Context, userID int64, date time.Time, mass float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = append(m.records[userID], model.MassRecord{UserID: userID, Date: date, Mass: mass})
	return nil
}

func (m *Memory) AddRecords(_ context.Context, userID int64, records []model.MassRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		r.UserID = userID
		m.records[userID] = append(m.records[userID], r)
	}
	return nil
}

func (m *Memory) RecordsByUser(_ context.Context, userID int64) ([]model.MassRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.MassRecord, len(m.records[userID]))
	copy(out, m.records[userID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) DeleteRecords(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	return nil
}

func (m *Memory) State(_ context.Context, userID int64) (model.ConversationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := m.states[userID]
	if len(history) == 0 {
		return model.StateInit, nil
	}
	return history[len(history)-1], nil
}

func (m *Memory) SetState(_ context.Context, userID int64, state model.ConversationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = append(m.states[userID], state)
	return nil
}
