package store

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"podpoints/internal/model"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	err := scanner.Scan(&e.ID, &e.Name, &e.StartTime, &e.EndTime, &e.PointsAmount, &e.Link, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

const eventCols = `id, name, start_time, end_time, points_amount, link, created_at`

// Create registers a new claimable event. The secret code is stored as a
// bcrypt hash; the plaintext never touches the database.
func (s *EventStore) Create(name string, start, end time.Time, points int, secretCode, link string) (*model.Event, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secretCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret code: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO events (name, start_time, end_time, points_amount, secret_code_hash, link) VALUES (?, ?, ?, ?, ?, ?)`,
		name, start.UTC(), end.UTC(), points, string(hash), link,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// CheckCode reports whether the supplied code matches the event's secret.
// Comparison is exact: case-sensitive, no normalization.
func (s *EventStore) CheckCode(id int64, code string) (bool, error) {
	var hash string
	err := s.db.QueryRow(`SELECT secret_code_hash FROM events WHERE id = ?`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get secret hash: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare secret code: %w", err)
	}
	return true, nil
}
