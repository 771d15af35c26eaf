package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"podpoints/internal/model"
)

// ErrDuplicateClaim is returned by Commit when the claim-once unique index
// rejects a second award for the same (member, event) pair. The award engine
// serializes per member, so this fires only as a backstop.
var ErrDuplicateClaim = errors.New("award already committed for member and event")

type AwardStore struct {
	db *sql.DB
}

func NewAwardStore(db *sql.DB) *AwardStore {
	return &AwardStore{db: db}
}

func scanAward(scanner interface{ Scan(...any) error }) (*model.Award, error) {
	var a model.Award
	var eventID sql.NullInt64

	err := scanner.Scan(&a.ID, &a.AssigneeID, &a.Amount, &a.Category, &eventID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if eventID.Valid {
		a.EventID = &eventID.Int64
	}
	return &a, nil
}

const awardCols = `id, assignee_id, amount, category, event_id, created_at`

// CountToday counts the member's awards in the given category whose commit
// timestamp falls on the same server-local calendar day as now.
func (s *AwardStore) CountToday(memberID, category string, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM awards WHERE assignee_id = ? AND category = ? AND created_at >= ? AND created_at < ?`,
		memberID, category, dayStart.UTC(), dayEnd.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count awards today: %w", err)
	}
	return count, nil
}

// FindClaim returns the member's existing award for the event, or nil.
func (s *AwardStore) FindClaim(memberID string, eventID int64) (*model.Award, error) {
	row := s.db.QueryRow(
		`SELECT `+awardCols+` FROM awards WHERE assignee_id = ? AND event_id = ?`,
		memberID, eventID,
	)
	a, err := scanAward(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find claim: %w", err)
	}
	return a, nil
}

// Commit appends the award and increments the assignee's running total in a
// single transaction. The commit timestamp is assigned here from the server
// clock. Either both effects land or neither does.
func (s *AwardStore) Commit(a *model.Award) (*model.Award, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	createdAt := time.Now().UTC()

	var eventID sql.NullInt64
	if a.EventID != nil {
		eventID = sql.NullInt64{Int64: *a.EventID, Valid: true}
	}

	result, err := tx.Exec(
		`INSERT INTO awards (assignee_id, amount, category, event_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.AssigneeID, a.Amount, a.Category, eventID, createdAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateClaim
		}
		return nil, fmt.Errorf("insert award: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	res, err := tx.Exec(
		`UPDATE members SET points_total = points_total + ? WHERE id = ?`,
		a.Amount, a.AssigneeID,
	)
	if err != nil {
		return nil, fmt.Errorf("increment total: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n != 1 {
		return nil, fmt.Errorf("increment total: member %s not found", a.AssigneeID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit award: %w", err)
	}

	committed := *a
	committed.ID = id
	committed.CreatedAt = createdAt
	return &committed, nil
}

// SumForMember totals the member's committed award amounts straight from the
// ledger, bypassing the cached points_total.
func (s *AwardStore) SumForMember(memberID string) (int, error) {
	var sum int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM awards WHERE assignee_id = ?`,
		memberID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum awards: %w", err)
	}
	return sum, nil
}

// ListByMember returns the member's awards, newest first.
func (s *AwardStore) ListByMember(memberID string) ([]model.Award, error) {
	rows, err := s.db.Query(
		`SELECT `+awardCols+` FROM awards WHERE assignee_id = ? ORDER BY created_at DESC, id DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	defer rows.Close()

	var awards []model.Award
	for rows.Next() {
		a, err := scanAward(rows)
		if err != nil {
			return nil, fmt.Errorf("scan award: %w", err)
		}
		awards = append(awards, *a)
	}
	return awards, rows.Err()
}
