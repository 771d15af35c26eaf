package store

import (
	"database/sql"
	"fmt"
	"strings"

	"podpoints/internal/model"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	err := scanner.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.Avatar, &m.PointsTotal, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const memberCols = `id, name, email, role, avatar, points_total, created_at`

// Create registers a member on first login. The points total starts at zero;
// only AwardStore.Commit may change it afterwards.
func (s *MemberStore) Create(id, name, email, role, avatar string) (*model.Member, error) {
	_, err := s.db.Exec(
		`INSERT INTO members (id, name, email, role, avatar) VALUES (?, ?, ?, ?, ?)`,
		id, name, email, role, avatar,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return s.GetByID(id)
}

func (s *MemberStore) GetByID(id string) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *MemberStore) GetByName(name string) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE name = ?`, name)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member by name: %w", err)
	}
	return m, nil
}

// Resolve looks a member up by reference. A ref containing "#" is treated as
// a display name ("user#1234"); anything else is a stable directory id.
// Returns nil when no member matches.
func (s *MemberStore) Resolve(ref string) (*model.Member, error) {
	if strings.Contains(ref, "#") {
		return s.GetByName(ref)
	}
	return s.GetByID(ref)
}

// UpdateRole refreshes the directory-resolved role on login.
func (s *MemberStore) UpdateRole(id, role string) error {
	_, err := s.db.Exec(`UPDATE members SET role = ? WHERE id = ?`, role, id)
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	return nil
}

// ListByPod returns members whose role equals the pod label, highest total first.
func (s *MemberStore) ListByPod(pod string) ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM members WHERE role = ? ORDER BY points_total DESC, name ASC`,
		pod,
	)
	if err != nil {
		return nil, fmt.Errorf("list members by pod: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// PodTotal sums points over all members whose role equals the pod label.
// The member count lets callers distinguish an empty pod from a zero-point one.
func (s *MemberStore) PodTotal(pod string) (total, count int, err error) {
	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(points_total), 0), COUNT(*) FROM members WHERE role = ?`,
		pod,
	).Scan(&total, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("pod total: %w", err)
	}
	return total, count, nil
}
