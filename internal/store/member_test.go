package store

import (
	"database/sql"
	"testing"

	"podpoints/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMemberCreateAndResolve(t *testing.T) {
	ms := NewMemberStore(setupTestDB(t))

	m, err := ms.Create("100001", "alice#1234", "alice@example.com", "Pod 0.1.1", "abc123")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if m.ID != "100001" {
		t.Errorf("id = %q, want %q", m.ID, "100001")
	}
	if m.PointsTotal != 0 {
		t.Errorf("points_total = %d, want 0", m.PointsTotal)
	}

	// Resolve by display name (contains #)
	got, err := ms.Resolve("alice#1234")
	if err != nil {
		t.Fatalf("resolve by name: %v", err)
	}
	if got == nil || got.ID != "100001" {
		t.Fatalf("resolve by name = %+v, want member 100001", got)
	}

	// Resolve by stable id
	got, err = ms.Resolve("100001")
	if err != nil {
		t.Fatalf("resolve by id: %v", err)
	}
	if got == nil || got.Name != "alice#1234" {
		t.Fatalf("resolve by id = %+v, want alice#1234", got)
	}
}

func TestMemberResolveUnknown(t *testing.T) {
	ms := NewMemberStore(setupTestDB(t))

	got, err := ms.Resolve("999999")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}

	got, err = ms.Resolve("ghost#0000")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown name, got %+v", got)
	}
}

func TestMemberUpdateRole(t *testing.T) {
	ms := NewMemberStore(setupTestDB(t))

	if _, err := ms.Create("1", "bob#0001", "", "Pod 0.1.1", ""); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := ms.UpdateRole("1", "admin"); err != nil {
		t.Fatalf("update role: %v", err)
	}

	m, err := ms.GetByID("1")
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m.Role != "admin" {
		t.Errorf("role = %q, want admin", m.Role)
	}
}

func TestPodTotal(t *testing.T) {
	db := setupTestDB(t)
	ms := NewMemberStore(db)
	as := NewAwardStore(db)

	seed := []struct {
		id, name, role string
		points         int
	}{
		{"1", "a#0001", "podA", 10},
		{"2", "b#0002", "podA", 5},
		{"3", "c#0003", "podB", 100},
	}
	for _, s := range seed {
		if _, err := ms.Create(s.id, s.name, "", s.role, ""); err != nil {
			t.Fatalf("create member: %v", err)
		}
		commitManual(t, as, s.id, s.points)
	}

	total, count, err := ms.PodTotal("podA")
	if err != nil {
		t.Fatalf("pod total: %v", err)
	}
	if total != 15 {
		t.Errorf("podA total = %d, want 15", total)
	}
	if count != 2 {
		t.Errorf("podA count = %d, want 2", count)
	}

	_, count, err = ms.PodTotal("podC")
	if err != nil {
		t.Fatalf("pod total: %v", err)
	}
	if count != 0 {
		t.Errorf("podC count = %d, want 0", count)
	}
}
