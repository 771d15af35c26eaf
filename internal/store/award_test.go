package store

import (
	"errors"
	"testing"
	"time"

	"podpoints/internal/model"
)

func commitManual(t *testing.T, as *AwardStore, memberID string, amount int) *model.Award {
	t.Helper()
	a, err := as.Commit(&model.Award{AssigneeID: memberID, Amount: amount, Category: "Manual"})
	if err != nil {
		t.Fatalf("commit manual award: %v", err)
	}
	return a
}

func TestCommitIncrementsTotal(t *testing.T) {
	db := setupTestDB(t)
	ms := NewMemberStore(db)
	as := NewAwardStore(db)

	if _, err := ms.Create("1", "a#0001", "", "podA", ""); err != nil {
		t.Fatalf("create member: %v", err)
	}

	a, err := as.Commit(&model.Award{AssigneeID: "1", Amount: 25, Category: "Workshop"})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if a.ID == 0 {
		t.Error("expected assigned id")
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected commit timestamp")
	}

	m, err := ms.GetByID("1")
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m.PointsTotal != 25 {
		t.Errorf("points_total = %d, want 25", m.PointsTotal)
	}
}

func TestCommitUnknownMemberRollsBack(t *testing.T) {
	db := setupTestDB(t)
	as := NewAwardStore(db)

	_, err := as.Commit(&model.Award{AssigneeID: "nope", Amount: 10, Category: "Manual"})
	if err == nil {
		t.Fatal("expected commit to fail for unknown member")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM awards`).Scan(&count); err != nil {
		t.Fatalf("count awards: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no award rows after failed commit, got %d", count)
	}
}

func TestCountToday(t *testing.T) {
	db := setupTestDB(t)
	ms := NewMemberStore(db)
	as := NewAwardStore(db)

	if _, err := ms.Create("1", "a#0001", "", "podA", ""); err != nil {
		t.Fatalf("create member: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := as.Commit(&model.Award{AssigneeID: "1", Amount: 1, Category: model.CategoryDiscord}); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	commitManual(t, as, "1", 1)

	now := time.Now()
	count, err := as.CountToday("1", model.CategoryDiscord, now)
	if err != nil {
		t.Fatalf("count today: %v", err)
	}
	if count != 3 {
		t.Errorf("discord count = %d, want 3", count)
	}

	count, err = as.CountToday("1", "Manual", now)
	if err != nil {
		t.Fatalf("count today: %v", err)
	}
	if count != 1 {
		t.Errorf("manual count = %d, want 1", count)
	}

	// Tomorrow's window holds none of today's awards.
	count, err = as.CountToday("1", model.CategoryDiscord, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("count today: %v", err)
	}
	if count != 0 {
		t.Errorf("tomorrow count = %d, want 0", count)
	}
}

func TestFindClaimAndDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ms := NewMemberStore(db)
	as := NewAwardStore(db)
	es := NewEventStore(db)

	if _, err := ms.Create("1", "a#0001", "", "podA", ""); err != nil {
		t.Fatalf("create member: %v", err)
	}
	event, err := es.Create("Demo Day", time.Now(), time.Now().Add(time.Hour), 50, "open-sesame", "")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	claim, err := as.FindClaim("1", event.ID)
	if err != nil {
		t.Fatalf("find claim: %v", err)
	}
	if claim != nil {
		t.Fatal("expected no claim before commit")
	}

	if _, err := as.Commit(&model.Award{AssigneeID: "1", Amount: 50, Category: model.CategoryEvent, EventID: &event.ID}); err != nil {
		t.Fatalf("commit claim: %v", err)
	}

	claim, err = as.FindClaim("1", event.ID)
	if err != nil {
		t.Fatalf("find claim: %v", err)
	}
	if claim == nil || claim.Amount != 50 {
		t.Fatalf("find claim = %+v, want amount 50", claim)
	}

	// Unique index rejects a second claim and leaves the total untouched.
	_, err = as.Commit(&model.Award{AssigneeID: "1", Amount: 50, Category: model.CategoryEvent, EventID: &event.ID})
	if !errors.Is(err, ErrDuplicateClaim) {
		t.Fatalf("expected ErrDuplicateClaim, got %v", err)
	}

	m, err := ms.GetByID("1")
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m.PointsTotal != 50 {
		t.Errorf("points_total = %d, want 50", m.PointsTotal)
	}
}

func TestSumAndListByMember(t *testing.T) {
	db := setupTestDB(t)
	ms := NewMemberStore(db)
	as := NewAwardStore(db)

	if _, err := ms.Create("1", "a#0001", "", "podA", ""); err != nil {
		t.Fatalf("create member: %v", err)
	}

	commitManual(t, as, "1", 10)
	commitManual(t, as, "1", 7)
	commitManual(t, as, "1", 3)

	sum, err := as.SumForMember("1")
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if sum != 20 {
		t.Errorf("sum = %d, want 20", sum)
	}

	awards, err := as.ListByMember("1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(awards) != 3 {
		t.Fatalf("len = %d, want 3", len(awards))
	}
	// Newest first
	if awards[0].Amount != 3 {
		t.Errorf("awards[0].Amount = %d, want 3", awards[0].Amount)
	}
}
