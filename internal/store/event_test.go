package store

import (
	"testing"
	"time"
)

func TestEventCreateAndGet(t *testing.T) {
	es := NewEventStore(setupTestDB(t))

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	event, err := es.Create("Hack Night", start, end, 50, "s3cret", "https://example.com/hack")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.ID == 0 {
		t.Error("expected assigned id")
	}
	if event.PointsAmount != 50 {
		t.Errorf("points_amount = %d, want 50", event.PointsAmount)
	}

	got, err := es.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got == nil || got.Name != "Hack Night" {
		t.Fatalf("get event = %+v, want Hack Night", got)
	}
}

func TestEventNotFound(t *testing.T) {
	es := NewEventStore(setupTestDB(t))

	got, err := es.GetByID(404)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown event")
	}
}

func TestEventCheckCode(t *testing.T) {
	es := NewEventStore(setupTestDB(t))

	event, err := es.Create("Demo Day", time.Now(), time.Now().Add(time.Hour), 25, "OpenSesame", "")
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	ok, err := es.CheckCode(event.ID, "OpenSesame")
	if err != nil {
		t.Fatalf("check code: %v", err)
	}
	if !ok {
		t.Error("correct code rejected")
	}

	ok, err = es.CheckCode(event.ID, "wrong")
	if err != nil {
		t.Fatalf("check code: %v", err)
	}
	if ok {
		t.Error("wrong code accepted")
	}

	// Case-sensitive, no normalization.
	ok, err = es.CheckCode(event.ID, "opensesame")
	if err != nil {
		t.Fatalf("check code: %v", err)
	}
	if ok {
		t.Error("case-folded code accepted")
	}

	ok, err = es.CheckCode(404, "anything")
	if err != nil {
		t.Fatalf("check code: %v", err)
	}
	if ok {
		t.Error("unknown event accepted a code")
	}
}
