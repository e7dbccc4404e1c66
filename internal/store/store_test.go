package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "solutions.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListSolutions(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	id := uuid.New()

	if err := s.StartSession(ctx, id); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := s.RecordSolution(ctx, id, "amb(1, 2);", 1, "1"); err != nil {
		t.Fatalf("RecordSolution: %v", err)
	}
	if err := s.RecordSolution(ctx, id, "amb(1, 2);", 2, "2"); err != nil {
		t.Fatalf("RecordSolution: %v", err)
	}
	if err := s.RecordExhausted(ctx, id, "amb(1, 2);", 2); err != nil {
		t.Fatalf("RecordExhausted: %v", err)
	}

	sols, err := s.Solutions(ctx, id)
	if err != nil {
		t.Fatalf("Solutions: %v", err)
	}
	if len(sols) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(sols))
	}
	if sols[0].Value != "1" || sols[0].Index != 1 || sols[0].Exhausted {
		t.Errorf("unexpected first row: %+v", sols[0])
	}
	if sols[1].Value != "2" || sols[1].Index != 2 {
		t.Errorf("unexpected second row: %+v", sols[1])
	}
	if !sols[2].Exhausted {
		t.Errorf("expected exhaustion marker, got %+v", sols[2])
	}
	if sols[0].SessionID != id {
		t.Errorf("session id mismatch: %s != %s", sols[0].SessionID, id)
	}
}

func TestSolutionsAreScopedToSession(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	a, b := uuid.New(), uuid.New()
	for _, id := range []uuid.UUID{a, b} {
		if err := s.StartSession(ctx, id); err != nil {
			t.Fatalf("StartSession: %v", err)
		}
	}
	if err := s.RecordSolution(ctx, a, "1;", 1, "1"); err != nil {
		t.Fatal(err)
	}

	sols, err := s.Solutions(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(sols) != 0 {
		t.Errorf("expected no solutions for session b, got %d", len(sols))
	}
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	id := uuid.New()
	if err := s.StartSession(ctx, id); err != nil {
		t.Fatal(err)
	}
	for i, v := range []string{"a", "b", "c"} {
		if err := s.RecordSolution(ctx, id, "p", i+1, v); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recent))
	}
	if recent[0].Value != "c" || recent[1].Value != "b" {
		t.Errorf("expected c, b; got %s, %s", recent[0].Value, recent[1].Value)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "solutions.db")
	id := uuid.New()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.StartSession(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordSolution(ctx, id, "p", 1, "42"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	sols, err := s.Solutions(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(sols) != 1 || sols[0].Value != "42" {
		t.Errorf("unexpected rows after reopen: %+v", sols)
	}
}
