package service

import (
	"context"
	"errors"
	"testing"

	"medtrack/internal/repository"
)

// TestPairCaretaker verifies the pairing flow against a real database: a
// matching code writes exactly one link row visible from both sides, a
// non-matching code writes nothing, and re-pairing is rejected.
func TestPairCaretaker(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	elderRepo := repository.NewElderRepository(db)
	logRepo := repository.NewLogRepository(db)
	svc := NewElderService(elderRepo, userRepo, logRepo, disabledEmailService(t))

	if _, err := userRepo.CreateElder("elder-1", "Rosa"); err != nil {
		t.Fatalf("Failed to create elder user: %v", err)
	}
	if _, err := elderRepo.CreateElder("elder-1", "Rosa", "123456"); err != nil {
		t.Fatalf("Failed to create elder profile: %v", err)
	}
	caretaker, err := userRepo.CreateCaretaker("anna@example.com", "hash", "Anna")
	if err != nil {
		t.Fatalf("Failed to create caretaker: %v", err)
	}

	ctx := context.Background()

	// A non-matching code must not create any link
	if _, err := svc.PairCaretaker(ctx, caretaker, "654321"); !errors.Is(err, ErrPairingCodeNotFound) {
		t.Errorf("PairCaretaker with wrong code: got %v, want ErrPairingCodeNotFound", err)
	}
	if n := countRows(t, db, "elder_caretakers"); n != 0 {
		t.Errorf("Link rows after failed pairing = %d, want 0", n)
	}

	elder, err := svc.PairCaretaker(ctx, caretaker, "123456")
	if err != nil {
		t.Fatalf("PairCaretaker failed: %v", err)
	}
	if elder.ID != "elder-1" {
		t.Errorf("Paired elder ID = %q, want %q", elder.ID, "elder-1")
	}

	linked, err := elderRepo.IsCaretakerLinked(caretaker.ID, "elder-1")
	if err != nil {
		t.Fatalf("Failed to check link: %v", err)
	}
	if !linked {
		t.Error("Caretaker not linked to elder after pairing")
	}

	// The same row serves the caretaker-side lookup
	elderIDs, err := userRepo.GetLinkedElderIDs(caretaker.ID)
	if err != nil {
		t.Fatalf("Failed to get linked elders: %v", err)
	}
	if len(elderIDs) != 1 || elderIDs[0] != "elder-1" {
		t.Errorf("Linked elder IDs = %v, want [elder-1]", elderIDs)
	}

	if _, err := svc.PairCaretaker(ctx, caretaker, "123456"); !errors.Is(err, ErrAlreadyLinked) {
		t.Errorf("Repeat pairing: got %v, want ErrAlreadyLinked", err)
	}
	if n := countRows(t, db, "elder_caretakers"); n != 1 {
		t.Errorf("Link rows after repeat pairing = %d, want 1", n)
	}
}
