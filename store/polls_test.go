// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/danielhkuo/pollhall/models"
	"github.com/danielhkuo/pollhall/store"
	"github.com/danielhkuo/pollhall/testutil"
)

func TestPollStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := store.NewPollStore(db)

	owner := testutil.CreateTestUser(t, db, "creator", "creator@example.com")

	created, err := polls.Create("Lunch?", []string{"Pizza", "Sushi", "Tacos"}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Create() returned empty poll ID")
	}

	got, err := polls.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Question != "Lunch?" {
		t.Errorf("Question = %q, want %q", got.Question, "Lunch?")
	}
	if got.OwnerID != owner.ID {
		t.Errorf("OwnerID = %q, want %q", got.OwnerID, owner.ID)
	}
	if len(got.Options) != 3 {
		t.Fatalf("len(Options) = %d, want 3", len(got.Options))
	}

	// Order matters: options are addressed by index
	wantOrder := []string{"Pizza", "Sushi", "Tacos"}
	for i, opt := range got.Options {
		if opt.Text != wantOrder[i] {
			t.Errorf("Options[%d].Text = %q, want %q", i, opt.Text, wantOrder[i])
		}
		if opt.VoteCount != 0 {
			t.Errorf("Options[%d].VoteCount = %d, want 0", i, opt.VoteCount)
		}
	}
}

func TestPollStore_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := store.NewPollStore(db).Get("missing")
	if !errors.Is(err, store.ErrPollNotFound) {
		t.Errorf("Get() error = %v, want ErrPollNotFound", err)
	}
}

func TestPollStore_CreateOwnerless(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := store.NewPollStore(db)

	created, err := polls.Create("Anyone?", []string{"A", "B"}, "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := polls.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.OwnerID != "" {
		t.Errorf("OwnerID = %q, want empty", got.OwnerID)
	}
}

func TestPollStore_ListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := store.NewPollStore(db)

	alice := testutil.CreateTestUser(t, db, "alice", "alice@example.com")
	bob := testutil.CreateTestUser(t, db, "bob", "bob@example.com")

	testutil.CreateTestPoll(t, db, alice.ID, "A1?", "x", "y")
	testutil.CreateTestPoll(t, db, alice.ID, "A2?", "x", "y")
	testutil.CreateTestPoll(t, db, bob.ID, "B1?", "x", "y")

	mine, err := polls.ListByOwner(alice.ID)
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("len(ListByOwner) = %d, want 2", len(mine))
	}

	all, err := polls.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(ListAll) = %d, want 3", len(all))
	}
}

func TestPollStore_ReplaceContentResetsCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := store.NewPollStore(db)
	ledger := store.NewVoteLedger(db)

	poll := testutil.CreateTestPoll(t, db, "", "Color?", "Red", "Blue")
	testutil.CastTestVote(t, db, poll.ID, models.Identity{NetworkKey: "net-1"}, 0)

	updated, err := polls.ReplaceContent(poll.ID, "Shade?", []string{"Crimson", "Navy", "Teal"})
	if err != nil {
		t.Fatalf("ReplaceContent() error = %v", err)
	}

	if updated.Question != "Shade?" {
		t.Errorf("Question = %q, want %q", updated.Question, "Shade?")
	}
	if len(updated.Options) != 3 {
		t.Fatalf("len(Options) = %d, want 3", len(updated.Options))
	}
	for i, opt := range updated.Options {
		if opt.VoteCount != 0 {
			t.Errorf("Options[%d].VoteCount = %d after replace, want 0", i, opt.VoteCount)
		}
	}

	// Ledger entries survive an edit: prior voters stay recorded
	entries, err := ledger.CountForPoll(poll.ID)
	if err != nil {
		t.Fatalf("CountForPoll() error = %v", err)
	}
	if entries != 1 {
		t.Errorf("Ledger entries = %d after replace, want 1", entries)
	}
}

func TestPollStore_ReplaceContentNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := store.NewPollStore(db).ReplaceContent("missing", "Q?", []string{"a", "b"})
	if !errors.Is(err, store.ErrPollNotFound) {
		t.Errorf("ReplaceContent() error = %v, want ErrPollNotFound", err)
	}
}

func TestPollStore_ApplyOptionDelta(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := store.NewPollStore(db)

	poll := testutil.CreateTestPoll(t, db, "", "Color?", "Red", "Blue")

	if err := polls.ApplyOptionDelta(poll.ID, 0, +1); err != nil {
		t.Fatalf("ApplyOptionDelta(+1) error = %v", err)
	}
	if err := polls.ApplyOptionDelta(poll.ID, 0, +1); err != nil {
		t.Fatalf("ApplyOptionDelta(+1) error = %v", err)
	}
	if err := polls.ApplyOptionDelta(poll.ID, 0, -1); err != nil {
		t.Fatalf("ApplyOptionDelta(-1) error = %v", err)
	}

	got, _ := polls.Get(poll.ID)
	if got.Options[0].VoteCount != 1 {
		t.Errorf("VoteCount = %d, want 1", got.Options[0].VoteCount)
	}
}

func TestPollStore_ApplyOptionDelta_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := store.NewPollStore(db)

	poll := testutil.CreateTestPoll(t, db, "", "Color?", "Red", "Blue")

	// Relative updates from many goroutines must all be reflected
	n := 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := polls.ApplyOptionDelta(poll.ID, 1, +1); err != nil {
				t.Errorf("ApplyOptionDelta() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := polls.Get(poll.ID)
	if got.Options[1].VoteCount != int64(n) {
		t.Errorf("VoteCount = %d, want %d (lost updates)", got.Options[1].VoteCount, n)
	}
}

func TestPollStore_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	polls := store.NewPollStore(db)
	ledger := store.NewVoteLedger(db)

	poll := testutil.CreateTestPoll(t, db, "", "Color?", "Red", "Blue")
	testutil.CastTestVote(t, db, poll.ID, models.Identity{NetworkKey: "net-1"}, 0)
	testutil.CastTestVote(t, db, poll.ID, models.Identity{NetworkKey: "net-2"}, 1)

	if err := polls.Delete(poll.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := polls.Get(poll.ID); !errors.Is(err, store.ErrPollNotFound) {
		t.Errorf("Get() after delete = %v, want ErrPollNotFound", err)
	}
	entries, err := ledger.CountForPoll(poll.ID)
	if err != nil {
		t.Fatalf("CountForPoll() error = %v", err)
	}
	if entries != 0 {
		t.Errorf("Ledger entries after delete = %d, want 0", entries)
	}
}

func TestPollStore_DeleteNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	err := store.NewPollStore(db).Delete("missing")
	if !errors.Is(err, store.ErrPollNotFound) {
		t.Errorf("Delete() error = %v, want ErrPollNotFound", err)
	}
}
