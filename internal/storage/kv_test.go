package storage

import (
	"testing"

	"github.com/vovakirdan/tui-racer/internal/leaderboard"
)

var _ leaderboard.Store = (*Store)(nil)

func TestBlobRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LoadBlob("missing"); err != nil || ok {
		t.Errorf("LoadBlob(missing) ok=%v err=%v", ok, err)
	}

	if err := store.SaveBlob("k", []byte("first")); err != nil {
		t.Fatalf("SaveBlob() failed: %v", err)
	}
	if err := store.SaveBlob("k", []byte("second")); err != nil {
		t.Fatalf("SaveBlob() overwrite failed: %v", err)
	}

	data, ok, err := store.LoadBlob("k")
	if err != nil || !ok || string(data) != "second" {
		t.Errorf("LoadBlob() = %q, %v, %v", data, ok, err)
	}

	if err := store.DeleteBlob("k"); err != nil {
		t.Fatalf("DeleteBlob() failed: %v", err)
	}
	if _, ok, _ := store.LoadBlob("k"); ok {
		t.Error("blob should be gone after delete")
	}
}

func TestLeaderboardPersistence(t *testing.T) {
	store := openTestStore(t)

	board := leaderboard.New(5)
	board.Insert("trial-01", leaderboard.Entry{Name: "ACE", Score: 10})
	board.Insert("trial-01", leaderboard.Entry{Name: "BOB", Score: 20})
	if err := board.Save(store, leaderboard.DefaultKey); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := leaderboard.Load(store, leaderboard.DefaultKey, 5)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	top := loaded.Top("trial-01")
	if len(top) != 2 || top[0].Name != "BOB" || top[1].Name != "ACE" {
		t.Errorf("loaded board = %+v", top)
	}
}
