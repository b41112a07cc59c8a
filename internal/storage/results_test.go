package storage

import (
	"testing"

	"github.com/google/uuid"
)

func TestSaveRaceResult(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRaceResult(RaceResult{
		GameID:  "racer_trial",
		LevelID: "trial-01",
		Kind:    ResultTrial,
		Player:  1,
		Score:   10,
	})
	if err != nil {
		t.Fatalf("SaveRaceResult() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", id, err)
	}

	got, err := store.RaceResultByID(id)
	if err != nil {
		t.Fatalf("RaceResultByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("result not found")
	}
	if got.LevelID != "trial-01" || got.Kind != ResultTrial || got.Score != 10 || got.Player != 1 {
		t.Errorf("result = %+v", got)
	}

	missing, err := store.RaceResultByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("missing result = %+v, %v", missing, err)
	}
}

func TestSaveRaceResultKeepsID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	id, err := store.SaveRaceResult(RaceResult{ID: want, GameID: "racer", LevelID: "race-01", Kind: ResultWin})
	if err != nil || id != want {
		t.Fatalf("SaveRaceResult() = %q, %v", id, err)
	}
	if _, err := store.SaveRaceResult(RaceResult{ID: want, GameID: "racer", LevelID: "race-01", Kind: ResultWin}); err == nil {
		t.Error("duplicate id should fail")
	}
}

func TestRecentRaceResults(t *testing.T) {
	store := openTestStore(t)

	levels := []string{"race-01", "race-02", "race-03"}
	for i, lvl := range levels {
		store.SaveRaceResult(RaceResult{GameID: "racer", LevelID: lvl, Kind: ResultWin, Player: i%2 + 1})
	}
	store.SaveRaceResult(RaceResult{GameID: "racer_duel", LevelID: "race-01", Kind: ResultWin, Player: 2})

	results, err := store.RecentRaceResults("racer", 2)
	if err != nil {
		t.Fatalf("RecentRaceResults() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].LevelID != "race-03" || results[1].LevelID != "race-02" {
		t.Errorf("results not newest first: %s, %s", results[0].LevelID, results[1].LevelID)
	}

	wins, err := store.WinsByPlayer("racer")
	if err != nil {
		t.Fatalf("WinsByPlayer() failed: %v", err)
	}
	if wins[1] != 2 || wins[2] != 1 {
		t.Errorf("wins = %v", wins)
	}
}
