package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreRecordAndTopRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []int{100, 50, 200} {
		_, err = store.RecordRun(RunEntry{GameID: "runner", Score: score, Coins: 3, DurationSecs: 42})
		if err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	// Each mode keeps its own leaderboard.
	_, err = store.RecordRun(RunEntry{GameID: "runner_easy", Score: 500})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.TopRuns("runner", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].Coins != 3 || runs[0].DurationSecs != 42 {
		t.Errorf("Run details not preserved: %+v", runs[0])
	}

	easyRuns, err := store.TopRuns("runner_easy", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(easyRuns) != 1 {
		t.Errorf("Expected 1 easy run, got %d", len(easyRuns))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		store.RecordRun(RunEntry{GameID: "runner", Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns("runner", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []int{100, 300, 200} {
		if _, err := store.RecordRun(RunEntry{GameID: "runner", Score: score}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("runner", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first, regardless of score
	if runs[0].Score != 200 || runs[1].Score != 300 || runs[2].Score != 100 {
		t.Errorf("Runs not in insertion order: %d, %d, %d", runs[0].Score, runs[1].Score, runs[2].Score)
	}
}

func TestStoreBestScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	best, err := store.BestScore("runner")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty game, got %d", best)
	}

	store.RecordRun(RunEntry{GameID: "runner", Score: 100})
	store.RecordRun(RunEntry{GameID: "runner", Score: 300})
	store.RecordRun(RunEntry{GameID: "runner", Score: 200})

	best, err = store.BestScore("runner")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreWalletCreditOnRecord(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	balance, err := store.Balance()
	if err != nil {
		t.Fatalf("Balance() failed: %v", err)
	}
	if balance != 0 {
		t.Errorf("Fresh wallet should be empty, got %d", balance)
	}

	if _, err := store.RecordRun(RunEntry{GameID: "runner", Score: 100, Payout: 25}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if _, err := store.RecordRun(RunEntry{GameID: "runner", Score: 50, Payout: 0}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	balance, err = store.Balance()
	if err != nil {
		t.Fatalf("Balance() failed: %v", err)
	}
	if balance != 25 {
		t.Errorf("Expected balance of 25, got %d", balance)
	}
}

func TestStoreSpendBalance(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.RecordRun(RunEntry{GameID: "runner", Score: 100, Payout: 100})

	if err := store.SpendBalance(30); err != nil {
		t.Fatalf("SpendBalance() failed: %v", err)
	}
	balance, _ := store.Balance()
	if balance != 70 {
		t.Errorf("Expected balance of 70 after spend, got %d", balance)
	}

	// Overdraft must be rejected and leave the balance alone.
	err = store.SpendBalance(200)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	balance, _ = store.Balance()
	if balance != 70 {
		t.Errorf("Failed spend should not change the balance, got %d", balance)
	}

	if err := store.SpendBalance(-5); err == nil {
		t.Error("Negative spend should be rejected")
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.RecordRun(RunEntry{GameID: "runner", Score: 100, Payout: 10})
	store.RecordRun(RunEntry{GameID: "runner", Score: 200, Payout: 10})
	store.RecordRun(RunEntry{GameID: "runner_hard", Score: 300})

	if err := store.ClearRuns("runner"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("runner", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	hardRuns, _ := store.TopRuns("runner_hard", 10)
	if len(hardRuns) != 1 {
		t.Errorf("Hard mode runs should not be affected by clearing normal mode")
	}

	// The wallet keeps what the cleared runs paid out.
	balance, _ := store.Balance()
	if balance != 20 {
		t.Errorf("Clearing runs should not touch the wallet, got balance %d", balance)
	}
}

func TestStoreStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.RecordRun(RunEntry{GameID: "runner", Score: 100, Payout: 5})
	store.RecordRun(RunEntry{GameID: "runner", Score: 300, Payout: 15})

	stats, err := store.Stats("runner")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	if stats.RunsCount != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.RunsCount)
	}
	if stats.BestScore != 300 {
		t.Errorf("Expected best score 300, got %d", stats.BestScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average score 200, got %f", stats.AvgScore)
	}
	if stats.TotalPayout != 20 {
		t.Errorf("Expected total payout 20, got %d", stats.TotalPayout)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	// Empty game gives zeroed stats, not an error.
	empty, err := store.Stats("runner_easy")
	if err != nil {
		t.Fatalf("Stats() on empty game failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.BestScore != 0 {
		t.Errorf("Expected zeroed stats, got %+v", empty)
	}
}

func TestStoreAllStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.RecordRun(RunEntry{GameID: "runner", Score: 100})
	store.RecordRun(RunEntry{GameID: "runner_hard", Score: 50})

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["runner"].BestScore != 100 || all["runner_hard"].BestScore != 50 {
		t.Errorf("Per-game stats wrong: %+v", all)
	}
}

func TestStoreUpgrades(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Never-bought upgrades read as level 0.
	level, err := store.UpgradeLevel("jump")
	if err != nil {
		t.Fatalf("UpgradeLevel() failed: %v", err)
	}
	if level != 0 {
		t.Errorf("Expected level 0 for unknown upgrade, got %d", level)
	}

	store.RecordRun(RunEntry{GameID: "runner", Score: 100, Payout: 200})

	level, err = store.PurchaseUpgrade("jump", 50, 5)
	if err != nil {
		t.Fatalf("PurchaseUpgrade() failed: %v", err)
	}
	if level != 1 {
		t.Errorf("Expected level 1 after first purchase, got %d", level)
	}

	level, err = store.PurchaseUpgrade("jump", 80, 5)
	if err != nil {
		t.Fatalf("PurchaseUpgrade() failed: %v", err)
	}
	if level != 2 {
		t.Errorf("Expected level 2 after second purchase, got %d", level)
	}

	balance, _ := store.Balance()
	if balance != 70 {
		t.Errorf("Expected balance 70 after purchases, got %d", balance)
	}

	levels, err := store.UpgradeLevels()
	if err != nil {
		t.Fatalf("UpgradeLevels() failed: %v", err)
	}
	if levels["jump"] != 2 {
		t.Errorf("Expected jump level 2 in map, got %d", levels["jump"])
	}
}

func TestStorePurchaseUpgradeRejections(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.RecordRun(RunEntry{GameID: "runner", Score: 100, Payout: 60})

	// Too expensive: nothing changes.
	_, err = store.PurchaseUpgrade("magnet", 100, 5)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}
	balance, _ := store.Balance()
	if balance != 60 {
		t.Errorf("Failed purchase should not change balance, got %d", balance)
	}
	level, _ := store.UpgradeLevel("magnet")
	if level != 0 {
		t.Errorf("Failed purchase should not change level, got %d", level)
	}

	// At the cap: rejected even with funds.
	if _, err := store.PurchaseUpgrade("magnet", 10, 1); err != nil {
		t.Fatalf("PurchaseUpgrade() failed: %v", err)
	}
	_, err = store.PurchaseUpgrade("magnet", 10, 1)
	if !errors.Is(err, ErrMaxLevel) {
		t.Errorf("Expected ErrMaxLevel, got %v", err)
	}
	level, _ = store.UpgradeLevel("magnet")
	if level != 1 {
		t.Errorf("Capped purchase should not change level, got %d", level)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
