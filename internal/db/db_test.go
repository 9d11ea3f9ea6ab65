package db

import (
	"testing"

	"streamcover/internal/optimizer"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	return d
}

func TestDB_MigrateAndSolveHistoryRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	total := int64(1299)
	result := optimizer.SolverResult{
		Status:         optimizer.StatusOptimal,
		TotalCostCents: &total,
		ActiveMonthly:  []optimizer.Subscription{{PackageID: 10}},
	}
	id := d.InsertSolve("abc123", 3, result, 42, map[string]any{"game_ids": []int64{1, 2, 3}})
	if id <= 0 {
		t.Fatal("InsertSolve returned 0")
	}

	records := d.GetSolveHistory(5)
	if len(records) != 1 {
		t.Fatalf("GetSolveHistory(5) len = %d, want 1", len(records))
	}
	r := records[0]
	if r.ID != id {
		t.Errorf("ID = %d, want %d", r.ID, id)
	}
	if r.RequestHash != "abc123" || r.GameCount != 3 {
		t.Errorf("RequestHash/GameCount = %q/%d, want abc123/3", r.RequestHash, r.GameCount)
	}
	if r.Status != string(optimizer.StatusOptimal) {
		t.Errorf("Status = %q, want %q", r.Status, optimizer.StatusOptimal)
	}
	if r.TotalCostCents == nil || *r.TotalCostCents != 1299 {
		t.Errorf("TotalCostCents = %v, want 1299", r.TotalCostCents)
	}
	if r.ActiveMonthly != 1 {
		t.Errorf("ActiveMonthly = %d, want 1", r.ActiveMonthly)
	}
}

func TestDB_GetSolveByID_MissingReturnsNil(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	if d.GetSolveByID(999) != nil {
		t.Error("GetSolveByID(999) on empty db, want nil")
	}
}

func TestDB_GetSolveHistory_EmptyIsEmptySliceNotNil(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	records := d.GetSolveHistory(10)
	if records == nil {
		t.Error("GetSolveHistory returned nil, want an empty slice")
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestDB_GetSolveHistory_NewestFirst(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	for i := 0; i < 3; i++ {
		d.InsertSolve("hash", 1, optimizer.SolverResult{Status: optimizer.StatusOptimal}, 1, nil)
	}
	records := d.GetSolveHistory(10)
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0].ID < records[1].ID || records[1].ID < records[2].ID {
		t.Errorf("records not newest-first: ids %d, %d, %d", records[0].ID, records[1].ID, records[2].ID)
	}
}
