package db

import (
	"encoding/json"
	"time"

	"streamcover/internal/optimizer"
)

// SolveRecord is a persisted row describing one completed solve.
type SolveRecord struct {
	ID                int64           `json:"id"`
	Timestamp         string          `json:"timestamp"`
	RequestHash       string          `json:"request_hash"`
	GameCount         int             `json:"game_count"`
	Status            string          `json:"status"`
	TotalCostCents    *int64          `json:"total_cost_cents"`
	ActiveMonthly     int             `json:"active_monthly_count"`
	ActiveYearly      int             `json:"active_yearly_count"`
	GamesWithNoOffers int             `json:"games_with_no_offers"`
	DurationMs        int64           `json:"duration_ms"`
	Request           json.RawMessage `json:"request"`
}

// InsertSolve records one completed solve and returns its row id.
func (d *DB) InsertSolve(requestHash string, gameCount int, result optimizer.SolverResult, durationMs int64, request interface{}) int64 {
	requestJSON, _ := json.Marshal(request)
	res, err := d.sql.Exec(
		`INSERT INTO solve_history
		   (timestamp, request_hash, game_count, status, total_cost_cents,
		    active_monthly_count, active_yearly_count, games_with_no_offers, duration_ms, request_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Format(time.RFC3339), requestHash, gameCount, string(result.Status),
		result.TotalCostCents, len(result.ActiveMonthly), len(result.ActiveYearly),
		len(result.GamesWithNoOffers), durationMs, string(requestJSON),
	)
	if err != nil {
		return 0
	}
	id, _ := res.LastInsertId()
	return id
}

// GetSolveHistory returns the last N solve records, newest first.
func (d *DB) GetSolveHistory(limit int) []SolveRecord {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.Query(
		`SELECT id, timestamp, request_hash, game_count, status, total_cost_cents,
		        active_monthly_count, active_yearly_count, games_with_no_offers, duration_ms, request_json
		   FROM solve_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return []SolveRecord{}
	}
	defer rows.Close()

	var records []SolveRecord
	for rows.Next() {
		var r SolveRecord
		var requestStr string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.RequestHash, &r.GameCount, &r.Status, &r.TotalCostCents,
			&r.ActiveMonthly, &r.ActiveYearly, &r.GamesWithNoOffers, &r.DurationMs, &requestStr); err != nil {
			continue
		}
		r.Request = json.RawMessage(requestStr)
		records = append(records, r)
	}
	if records == nil {
		return []SolveRecord{}
	}
	return records
}

// GetSolveByID returns a single solve record, or nil if it doesn't exist.
func (d *DB) GetSolveByID(id int64) *SolveRecord {
	row := d.sql.QueryRow(
		`SELECT id, timestamp, request_hash, game_count, status, total_cost_cents,
		        active_monthly_count, active_yearly_count, games_with_no_offers, duration_ms, request_json
		   FROM solve_history WHERE id = ?`,
		id,
	)
	var r SolveRecord
	var requestStr string
	if err := row.Scan(&r.ID, &r.Timestamp, &r.RequestHash, &r.GameCount, &r.Status, &r.TotalCostCents,
		&r.ActiveMonthly, &r.ActiveYearly, &r.GamesWithNoOffers, &r.DurationMs, &requestStr); err != nil {
		return nil
	}
	r.Request = json.RawMessage(requestStr)
	return &r
}
