// Package api is the HTTP surface over the optimizer: a thin layer that
// turns a query into a SolveRequest, calls the core, and renders a
// SolverResult plus its per-game coverage projection as JSON. No
// optimization logic lives here.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"streamcover/internal/catalog"
	"streamcover/internal/config"
	"streamcover/internal/coverage"
	"streamcover/internal/db"
	"streamcover/internal/optimizer"
)

// Server is the HTTP API server that connects the catalog store, the
// optimizer, and the solve-history database.
type Server struct {
	cfg     *config.Config
	store   *catalog.Store
	db      *db.DB
	backend optimizer.Backend

	mu    sync.RWMutex
	ready bool
}

// NewServer wires a Server from its collaborators. backend defaults to
// optimizer.BranchAndBoundBackend{} when nil.
func NewServer(cfg *config.Config, store *catalog.Store, database *db.DB, backend optimizer.Backend) *Server {
	if backend == nil {
		backend = optimizer.BranchAndBoundBackend{}
	}
	return &Server{cfg: cfg, store: store, db: database, backend: backend}
}

// MarkReady flips the readiness flag the status endpoint reports.
func (s *Server) MarkReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

// Handler builds the routed mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/games", s.handleGames)
	mux.HandleFunc("POST /api/solve", s.handleSolve)
	mux.HandleFunc("GET /api/solves", s.handleSolves)
	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// handleStatus is a readiness probe: catalog loaded plus row counts.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	var gameCount, packageCount int
	if cat := s.store.Current(); cat != nil {
		gameCount = len(cat.ListGames(""))
		packageCount = len(cat.Packages)
	}

	writeJSON(w, map[string]interface{}{
		"ready":         ready,
		"catalog_dir":   s.cfg.CatalogDir,
		"game_count":    gameCount,
		"package_count": packageCount,
	})
}

// handleGames lists games, optionally filtered by team substring (?team=).
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	cat := s.store.Current()
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}
	games := cat.ListGames(r.URL.Query().Get("team"))
	sort.Slice(games, func(i, j int) bool { return games[i].StartsAt.Before(games[j].StartsAt) })
	writeJSON(w, games)
}

type solveRequestBody struct {
	GameIDs         []int64 `json:"game_ids"`
	LiveWeight      float64 `json:"live_weight"`
	HighlightWeight float64 `json:"highlight_weight"`
	ReportTrueCost  bool    `json:"report_true_cost"`
}

type solveResponseBody struct {
	Status            optimizer.Status         `json:"status"`
	TotalCostCents    *int64                   `json:"total_cost_cents"`
	ActiveMonthly     []optimizer.Subscription `json:"active_monthly"`
	ActiveYearly      []optimizer.Subscription `json:"active_yearly"`
	GamesWithNoOffers []int64                  `json:"games_with_no_offers"`
	Coverage          []coverage.GameCoverage  `json:"coverage"`
}

// handleSolve runs the full pipeline for the posted game ids and
// preferences, persists a solve_history row, and returns the bundle.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var body solveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	cat := s.store.Current()
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	offers, packages, games := gatherForGames(cat, body.GameIDs)

	req := optimizer.SolveRequest{
		GameIDs:  body.GameIDs,
		Offers:   offers,
		Packages: packages,
		Games:    games,
		Prefs:    optimizer.Preferences{LiveWeight: body.LiveWeight, HighlightWeight: body.HighlightWeight},
		Options:  optimizer.Options{ReportTrueCost: body.ReportTrueCost, TimeLimit: time.Duration(s.cfg.SolveTimeoutSeconds) * time.Second},
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), req.Options.TimeLimit)
	defer cancel()
	result := optimizer.Solve(ctx, req, s.backend)
	duration := time.Since(start)

	built := optimizer.Build(req.GameIDs, req.Offers, req.Packages, req.Games)
	shaped := optimizer.ApplyPreferences(built, req.Prefs)
	cov := coverage.Build(result, shaped.Instance)

	if s.db != nil {
		s.db.InsertSolve(requestHash(body), len(body.GameIDs), result, duration.Milliseconds(), body)
	}

	log.Printf("[api] solve status=%s games=%d duration=%s", result.Status, len(body.GameIDs), duration)

	writeJSON(w, solveResponseBody{
		Status:            result.Status,
		TotalCostCents:    result.TotalCostCents,
		ActiveMonthly:     result.ActiveMonthly,
		ActiveYearly:      result.ActiveYearly,
		GamesWithNoOffers: result.GamesWithNoOffers,
		Coverage:          cov,
	})
}

// handleSolves returns recent solve history from SQLite.
func (s *Server) handleSolves(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, []db.SolveRecord{})
		return
	}
	writeJSON(w, s.db.GetSolveHistory(50))
}

// gatherForGames restricts the catalog's offers/packages/games to those
// touching gameIDs, so the optimizer's own reduction step (spec-mandated
// data-size decrease) starts from an already request-scoped slice rather
// than the full catalog.
func gatherForGames(cat *catalog.Catalog, gameIDs []int64) ([]catalog.Offer, []catalog.Package, []catalog.Game) {
	var offers []catalog.Offer
	var games []catalog.Game
	seenPkg := make(map[int64]bool)
	var packages []catalog.Package

	for _, id := range gameIDs {
		if g, ok := cat.Game(id); ok {
			games = append(games, g)
		}
		for _, o := range cat.OffersForGame(id) {
			offers = append(offers, o)
			if !seenPkg[o.StreamingPackageID] {
				seenPkg[o.StreamingPackageID] = true
				if p, ok := cat.Package(o.StreamingPackageID); ok {
					packages = append(packages, p)
				}
			}
		}
	}
	return offers, packages, games
}

func requestHash(body solveRequestBody) string {
	payload, _ := json.Marshal(body)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:16]
}
