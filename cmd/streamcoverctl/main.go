// Command streamcoverctl runs the optimizer locally against a catalog
// directory without standing up the HTTP server, for offline/scripted
// solves.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"streamcover/internal/catalog"
	"streamcover/internal/logger"
	"streamcover/internal/optimizer"
)

func main() {
	catalogDir := flag.String("catalog", "./data", "catalog CSV directory")
	gameIDs := flag.String("games", "", "comma-separated game ids to cover")
	liveWeight := flag.Float64("live-weight", 0, "live-preference weight in [0,1], 1 means required")
	highlightWeight := flag.Float64("highlight-weight", 0, "highlight-preference weight in [0,1], 1 means required")
	trueCost := flag.Bool("true-cost", false, "report the principled cost instead of the historical literal one")
	timeout := flag.Duration("timeout", 30*time.Second, "solve time limit")
	flag.Parse()

	ids, err := parseIDs(*gameIDs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "streamcoverctl: -games is required")
		os.Exit(1)
	}

	store := catalog.NewStore(*catalogDir)
	ctx := context.Background()
	if err := store.Load(ctx); err != nil {
		logger.Error("Catalog", fmt.Sprintf("load %s: %v", *catalogDir, err))
		os.Exit(1)
	}
	cat := store.Current()

	var offers []catalog.Offer
	var games []catalog.Game
	seenPkg := make(map[int64]bool)
	var packages []catalog.Package
	for _, id := range ids {
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

	req := optimizer.SolveRequest{
		GameIDs:  ids,
		Offers:   offers,
		Packages: packages,
		Games:    games,
		Prefs:    optimizer.Preferences{LiveWeight: *liveWeight, HighlightWeight: *highlightWeight},
		Options:  optimizer.Options{ReportTrueCost: *trueCost, TimeLimit: *timeout},
	}

	result := optimizer.Solve(ctx, req, optimizer.BranchAndBoundBackend{})
	optimizer.FormatResult(result)
}

func parseIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid game id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
