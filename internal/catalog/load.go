package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a game's starts_at column.
// The source table is "lexicographically sortable at day granularity" per
// its schema note, but may carry a full timestamp or just a date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseStartsAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, fmt.Errorf("parse starts_at %q: %w", raw, lastErr)
}

func parseNullableCents(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") || strings.EqualFold(raw, "nan") {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse cents %q: %w", raw, err)
	}
	if v < 0 {
		return nil, fmt.Errorf("negative price %q", raw)
	}
	return &v, nil
}

// readCSV opens path and returns a header->index map plus the row reader.
func readCSV(path string) (*csv.Reader, map[string]int, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, nil, nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return r, idx, f, nil
}

func col(row []string, idx map[string]int, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// LoadGames parses the `games` CSV table: id, team_home, team_away, starts_at.
func LoadGames(path string) ([]Game, error) {
	r, idx, f, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var games []Game
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		idRaw, _ := col(row, idx, "id")
		id, err := strconv.ParseInt(strings.TrimSpace(idRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: parse id %q: %w", path, idRaw, err)
		}
		startsRaw, _ := col(row, idx, "starts_at")
		startsAt, err := parseStartsAt(startsRaw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		home, _ := col(row, idx, "team_home")
		away, _ := col(row, idx, "team_away")
		games = append(games, Game{ID: id, TeamHome: home, TeamAway: away, StartsAt: startsAt})
	}
	return games, nil
}

// LoadPackages parses the `streaming_package` CSV table: id, name,
// monthly_price_cents, monthly_price_yearly_subscription_in_cents (both
// prices nullable).
func LoadPackages(path string) ([]Package, error) {
	r, idx, f, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var packages []Package
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		idRaw, _ := col(row, idx, "id")
		id, err := strconv.ParseInt(strings.TrimSpace(idRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: parse id %q: %w", path, idRaw, err)
		}
		name, _ := col(row, idx, "name")
		monthlyRaw, _ := col(row, idx, "monthly_price_cents")
		monthly, err := parseNullableCents(monthlyRaw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		yearlyRaw, _ := col(row, idx, "monthly_price_yearly_subscription_in_cents")
		yearly, err := parseNullableCents(yearlyRaw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		packages = append(packages, Package{
			ID:                                    id,
			Name:                                  name,
			MonthlyPriceCents:                     monthly,
			MonthlyPriceYearlySubscriptionInCents: yearly,
		})
	}
	return packages, nil
}

// LoadOffers parses the `streaming_offer` CSV table: game_id,
// streaming_package_id, live, highlights.
func LoadOffers(path string) ([]Offer, error) {
	r, idx, f, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var offers []Offer
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		gameIDRaw, _ := col(row, idx, "game_id")
		gameID, err := strconv.ParseInt(strings.TrimSpace(gameIDRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: parse game_id %q: %w", path, gameIDRaw, err)
		}
		pkgIDRaw, _ := col(row, idx, "streaming_package_id")
		pkgID, err := strconv.ParseInt(strings.TrimSpace(pkgIDRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: parse streaming_package_id %q: %w", path, pkgIDRaw, err)
		}
		liveRaw, _ := col(row, idx, "live")
		hlRaw, _ := col(row, idx, "highlights")
		offers = append(offers, Offer{
			GameID:             gameID,
			StreamingPackageID: pkgID,
			Live:               parseBit(liveRaw),
			Highlights:         parseBit(hlRaw),
		})
	}
	return offers, nil
}

func parseBit(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "1" || strings.EqualFold(raw, "true")
}
