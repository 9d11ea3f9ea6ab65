package catalog

import "strings"

// Catalog is the full set of games, packages, and offers loaded from CSV,
// indexed by id for O(1) lookup when the HTTP and CLI layers gather the
// rows touching a request before handing them to the optimizer.
type Catalog struct {
	Games    []Game
	Packages []Package
	Offers   []Offer

	gamesByID    map[int64]Game
	packagesByID map[int64]Package
	offersByGame map[int64][]Offer
}

// New indexes a raw catalog loaded from CSV.
func New(games []Game, packages []Package, offers []Offer) *Catalog {
	c := &Catalog{
		Games:        games,
		Packages:     packages,
		Offers:       offers,
		gamesByID:    make(map[int64]Game, len(games)),
		packagesByID: make(map[int64]Package, len(packages)),
		offersByGame: make(map[int64][]Offer, len(games)),
	}
	for _, g := range games {
		c.gamesByID[g.ID] = g
	}
	for _, p := range packages {
		c.packagesByID[p.ID] = p
	}
	for _, o := range offers {
		c.offersByGame[o.GameID] = append(c.offersByGame[o.GameID], o)
	}
	return c
}

// Game looks up a single game by id.
func (c *Catalog) Game(id int64) (Game, bool) {
	g, ok := c.gamesByID[id]
	return g, ok
}

// Package looks up a single package by id.
func (c *Catalog) Package(id int64) (Package, bool) {
	p, ok := c.packagesByID[id]
	return p, ok
}

// OffersForGame returns the offers for a single game, or nil if there are
// none.
func (c *Catalog) OffersForGame(id int64) []Offer {
	return c.offersByGame[id]
}

// ListGames returns all games, optionally filtered by team name (case
// insensitive substring match against either home or away team). This is a
// thin browse helper with no optimization logic — team filtering is an
// external collaborator of the optimizer, not part of it.
func (c *Catalog) ListGames(team string) []Game {
	if team == "" {
		return c.Games
	}
	needle := strings.ToLower(team)
	var out []Game
	for _, g := range c.Games {
		if strings.Contains(strings.ToLower(g.TeamHome), needle) ||
			strings.Contains(strings.ToLower(g.TeamAway), needle) {
			out = append(out, g)
		}
	}
	return out
}
