// Package config holds application-wide settings for the streamcover
// service (catalog location, HTTP listen address, and default solve
// options). Persistence of per-solve history is handled by internal/db.
package config

// Config holds application settings (in-memory representation).
type Config struct {
	ListenAddr string `json:"listen_addr"`
	CatalogDir string `json:"catalog_dir"` // directory containing games.csv, streaming_offer.csv, streaming_package.csv
	DBPath     string `json:"db_path"`

	// Solver knobs. SolveTimeoutSeconds bounds every HTTP solve; the HTTP
	// envelope has no field to override it. ReportTrueCost is not read by the
	// server: each request's own report_true_cost field selects the cost mode.
	SolveTimeoutSeconds int  `json:"solve_timeout_seconds"`
	ReportTrueCost      bool `json:"report_true_cost"` // see optimizer.Options.ReportTrueCost
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		ListenAddr:          ":13370",
		CatalogDir:          "./data",
		DBPath:              "streamcover.db",
		SolveTimeoutSeconds: 30,
		ReportTrueCost:      false,
	}
}
