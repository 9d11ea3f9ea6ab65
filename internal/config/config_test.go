package config

import "testing"

func TestDefault_Values(t *testing.T) {
	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	if c.ListenAddr != ":13370" {
		t.Errorf("ListenAddr = %v, want :13370", c.ListenAddr)
	}
	if c.CatalogDir != "./data" {
		t.Errorf("CatalogDir = %v, want ./data", c.CatalogDir)
	}
	if c.SolveTimeoutSeconds != 30 {
		t.Errorf("SolveTimeoutSeconds = %v, want 30", c.SolveTimeoutSeconds)
	}
	if c.ReportTrueCost {
		t.Errorf("ReportTrueCost = true, want false by default")
	}
}
