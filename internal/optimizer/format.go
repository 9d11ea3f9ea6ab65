package optimizer

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"streamcover/internal/logger"
)

// FormatResult prints a SolverResult to the console in the teacher's
// colorized Section/Stats style, in place of the source's bare print()
// calls.
func FormatResult(result SolverResult) {
	logger.Section("Solve Result")
	logger.Stats("Status", string(result.Status))
	if result.TotalCostCents != nil {
		logger.Stats("Total Cost", "$"+humanize.CommafWithDigits(float64(*result.TotalCostCents)/100, 2))
	} else {
		logger.Stats("Total Cost", "undefined")
	}

	logger.Section("Active Monthly Subscriptions")
	if len(result.ActiveMonthly) == 0 {
		logger.Info("Solve", "No active monthly subscriptions.")
	}
	for _, sub := range result.ActiveMonthly {
		logger.Stats(fmt.Sprintf("Package %d", sub.PackageID), sub.StartDate.Format("2006-01-02"))
	}

	logger.Section("Active Yearly Subscriptions")
	if len(result.ActiveYearly) == 0 {
		logger.Info("Solve", "No active yearly subscriptions.")
	}
	for _, sub := range result.ActiveYearly {
		logger.Stats(fmt.Sprintf("Package %d", sub.PackageID), sub.StartDate.Format("2006-01-02"))
	}

	if len(result.GamesWithNoOffers) > 0 {
		logger.Section("Games With No Offers")
		logger.Warn("Solve", fmt.Sprintf("%d requested games have no surviving offer", len(result.GamesWithNoOffers)))
	}
}
