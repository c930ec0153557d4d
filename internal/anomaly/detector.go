// Package anomaly flags expenses that are unusually large for their category.
package anomaly

import (
	"math"

	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"

	"gonum.org/v1/gonum/stat"
)

// DefaultSigma is the number of standard deviations above the category mean
// an expense must exceed to count as a spike.
const DefaultSigma = 2.0

// CategoryStats are the magnitude statistics of one category's expenses.
// StdDev is the sample standard deviation and is 0 for a single expense.
type CategoryStats struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
}

// Threshold returns mean + sigma*stddev.
func (s CategoryStats) Threshold(sigma float64) float64 {
	return s.Mean + sigma*s.StdDev
}

// Result holds every expense with its flag and the flagged subset, both in
// input order.
type Result struct {
	All    []models.FlaggedTransaction
	Spikes []models.FlaggedTransaction
}

// Detector applies the mean + sigma*stddev rule per category.
type Detector struct {
	sigma  float64
	logger logging.Logger
}

// NewDetector creates a Detector. A non-positive sigma means DefaultSigma.
func NewDetector(sigma float64, logger logging.Logger) *Detector {
	if sigma <= 0 || math.IsNaN(sigma) {
		sigma = DefaultSigma
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Detector{sigma: sigma, logger: logger}
}

// Sigma returns the configured multiplier.
func (d *Detector) Sigma() float64 {
	return d.sigma
}

// ComputeStats groups expenses by category and computes count, mean and
// sample standard deviation of their magnitudes.
func ComputeStats(expenses []models.Transaction) map[string]CategoryStats {
	values := make(map[string][]float64)
	for _, tx := range expenses {
		values[tx.Category] = append(values[tx.Category], tx.Magnitude().InexactFloat64())
	}

	stats := make(map[string]CategoryStats, len(values))
	for category, vs := range values {
		stats[category] = describe(vs)
	}
	return stats
}

func describe(vs []float64) CategoryStats {
	switch len(vs) {
	case 0:
		return CategoryStats{}
	case 1:
		// stat.MeanStdDev yields NaN for a single observation.
		return CategoryStats{Count: 1, Mean: vs[0]}
	}
	mean, std := stat.MeanStdDev(vs, nil)
	return CategoryStats{Count: len(vs), Mean: mean, StdDev: std}
}

// Detect flags each expense whose magnitude is strictly above its category
// threshold. The statistics include the expense being tested. A category
// missing from stats is compared against a zero threshold.
func (d *Detector) Detect(expenses []models.Transaction, stats map[string]CategoryStats) Result {
	res := Result{All: make([]models.FlaggedTransaction, 0, len(expenses))}
	for _, tx := range expenses {
		st, ok := stats[tx.Category]
		if !ok {
			d.logger.Debug("No statistics for category, using zero threshold",
				logging.F(logging.FieldCategory, tx.Category))
		}
		threshold := st.Threshold(d.sigma)
		magnitude := tx.Magnitude()
		flagged := models.FlaggedTransaction{
			Transaction: tx,
			Magnitude:   magnitude,
			Threshold:   threshold,
			Spike:       magnitude.InexactFloat64() > threshold,
		}
		res.All = append(res.All, flagged)
		if flagged.Spike {
			res.Spikes = append(res.Spikes, flagged)
		}
	}

	d.logger.Info("Spike detection complete",
		logging.F(logging.FieldCount, len(res.All)),
		logging.F("spikes", len(res.Spikes)),
		logging.F(logging.FieldThreshold, d.sigma))
	return res
}

// Run computes statistics over expenses and detects spikes in one step.
func (d *Detector) Run(expenses []models.Transaction) (Result, map[string]CategoryStats) {
	stats := ComputeStats(expenses)
	return d.Detect(expenses, stats), stats
}
