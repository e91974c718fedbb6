package main

import (
	"fmt"
	"sort"
	"time"
)

// ComputeRFM aggregates the transaction snapshot into one CustomerRFM row per
// customer, assigns quantile scores, segments, and CLV, and returns the
// per-segment rollup. Pure and deterministic: identical input and analysis
// date always produce identical tables.
func ComputeRFM(txns []Transaction, analysisDate time.Time, cfg Config) ([]CustomerRFM, []SegmentSummary, error) {
	if len(txns) == 0 {
		return nil, nil, ErrEmptyDataset
	}
	if analysisDate.IsZero() {
		analysisDate = DefaultAnalysisDate(txns)
	}

	type group struct {
		last     time.Time
		count    int
		monetary float64
	}
	groups := make(map[string]*group)
	for _, t := range txns {
		g, ok := groups[t.CustomerID]
		if !ok {
			g = &group{last: t.Date}
			groups[t.CustomerID] = g
		}
		if t.Date.After(g.last) {
			g.last = t.Date
		}
		g.count++
		g.monetary += t.Amount
	}

	customers := make([]CustomerRFM, 0, len(groups))
	negativeRecency := 0
	for id, g := range groups {
		recency := daysBetween(g.last, analysisDate)
		if recency < 0 {
			negativeRecency++
			continue
		}
		customers = append(customers, CustomerRFM{
			CustomerID: id,
			Recency:    recency,
			Frequency:  g.count,
			Monetary:   g.monetary,
		})
	}
	if negativeRecency > 0 {
		return nil, nil, &InvalidDataError{
			TotalRows:   len(groups),
			InvalidRows: negativeRecency,
			Issues:      map[string]int{"negative_recency": negativeRecency},
		}
	}

	bins := cfg.ScoreBins
	if bins < 2 {
		bins = 5
	}
	assignScores(customers, bins)

	for i := range customers {
		c := &customers[i]
		c.RFMCode = fmt.Sprintf("%d%d%d", c.RScore, c.FScore, c.MScore)
		c.Segment = SegmentFor(c.RScore, c.FScore, c.MScore)
		c.CLV = CustomerLifetimeValue(c.Monetary, c.Frequency, cfg.CLVMultiplier)
	}

	// Stable output order regardless of map iteration
	sort.Slice(customers, func(i, j int) bool { return customers[i].CustomerID < customers[j].CustomerID })

	return customers, SummarizeSegments(customers), nil
}

// DefaultAnalysisDate is the day after the newest transaction, so that the
// most recent purchase has recency 1 and reruns over the same snapshot are
// reproducible.
func DefaultAnalysisDate(txns []Transaction) time.Time {
	var max time.Time
	for _, t := range txns {
		if t.Date.After(max) {
			max = t.Date
		}
	}
	return max.AddDate(0, 0, 1)
}

// assignScores gives each customer 1..bins scores per metric using
// equal-frequency binning over the current population. A score depends only
// on the metric value and the population thresholds, so tied values always
// land in the same bin. Recency is inverted: most recent = highest score.
func assignScores(customers []CustomerRFM, bins int) {
	n := len(customers)
	recency := make([]float64, n)
	frequency := make([]float64, n)
	monetary := make([]float64, n)
	for i, c := range customers {
		recency[i] = float64(c.Recency)
		frequency[i] = float64(c.Frequency)
		monetary[i] = c.Monetary
	}

	rCuts := quantileThresholds(recency, bins)
	fCuts := quantileThresholds(frequency, bins)
	mCuts := quantileThresholds(monetary, bins)

	for i := range customers {
		customers[i].RScore = bins + 1 - quantileScore(recency[i], rCuts)
		customers[i].FScore = quantileScore(frequency[i], fCuts)
		customers[i].MScore = quantileScore(monetary[i], mCuts)
	}
}

// quantileThresholds returns the bins-1 upper bin edges of the sorted
// population: edge i is the value at position ceil(i*n/bins).
func quantileThresholds(values []float64, bins int) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	cuts := make([]float64, 0, bins-1)
	for i := 1; i < bins; i++ {
		idx := (i*n + bins - 1) / bins // ceil(i*n/bins)
		if idx < 1 {
			idx = 1
		}
		cuts = append(cuts, sorted[idx-1])
	}
	return cuts
}

// quantileScore is 1 plus the number of thresholds the value strictly
// exceeds, so it is monotone in the value and equal for equal values.
func quantileScore(value float64, thresholds []float64) int {
	score := 1
	for _, t := range thresholds {
		if value > t {
			score++
		}
	}
	return score
}

// CustomerLifetimeValue is the projected value of a customer: average order
// value times expected future purchases (frequency scaled by the configured
// multiplier). Pure function of its arguments.
func CustomerLifetimeValue(monetary float64, frequency int, multiplier float64) float64 {
	if frequency <= 0 {
		return 0
	}
	avgOrder := monetary / float64(frequency)
	return avgOrder * float64(frequency) * multiplier
}
