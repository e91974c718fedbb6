package main

import "sort"

// Customer value bands for the spending distribution, in currency units.
const (
	mediumValueFloor = 5000.0
	highValueFloor   = 20000.0
)

// SummarizeSegments rolls the per-customer table up into one row per segment
// present, sorted by revenue descending. Shares are guarded: with zero total
// revenue every share is 0 rather than NaN.
func SummarizeSegments(customers []CustomerRFM) []SegmentSummary {
	type acc struct {
		count     int
		revenue   float64
		frequency int
		recency   int
		clv       float64
	}
	accs := make(map[string]*acc)
	grandTotal := 0.0
	for _, c := range customers {
		a, ok := accs[c.Segment]
		if !ok {
			a = &acc{}
			accs[c.Segment] = a
		}
		a.count++
		a.revenue += c.Monetary
		a.frequency += c.Frequency
		a.recency += c.Recency
		a.clv += c.CLV
		grandTotal += c.Monetary
	}

	out := make([]SegmentSummary, 0, len(accs))
	for segment, a := range accs {
		s := SegmentSummary{
			Segment:       segment,
			CustomerCount: a.count,
			TotalRevenue:  a.revenue,
			TotalCLV:      a.clv,
			AvgFrequency:  float64(a.frequency) / float64(a.count),
			AvgRecency:    float64(a.recency) / float64(a.count),
		}
		if grandTotal > 0 {
			s.RevenueShare = a.revenue / grandTotal
		}
		if a.frequency > 0 {
			s.AvgOrderValue = a.revenue / float64(a.frequency)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}

// TopCustomers returns up to limit customers by monetary value descending,
// ties broken by customer id for stable output.
func TopCustomers(customers []CustomerRFM, limit int) []CustomerRFM {
	sorted := append([]CustomerRFM(nil), customers...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Monetary != sorted[j].Monetary {
			return sorted[i].Monetary > sorted[j].Monetary
		}
		return sorted[i].CustomerID < sorted[j].CustomerID
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// TopPercentConcentration reports how much of total revenue the top percent%
// of customers account for. The cohort size is ceil(percent% of customers).
func TopPercentConcentration(customers []CustomerRFM, percent int) (topCount int, share float64) {
	if len(customers) == 0 || percent <= 0 {
		return 0, 0
	}
	topCount = (len(customers)*percent + 99) / 100
	top := TopCustomers(customers, topCount)

	grandTotal := 0.0
	for _, c := range customers {
		grandTotal += c.Monetary
	}
	if grandTotal == 0 {
		return topCount, 0
	}
	topRevenue := 0.0
	for _, c := range top {
		topRevenue += c.Monetary
	}
	return topCount, topRevenue / grandTotal
}

// RepeatPurchaseRate is the fraction of customers with more than one
// purchase.
func RepeatPurchaseRate(customers []CustomerRFM) float64 {
	if len(customers) == 0 {
		return 0
	}
	repeat := 0
	for _, c := range customers {
		if c.Frequency > 1 {
			repeat++
		}
	}
	return float64(repeat) / float64(len(customers))
}

type ChurnStats struct {
	Churned int
	Active  int
	Rate    float64 // fraction churned, 0..1
}

// ChurnFromRFM counts customers whose last purchase is older than churnDays
// at the analysis date.
func ChurnFromRFM(customers []CustomerRFM, churnDays int) ChurnStats {
	var s ChurnStats
	for _, c := range customers {
		if c.Recency > churnDays {
			s.Churned++
		} else {
			s.Active++
		}
	}
	if total := s.Churned + s.Active; total > 0 {
		s.Rate = float64(s.Churned) / float64(total)
	}
	return s
}

type ValueDistribution struct {
	Low    int // below mediumValueFloor
	Medium int
	High   int // at or above highValueFloor
}

// SpendDistribution bands customers by lifetime spend.
func SpendDistribution(customers []CustomerRFM) ValueDistribution {
	var d ValueDistribution
	for _, c := range customers {
		switch {
		case c.Monetary >= highValueFloor:
			d.High++
		case c.Monetary >= mediumValueFloor:
			d.Medium++
		default:
			d.Low++
		}
	}
	return d
}
