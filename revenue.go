package main

import "sort"

// ApplyRevenueGrowth fills month-over-month growth percentages in place and
// returns the slice. The first month has no prior and stays at 0.
func ApplyRevenueGrowth(monthly []MonthRevenue) []MonthRevenue {
	for i := 1; i < len(monthly); i++ {
		prev := monthly[i-1].Revenue
		if prev > 0 {
			monthly[i].GrowthPct = (monthly[i].Revenue - prev) / prev * 100
		}
	}
	return monthly
}

type SegmentRevenue struct {
	Segment        string
	Transactions   int
	TotalRevenue   float64
	AvgTransaction float64
	RevenueShare   float64 // fraction of grand total, 0..1
}

// RevenueBySegment attributes each transaction to its customer's segment and
// aggregates. Transactions from customers absent from the RFM table (e.g.
// rejected rows) fall under Others.
func RevenueBySegment(txns []Transaction, customers []CustomerRFM) []SegmentRevenue {
	segmentOf := make(map[string]string, len(customers))
	for _, c := range customers {
		segmentOf[c.CustomerID] = c.Segment
	}

	type acc struct {
		count   int
		revenue float64
	}
	accs := make(map[string]*acc)
	grandTotal := 0.0
	for _, t := range txns {
		segment, ok := segmentOf[t.CustomerID]
		if !ok {
			segment = SegmentOthers
		}
		a, found := accs[segment]
		if !found {
			a = &acc{}
			accs[segment] = a
		}
		a.count++
		a.revenue += t.Amount
		grandTotal += t.Amount
	}

	out := make([]SegmentRevenue, 0, len(accs))
	for segment, a := range accs {
		s := SegmentRevenue{
			Segment:      segment,
			Transactions: a.count,
			TotalRevenue: a.revenue,
		}
		if a.count > 0 {
			s.AvgTransaction = a.revenue / float64(a.count)
		}
		if grandTotal > 0 {
			s.RevenueShare = a.revenue / grandTotal
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

// GiniCoefficient measures revenue concentration across customers: 0 is a
// perfectly even split, values near 1 mean a few customers carry almost all
// revenue.
func GiniCoefficient(customers []CustomerRFM) float64 {
	n := len(customers)
	if n == 0 {
		return 0
	}
	values := make([]float64, n)
	total := 0.0
	for i, c := range customers {
		values[i] = c.Monetary
		total += c.Monetary
	}
	if total == 0 {
		return 0
	}
	sort.Float64s(values)

	weighted := 0.0
	for i, v := range values {
		weighted += float64(i+1) * v
	}
	return 2*weighted/(float64(n)*total) - float64(n+1)/float64(n)
}
