package main

import (
	"sort"
	"time"
)

type CohortRetention struct {
	Cohort    string // first-purchase month, "2006-01"
	Size      int    // customers acquired in the cohort month
	Active    []int  // unique active customers per month offset; Active[0] == Size
	Retention []float64
}

// CohortRetentionTable groups customers by first-purchase month and tracks
// how many of each cohort come back in the following months.
func CohortRetentionTable(txns []Transaction) []CohortRetention {
	firstPurchase := make(map[string]time.Time)
	for _, t := range txns {
		if cur, ok := firstPurchase[t.CustomerID]; !ok || t.Date.Before(cur) {
			firstPurchase[t.CustomerID] = t.Date
		}
	}

	// cohort month -> month offset -> set of active customers
	active := make(map[string]map[int]map[string]bool)
	for _, t := range txns {
		first := firstPurchase[t.CustomerID]
		cohort := monthKey(first)
		offset := monthsBetween(first, t.Date)
		if offset < 0 {
			offset = 0
		}
		if active[cohort] == nil {
			active[cohort] = make(map[int]map[string]bool)
		}
		if active[cohort][offset] == nil {
			active[cohort][offset] = make(map[string]bool)
		}
		active[cohort][offset][t.CustomerID] = true
	}

	cohorts := make([]string, 0, len(active))
	for c := range active {
		cohorts = append(cohorts, c)
	}
	sort.Strings(cohorts)

	out := make([]CohortRetention, 0, len(cohorts))
	for _, cohort := range cohorts {
		offsets := active[cohort]
		maxOffset := 0
		for o := range offsets {
			if o > maxOffset {
				maxOffset = o
			}
		}
		row := CohortRetention{
			Cohort:    cohort,
			Active:    make([]int, maxOffset+1),
			Retention: make([]float64, maxOffset+1),
		}
		for o, customers := range offsets {
			row.Active[o] = len(customers)
		}
		row.Size = row.Active[0]
		for o := range row.Retention {
			if row.Size > 0 {
				row.Retention[o] = float64(row.Active[o]) / float64(row.Size) * 100
			}
		}
		out = append(out, row)
	}
	return out
}

type RetentionRate struct {
	Retained   int
	Total      int
	Rate       float64 // fraction 0..1
	PeriodDays int
}

// SecondPurchaseRetention measures how many customers made a second purchase
// within periodDays of their first.
func SecondPurchaseRetention(txns []Transaction, periodDays int) RetentionRate {
	dates := make(map[string][]time.Time)
	for _, t := range txns {
		dates[t.CustomerID] = append(dates[t.CustomerID], t.Date)
	}

	r := RetentionRate{PeriodDays: periodDays, Total: len(dates)}
	for _, ds := range dates {
		if len(ds) < 2 {
			continue
		}
		sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
		if daysBetween(ds[0], ds[1]) <= periodDays {
			r.Retained++
		}
	}
	if r.Total > 0 {
		r.Rate = float64(r.Retained) / float64(r.Total)
	}
	return r
}

type LoyalCustomer struct {
	CustomerID    string
	Purchases     int
	TotalSpent    float64
	FirstPurchase time.Time
	LastPurchase  time.Time
	TenureDays    int
}

// LoyalCustomers returns customers with at least minPurchases transactions,
// sorted by total spend descending.
func LoyalCustomers(txns []Transaction, minPurchases int) []LoyalCustomer {
	byCustomer := make(map[string]*LoyalCustomer)
	for _, t := range txns {
		c, ok := byCustomer[t.CustomerID]
		if !ok {
			c = &LoyalCustomer{
				CustomerID:    t.CustomerID,
				FirstPurchase: t.Date,
				LastPurchase:  t.Date,
			}
			byCustomer[t.CustomerID] = c
		}
		c.Purchases++
		c.TotalSpent += t.Amount
		if t.Date.Before(c.FirstPurchase) {
			c.FirstPurchase = t.Date
		}
		if t.Date.After(c.LastPurchase) {
			c.LastPurchase = t.Date
		}
	}

	var out []LoyalCustomer
	for _, c := range byCustomer {
		if c.Purchases < minPurchases {
			continue
		}
		c.TenureDays = daysBetween(c.FirstPurchase, c.LastPurchase)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	return out
}

// AveragePurchaseGap is the mean number of days between consecutive
// purchases, averaged over customers with at least two purchases. Returns 0
// when no customer qualifies.
func AveragePurchaseGap(txns []Transaction) float64 {
	dates := make(map[string][]time.Time)
	for _, t := range txns {
		dates[t.CustomerID] = append(dates[t.CustomerID], t.Date)
	}

	totalGap := 0.0
	qualified := 0
	for _, ds := range dates {
		if len(ds) < 2 {
			continue
		}
		sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
		gap := 0
		for i := 1; i < len(ds); i++ {
			gap += daysBetween(ds[i-1], ds[i])
		}
		totalGap += float64(gap) / float64(len(ds)-1)
		qualified++
	}
	if qualified == 0 {
		return 0
	}
	return totalGap / float64(qualified)
}
