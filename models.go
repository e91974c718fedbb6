package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Transaction struct {
	TxnID      string
	CustomerID string
	Date       time.Time
	Category   string
	Amount     float64
	Quantity   int
}

type CustomerRFM struct {
	CustomerID string
	Recency    int // days between the analysis date and the last purchase
	Frequency  int
	Monetary   float64
	RScore     int
	FScore     int
	MScore     int
	RFMCode    string // concatenated scores, e.g. "545"
	Segment    string
	CLV        float64
}

type SegmentSummary struct {
	Segment       string
	CustomerCount int
	TotalRevenue  float64
	RevenueShare  float64 // fraction of grand total, 0..1
	AvgOrderValue float64
	AvgFrequency  float64
	AvgRecency    float64
	TotalCLV      float64
}

type OverallStats struct {
	TotalTransactions int
	TotalCustomers    int
	TotalRevenue      float64
	AvgTransaction    float64
	FirstDate         string
	LastDate          string
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// daysBetween returns whole calendar days from a to b. Both values are
// treated as dates; time-of-day is discarded.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// monthsBetween returns the number of calendar months from a's month to b's.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// formatAmount renders a float with thousands separators and two decimals,
// e.g. 1234567.5 -> "1,234,567.50".
func formatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}
