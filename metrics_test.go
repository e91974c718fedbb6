package main

import (
	"fmt"
	"math"
	"testing"
)

func TestTopPercentConcentrationDecileScenario(t *testing.T) {
	// Ten customers spending 100, 90, ..., 10: the top 20% are two customers
	// worth 190 of the 550 total.
	var customers []CustomerRFM
	for i := 0; i < 10; i++ {
		customers = append(customers, CustomerRFM{
			CustomerID: fmt.Sprintf("C%02d", i+1),
			Monetary:   float64(100 - i*10),
		})
	}
	count, share := TopPercentConcentration(customers, 20)
	if count != 2 {
		t.Fatalf("expected top cohort of 2, got %d", count)
	}
	if want := 190.0 / 550.0; math.Abs(share-want) > 1e-9 {
		t.Fatalf("expected share %.4f, got %.4f", want, share)
	}
}

func TestTopPercentConcentrationRoundsCohortUp(t *testing.T) {
	customers := []CustomerRFM{
		{CustomerID: "A", Monetary: 100},
		{CustomerID: "B", Monetary: 50},
		{CustomerID: "C", Monetary: 25},
	}
	// 20% of 3 customers rounds up to a cohort of 1.
	count, _ := TopPercentConcentration(customers, 20)
	if count != 1 {
		t.Fatalf("expected cohort of 1, got %d", count)
	}
}

func TestTopPercentConcentrationEmpty(t *testing.T) {
	count, share := TopPercentConcentration(nil, 20)
	if count != 0 || share != 0 {
		t.Fatalf("expected zeros on empty input, got count=%d share=%f", count, share)
	}
}

func TestSummarizeSegmentsConservesRevenue(t *testing.T) {
	customers := []CustomerRFM{
		{CustomerID: "A", Segment: SegmentChampions, Monetary: 500, Frequency: 5, Recency: 3},
		{CustomerID: "B", Segment: SegmentChampions, Monetary: 300, Frequency: 4, Recency: 10},
		{CustomerID: "C", Segment: SegmentLost, Monetary: 40, Frequency: 1, Recency: 400},
		{CustomerID: "D", Segment: SegmentOthers, Monetary: 160, Frequency: 2, Recency: 60},
	}
	summary := SummarizeSegments(customers)

	var total, shares float64
	var count int
	for _, s := range summary {
		total += s.TotalRevenue
		shares += s.RevenueShare
		count += s.CustomerCount
	}
	if math.Abs(total-1000) > 1e-9 {
		t.Fatalf("segment revenues must sum to customer total, got %f", total)
	}
	if math.Abs(shares-1) > 1e-9 {
		t.Fatalf("revenue shares must sum to 1, got %f", shares)
	}
	if count != len(customers) {
		t.Fatalf("every customer must land in exactly one segment: %d != %d", count, len(customers))
	}

	if summary[0].Segment != SegmentChampions {
		t.Fatalf("expected revenue-descending order, got %q first", summary[0].Segment)
	}
	if got := summary[0].AvgOrderValue; math.Abs(got-800.0/9.0) > 1e-9 {
		t.Fatalf("Champions avg order value wrong: %f", got)
	}
}

func TestSummarizeSegmentsZeroRevenueSingleBuyer(t *testing.T) {
	// One customer, one purchase, zero spend: no division faults anywhere.
	customers := []CustomerRFM{
		{CustomerID: "A", Segment: SegmentOthers, Monetary: 0, Frequency: 1, Recency: 5},
	}
	summary := SummarizeSegments(customers)
	if len(summary) != 1 {
		t.Fatalf("expected 1 segment row, got %d", len(summary))
	}
	s := summary[0]
	if s.RevenueShare != 0 || s.AvgOrderValue != 0 {
		t.Fatalf("zero-revenue guards failed: %+v", s)
	}
	if s.AvgFrequency != 1 || s.AvgRecency != 5 {
		t.Fatalf("averages wrong: %+v", s)
	}
}

func TestTopCustomersStableOrder(t *testing.T) {
	customers := []CustomerRFM{
		{CustomerID: "B", Monetary: 100},
		{CustomerID: "A", Monetary: 100},
		{CustomerID: "C", Monetary: 300},
	}
	top := TopCustomers(customers, 2)
	if len(top) != 2 || top[0].CustomerID != "C" || top[1].CustomerID != "A" {
		t.Fatalf("expected [C A], got %v", top)
	}
	// Input must not be reordered.
	if customers[0].CustomerID != "B" {
		t.Fatalf("TopCustomers mutated its input")
	}
}

func TestRepeatPurchaseRate(t *testing.T) {
	customers := []CustomerRFM{
		{CustomerID: "A", Frequency: 1},
		{CustomerID: "B", Frequency: 3},
		{CustomerID: "C", Frequency: 2},
		{CustomerID: "D", Frequency: 1},
	}
	if got := RepeatPurchaseRate(customers); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %f", got)
	}
	if got := RepeatPurchaseRate(nil); got != 0 {
		t.Fatalf("expected 0 on empty input, got %f", got)
	}
}

func TestChurnFromRFM(t *testing.T) {
	customers := []CustomerRFM{
		{CustomerID: "A", Recency: 10},
		{CustomerID: "B", Recency: 181},
		{CustomerID: "C", Recency: 500},
		{CustomerID: "D", Recency: 180},
	}
	s := ChurnFromRFM(customers, 180)
	if s.Churned != 2 || s.Active != 2 {
		t.Fatalf("expected 2 churned / 2 active, got %+v", s)
	}
	if math.Abs(s.Rate-0.5) > 1e-9 {
		t.Fatalf("expected rate 0.5, got %f", s.Rate)
	}
}

func TestSpendDistribution(t *testing.T) {
	customers := []CustomerRFM{
		{Monetary: 100},
		{Monetary: 5000},
		{Monetary: 19999},
		{Monetary: 20000},
		{Monetary: 90000},
	}
	d := SpendDistribution(customers)
	if d.Low != 1 || d.Medium != 2 || d.High != 2 {
		t.Fatalf("unexpected distribution: %+v", d)
	}
}
