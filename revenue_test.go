package main

import (
	"math"
	"testing"
)

func TestRevenueBySegmentAttributesUnknownCustomersToOthers(t *testing.T) {
	customers := []CustomerRFM{
		{CustomerID: "A", Segment: SegmentChampions},
		{CustomerID: "B", Segment: SegmentLost},
	}
	txns := []Transaction{
		txn("T1", "A", day(1), 600),
		txn("T2", "A", day(2), 200),
		txn("T3", "B", day(3), 100),
		txn("T4", "ZZZ", day(4), 100), // not in the RFM table
	}
	rows := RevenueBySegment(txns, customers)
	if len(rows) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(rows))
	}
	if rows[0].Segment != SegmentChampions || rows[0].TotalRevenue != 800 || rows[0].Transactions != 2 {
		t.Fatalf("unexpected top row: %+v", rows[0])
	}
	if math.Abs(rows[0].RevenueShare-0.8) > 1e-9 {
		t.Fatalf("expected share 0.8, got %f", rows[0].RevenueShare)
	}
	if math.Abs(rows[0].AvgTransaction-400) > 1e-9 {
		t.Fatalf("expected avg 400, got %f", rows[0].AvgTransaction)
	}

	var others *SegmentRevenue
	for i := range rows {
		if rows[i].Segment == SegmentOthers {
			others = &rows[i]
		}
	}
	if others == nil || others.TotalRevenue != 100 {
		t.Fatalf("unattributed revenue must land in Others: %+v", rows)
	}
}

func TestGiniCoefficientBounds(t *testing.T) {
	even := []CustomerRFM{
		{Monetary: 100}, {Monetary: 100}, {Monetary: 100}, {Monetary: 100},
	}
	if got := GiniCoefficient(even); math.Abs(got) > 1e-9 {
		t.Fatalf("even split should yield 0, got %f", got)
	}

	skewed := []CustomerRFM{
		{Monetary: 0}, {Monetary: 0}, {Monetary: 0}, {Monetary: 1000},
	}
	got := GiniCoefficient(skewed)
	if want := 0.75; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f for one customer holding everything, got %f", want, got)
	}

	if got := GiniCoefficient(nil); got != 0 {
		t.Fatalf("empty input should yield 0, got %f", got)
	}
	if got := GiniCoefficient([]CustomerRFM{{Monetary: 0}}); got != 0 {
		t.Fatalf("zero total should yield 0, got %f", got)
	}
}
