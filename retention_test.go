package main

import (
	"math"
	"testing"
	"time"
)

func TestCohortRetentionTable(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	txns := []Transaction{
		txn("T1", "A", jan, 100), // Jan cohort
		txn("T2", "B", jan, 100), // Jan cohort
		txn("T3", "A", feb, 100), // A returns month 1
		txn("T4", "A", mar, 100), // A returns month 2
		txn("T5", "C", feb, 100), // Feb cohort
	}
	rows := CohortRetentionTable(txns)
	if len(rows) != 2 {
		t.Fatalf("expected 2 cohorts, got %d", len(rows))
	}

	janRow := rows[0]
	if janRow.Cohort != "2024-01" || janRow.Size != 2 {
		t.Fatalf("unexpected Jan cohort: %+v", janRow)
	}
	if len(janRow.Active) != 3 || janRow.Active[1] != 1 || janRow.Active[2] != 1 {
		t.Fatalf("unexpected Jan activity: %v", janRow.Active)
	}
	if math.Abs(janRow.Retention[1]-50) > 1e-9 {
		t.Fatalf("expected 50%% month-1 retention, got %f", janRow.Retention[1])
	}

	febRow := rows[1]
	if febRow.Cohort != "2024-02" || febRow.Size != 1 || len(febRow.Active) != 1 {
		t.Fatalf("unexpected Feb cohort: %+v", febRow)
	}
}

func TestSecondPurchaseRetention(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", day(0), 100),
		txn("T2", "A", day(20), 100), // second purchase within 30 days
		txn("T3", "B", day(0), 100),
		txn("T4", "B", day(90), 100), // too late
		txn("T5", "C", day(0), 100),  // never returns
	}
	r := SecondPurchaseRetention(txns, 30)
	if r.Total != 3 || r.Retained != 1 {
		t.Fatalf("expected 1 of 3 retained, got %+v", r)
	}
	if math.Abs(r.Rate-1.0/3.0) > 1e-9 {
		t.Fatalf("unexpected rate: %f", r.Rate)
	}
}

func TestLoyalCustomers(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", day(0), 100),
		txn("T2", "A", day(30), 200),
		txn("T3", "A", day(60), 300),
		txn("T4", "B", day(0), 5000),
		txn("T5", "C", day(10), 50),
		txn("T6", "C", day(20), 50),
		txn("T7", "C", day(30), 50),
	}
	loyal := LoyalCustomers(txns, 3)
	if len(loyal) != 2 {
		t.Fatalf("expected 2 loyal customers, got %d", len(loyal))
	}
	if loyal[0].CustomerID != "A" || loyal[0].TotalSpent != 600 || loyal[0].TenureDays != 60 {
		t.Fatalf("unexpected first loyal customer: %+v", loyal[0])
	}
	if loyal[1].CustomerID != "C" || loyal[1].Purchases != 3 {
		t.Fatalf("unexpected second loyal customer: %+v", loyal[1])
	}
}

func TestAveragePurchaseGap(t *testing.T) {
	txns := []Transaction{
		txn("T1", "A", day(0), 100),
		txn("T2", "A", day(10), 100),
		txn("T3", "A", day(30), 100), // A: mean gap 15
		txn("T4", "B", day(0), 100),
		txn("T5", "B", day(5), 100), // B: mean gap 5
		txn("T6", "C", day(0), 100), // single purchase, excluded
	}
	if got := AveragePurchaseGap(txns); math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected mean gap 10, got %f", got)
	}
	if got := AveragePurchaseGap(nil); got != 0 {
		t.Fatalf("expected 0 on empty input, got %f", got)
	}
}
