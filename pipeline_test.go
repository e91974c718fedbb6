package main

import (
	"errors"
	"testing"
)

func TestImportTransactionsCSVThenAnalyze(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	cfg.AnalysisDate = "2024-11-06" // day 310

	path := writeTempCSV(t, `transaction_id,customer_id,date,category,amount,quantity
TXN_1,C1,2024-01-06,Books,100.00,1
TXN_2,C1,2024-01-11,Books,50.00,1
TXN_3,C2,2024-10-27,Electronics,200.00,1
`)
	inserted, err := ImportTransactionsCSV(db, cfg, path)
	if err != nil {
		t.Fatalf("ImportTransactionsCSV failed: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("expected 3 inserted, got %d", inserted)
	}

	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		t.Fatalf("AnalyzeSnapshot failed: %v", err)
	}
	if len(result.Customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(result.Customers))
	}
	if result.AnalysisDate.Format(dateLayout) != "2024-11-06" {
		t.Fatalf("unexpected analysis date: %v", result.AnalysisDate)
	}

	c1, c2 := result.Customers[0], result.Customers[1]
	if c1.Recency != 300 || c1.Frequency != 2 || c1.Monetary != 150 {
		t.Fatalf("C1 wrong: %+v", c1)
	}
	if c2.Recency != 10 || c2.Frequency != 1 || c2.Monetary != 200 {
		t.Fatalf("C2 wrong: %+v", c2)
	}
}

func TestImportTransactionsCSVAbortsOverThreshold(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	cfg.MaxInvalidPct = 10

	// 1 of 2 rows broken: 50% rejects against a 10% threshold.
	path := writeTempCSV(t, `TXN_1,C1,2024-01-06,Books,100.00,1
TXN_2,C1,not-a-date,Books,50.00,1
`)
	_, err := ImportTransactionsCSV(db, cfg, path)
	var invalid *InvalidDataError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDataError, got %v", err)
	}
	if invalid.Issues["unparseable_date"] != 1 {
		t.Fatalf("unexpected issues: %v", invalid.Issues)
	}

	count, err := CountTransactions(db)
	if err != nil {
		t.Fatalf("CountTransactions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("aborted import must not touch the table, count=%d", count)
	}
}

func TestAnalyzeSnapshotEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	_, err := AnalyzeSnapshot(db, testConfig())
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestAnalyzeSnapshotExcludesSemanticRejects(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	cfg.MaxInvalidPct = 50

	txns := []Transaction{
		txn("T1", "A", day(10), 100),
		txn("T2", "B", day(20), 200),
		txn("T3", "C", day(30), -40), // rejected, under threshold
	}
	if _, err := ReplaceTransactions(db, txns); err != nil {
		t.Fatalf("ReplaceTransactions failed: %v", err)
	}

	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		t.Fatalf("AnalyzeSnapshot failed: %v", err)
	}
	if len(result.Customers) != 2 {
		t.Fatalf("expected the negative-amount row excluded, got %d customers", len(result.Customers))
	}
}
