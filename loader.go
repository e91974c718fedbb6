package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// RowIssues accumulates rejected rows across CSV parsing and semantic
// validation. Bad rows are excluded and counted, never silently coerced.
type RowIssues struct {
	Total    int
	Rejected int
	Counts   map[string]int
}

func NewRowIssues() *RowIssues {
	return &RowIssues{Counts: make(map[string]int)}
}

func (r *RowIssues) reject(kind string) {
	r.Rejected++
	r.Counts[kind]++
}

// Err converts the accumulated counts into an error when the rejected
// fraction exceeds maxInvalidPct percent.
func (r *RowIssues) Err(maxInvalidPct float64) error {
	if r.Total == 0 || r.Rejected == 0 {
		return nil
	}
	if float64(r.Rejected)/float64(r.Total)*100 <= maxInvalidPct {
		return nil
	}
	return &InvalidDataError{
		TotalRows:   r.Total,
		InvalidRows: r.Rejected,
		Issues:      r.Counts,
	}
}

// LoadTransactionsCSV reads a transaction snapshot from CSV. Expected columns:
// transaction_id, customer_id, date, category, amount, quantity (header row
// optional; category and quantity may be absent). Rows that fail to parse are
// counted in the returned RowIssues and skipped.
func LoadTransactionsCSV(path string) ([]Transaction, *RowIssues, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	issues := NewRowIssues()
	var txns []Transaction
	for i, rec := range records {
		if i == 0 && looksLikeHeader(rec) {
			continue
		}
		issues.Total++
		if len(rec) < 4 {
			issues.reject("short_row")
			continue
		}
		// With 6 columns the amount is rec[4]; the 4-column short form
		// (transaction_id, customer_id, date, amount) puts it at rec[3].
		amountField := rec[3]
		if len(rec) >= 6 {
			amountField = rec[4]
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountField), 64)
		if err != nil {
			issues.reject("unparseable_amount")
			continue
		}
		date, err := parseDate(rec[2])
		if err != nil {
			issues.reject("unparseable_date")
			continue
		}
		t := Transaction{
			TxnID:      strings.TrimSpace(rec[0]),
			CustomerID: strings.TrimSpace(rec[1]),
			Date:       date,
			Amount:     amount,
			Quantity:   1,
		}
		if len(rec) >= 6 {
			t.Category = strings.TrimSpace(rec[3])
			if q, err := strconv.Atoi(strings.TrimSpace(rec[5])); err == nil {
				t.Quantity = q
			}
		}
		txns = append(txns, t)
	}
	return txns, issues, nil
}

func looksLikeHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "transaction_id")
}

// ValidateTransactions applies the semantic row checks: customer id present,
// amount not negative, date not after the analysis date. Rejects are added to
// issues and excluded from the returned slice.
func ValidateTransactions(txns []Transaction, analysisDate time.Time, issues *RowIssues) []Transaction {
	valid := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		switch {
		case t.CustomerID == "":
			issues.reject("missing_customer_id")
		case t.Amount < 0:
			issues.reject("negative_amount")
		case !analysisDate.IsZero() && t.Date.After(analysisDate):
			issues.reject("date_after_analysis_date")
		default:
			valid = append(valid, t)
		}
	}
	return valid
}

func SaveTransactionsCSV(txns []Transaction, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"transaction_id", "customer_id", "date", "category", "amount", "quantity"}); err != nil {
		return err
	}
	for _, t := range txns {
		rec := []string{
			t.TxnID,
			t.CustomerID,
			t.Date.Format(dateLayout),
			t.Category,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			strconv.Itoa(t.Quantity),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
