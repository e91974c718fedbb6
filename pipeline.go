package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ImportTransactionsCSV parses a CSV snapshot and replaces the stored table
// with it. Structurally broken rows are excluded; the import fails when their
// fraction crosses the configured threshold.
func ImportTransactionsCSV(db *sql.DB, cfg Config, path string) (int, error) {
	txns, issues, err := LoadTransactionsCSV(path)
	if err != nil {
		return 0, err
	}
	if err := issues.Err(cfg.MaxInvalidPct); err != nil {
		return 0, err
	}
	if issues.Rejected > 0 {
		log.Printf("Excluded %d of %d rows: %v", issues.Rejected, issues.Total, issues.Counts)
	}
	if len(txns) == 0 {
		return 0, ErrEmptyDataset
	}
	return ReplaceTransactions(db, txns)
}

// AnalysisResult bundles everything one batch run derives from the snapshot.
type AnalysisResult struct {
	Transactions []Transaction
	Customers    []CustomerRFM
	Segments     []SegmentSummary
	AnalysisDate time.Time
}

// AnalyzeSnapshot loads the stored transactions, applies semantic row
// validation against the analysis date, and computes the RFM tables. Nothing
// is written to disk; emitters run only after this succeeds.
func AnalyzeSnapshot(db *sql.DB, cfg Config) (*AnalysisResult, error) {
	txns, err := GetAllTransactions(db)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	if len(txns) == 0 {
		return nil, ErrEmptyDataset
	}

	analysisDate := cfg.AnalysisDateOrZero()
	if analysisDate.IsZero() {
		analysisDate = DefaultAnalysisDate(txns)
	}

	issues := NewRowIssues()
	issues.Total = len(txns)
	valid := ValidateTransactions(txns, analysisDate, issues)
	if err := issues.Err(cfg.MaxInvalidPct); err != nil {
		return nil, err
	}
	if issues.Rejected > 0 {
		log.Printf("Excluded %d of %d rows: %v", issues.Rejected, issues.Total, issues.Counts)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyDataset
	}

	customers, segments, err := ComputeRFM(valid, analysisDate, cfg)
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{
		Transactions: valid,
		Customers:    customers,
		Segments:     segments,
		AnalysisDate: analysisDate,
	}, nil
}

// RunFullPipeline executes the complete batch: generate data, load it,
// analyze, and emit every artifact. Any failure aborts before report files
// are written.
func RunFullPipeline(cfg Config, db *sql.DB) error {
	started := time.Now()

	log.Printf("[1/7] Generating data...")
	txns := GenerateRetailData(cfg.NumTransactions, time.Now().In(cfg.Location))
	csvPath := filepath.Join(cfg.DataDir, "transactions.csv")
	if err := SaveTransactionsCSV(txns, csvPath); err != nil {
		return fmt.Errorf("saving %s: %w", csvPath, err)
	}

	log.Printf("[2/7] Loading into database...")
	inserted, err := ReplaceTransactions(db, txns)
	if err != nil {
		return fmt.Errorf("loading database: %w", err)
	}
	log.Printf("Loaded %d transactions", inserted)

	log.Printf("[3/7] Performing RFM analysis...")
	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		return err
	}
	log.Printf("Analyzed %d customers", len(result.Customers))

	log.Printf("[4/7] Customer segmentation...")
	topCount, share := TopPercentConcentration(result.Customers, cfg.TopPercent)
	log.Printf("Top %d%%: %d customers, %.1f%% of revenue", cfg.TopPercent, topCount, share*100)
	log.Printf("Repeat purchase rate: %.1f%%", RepeatPurchaseRate(result.Customers)*100)
	churn := ChurnFromRFM(result.Customers, cfg.ChurnDays)
	log.Printf("Churn (>%d days): %d of %d customers (%.1f%%)",
		cfg.ChurnDays, churn.Churned, churn.Churned+churn.Active, churn.Rate*100)
	log.Printf("Revenue concentration (Gini): %.3f", GiniCoefficient(result.Customers))
	retention := SecondPurchaseRetention(result.Transactions, cfg.RetentionDays)
	log.Printf("%d-day second-purchase retention: %.1f%%", cfg.RetentionDays, retention.Rate*100)
	monthly, err := GetMonthlyRevenue(db)
	if err != nil {
		return fmt.Errorf("monthly revenue: %w", err)
	}
	for _, m := range ApplyRevenueGrowth(monthly) {
		log.Printf("  %s: %s%s (%+.1f%%)", m.Month, cfg.Currency, formatAmount(m.Revenue), m.GrowthPct)
	}

	log.Printf("[5/7] Creating charts...")
	var chartErr error
	for _, render := range []func() (string, error){
		func() (string, error) { return ChartSegmentDistribution(result.Segments, cfg) },
		func() (string, error) { return ChartRevenueBySegment(result.Segments, cfg) },
		func() (string, error) { return ChartRFMDistribution(result.Customers, cfg) },
		func() (string, error) { return ChartTopCustomers(result.Customers, cfg) },
	} {
		path, err := render()
		if err != nil {
			chartErr = err
			break
		}
		log.Printf("Saved %s", path)
	}
	if chartErr != nil {
		return fmt.Errorf("creating charts: %w", chartErr)
	}

	log.Printf("[6/7] Creating Excel reports...")
	var excelFiles []string
	for _, write := range []func() (string, error){
		func() (string, error) { return WriteCustomerRFMReport(result.Customers, cfg) },
		func() (string, error) { return WriteSegmentSummaryReport(result.Segments, cfg) },
		func() (string, error) { return WriteTopCustomersReport(result.Customers, cfg) },
	} {
		path, err := write()
		if err != nil {
			return fmt.Errorf("creating Excel reports: %w", err)
		}
		log.Printf("Saved %s", path)
		excelFiles = append(excelFiles, path)
	}

	log.Printf("[7/7] Creating dashboard...")
	stats, err := GetOverallStats(db)
	if err != nil {
		return fmt.Errorf("overall stats: %w", err)
	}
	top := TopCustomers(result.Customers, cfg.ReportTopCustomers)
	dashPath, err := WriteDashboard(stats, result.Segments, top, cfg)
	if err != nil {
		return fmt.Errorf("creating dashboard: %w", err)
	}
	log.Printf("Saved %s", dashPath)

	recommendations, err := GenerateRecommendations(result.Customers, result.Segments, cfg)
	if err != nil {
		return err
	}
	recPath := filepath.Join(cfg.OutputDir, "recommendations.txt")
	if err := os.WriteFile(recPath, []byte(recommendations), 0644); err != nil {
		return fmt.Errorf("saving recommendations: %w", err)
	}
	log.Printf("Saved %s", recPath)

	summary := fmt.Sprintf(
		"%s analysis complete in %s\nTransactions: %d\nCustomers: %d\nTotal revenue: %s%s\nTop %d%% contribution: %.1f%%",
		cfg.CompanyName, time.Since(started).Round(time.Second),
		stats.TotalTransactions, stats.TotalCustomers,
		cfg.Currency, formatAmount(stats.TotalRevenue),
		cfg.TopPercent, share*100,
	)
	if err := NotifySlack(cfg, summary, excelFiles); err != nil {
		log.Printf("Slack notification failed: %v", err)
	}

	log.Printf("Analysis complete")
	return nil
}
