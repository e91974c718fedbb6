package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunMenu drives the interactive console. Each choice maps to one pipeline
// stage so stages can be rerun without regenerating data.
func RunMenu(cfg Config, db *sql.DB) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n=== %s Customer Analytics ===\n", cfg.CompanyName)
		fmt.Println("1. Generate sample data")
		fmt.Println("2. RFM analysis")
		fmt.Println("3. Segment summary")
		fmt.Println("4. Create charts")
		fmt.Println("5. Excel reports")
		fmt.Println("6. HTML dashboard")
		fmt.Println("7. Recommendations")
		fmt.Println("8. Run full pipeline")
		fmt.Println("9. Exit")
		fmt.Print("Choice: ")

		if !scanner.Scan() {
			return
		}
		choice := strings.TrimSpace(scanner.Text())

		var err error
		switch choice {
		case "1":
			err = menuGenerate(cfg, db)
		case "2":
			err = menuAnalyze(cfg, db)
		case "3":
			err = menuSegments(cfg, db)
		case "4":
			err = menuCharts(cfg, db)
		case "5":
			err = menuExcel(cfg, db)
		case "6":
			err = menuDashboard(cfg, db)
		case "7":
			err = menuRecommendations(cfg, db)
		case "8":
			err = RunFullPipeline(cfg, db)
		case "9", "q", "":
			return
		default:
			fmt.Println("Unknown choice")
		}
		if err != nil {
			log.Printf("Error: %v", err)
		}
	}
}

func menuGenerate(cfg Config, db *sql.DB) error {
	txns := GenerateRetailData(cfg.NumTransactions, time.Now().In(cfg.Location))
	csvPath := filepath.Join(cfg.DataDir, "transactions.csv")
	if err := SaveTransactionsCSV(txns, csvPath); err != nil {
		return err
	}
	inserted, err := ReplaceTransactions(db, txns)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d transactions, saved to %s\n", inserted, csvPath)
	return nil
}

func menuAnalyze(cfg Config, db *sql.DB) error {
	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("\nAnalysis date: %s, %d customers\n\n", result.AnalysisDate.Format(dateLayout), len(result.Customers))
	fmt.Printf("%-12s %8s %5s %12s %5s %-20s\n", "Customer", "Recency", "Freq", "Monetary", "RFM", "Segment")
	for _, c := range TopCustomers(result.Customers, 15) {
		fmt.Printf("%-12s %8d %5d %12s %5s %-20s\n",
			c.CustomerID, c.Recency, c.Frequency, cfg.Currency+formatAmount(c.Monetary), c.RFMCode, c.Segment)
	}

	categories, err := GetRevenueByCategory(db)
	if err != nil {
		return err
	}
	fmt.Printf("\n%-16s %6s %15s %12s\n", "Category", "Txns", "Revenue", "Avg")
	for _, c := range categories {
		fmt.Printf("%-16s %6d %15s %12s\n",
			c.Category, c.Transactions, cfg.Currency+formatAmount(c.Revenue), cfg.Currency+formatAmount(c.AvgAmount))
	}

	fmt.Println("\nRevenue by segment (transaction level):")
	for _, s := range RevenueBySegment(result.Transactions, result.Customers) {
		fmt.Printf("%-20s %6d txns %15s (%.1f%%)\n",
			s.Segment, s.Transactions, cfg.Currency+formatAmount(s.TotalRevenue), s.RevenueShare*100)
	}
	return nil
}

func menuSegments(cfg Config, db *sql.DB) error {
	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("\n%-20s %10s %15s %8s\n", "Segment", "Customers", "Revenue", "Share")
	for _, s := range result.Segments {
		fmt.Printf("%-20s %10d %15s %7.1f%%\n",
			s.Segment, s.CustomerCount, cfg.Currency+formatAmount(s.TotalRevenue), s.RevenueShare*100)
	}
	topCount, share := TopPercentConcentration(result.Customers, cfg.TopPercent)
	fmt.Printf("\nTop %d%% (%d customers) contribute %.1f%% of revenue\n", cfg.TopPercent, topCount, share*100)
	fmt.Printf("Repeat purchase rate: %.1f%%\n", RepeatPurchaseRate(result.Customers)*100)
	fmt.Printf("Revenue concentration (Gini): %.3f\n", GiniCoefficient(result.Customers))

	d := SpendDistribution(result.Customers)
	fmt.Printf("Spend bands: %d low / %d medium / %d high\n", d.Low, d.Medium, d.High)

	retention := SecondPurchaseRetention(result.Transactions, cfg.RetentionDays)
	fmt.Printf("%d-day second-purchase retention: %d of %d (%.1f%%)\n",
		cfg.RetentionDays, retention.Retained, retention.Total, retention.Rate*100)
	fmt.Printf("Average purchase gap: %.1f days\n", AveragePurchaseGap(result.Transactions))

	loyal := LoyalCustomers(result.Transactions, cfg.LoyalMinPurchases)
	fmt.Printf("Loyal customers (%d+ purchases): %d\n", cfg.LoyalMinPurchases, len(loyal))

	if cohorts := CohortRetentionTable(result.Transactions); len(cohorts) > 0 {
		fmt.Printf("\n%-10s %6s %s\n", "Cohort", "Size", "Retention by month")
		for _, c := range cohorts {
			fmt.Printf("%-10s %6d", c.Cohort, c.Size)
			for _, r := range c.Retention {
				fmt.Printf(" %5.1f%%", r)
			}
			fmt.Println()
		}
	}
	return nil
}

func menuCharts(cfg Config, db *sql.DB) error {
	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		return err
	}
	for _, render := range []func() (string, error){
		func() (string, error) { return ChartSegmentDistribution(result.Segments, cfg) },
		func() (string, error) { return ChartRevenueBySegment(result.Segments, cfg) },
		func() (string, error) { return ChartRFMDistribution(result.Customers, cfg) },
		func() (string, error) { return ChartTopCustomers(result.Customers, cfg) },
	} {
		path, err := render()
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
	}
	return nil
}

func menuExcel(cfg Config, db *sql.DB) error {
	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		return err
	}
	for _, write := range []func() (string, error){
		func() (string, error) { return WriteCustomerRFMReport(result.Customers, cfg) },
		func() (string, error) { return WriteSegmentSummaryReport(result.Segments, cfg) },
		func() (string, error) { return WriteTopCustomersReport(result.Customers, cfg) },
	} {
		path, err := write()
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
	}
	return nil
}

func menuDashboard(cfg Config, db *sql.DB) error {
	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		return err
	}
	stats, err := GetOverallStats(db)
	if err != nil {
		return err
	}
	path, err := WriteDashboard(stats, result.Segments, TopCustomers(result.Customers, cfg.ReportTopCustomers), cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

func menuRecommendations(cfg Config, db *sql.DB) error {
	result, err := AnalyzeSnapshot(db, cfg)
	if err != nil {
		return err
	}
	text, err := GenerateRecommendations(result.Customers, result.Segments, cfg)
	if err != nil {
		return err
	}
	fmt.Println("\n" + text)
	recPath := filepath.Join(cfg.OutputDir, "recommendations.txt")
	if err := os.WriteFile(recPath, []byte(text), 0644); err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", recPath)
	return nil
}
