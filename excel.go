package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const excelHeaderColor = "4472C4"

type reportStyles struct {
	title    int
	header   int
	currency int
}

func buildReportStyles(f *excelize.File, currencySymbol string) (reportStyles, error) {
	var s reportStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return s, err
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{excelHeaderColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return s, err
	}
	numFmt := currencySymbol + "#,##0.00"
	s.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	return s, err
}

func writeSheetHeader(f *excelize.File, sheet, title string, headers []string, styles reportStyles) error {
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", styles.title); err != nil {
		return err
	}
	lastCol, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", lastCol); err != nil {
		return err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	firstHeader, _ := excelize.CoordinatesToCellName(1, 3)
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 3)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, firstHeader, lastHeader, styles.header)
}

// WriteCustomerRFMReport emits the full per-customer table sorted by spend.
func WriteCustomerRFMReport(customers []CustomerRFM, cfg Config) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Customer RFM Data"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}
	styles, err := buildReportStyles(f, cfg.Currency)
	if err != nil {
		return "", err
	}

	headers := []string{"Customer ID", "Recency (days)", "Frequency", "Monetary",
		"R Score", "F Score", "M Score", "RFM Code", "Segment", "CLV"}
	if err := writeSheetHeader(f, sheet, "Customer RFM Analysis Report", headers, styles); err != nil {
		return "", err
	}

	sorted := TopCustomers(customers, len(customers))
	for i, c := range sorted {
		row := i + 4
		values := []interface{}{c.CustomerID, c.Recency, c.Frequency, c.Monetary,
			c.RScore, c.FScore, c.MScore, c.RFMCode, c.Segment, c.CLV}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
		}
		for _, col := range []string{"D", "J"} {
			cell := fmt.Sprintf("%s%d", col, row)
			if err := f.SetCellStyle(sheet, cell, cell, styles.currency); err != nil {
				return "", err
			}
		}
	}

	for col, width := range map[string]float64{"A": 15, "B": 13, "C": 11, "D": 15, "H": 10, "I": 20, "J": 15} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return "", err
		}
	}

	path := filepath.Join(cfg.ExcelDir, "customer_rfm.xlsx")
	return path, saveWorkbook(f, path)
}

// WriteSegmentSummaryReport emits the per-segment rollup.
func WriteSegmentSummaryReport(summary []SegmentSummary, cfg Config) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Segment Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}
	styles, err := buildReportStyles(f, cfg.Currency)
	if err != nil {
		return "", err
	}

	headers := []string{"Segment", "Customers", "Total Revenue", "Revenue %",
		"Avg Order Value", "Avg Frequency", "Avg Recency"}
	if err := writeSheetHeader(f, sheet, "Customer Segment Analysis", headers, styles); err != nil {
		return "", err
	}

	for i, s := range summary {
		row := i + 4
		values := []interface{}{s.Segment, s.CustomerCount, s.TotalRevenue,
			s.RevenueShare * 100, s.AvgOrderValue, s.AvgFrequency, s.AvgRecency}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
		}
		for _, col := range []string{"C", "E"} {
			cell := fmt.Sprintf("%s%d", col, row)
			if err := f.SetCellStyle(sheet, cell, cell, styles.currency); err != nil {
				return "", err
			}
		}
	}

	for _, col := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return "", err
		}
	}

	path := filepath.Join(cfg.ExcelDir, "segment_summary.xlsx")
	return path, saveWorkbook(f, path)
}

// WriteTopCustomersReport emits the top spenders, limited by
// report_top_customers.
func WriteTopCustomersReport(customers []CustomerRFM, cfg Config) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Top Customers"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}
	styles, err := buildReportStyles(f, cfg.Currency)
	if err != nil {
		return "", err
	}

	top := TopCustomers(customers, cfg.ReportTopCustomers)
	title := fmt.Sprintf("Top %d Customers by Revenue", len(top))
	headers := []string{"Customer ID", "Monetary", "Frequency", "Recency (days)", "Segment", "CLV"}
	if err := writeSheetHeader(f, sheet, title, headers, styles); err != nil {
		return "", err
	}

	for i, c := range top {
		row := i + 4
		values := []interface{}{c.CustomerID, c.Monetary, c.Frequency, c.Recency, c.Segment, c.CLV}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
		}
		for _, col := range []string{"B", "F"} {
			cell := fmt.Sprintf("%s%d", col, row)
			if err := f.SetCellStyle(sheet, cell, cell, styles.currency); err != nil {
				return "", err
			}
		}
	}

	for col, width := range map[string]float64{"A": 15, "B": 15, "E": 20, "F": 15} {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return "", err
		}
	}

	path := filepath.Join(cfg.ExcelDir, "top_customers.xlsx")
	return path, saveWorkbook(f, path)
}

func saveWorkbook(f *excelize.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return f.SaveAs(path)
}
