package main

import (
	"html/template"
	"os"
	"path/filepath"
	"time"
)

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #f5f5f5; padding: 20px; }
.dashboard { max-width: 1400px; margin: 0 auto; background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 30px; }
h1 { color: #2c3e50; margin-bottom: 30px; font-size: 28px; }
h2 { color: #2c3e50; margin: 40px 0 20px 0; font-size: 22px; }
.kpi-cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 20px; margin-bottom: 40px; }
.kpi-card { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 25px; border-radius: 8px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
.kpi-card.green { background: linear-gradient(135deg, #11998e 0%, #38ef7d 100%); }
.kpi-card.orange { background: linear-gradient(135deg, #f093fb 0%, #f5576c 100%); }
.kpi-label { font-size: 14px; opacity: 0.9; margin-bottom: 8px; }
.kpi-value { font-size: 32px; font-weight: bold; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th { background: #3498db; color: white; padding: 12px; text-align: left; font-weight: 500; }
td { padding: 12px; border-bottom: 1px solid #ddd; }
tr:hover { background: #f8f9fa; }
.badge { display: inline-block; padding: 3px 10px; border-radius: 12px; color: white; font-size: 13px; }
.footer { margin-top: 40px; color: #7f8c8d; font-size: 13px; }
</style>
</head>
<body>
<div class="dashboard">
  <h1>{{.Title}}</h1>

  <div class="kpi-cards">
    <div class="kpi-card">
      <div class="kpi-label">Total Revenue</div>
      <div class="kpi-value">{{money .Stats.TotalRevenue}}</div>
    </div>
    <div class="kpi-card green">
      <div class="kpi-label">Total Customers</div>
      <div class="kpi-value">{{.Stats.TotalCustomers}}</div>
    </div>
    <div class="kpi-card orange">
      <div class="kpi-label">Avg Transaction Value</div>
      <div class="kpi-value">{{money .Stats.AvgTransaction}}</div>
    </div>
  </div>

  <h2>Customer Segments</h2>
  <table>
    <tr><th>Segment</th><th>Customers</th><th>Total Revenue</th><th>Revenue %</th><th>Avg Order Value</th></tr>
    {{range .Segments}}
    <tr>
      <td><span class="badge" style="background: {{color .Segment}}">{{.Segment}}</span></td>
      <td>{{.CustomerCount}}</td>
      <td>{{money .TotalRevenue}}</td>
      <td>{{pct .RevenueShare}}</td>
      <td>{{money .AvgOrderValue}}</td>
    </tr>
    {{end}}
  </table>

  <h2>Top Customers</h2>
  <table>
    <tr><th>Customer</th><th>Total Spent</th><th>Purchases</th><th>Segment</th><th>CLV</th></tr>
    {{range .TopCustomers}}
    <tr>
      <td>{{.CustomerID}}</td>
      <td>{{money .Monetary}}</td>
      <td>{{.Frequency}}</td>
      <td><span class="badge" style="background: {{color .Segment}}">{{.Segment}}</span></td>
      <td>{{money .CLV}}</td>
    </tr>
    {{end}}
  </table>

  <div class="footer">Generated {{.GeneratedAt}} · data range {{.Stats.FirstDate}} to {{.Stats.LastDate}}</div>
</div>
</body>
</html>
`

type dashboardData struct {
	Title        string
	Stats        OverallStats
	Segments     []SegmentSummary
	TopCustomers []CustomerRFM
	GeneratedAt  string
}

// WriteDashboard renders the KPI dashboard page into the output directory.
func WriteDashboard(stats OverallStats, summary []SegmentSummary, top []CustomerRFM, cfg Config) (string, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string { return cfg.Currency + formatAmount(v) },
		"pct":   func(v float64) string { return formatAmount(v*100) + "%" },
		"color": func(segment string) template.CSS {
			c, ok := SegmentColors[segment]
			if !ok {
				c = SegmentColors[SegmentOthers]
			}
			return template.CSS(c)
		},
	}
	tmpl, err := template.New("dashboard").Funcs(funcs).Parse(dashboardTemplate)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(cfg.OutputDir, "dashboard.html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data := dashboardData{
		Title:        cfg.CompanyName + " Dashboard",
		Stats:        stats,
		Segments:     summary,
		TopCustomers: top,
		GeneratedAt:  time.Now().Format("2006-01-02 15:04"),
	}
	if len(data.TopCustomers) > 10 {
		data.TopCustomers = data.TopCustomers[:10]
	}
	return path, tmpl.Execute(f, data)
}
