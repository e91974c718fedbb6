package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		txn_id      TEXT NOT NULL UNIQUE,
		customer_id TEXT NOT NULL,
		date        TEXT NOT NULL,
		category    TEXT DEFAULT '',
		amount      REAL NOT NULL,
		quantity    INTEGER DEFAULT 1,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// ReplaceTransactions clears the table and loads a fresh snapshot. The store
// holds exactly one snapshot; analysis always runs over the full table.
func ReplaceTransactions(db *sql.DB, txns []Transaction) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO transactions (txn_id, customer_id, date, category, amount, quantity)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range txns {
		_, err := stmt.Exec(t.TxnID, t.CustomerID, t.Date.Format(dateLayout), t.Category, t.Amount, t.Quantity)
		if err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, tx.Commit()
}

func GetAllTransactions(db *sql.DB) ([]Transaction, error) {
	rows, err := db.Query(
		`SELECT txn_id, customer_id, date, category, amount, quantity
		 FROM transactions ORDER BY date, txn_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		var t Transaction
		var date string
		if err := rows.Scan(&t.TxnID, &t.CustomerID, &date, &t.Category, &t.Amount, &t.Quantity); err != nil {
			return nil, err
		}
		if t.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func CountTransactions(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}

func GetOverallStats(db *sql.DB) (OverallStats, error) {
	var s OverallStats
	err := db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(DISTINCT customer_id),
		        COALESCE(SUM(amount), 0),
		        COALESCE(AVG(amount), 0),
		        COALESCE(MIN(date), ''),
		        COALESCE(MAX(date), '')
		 FROM transactions`,
	).Scan(&s.TotalTransactions, &s.TotalCustomers, &s.TotalRevenue,
		&s.AvgTransaction, &s.FirstDate, &s.LastDate)
	return s, err
}

type CategoryRevenue struct {
	Category     string
	Transactions int
	Revenue      float64
	AvgAmount    float64
}

func GetRevenueByCategory(db *sql.DB) ([]CategoryRevenue, error) {
	rows, err := db.Query(
		`SELECT category, COUNT(*), SUM(amount), ROUND(AVG(amount), 2)
		 FROM transactions
		 GROUP BY category
		 ORDER BY SUM(amount) DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryRevenue
	for rows.Next() {
		var c CategoryRevenue
		if err := rows.Scan(&c.Category, &c.Transactions, &c.Revenue, &c.AvgAmount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type MonthRevenue struct {
	Month        string // "2006-01"
	Transactions int
	Customers    int
	Revenue      float64
	AvgPerTxn    float64
	GrowthPct    float64 // month-over-month, 0 for the first month
}

func GetMonthlyRevenue(db *sql.DB) ([]MonthRevenue, error) {
	rows, err := db.Query(
		`SELECT strftime('%Y-%m', date) as month,
		        COUNT(*),
		        COUNT(DISTINCT customer_id),
		        SUM(amount)
		 FROM transactions
		 GROUP BY month
		 ORDER BY month`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Transactions, &m.Customers, &m.Revenue); err != nil {
			return nil, err
		}
		if m.Transactions > 0 {
			m.AvgPerTxn = m.Revenue / float64(m.Transactions)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type CustomerStats struct {
	CustomerID    string
	PurchaseCount int
	TotalSpent    float64
	AvgPurchase   float64
	FirstPurchase string
	LastPurchase  string
}

func GetTopCustomerStats(db *sql.DB, limit int) ([]CustomerStats, error) {
	rows, err := db.Query(
		`SELECT customer_id, COUNT(*), SUM(amount), ROUND(AVG(amount), 2), MIN(date), MAX(date)
		 FROM transactions
		 GROUP BY customer_id
		 ORDER BY SUM(amount) DESC, customer_id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerStats
	for rows.Next() {
		var c CustomerStats
		if err := rows.Scan(&c.CustomerID, &c.PurchaseCount, &c.TotalSpent,
			&c.AvgPurchase, &c.FirstPurchase, &c.LastPurchase); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
