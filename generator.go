package main

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
)

type categoryPricing struct {
	name     string
	min, max float64
}

// Category price ranges for synthetic data, matching typical basket sizes.
var categoryPrices = []categoryPricing{
	{"Electronics", 5000, 50000},
	{"Clothing", 500, 5000},
	{"Home & Kitchen", 1000, 10000},
	{"Books", 200, 2000},
	{"Sports", 1000, 15000},
	{"Beauty", 500, 3000},
}

const (
	loyalCustomerRatio = 0.15 // share of customers with 5-15 purchases
	customersPerTxn    = 0.4  // unique customers as a fraction of transactions
)

// GenerateRetailData produces a synthetic transaction snapshot: most
// customers buy 1-3 times, a loyal minority buys 5-15 times, amounts follow
// the category price ranges, and all dates fall within the two years before
// now.
func GenerateRetailData(numTransactions int, now time.Time) []Transaction {
	log.Printf("Generating %d retail transactions...", numTransactions)

	startDate := now.AddDate(0, 0, -730)
	numCustomers := int(float64(numTransactions) * customersPerTxn)
	if numCustomers < 1 {
		numCustomers = 1
	}

	bar := progressbar.Default(int64(numCustomers))
	txns := make([]Transaction, 0, numTransactions)
	txnID := 1

	for i := 1; i <= numCustomers && txnID <= numTransactions; i++ {
		customerID := fmt.Sprintf("CUST_%05d", i)

		purchases := 1 + rand.Intn(3)
		if rand.Float64() < loyalCustomerRatio {
			purchases = 5 + rand.Intn(11)
		}

		current := startDate.AddDate(0, 0, rand.Intn(601))
		for p := 0; p < purchases && txnID <= numTransactions; p++ {
			current = current.AddDate(0, 0, 7+rand.Intn(84))
			if current.After(now) {
				current = now.AddDate(0, 0, -(1 + rand.Intn(30)))
			}

			cat := categoryPrices[rand.Intn(len(categoryPrices))]
			amount := cat.min + rand.Float64()*(cat.max-cat.min)
			amount = float64(int(amount*100)) / 100

			txns = append(txns, Transaction{
				TxnID:      fmt.Sprintf("TXN_%06d", txnID),
				CustomerID: customerID,
				Date:       current,
				Category:   cat.name,
				Amount:     amount,
				Quantity:   1 + rand.Intn(5),
			})
			txnID++
		}
		_ = bar.Add(1)
	}

	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].TxnID < txns[j].TxnID
	})

	log.Printf("Generated %d transactions", len(txns))
	return txns
}
