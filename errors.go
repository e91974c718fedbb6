package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyDataset is returned when there are no transactions to analyze;
// quantile scoring is undefined on an empty population.
var ErrEmptyDataset = errors.New("no transactions to analyze")

// InvalidDataError reports rejected transaction rows. Individual bad rows are
// excluded and counted; the run as a whole fails with this error when the
// rejected fraction crosses the configured threshold, or when the data is
// inconsistent with the analysis date.
type InvalidDataError struct {
	TotalRows   int
	InvalidRows int
	Issues      map[string]int // issue kind -> occurrence count
}

func (e *InvalidDataError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for kind, n := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
	}
	sort.Strings(parts)
	return fmt.Sprintf("invalid transaction data: %d of %d rows rejected (%s)",
		e.InvalidRows, e.TotalRows, strings.Join(parts, ", "))
}
