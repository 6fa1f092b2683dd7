package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pos-service/internal/model"
)

// DayLayout is the format of from/to query values
const DayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Filter selects transactions by calendar day and free-text search. Days are
// whole days in the display time zone and both bounds are inclusive.
type Filter struct {
	From   time.Time
	To     time.Time
	Search string
}

// NewFilter parses from and to as days in loc. Empty values leave the bound open.
func NewFilter(from, to, search string, loc *time.Location) (Filter, error) {
	f := Filter{Search: strings.TrimSpace(search)}

	var err error
	if f.From, err = parseDay(from, loc); err != nil {
		return Filter{}, err
	}
	if f.To, err = parseDay(to, loc); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func parseDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation(DayLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return day, nil
}

// Match reports whether tx falls inside the day range and matches the search
// term on its id, payment method or any item name (case-insensitive).
func (f Filter) Match(tx model.Transaction) bool {
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !tx.Date.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}

	needle := strings.ToLower(f.Search)
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(tx.ID), needle) ||
		strings.Contains(strings.ToLower(string(tx.PaymentMethod)), needle) {
		return true
	}
	for _, item := range tx.Items {
		if strings.Contains(strings.ToLower(item.ProductName), needle) {
			return true
		}
	}
	return false
}

// FilterTransactions returns the matching transactions, newest first
func FilterTransactions(txs []model.Transaction, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
