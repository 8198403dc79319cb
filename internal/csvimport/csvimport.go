// Package csvimport turns a user-supplied CSV into positions. Column names
// are matched case-insensitively against an ordered list of accepted
// synonyms, resolved once from the header row. Rows missing any required
// field are dropped without diagnostics.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/camuig/foliowatch/internal/storage"
)

var headerAliases = map[string][]string{
	"ticker":  {"ticker"},
	"shares":  {"shares"},
	"avgcost": {"avgcost", "avg_cost", "cost"},
	"account": {"account"},
}

type columns struct {
	ticker  int
	shares  int
	avgCost int
	account int
}

func resolveColumns(header []string) columns {
	cols := columns{ticker: -1, shares: -1, avgCost: -1, account: -1}
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case cols.ticker < 0 && matches(name, headerAliases["ticker"]):
			cols.ticker = i
		case cols.shares < 0 && matches(name, headerAliases["shares"]):
			cols.shares = i
		case cols.avgCost < 0 && matches(name, headerAliases["avgcost"]):
			cols.avgCost = i
		case cols.account < 0 && matches(name, headerAliases["account"]):
			cols.account = i
		}
	}
	return cols
}

func matches(name string, aliases []string) bool {
	for _, a := range aliases {
		if name == a {
			return true
		}
	}
	return false
}

// Parse reads the CSV and returns the importable positions. A header row is
// required; headers without ticker, shares and a cost column are an error.
func Parse(r io.Reader) ([]storage.Position, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := resolveColumns(header)
	if cols.ticker < 0 || cols.shares < 0 || cols.avgCost < 0 {
		return nil, fmt.Errorf("csv header must include ticker, shares and avgCost columns")
	}

	var positions []storage.Position
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are dropped, not surfaced.
			continue
		}

		p, ok := parseRow(record, cols)
		if !ok {
			continue
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func parseRow(record []string, cols columns) (storage.Position, bool) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ticker := strings.ToUpper(field(cols.ticker))
	if ticker == "" {
		return storage.Position{}, false
	}
	shares, err := strconv.ParseFloat(field(cols.shares), 64)
	if err != nil || shares <= 0 {
		return storage.Position{}, false
	}
	avgCost, err := strconv.ParseFloat(field(cols.avgCost), 64)
	if err != nil || avgCost < 0 {
		return storage.Position{}, false
	}

	account := field(cols.account)
	if !storage.ValidAccount(account) {
		account = storage.AccountFidelity
	}

	return storage.Position{
		Ticker:  ticker,
		Shares:  shares,
		AvgCost: avgCost,
		Account: account,
	}, true
}
