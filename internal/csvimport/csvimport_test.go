package csvimport

import (
	"strings"
	"testing"

	"github.com/camuig/foliowatch/internal/storage"
)

func TestParseBasic(t *testing.T) {
	csv := "ticker,shares,avgCost,account\n" +
		"aapl,2,150.5,Chase\n" +
		"NVDA,1,400,IBKR\n"

	positions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %+v", positions)
	}
	if positions[0].Ticker != "AAPL" || positions[0].Shares != 2 || positions[0].AvgCost != 150.5 {
		t.Fatalf("unexpected first position: %+v", positions[0])
	}
	if positions[0].Account != storage.AccountChase || positions[1].Account != storage.AccountIBKR {
		t.Fatalf("unexpected accounts: %+v", positions)
	}
}

func TestParseHeaderAliases(t *testing.T) {
	for _, header := range []string{
		"Ticker,Shares,avg_cost,Account",
		"TICKER,SHARES,COST,ACCOUNT",
		"ticker,shares,AvgCost,account",
	} {
		positions, err := Parse(strings.NewReader(header + "\nmsft,3,300,Chase\n"))
		if err != nil {
			t.Fatalf("parse with header %q: %v", header, err)
		}
		if len(positions) != 1 || positions[0].AvgCost != 300 {
			t.Fatalf("header %q: unexpected positions %+v", header, positions)
		}
	}
}

func TestParseDefaultsUnknownAccount(t *testing.T) {
	csv := "ticker,shares,avgCost,account\naapl,1,100,Robinhood\n"
	positions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(positions) != 1 || positions[0].Account != storage.AccountFidelity {
		t.Fatalf("expected unknown account coerced to Fidelity, got %+v", positions)
	}
}

func TestParseMissingAccountColumn(t *testing.T) {
	csv := "ticker,shares,cost\naapl,1,100\n"
	positions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(positions) != 1 || positions[0].Account != storage.AccountFidelity {
		t.Fatalf("expected default account, got %+v", positions)
	}
}

func TestParseDropsMalformedRows(t *testing.T) {
	csv := "ticker,shares,avgCost,account\n" +
		"aapl,2,150,Chase\n" +
		",5,100,Chase\n" + // no ticker
		"msft,zero,100,Chase\n" + // bad shares
		"nvda,-1,100,Chase\n" + // non-positive shares
		"tsla,1,oops,Chase\n" + // bad cost
		"amd,1,-5,Chase\n" + // negative cost
		"good,1,10\n" // short row, account defaults

	positions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected bad rows dropped silently, got %+v", positions)
	}
	if positions[0].Ticker != "AAPL" || positions[1].Ticker != "GOOD" {
		t.Fatalf("unexpected surviving rows: %+v", positions)
	}
}

func TestParseRejectsUnusableHeader(t *testing.T) {
	if _, err := Parse(strings.NewReader("name,qty,price\naapl,1,100\n")); err == nil {
		t.Fatalf("expected error for header without required columns")
	}
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
