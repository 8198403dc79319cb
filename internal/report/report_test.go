package report

import (
	"bytes"
	"testing"

	"github.com/camuig/foliowatch/internal/pricecache"
	"github.com/camuig/foliowatch/internal/storage"
)

func TestBuildProducesPDF(t *testing.T) {
	positions := []storage.Position{
		{Ticker: "AAPL", Shares: 2, AvgCost: 100, Account: storage.AccountFidelity},
		{Ticker: "NVDA", Shares: 1, AvgCost: 600, Account: storage.AccountChase},
	}
	prices := map[string]pricecache.Quote{
		"AAPL": {Current: 200},
		"NVDA": {Current: 500},
	}

	var buf bytes.Buffer
	if err := Build(positions, prices, &buf); err != nil {
		t.Fatalf("build report: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", buf.Bytes()[:8])
	}
	if buf.Len() < 1000 {
		t.Fatalf("suspiciously small PDF: %d bytes", buf.Len())
	}
}

func TestBuildEmptyPortfolio(t *testing.T) {
	var buf bytes.Buffer
	if err := Build(nil, nil, &buf); err != nil {
		t.Fatalf("build empty report: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestBuildManyPositionsPaginates(t *testing.T) {
	var positions []storage.Position
	prices := make(map[string]pricecache.Quote)
	for i := 0; i < 80; i++ {
		ticker := "T" + string(rune('A'+i%26)) + string(rune('A'+i/26))
		positions = append(positions, storage.Position{
			Ticker: ticker, Shares: 1, AvgCost: 100, Account: storage.AccountFidelity,
		})
		prices[ticker] = pricecache.Quote{Current: 110}
	}

	var buf bytes.Buffer
	if err := Build(positions, prices, &buf); err != nil {
		t.Fatalf("build long report: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}
