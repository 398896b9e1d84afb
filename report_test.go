package networth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewReportOffline(t *testing.T) {
	cfg := testConfig()
	accounts, err := DecodeAccounts(readerOf(
		`{"name": "chase", "estimated value": {"checking": 500, "savings": 1500}}`,
		`{"name": "visa", "estimated value": {"credit cards": -200}}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	cache := NewPriceCache(t.TempDir(), time.Hour)

	// No token holdings: the whole run is local, no provider is even
	// constructed.
	report, err := NewReport(context.Background(), cfg, accounts, fixedSecrets{}, cache, ByName)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.ProviderErrors) != 0 {
		t.Errorf("provider errors = %v", report.ProviderErrors)
	}
	if len(report.Prices) != 0 {
		t.Errorf("prices = %v", report.Prices)
	}
	if !report.Totals.Gross.Net.Equal(Q(1800, Dollar)) {
		t.Errorf("net = %v, want $1800", report.Totals.Gross.Net)
	}
}

func TestNewReportCachedPrices(t *testing.T) {
	cfg := testConfig()
	accounts, err := DecodeAccounts(readerOf(
		`{"name": "wallet", "estimated value": {"BTC": 2, "cash": 100}}`,
	))
	if err != nil {
		t.Fatal(err)
	}

	// A valid cache satisfies the run without any network access.
	cache := NewPriceCache(t.TempDir(), time.Hour)
	if err := cache.Store("cryptocompare", map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(100),
		"ETH": decimal.NewFromInt(10),
	}); err != nil {
		t.Fatal(err)
	}

	report, err := NewReport(context.Background(), cfg, accounts, fixedSecrets{}, cache, ByName)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.ProviderErrors) != 0 {
		t.Fatalf("provider errors = %v", report.ProviderErrors)
	}
	if !report.Totals.Gross.Net.Equal(Q(300, Dollar)) {
		t.Errorf("net = %v, want $300", report.Totals.Gross.Net)
	}

	// The price table lists only held tokens: ETH is cached but absent.
	if len(report.Prices) != 1 {
		t.Fatalf("prices = %v, want one row", report.Prices)
	}
	row := report.Prices[0]
	if row.Token != "BTC" || row.Provider != "cryptocompare" {
		t.Errorf("row = %+v", row)
	}
	if !row.Native.Equal(Q(2, "BTC")) {
		t.Errorf("native = %v, want 2 BTC", row.Native)
	}
	if !row.Price.Equal(Q(100, Dollar)) {
		t.Errorf("price = %v, want $100", row.Price)
	}
}

func TestNewReportCanceled(t *testing.T) {
	cfg := testConfig()
	accounts, err := DecodeAccounts(readerOf(
		`{"name": "chase", "estimated value": {"cash": 100}}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation aborts the run instead of degrading it: nothing is
	// reported, nothing should be persisted by the caller.
	_, err = NewReport(ctx, cfg, accounts, fixedSecrets{}, NewPriceCache(t.TempDir(), time.Hour), ByName)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
