package networth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testPrices() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("67123.4507"),
		"ETH": decimal.RequireFromString("3201.07"),
	}
}

func TestPriceCacheRoundTrip(t *testing.T) {
	cache := NewPriceCache(t.TempDir(), time.Hour)

	if err := cache.Store("cryptocompare", testPrices()); err != nil {
		t.Fatal(err)
	}
	prices, ok := cache.Load("cryptocompare")
	if !ok {
		t.Fatal("fresh cache missed")
	}
	if len(prices) != 2 {
		t.Fatalf("got %d prices, want 2", len(prices))
	}
	if !prices["BTC"].Value.Equal(decimal.RequireFromString("67123.4507")) {
		t.Errorf("BTC = %v, want full precision 67123.4507", prices["BTC"].Value)
	}
	if prices["BTC"].Provider != "cryptocompare" {
		t.Errorf("provider = %q", prices["BTC"].Provider)
	}
}

func TestPriceCacheFileFormat(t *testing.T) {
	dir := t.TempDir()
	cache := NewPriceCache(dir, time.Hour)
	if err := cache.Store("metals", map[string]decimal.Decimal{"gold": decimal.RequireFromString("2650.25")}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "metals.prices"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "gold = $2650.25" {
		t.Errorf("cache line = %q, want %q", got, "gold = $2650.25")
	}
}

func TestPriceCacheExpiry(t *testing.T) {
	cache := NewPriceCache(t.TempDir(), time.Hour)
	if err := cache.Store("cryptocompare", testPrices()); err != nil {
		t.Fatal(err)
	}

	// An entry whose age equals or exceeds the ttl is a miss, never a
	// fallback.
	cache.now = func() time.Time { return time.Now().Add(time.Hour) }
	if _, ok := cache.Load("cryptocompare"); ok {
		t.Error("expired cache hit")
	}

	cache.now = time.Now
	if _, ok := cache.Load("cryptocompare"); !ok {
		t.Error("fresh cache missed")
	}
}

func TestPriceCacheRefresh(t *testing.T) {
	cache := NewPriceCache(t.TempDir(), time.Hour)
	if err := cache.Store("cryptocompare", testPrices()); err != nil {
		t.Fatal(err)
	}
	cache.Refresh = true
	if _, ok := cache.Load("cryptocompare"); ok {
		t.Error("force-cleared cache hit")
	}
}

func TestPriceCacheMissing(t *testing.T) {
	cache := NewPriceCache(t.TempDir(), time.Hour)
	if _, ok := cache.Load("cryptocompare"); ok {
		t.Error("empty cache hit")
	}
}

func TestPriceCacheGarbled(t *testing.T) {
	dir := t.TempDir()
	cache := NewPriceCache(dir, time.Hour)
	if err := os.WriteFile(filepath.Join(dir, "metals.prices"), []byte("not a price line\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Load("metals"); ok {
		t.Error("garbled cache hit")
	}
}

func TestPriceCacheAtomicWrite(t *testing.T) {
	// The write goes through a temporary file and a rename; after a
	// store the directory holds exactly the cache file.
	dir := t.TempDir()
	cache := NewPriceCache(dir, time.Hour)
	if err := cache.Store("cryptocompare", testPrices()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "cryptocompare.prices" {
		t.Errorf("unexpected cache dir contents: %v", entries)
	}
}
