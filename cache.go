package networth

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PriceCache is a per-provider on-disk store of last-known prices.
// Each provider owns one file under Dir, plain text, one line per
// token: "TOKEN = $<value>" at full precision. The file's mtime is the
// fetch timestamp; an entry older than TTL is a miss, never a fallback.
type PriceCache struct {
	Dir string
	TTL time.Duration

	// Refresh forces every lookup to miss, for explicit invalidation
	// from the command line.
	Refresh bool

	now func() time.Time // test hook
}

// NewPriceCache returns a cache rooted at dir with the given ttl.
func NewPriceCache(dir string, ttl time.Duration) *PriceCache {
	return &PriceCache{Dir: dir, TTL: ttl, now: time.Now}
}

func (c *PriceCache) path(provider string) string {
	return filepath.Join(c.Dir, provider+".prices")
}

// Load returns the cached prices for a provider, or ok=false on a miss
// (no file, expired file, or forced refresh). A present but unreadable
// or garbled file is also a miss: the cache is a best-effort store.
func (c *PriceCache) Load(provider string) (prices map[string]Price, ok bool) {
	if c.Refresh {
		return nil, false
	}
	path := c.path(provider)
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	fetched := info.ModTime()
	if c.now().Sub(fetched) >= c.TTL {
		return nil, false
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	prices = make(map[string]Price)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		token, text, found := strings.Cut(line, "=")
		if !found {
			return nil, false
		}
		q, err := ParseQuantity(strings.TrimSpace(text), Dollar)
		if err != nil {
			return nil, false
		}
		prices[strings.TrimSpace(token)] = Price{
			Value:     q.Decimal(),
			Provider:  provider,
			FetchedAt: fetched,
		}
	}
	if scanner.Err() != nil || len(prices) == 0 {
		return nil, false
	}
	return prices, true
}

// Store writes the full price set for a provider. The write is
// all-or-nothing: the file is written to a temporary name in the same
// directory and atomically renamed into place, so a crash mid-write
// cannot leave a corrupt cache.
func (c *PriceCache) Store(provider string, prices map[string]decimal.Decimal) error {
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return fmt.Errorf("could not create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.Dir, provider+".prices.*")
	if err != nil {
		return fmt.Errorf("could not create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for token, value := range prices {
		fmt.Fprintf(w, "%s = $%s\n", token, value.String())
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(provider)); err != nil {
		return fmt.Errorf("could not replace cache file: %w", err)
	}
	return nil
}
