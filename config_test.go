package networth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeProfile materializes a profile directory with the given
// config.json content and returns its root.
func writeProfile(t *testing.T, profile, config string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, profile)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLoadProfileDefaults(t *testing.T) {
	root := writeProfile(t, "default", `{}`)

	// An empty profile name selects "default", and every unset field
	// gets its documented default.
	cfg, err := LoadProfile(root, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Profile != "default" {
		t.Errorf("profile = %q", cfg.Profile)
	}
	if got, want := cfg.ValueFields, []string{"estimated value", "value"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("value fields = %v", got)
	}
	if cfg.MaxAccountAge != 120 {
		t.Errorf("max account age = %d, want 120", cfg.MaxAccountAge)
	}
	if cfg.BarWidth != 45 {
		t.Errorf("bar width = %d, want 45", cfg.BarWidth)
	}
	if cfg.CacheTTL() != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", cfg.CacheTTL())
	}
	if cfg.AccountsPath() != filepath.Join(root, "default", "accounts.jsonl") {
		t.Errorf("accounts path = %q", cfg.AccountsPath())
	}
}

func TestLoadProfileValues(t *testing.T) {
	root := writeProfile(t, "family", `{
		"ttl": "2h",
		"max_account_age": 30,
		"tokens": {"BTC": {"category": "cryptocurrency", "provider": "cryptocompare"}}
	}`)

	cfg, err := LoadProfile(root, "family")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CacheTTL() != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", cfg.CacheTTL())
	}
	if cfg.MaxAccountAge != 30 {
		t.Errorf("max account age = %d, want 30", cfg.MaxAccountAge)
	}
	if cfg.Tokens["BTC"].Category != "cryptocurrency" {
		t.Errorf("tokens = %v", cfg.Tokens)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		config  string
	}{
		{"missing profile", "nope", ""},
		{"bad json", "p", `{`},
		{"token without category", "p", `{"tokens": {"BTC": {"provider": "cryptocompare"}}}`},
		{"token without provider", "p", `{"tokens": {"BTC": {"category": "cryptocurrency"}}}`},
		{"unparseable ttl", "p", `{"ttl": "soon"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			root := writeProfile(t, "p", test.config)
			_, err := LoadProfile(root, test.profile)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
		})
	}
}

func TestConfigProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Providers = map[string]ProviderConfig{
		"cryptocompare": {APIKey: "literal-key"},
		"iexcloud":      {Secret: []string{"iexcloud", "token"}},
	}
	secrets := fixedSecrets{"iexcloud": {"token": "from-vault"}}

	p, err := cfg.Provider("cryptocompare", secrets)
	if err != nil {
		t.Fatal(err)
	}
	if cc, ok := p.(*CryptoCompare); !ok || cc.APIKey != "literal-key" {
		t.Errorf("cryptocompare = %#v", p)
	}

	p, err = cfg.Provider("iexcloud", secrets)
	if err != nil {
		t.Fatal(err)
	}
	if iex, ok := p.(*IEXCloud); !ok || iex.Token != "from-vault" {
		t.Errorf("iexcloud = %#v", p)
	}

	// Keyless providers need no configuration at all.
	if _, err := cfg.Provider("yahoo", secrets); err != nil {
		t.Errorf("yahoo: %v", err)
	}
	if _, err := cfg.Provider("metals", secrets); err != nil {
		t.Errorf("metals: %v", err)
	}
}

func TestConfigProviderErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Providers = map[string]ProviderConfig{
		"iexcloud":      {Secret: []string{"iexcloud", "missing"}},
		"cryptocompare": {},
	}
	secrets := fixedSecrets{}

	// An unresolvable secret is fatal, but only for the provider that
	// needs it.
	if _, err := cfg.Provider("iexcloud", secrets); err == nil {
		t.Error("unresolvable iexcloud secret accepted")
	}
	// iexcloud without any credential is a configuration error.
	cfg.Providers = nil
	if _, err := cfg.Provider("iexcloud", secrets); err == nil {
		t.Error("iexcloud without credentials accepted")
	}
	// cryptocompare works anonymously.
	if _, err := cfg.Provider("cryptocompare", secrets); err != nil {
		t.Errorf("cryptocompare: %v", err)
	}
	if _, err := cfg.Provider("bloomberg", secrets); err == nil {
		t.Error("unknown provider accepted")
	}
}
