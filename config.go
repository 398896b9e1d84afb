package networth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TokenInfo maps one token symbol to its reporting category, the unit
// used when no price is available, and the provider that prices it.
type TokenInfo struct {
	Category string `json:"category"`
	Unit     string `json:"unit,omitempty"` // default unit when unpriced, e.g. "shares", "oz"
	Provider string `json:"provider"`
}

// ProviderConfig carries a provider's credentials: either a literal
// key, or a (account, field) reference into the secret store.
type ProviderConfig struct {
	APIKey string   `json:"api_key,omitempty"`
	Secret []string `json:"secret,omitempty"` // [account, field]
}

// Config is one profile's configuration.
type Config struct {
	// Profile is the profile name, set by the loader.
	Profile string `json:"-"`
	// Dir is the profile directory, set by the loader.
	Dir string `json:"-"`

	// ValueFields are the account composite fields holding raw
	// holdings, tried in order.
	ValueFields []string `json:"value_fields,omitempty"`
	// Tokens maps token symbols to category, unit, and provider.
	Tokens map[string]TokenInfo `json:"tokens,omitempty"`
	// Aliases remaps raw field keys to category names before any other
	// classification.
	Aliases map[string]string `json:"aliases,omitempty"`
	// Providers configures credentials per provider name.
	Providers map[string]ProviderConfig `json:"providers,omitempty"`

	// TTL is the price cache time-to-live, as a Go duration string.
	// It is validated at load time.
	TTL string `json:"ttl,omitempty"`
	// MaxAccountAge is the staleness threshold in days for an
	// account's updated date. Zero means unset and selects the
	// default; the threshold cannot be configured to zero.
	MaxAccountAge int `json:"max_account_age,omitempty"`
	// BarWidth is the width, in characters, of the widest proportional
	// bar in the type breakdown. Zero means unset and selects the
	// default.
	BarWidth int `json:"bar_width,omitempty"`
	// DateFormats are the accepted Go layouts for dates in account
	// records and mortgage descriptors.
	DateFormats []string `json:"date_formats,omitempty"`
}

// Defaults applied to any field the profile leaves unset.
const (
	DefaultTTL           = 24 * time.Hour
	DefaultMaxAccountAge = 120 // days
	DefaultBarWidth      = 45
)

var defaultValueFields = []string{"estimated value", "value"}

// CacheTTL returns the parsed cache time-to-live. The ttl string is
// validated by LoadProfile; an empty one means the default.
func (c *Config) CacheTTL() time.Duration {
	if c.TTL == "" {
		return DefaultTTL
	}
	ttl, err := time.ParseDuration(c.TTL)
	if err != nil {
		return DefaultTTL
	}
	return ttl
}

func (c *Config) applyDefaults() {
	if len(c.ValueFields) == 0 {
		c.ValueFields = defaultValueFields
	}
	if c.MaxAccountAge == 0 {
		c.MaxAccountAge = DefaultMaxAccountAge
	}
	if c.BarWidth == 0 {
		c.BarWidth = DefaultBarWidth
	}
	if len(c.DateFormats) == 0 {
		c.DateFormats = DefaultDateFormats
	}
	if c.Tokens == nil {
		c.Tokens = map[string]TokenInfo{}
	}
	if c.Aliases == nil {
		c.Aliases = map[string]string{}
	}
}

// DefaultConfigDir returns the root of all profiles, following the
// platform convention (~/.config/networth on linux).
func DefaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".networth"
	}
	return filepath.Join(base, "networth")
}

// LoadProfile reads <root>/<profile>/config.json and returns the
// profile configuration with defaults applied. Configuration problems
// are fatal: they surface as *ConfigError before any aggregation.
func LoadProfile(root, profile string) (*Config, error) {
	if profile == "" {
		profile = "default"
	}
	dir := filepath.Join(root, profile)
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("could not read profile %q", profile), Err: err}
	}
	cfg := &Config{Profile: profile, Dir: dir}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("could not parse %q", path), Err: err}
	}
	for token, info := range cfg.Tokens {
		if info.Category == "" {
			return nil, &ConfigError{Msg: fmt.Sprintf("token %q has no category", token)}
		}
		if info.Provider == "" {
			return nil, &ConfigError{Msg: fmt.Sprintf("token %q has no provider", token)}
		}
	}
	if cfg.TTL != "" {
		if _, err := time.ParseDuration(cfg.TTL); err != nil {
			return nil, &ConfigError{Msg: fmt.Sprintf("invalid ttl %q", cfg.TTL), Err: err}
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// AccountsPath returns the profile's accounts file.
func (c *Config) AccountsPath() string { return filepath.Join(c.Dir, "accounts.jsonl") }

// VaultPath returns the profile's encrypted secret vault.
func (c *Config) VaultPath() string { return filepath.Join(c.Dir, "vault.fernet") }

// HistoryPath returns the profile's append-only snapshot file.
func (c *Config) HistoryPath() string { return filepath.Join(c.Dir, "history.jsonl") }

// CachePath returns the profile's price cache directory, under the
// platform cache convention rather than the config directory.
func (c *Config) CachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(c.Dir, "cache")
	}
	return filepath.Join(base, "networth", c.Profile)
}

// Provider returns a configured PriceProvider by name, resolving
// credentials through the secret store. Unknown names and failed
// credential resolution are errors; callers only ask for providers
// whose tokens are actually requested, so an unresolvable credential
// for an unused provider costs nothing.
func (c *Config) Provider(name string, secrets SecretStore) (PriceProvider, error) {
	key, err := c.apiKey(name, secrets)
	if err != nil {
		return nil, err
	}
	switch name {
	case "cryptocompare":
		return &CryptoCompare{APIKey: key}, nil
	case "iexcloud":
		if key == "" {
			return nil, &ConfigError{Msg: "iexcloud requires an api_key or secret"}
		}
		return &IEXCloud{Token: key}, nil
	case "yahoo":
		return &Yahoo{}, nil
	case "metals":
		return &Metals{}, nil
	}
	return nil, &ConfigError{Msg: fmt.Sprintf("unknown provider %q", name)}
}

func (c *Config) apiKey(name string, secrets SecretStore) (string, error) {
	pc, ok := c.Providers[name]
	if !ok {
		return "", nil
	}
	if pc.APIKey != "" {
		return pc.APIKey, nil
	}
	if len(pc.Secret) == 2 {
		key, err := secrets.Lookup(pc.Secret[0], pc.Secret[1])
		if err != nil {
			return "", &ConfigError{Msg: fmt.Sprintf("could not resolve credentials for %q", name), Err: err}
		}
		return key, nil
	}
	return "", nil
}
