package networth

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fernet/fernet-go"
)

// fixedSecrets is an in-memory SecretStore for tests.
type fixedSecrets map[string]map[string]string

func (f fixedSecrets) Lookup(account, field string) (string, error) {
	if secret, ok := f[account][field]; ok {
		return secret, nil
	}
	return "", fmt.Errorf("secret %s.%s: %w", account, field, ErrNotFound)
}

func TestEnvSecrets(t *testing.T) {
	t.Setenv("NETWORTH_IEX_CLOUD_API_TOKEN", "tok-123")

	// Account and field names are uppercased with non-alphanumerics
	// mapped to underscores.
	secret, err := EnvSecrets{}.Lookup("iex cloud", "api-token")
	if err != nil {
		t.Fatal(err)
	}
	if secret != "tok-123" {
		t.Errorf("secret = %q", secret)
	}

	_, err = EnvSecrets{}.Lookup("iex cloud", "absent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestVaultRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.fernet")

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatal(err)
	}
	secrets := map[string]map[string]string{
		"iexcloud": {"token": "tok-456"},
	}
	if err := SaveVault(path, &key, secrets); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NETWORTH_VAULT_KEY", key.Encode())
	v, err := OpenVault(path)
	if err != nil {
		t.Fatal(err)
	}
	secret, err := v.Lookup("iexcloud", "token")
	if err != nil {
		t.Fatal(err)
	}
	if secret != "tok-456" {
		t.Errorf("secret = %q", secret)
	}
	if _, err := v.Lookup("iexcloud", "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOpenVaultMissingFile(t *testing.T) {
	// Profiles without networked providers need no vault at all.
	v, err := OpenVault(filepath.Join(t.TempDir(), "vault.fernet"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.Lookup("any", "thing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOpenVaultBadKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.fernet")

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatal(err)
	}
	if err := SaveVault(path, &key, map[string]map[string]string{}); err != nil {
		t.Fatal(err)
	}

	t.Setenv("NETWORTH_VAULT_KEY", "not a key")
	var cerr *ConfigError
	if _, err := OpenVault(path); !errors.As(err, &cerr) {
		t.Errorf("err = %v, want *ConfigError", err)
	}

	var other fernet.Key
	if err := other.Generate(); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NETWORTH_VAULT_KEY", other.Encode())
	if _, err := OpenVault(path); !errors.As(err, &cerr) {
		t.Errorf("err = %v, want *ConfigError for wrong key", err)
	}
}

func TestChainSecrets(t *testing.T) {
	chain := ChainSecrets{
		fixedSecrets{"a": {"x": "first"}},
		fixedSecrets{"a": {"x": "second"}, "b": {"y": "only"}},
	}

	// First hit wins.
	if s, err := chain.Lookup("a", "x"); err != nil || s != "first" {
		t.Errorf("got %q, %v", s, err)
	}
	// A miss in the first store falls through to the next.
	if s, err := chain.Lookup("b", "y"); err != nil || s != "only" {
		t.Errorf("got %q, %v", s, err)
	}
	// Every store misses.
	if _, err := chain.Lookup("c", "z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
