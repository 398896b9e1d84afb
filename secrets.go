package networth

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fernet/fernet-go"
)

// A SecretStore resolves credentials by name, so API keys never have
// to live in the profile configuration itself. Lookup returns
// ErrNotFound when the secret is absent.
type SecretStore interface {
	Lookup(account, field string) (string, error)
}

// EnvSecrets resolves secrets from the environment, under
// NETWORTH_<ACCOUNT>_<FIELD> (uppercased, non-alphanumerics mapped
// to underscores).
type EnvSecrets struct{}

func (EnvSecrets) Lookup(account, field string) (string, error) {
	name := "NETWORTH_" + envName(account) + "_" + envName(field)
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("secret %s.%s (%s): %w", account, field, name, ErrNotFound)
	}
	return value, nil
}

func envName(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			return r
		default:
			return '_'
		}
	}, s)
	return mapped
}

// Vault is an encrypted secret file: a fernet token wrapping a JSON
// object of the form {"account": {"field": "secret"}}. The decryption
// key comes from the NETWORTH_VAULT_KEY environment variable.
type Vault struct {
	secrets map[string]map[string]string
}

// OpenVault reads and decrypts the vault file. A missing file yields
// an empty vault, not an error: profiles without networked providers
// need no secrets at all.
func OpenVault(path string) (*Vault, error) {
	token, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Vault{secrets: map[string]map[string]string{}}, nil
	}
	if err != nil {
		return nil, &ConfigError{Msg: "could not read vault", Err: err}
	}

	key, err := fernet.DecodeKey(os.Getenv("NETWORTH_VAULT_KEY"))
	if err != nil {
		return nil, &ConfigError{Msg: "NETWORTH_VAULT_KEY is not a valid fernet key", Err: err}
	}
	plain := fernet.VerifyAndDecrypt(token, 0, []*fernet.Key{key})
	if plain == nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("could not decrypt vault %q", path)}
	}

	v := &Vault{}
	if err := json.Unmarshal(plain, &v.secrets); err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("vault %q is not a JSON secret map", path), Err: err}
	}
	return v, nil
}

// SaveVault encrypts secrets with the given key and writes them to
// path, for the `nw vault` maintenance command.
func SaveVault(path string, key *fernet.Key, secrets map[string]map[string]string) error {
	plain, err := json.Marshal(secrets)
	if err != nil {
		return err
	}
	token, err := fernet.EncryptAndSign(plain, key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, token, 0o600)
}

// All returns the decrypted secret map, for vault maintenance.
func (v *Vault) All() map[string]map[string]string { return v.secrets }

func (v *Vault) Lookup(account, field string) (string, error) {
	if secret, ok := v.secrets[account][field]; ok {
		return secret, nil
	}
	return "", fmt.Errorf("secret %s.%s: %w", account, field, ErrNotFound)
}

// ChainSecrets tries each store in order, returning the first hit.
// Only when every store misses does it return ErrNotFound.
type ChainSecrets []SecretStore

func (c ChainSecrets) Lookup(account, field string) (string, error) {
	var firstErr error
	for _, store := range c {
		secret, err := store.Lookup(account, field)
		if err == nil {
			return secret, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("secret %s.%s: %w", account, field, ErrNotFound)
	}
	return "", firstErr
}
