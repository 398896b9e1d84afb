package networth

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// A Field is one raw holding entry of an account: a key (a category
// name, a token symbol, or an alias) and a raw value (a JSON number, an
// arithmetic expression, a quantity string, or a mortgage descriptor).
type Field struct {
	Key string
	Raw any // float64 or string
}

// An AccountRecord is what the engine needs from an account store.
// Records are immutable inputs; the engine never writes them back.
type AccountRecord interface {
	// Name identifies the account.
	Name() string
	// Composite returns the ordered raw field list stored under the
	// given field name, or ok=false if the account has no such field.
	Composite(field string) (fields []Field, ok bool)
	// Updated returns the account's last-reviewed date string, or ""
	// if the account does not track one.
	Updated() string
}

// Account is the JSONL-backed account record. Each line of an accounts
// file is one JSON object:
//
//	{"name": "chase", "updated": "2025-06-15",
//	 "estimated value": {"checking": 1234.56, "savings": "$12,000"}}
//
// Every object-valued key is a composite holding list; field order
// within a composite is preserved from the file.
type Account struct {
	name       string
	updated    string
	composites map[string][]Field
}

func (a *Account) Name() string    { return a.name }
func (a *Account) Updated() string { return a.updated }

func (a *Account) Composite(field string) ([]Field, bool) {
	fields, ok := a.composites[field]
	return fields, ok
}

// UnmarshalJSON decodes the account object with a token stream rather
// than a map, because the display order of holdings must follow the
// file, and maps at any level would lose it.
func (a *Account) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	a.composites = make(map[string][]Field)
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		switch key {
		case "name":
			if a.name, err = stringToken(dec); err != nil {
				return err
			}
		case "updated":
			if a.updated, err = stringToken(dec); err != nil {
				return err
			}
		default:
			fields, err := decodeComposite(dec)
			if err != nil {
				return fmt.Errorf("account field %q: %w", key, err)
			}
			a.composites[key] = fields
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	if a.name == "" {
		return fmt.Errorf("account without a name")
	}
	return nil
}

func decodeComposite(dec *json.Decoder) ([]Field, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var fields []Field
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Key: key, Raw: f})
		case string:
			fields = append(fields, Field{Key: key, Raw: v})
		default:
			return nil, fmt.Errorf("field %q: value must be a number or a string", key)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return fields, nil
}

func expectDelim(dec *json.Decoder, d json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != d {
		return fmt.Errorf("expected %q, got %v", d, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %v", tok)
	}
	return s, nil
}

// DecodeAccounts reads accounts from a JSONL stream, one account per
// line, in file order.
func DecodeAccounts(r io.Reader) ([]*Account, error) {
	var accounts []*Account
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		account := new(Account)
		if err := json.Unmarshal(text, account); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		accounts = append(accounts, account)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

// LoadAccounts reads the accounts file of a profile.
func LoadAccounts(path string) ([]*Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Msg: "could not open accounts file", Err: err}
	}
	defer f.Close()
	accounts, err := DecodeAccounts(f)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("could not decode accounts file %q", path), Err: err}
	}
	return accounts, nil
}
