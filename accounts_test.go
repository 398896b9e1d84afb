package networth

import (
	"io"
	"strings"
	"testing"
)

func readerOf(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestDecodeAccounts(t *testing.T) {
	accounts, err := DecodeAccounts(readerOf(
		`{"name": "chase", "updated": "2025-06-15", "estimated value": {"checking": 1234.56, "savings": "$12,000"}}`,
		``,
		`{"name": "wallet", "estimated value": {"BTC": 2}}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}

	chase := accounts[0]
	if chase.Name() != "chase" {
		t.Errorf("name = %q", chase.Name())
	}
	if chase.Updated() != "2025-06-15" {
		t.Errorf("updated = %q", chase.Updated())
	}
	fields, ok := chase.Composite("estimated value")
	if !ok {
		t.Fatal("composite missing")
	}
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	// Field order follows the file.
	if fields[0].Key != "checking" || fields[1].Key != "savings" {
		t.Errorf("field order = %q, %q", fields[0].Key, fields[1].Key)
	}
	if v, isNum := fields[0].Raw.(float64); !isNum || v != 1234.56 {
		t.Errorf("checking = %v (%T), want 1234.56", fields[0].Raw, fields[0].Raw)
	}
	if v, isStr := fields[1].Raw.(string); !isStr || v != "$12,000" {
		t.Errorf("savings = %v, want $12,000", fields[1].Raw)
	}

	if _, ok := accounts[1].Composite("value"); ok {
		t.Error("wallet has no 'value' composite")
	}
}

func TestDecodeAccountsFieldOrderPreserved(t *testing.T) {
	// JSON maps would shuffle these; the decoder must not.
	accounts, err := DecodeAccounts(readerOf(
		`{"name": "a", "value": {"z": 1, "m": 2, "a": 3, "q": 4, "b": 5}}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	fields, _ := accounts[0].Composite("value")
	want := []string{"z", "m", "a", "q", "b"}
	for i, key := range want {
		if fields[i].Key != key {
			t.Fatalf("fields[%d] = %q, want %q", i, fields[i].Key, key)
		}
	}
}

func TestDecodeAccountsErrors(t *testing.T) {
	testCases := []struct {
		name string
		line string
	}{
		{"nameless account", `{"updated": "2025-06-15", "value": {"cash": 1}}`},
		{"non-scalar field", `{"name": "a", "value": {"cash": [1, 2]}}`},
		{"not json", `cash: 100`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeAccounts(readerOf(tc.line)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
