package networth

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// A Snapshot is one history record: the run's resolved totals keyed by
// an ISO timestamp. The history file is append-only JSONL, consumed by
// an external plotting tool.
type Snapshot struct {
	Timestamp string            `json:"timestamp"`
	ByAccount map[string]string `json:"by account"`
	ByType    map[string]string `json:"by type"`
	ByGross   map[string]string `json:"by gross"`
}

// NewSnapshot converts finished totals into a history record. Values
// are written in their record form ("$1234.56", "4 oz") at full
// precision.
func NewSnapshot(t *Totals, at time.Time) *Snapshot {
	s := &Snapshot{
		Timestamp: at.Format(time.RFC3339),
		ByAccount: make(map[string]string, len(t.Accounts)),
		ByType:    make(map[string]string, len(t.ByType)),
		ByGross: map[string]string{
			"assets": t.Gross.Assets.String(),
			"debt":   t.Gross.Debt.String(),
			"net":    t.Gross.Net.String(),
		},
	}
	for _, at := range t.Accounts {
		s.ByAccount[at.Name] = at.Total.String()
	}
	for _, tt := range t.ByType {
		s.ByType[typeLabel(tt)] = tt.Value.String()
	}
	return s
}

// typeLabel keys a snapshot's type entry. A category can total both in
// dollars and in a native unit; the unit suffix keeps the two records
// from overwriting each other.
func typeLabel(tt TypeTotal) string {
	if unit := tt.Value.Unit(); unit != "" && unit != Dollar {
		return tt.Key + " (" + unit + ")"
	}
	return tt.Key
}

// EncodeSnapshot appends one snapshot as a single JSONL line.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// AppendSnapshot appends a snapshot to the profile's history file.
// The record is written only after the run has fully completed, so an
// interrupted run never persists partial totals.
func AppendSnapshot(path string, s *Snapshot) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open history file %q: %w", path, err)
	}
	if err := EncodeSnapshot(f, s); err != nil {
		f.Close()
		return fmt.Errorf("could not append to history file %q: %w", path, err)
	}
	return f.Close()
}

// DecodeHistory reads all snapshots from a history stream, oldest
// first.
func DecodeHistory(r io.Reader) ([]*Snapshot, error) {
	var snapshots []*Snapshot
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		s := new(Snapshot)
		if err := json.Unmarshal(text, s); err != nil {
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, scanner.Err()
}
