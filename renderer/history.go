package renderer

import (
	"bytes"

	"github.com/KenKundert/networth"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders recorded snapshots, oldest first, as a table
// of the gross totals over time.
func HistoryMarkdown(profile string, snapshots []*networth.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("History: " + profile)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Recorded", "Assets", "Debt", "Net"},
		Rows:   [][]string{},
	}
	for _, s := range snapshots {
		table.Rows = append(table.Rows, []string{
			s.Timestamp,
			s.ByGross["assets"],
			s.ByGross["debt"],
			s.ByGross["net"],
		})
	}
	doc.Table(table)

	return doc.String()
}
