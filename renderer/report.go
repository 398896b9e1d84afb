package renderer

import (
	"bytes"
	"fmt"

	"github.com/KenKundert/networth"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the full net-worth report: the account
// breakdown, the type breakdown with proportional bars, and the gross
// summary.
func ReportMarkdown(r *networth.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Net Worth: %s on %s", r.Profile, r.Date))

	doc.H2("Accounts")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Account", "Total", "Updated"},
		Rows:   [][]string{},
	}
	for _, at := range r.Totals.Accounts {
		table.Rows = append(table.Rows, []string{
			at.Name,
			at.Total.Display(),
			ageCell(at),
		})
	}
	doc.Table(table)

	for _, at := range r.Totals.Accounts {
		// A detail breakdown is only worth showing when resolution
		// actually regrouped something, or the account holds more than
		// one category.
		if !at.Remapped && len(at.Holdings) <= 1 {
			continue
		}
		doc.H3(at.Name)
		detail := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Type", "Value"},
			Rows:      [][]string{},
		}
		for _, h := range at.Holdings {
			detail.Rows = append(detail.Rows, []string{h.Key, h.Value.Display()})
		}
		doc.Table(detail)
	}

	doc.H2("Types")
	var lines bytes.Buffer
	width := 0
	for _, tt := range r.Totals.ByType {
		if len(tt.Key) > width {
			width = len(tt.Key)
		}
	}
	for _, tt := range r.Totals.ByType {
		fmt.Fprintf(&lines, "%-*s %14s %s\n", width, tt.Key, tt.Value.Display(), Bar(tt.Bar))
	}
	doc.CodeBlocks(md.SyntaxHighlightNone, lines.String())

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{"Total Assets", r.Totals.Gross.Assets.Display()},
			{"Total Debt", r.Totals.Gross.Debt.Display()},
			{md.Bold("Net Worth"), md.Bold(r.Totals.Gross.Net.Display())},
		},
	})

	if len(r.ProviderErrors) > 0 || len(r.Totals.Warnings) > 0 {
		doc.H2("Warnings")
		var items []string
		for _, err := range r.ProviderErrors {
			items = append(items, err.Error())
		}
		for _, err := range r.Totals.Warnings {
			items = append(items, err.Error())
		}
		doc.BulletList(items...)
	}

	return doc.String()
}

func ageCell(at networth.AccountTotal) string {
	if !at.HasAge {
		return "-"
	}
	cell := fmt.Sprintf("%d days ago", at.AgeDays)
	if at.Stale {
		cell += " ⚠"
	}
	return cell
}
