package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/KenKundert/networth"
	md "github.com/nao1215/markdown"
)

// PricesMarkdown renders the price table: each priced token, the total
// native holding, its unit price, and where and how recently the price
// was obtained.
func PricesMarkdown(r *networth.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Prices: %s on %s", r.Profile, r.Date))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Token", "Holdings", "Price", "Provider", "Age"},
		Rows:   [][]string{},
	}
	for _, row := range r.Prices {
		price, provider, age := "-", "-", "-"
		if row.Provider != "" {
			price = row.Price.Display()
			provider = row.Provider
			age = formatAge(row.Age)
		}
		table.Rows = append(table.Rows, []string{
			row.Token,
			row.Native.String(),
			price,
			provider,
			age,
		})
	}
	doc.Table(table)

	if len(r.ProviderErrors) > 0 {
		doc.H2("Warnings")
		var items []string
		for _, err := range r.ProviderErrors {
			items = append(items, err.Error())
		}
		doc.BulletList(items...)
	}

	return doc.String()
}

func formatAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
