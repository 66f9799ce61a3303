// Package report renders read-only text views of inventory state. The
// formats here are presentational and replaceable; nothing feeds back into
// the domain model.
package report

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vblinov/invtrack/internal/inventory/core"
)

// Render produces the line-oriented report: one "name (id)" line per product
// followed by one "Order on <date> | Total: $<total>" line per order.
func Render(inv *core.Inventory) string {
	var b strings.Builder
	b.WriteString("Products:\n")
	for _, p := range sortedProducts(inv) {
		fmt.Fprintf(&b, "%s (%s)\n", p.Name(), p.ID())
	}
	b.WriteString("Orders:\n")
	for _, o := range inv.Orders() {
		fmt.Fprintf(&b, "Order on %s | Total: $%s\n", o.Date().Format(time.RFC3339), o.TotalPrice().StringFixed(2))
	}
	return b.String()
}

// RenderTables produces the tabular report: products as id/name/price/stock
// rows, orders as date/total rows.
func RenderTables(inv *core.Inventory) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range sortedProducts(inv) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", p.ID(), p.Name(), p.Price().StringFixed(2), p.Stock())
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "DATE\tTOTAL")
	for _, o := range inv.Orders() {
		fmt.Fprintf(tw, "%s\t%s\n", o.Date().Format(time.RFC3339), o.TotalPrice().StringFixed(2))
	}
	_ = tw.Flush()
	return b.String()
}

// sortedProducts pins the otherwise unstable catalog iteration order.
func sortedProducts(inv *core.Inventory) []*core.Product {
	list := inv.Products()
	sort.Slice(list, func(i, j int) bool { return list[i].ID() < list[j].ID() })
	return list
}
