// Package report renders the shareable text output for a priced firing.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

// PriceList renders the per-maker price list as plain text, one row per
// maker, sorted by name. Names are padded to the longest name and prices
// are rounded UP to whole currency units; the rounding is display-only,
// the underlying adjusted totals keep their full precision.
func PriceList(makers []models.Maker) string {
	type row struct {
		name  string
		price string
	}

	rows := make([]row, len(makers))
	for i, m := range makers {
		rows[i] = row{
			name:  strings.TrimSpace(m.Member.Name),
			price: fmt.Sprintf("$%d", int(math.Ceil(m.AdjustedTotal))),
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].name < rows[j].name
	})

	maxLen := 0
	for _, r := range rows {
		if len(r.name) > maxLen {
			maxLen = len(r.name)
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("\n%-*s -%4s", maxLen, r.name, r.price))
	}
	return b.String()
}

// MemberNames joins member display names with commas, using an ampersand
// before the final name: "Evan, Georgie & Gabe".
func MemberNames(list []models.Member) string {
	names := make([]string, len(list))
	for i, m := range list {
		names[i] = m.Name
	}

	if len(names) <= 1 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
}

// FiringLabel returns the word that follows a firing type in prose:
// "Pit firing", "Stoneware glaze", but plain "Bisque" or "Raku".
func FiringLabel(typeName string) string {
	if typeName == "Bisque" || typeName == "Raku" || strings.Contains(typeName, "glaze") {
		return ""
	}
	if typeName == "Pit" {
		return "firing"
	}
	return "glaze"
}

// Header renders the metadata block above the price list.
func Header(f models.Firing) string {
	label := FiringLabel(f.Type)
	title := f.Type
	if label != "" {
		title += " " + label
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s (%d°C)\n", title, f.Date, f.Temp))
	b.WriteString(fmt.Sprintf("Firing cost: $%.2f\n", f.Cost))
	if len(f.PackedBy) > 0 {
		b.WriteString("Packed by: " + MemberNames(f.PackedBy) + "\n")
	}
	if len(f.PricedBy) > 0 {
		b.WriteString("Unpacked by: " + MemberNames(f.PricedBy) + "\n")
	}
	return b.String()
}

// Render produces the full shareable report: header plus price list.
func Render(f models.Firing) string {
	return Header(f) + PriceList(f.Work) + "\n"
}
