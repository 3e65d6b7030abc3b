package report

import (
	"strings"
	"testing"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

func maker(name string, adjusted float64) models.Maker {
	return models.Maker{
		ID:            strings.ToLower(name),
		Member:        models.Member{ID: strings.ToLower(name), Name: name},
		AdjustedTotal: adjusted,
	}
}

func TestPriceList(t *testing.T) {
	makers := []models.Maker{
		maker("Georgie", 45),
		maker("Evan", 32.01),
	}

	got := PriceList(makers)

	// Sorted by name, names padded to the longest, prices ceilinged.
	want := "\nEvan    - $33\nGeorgie - $45"
	if got != want {
		t.Errorf("PriceList() = %q, want %q", got, want)
	}
}

func TestPriceListCeilsForDisplayOnly(t *testing.T) {
	got := PriceList([]models.Maker{maker("Evan", 10.0001)})
	if !strings.Contains(got, "$11") {
		t.Errorf("PriceList() = %q, expected price rounded up to $11", got)
	}

	got = PriceList([]models.Maker{maker("Evan", 10)})
	if !strings.Contains(got, "$10") {
		t.Errorf("PriceList() = %q, whole amounts should not round up", got)
	}
}

func TestPriceListTrimsNames(t *testing.T) {
	got := PriceList([]models.Maker{maker("  Evan  ", 10)})
	if !strings.Contains(got, "\nEvan -") {
		t.Errorf("PriceList() = %q, expected trimmed name", got)
	}
}

func TestPriceListEmpty(t *testing.T) {
	if got := PriceList(nil); got != "" {
		t.Errorf("PriceList(nil) = %q, want empty", got)
	}
}

func TestMemberNames(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"Evan Wills"}, "Evan Wills"},
		{"pair", []string{"Evan Wills", "Georgie Pike"}, "Evan Wills & Georgie Pike"},
		{"three", []string{"Evan", "Georgie", "Gabe"}, "Evan, Georgie & Gabe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := make([]models.Member, len(tt.names))
			for i, n := range tt.names {
				list[i] = models.Member{Name: n}
			}
			if got := MemberNames(list); got != tt.want {
				t.Errorf("MemberNames() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFiringLabel(t *testing.T) {
	tests := []struct {
		typeName string
		want     string
	}{
		{"Bisque", ""},
		{"Raku", ""},
		{"Onglaze/Luster", ""},
		{"Pit", "firing"},
		{"Earthenware", "glaze"},
		{"Stoneware", "glaze"},
	}

	for _, tt := range tests {
		if got := FiringLabel(tt.typeName); got != tt.want {
			t.Errorf("FiringLabel(%q) = %q, want %q", tt.typeName, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	f := models.Firing{
		Date:     "2026-08-01",
		Type:     "Stoneware",
		Temp:     1280,
		Cost:     90,
		PackedBy: []models.Member{{Name: "Evan"}, {Name: "Georgie"}},
		PricedBy: []models.Member{{Name: "Gabe"}},
		Work: []models.Maker{
			maker("Evan", 45),
			maker("Georgie", 45),
		},
	}

	got := Render(f)

	for _, fragment := range []string{
		"Stoneware glaze 2026-08-01 (1280°C)",
		"Firing cost: $90.00",
		"Packed by: Evan & Georgie",
		"Unpacked by: Gabe",
		"Evan    - $45",
		"Georgie - $45",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("Render() missing %q in:\n%s", fragment, got)
		}
	}
}
