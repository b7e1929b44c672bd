package lexicon

import (
	"strings"
	"testing"

	"github.com/hazyhaar/autolex/pkg/script"
)

func TestLoadValidCatalog(t *testing.T) {
	c, diags := Load(testDefinitions())
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}
	if len(c.Brands) != 5 {
		t.Errorf("brands = %d, want 5", len(c.Brands))
	}
	if c.Brands[0].Models[0].BrandID != "toyota" {
		t.Errorf("model brand id = %q, want toyota", c.Brands[0].Models[0].BrandID)
	}
	pickup, ok := c.Category("pickup")
	if !ok {
		t.Fatal("category pickup missing")
	}
	// Own alias plus the alias-table row.
	if len(pickup.Aliases) != 2 || pickup.Aliases[1] != "4x4" {
		t.Errorf("pickup aliases = %v, want [truck 4x4]", pickup.Aliases)
	}
}

func TestLoadSkipsAndReports(t *testing.T) {
	defs := Definitions{
		Categories: []Category{
			{ID: "pickup", Names: Names{EN: "Pickup"}},
			{ID: "pickup", Names: Names{EN: "Duplicate"}},
			{Names: Names{EN: "No id"}},
		},
		CategoryAliases: []CategoryAlias{
			{Term: "truck", Categories: []string{"pickup", "lorry"}},
			{Term: "  "},
		},
		Brands: []Brand{
			{ID: "toyota", Names: Names{EN: "Toyota"}, CategoryOverrides: []string{"van"}, Models: []Model{
				{ID: "hilux", Names: Names{EN: "Hilux"}, Categories: []string{"pickup", "ghost"}},
				{ID: "hilux", Names: Names{EN: "Hilux again"}},
				{ID: "vios", BrandID: "honda", Names: Names{EN: "Vios"}},
				{ID: "nameless"},
				{Names: Names{EN: "No id"}},
			}},
			{ID: "toyota", Names: Names{EN: "Toyota twin"}},
			{ID: "blank"},
			{Names: Names{EN: "Anonymous"}},
		},
		Idioms: []Idiom{{Display: "x"}},
	}

	c, diags := Load(defs)

	wantReasons := []string{
		"category=\"pickup\": duplicate id",
		"missing id",
		"unknown category",
		"empty term",
		"override references unknown category",
		"category=\"ghost\"",
		"model brand=\"toyota\" model=\"hilux\": duplicate id",
		"brand id disagrees with parent",
		"model=\"nameless\": no name",
		"brand brand=\"toyota\": duplicate id",
		"brand brand=\"blank\": no name",
		"empty display or search key",
	}
	joined := make([]string, len(diags))
	for i, d := range diags {
		joined[i] = d.Error()
	}
	all := strings.Join(joined, "\n")
	for _, want := range wantReasons {
		if !strings.Contains(all, want) {
			t.Errorf("diagnostics missing %q\ngot:\n%s", want, all)
		}
	}

	if len(c.Brands) != 1 {
		t.Fatalf("brands = %d, want 1", len(c.Brands))
	}
	b := c.Brands[0]
	if len(b.CategoryOverrides) != 0 {
		t.Errorf("overrides = %v, want none", b.CategoryOverrides)
	}
	if len(b.Models) != 2 {
		t.Fatalf("models = %d, want 2 (hilux, vios)", len(b.Models))
	}
	if got := b.Models[0].Categories; len(got) != 1 || got[0] != "pickup" {
		t.Errorf("hilux categories = %v, want [pickup]", got)
	}
	if b.Models[1].BrandID != "toyota" {
		t.Errorf("vios brand = %q, want parent toyota", b.Models[1].BrandID)
	}
	pickup, _ := c.Category("pickup")
	if len(pickup.Aliases) != 1 || pickup.Aliases[0] != "truck" {
		t.Errorf("pickup aliases = %v, want [truck]", pickup.Aliases)
	}
	if len(c.Idioms) != 0 {
		t.Errorf("idioms = %v, want none", c.Idioms)
	}
}

func TestLoadEmpty(t *testing.T) {
	c, diags := Load(Definitions{})
	if len(diags) != 0 || len(c.Brands) != 0 {
		t.Fatalf("empty definitions: brands=%d diags=%v", len(c.Brands), diags)
	}
}

func TestNamesFor(t *testing.T) {
	full := Names{EN: "Toyota", TH: "โตโยต้า", LO: "ໂຕໂຢຕ້າ"}
	thaiOnly := Names{TH: "คัมรี่"}
	tests := []struct {
		names Names
		cls   script.Class
		want  string
	}{
		{full, script.Latin, "Toyota"},
		{full, script.Thai, "โตโยต้า"},
		{full, script.Lao, "ໂຕໂຢຕ້າ"},
		{full, script.Other, "Toyota"},
		{Names{EN: "Camry", TH: "คัมรี่"}, script.Lao, "Camry"},
		{thaiOnly, script.Latin, "คัมรี่"},
		{Names{}, script.Latin, ""},
	}
	for _, tt := range tests {
		if got := tt.names.For(tt.cls); got != tt.want {
			t.Errorf("%+v.For(%v) = %q, want %q", tt.names, tt.cls, got, tt.want)
		}
	}
}
