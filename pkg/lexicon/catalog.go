// CLAUDE:SUMMARY Catalog definitions (brands, models, categories, alias table, idioms) and the skip-and-report loader.
package lexicon

import (
	"fmt"
	"strings"

	"github.com/hazyhaar/autolex/pkg/script"
)

// Names holds a canonical Latin name and its Thai and Lao renderings.
type Names struct {
	EN string `yaml:"en,omitempty" json:"en,omitempty"`
	TH string `yaml:"th,omitempty" json:"th,omitempty"`
	LO string `yaml:"lo,omitempty" json:"lo,omitempty"`
}

// All returns the non-empty names, canonical first.
func (n Names) All() []string {
	out := make([]string, 0, 3)
	for _, s := range []string{n.EN, n.TH, n.LO} {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// For returns the name written in class c, falling back to the first
// available name (en, th, lo).
func (n Names) For(c script.Class) string {
	var want string
	switch c {
	case script.Thai:
		want = n.TH
	case script.Lao:
		want = n.LO
	default:
		want = n.EN
	}
	if want = strings.TrimSpace(want); want != "" {
		return want
	}
	if all := n.All(); len(all) > 0 {
		return all[0]
	}
	return ""
}

// Canonical returns the canonical display name.
func (n Names) Canonical() string {
	return n.For(script.Latin)
}

func (n Names) empty() bool { return len(n.All()) == 0 }

// Brand is a vehicle make.
type Brand struct {
	ID       string   `yaml:"id" json:"id"`
	Names    Names    `yaml:"names" json:"names"`
	Synonyms []string `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Models   []Model  `yaml:"models,omitempty" json:"models,omitempty"`
	// CategoryOverrides lists categories that the brand name alone satisfies
	// (e.g. a pickup-only make matching "pickup" by brand name).
	CategoryOverrides []string `yaml:"category_overrides,omitempty" json:"category_overrides,omitempty"`
}

// Model is a vehicle model of a brand.
type Model struct {
	ID         string   `yaml:"id" json:"id"`
	BrandID    string   `yaml:"brand_id,omitempty" json:"brand_id,omitempty"`
	Names      Names    `yaml:"names" json:"names"`
	Synonyms   []string `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// Category is a body style or segment (pickup, suv, ev...).
type Category struct {
	ID      string   `yaml:"id" json:"id"`
	Names   Names    `yaml:"names" json:"names"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// CategoryAlias is one row of the free-text to category alias table.
type CategoryAlias struct {
	Term       string   `yaml:"term" json:"term"`
	Categories []string `yaml:"categories" json:"categories"`
}

// Idiom is a hand-curated suggestion, typically local slang.
type Idiom struct {
	Display   string `yaml:"display" json:"display"`
	SearchKey string `yaml:"search_key" json:"search_key"`
}

// Definitions is the raw catalog as supplied by a catalog source.
type Definitions struct {
	Brands          []Brand         `yaml:"brands" json:"brands"`
	Categories      []Category      `yaml:"categories" json:"categories"`
	CategoryAliases []CategoryAlias `yaml:"category_aliases,omitempty" json:"category_aliases,omitempty"`
	Idioms          []Idiom         `yaml:"idioms,omitempty" json:"idioms,omitempty"`
}

// Catalog is a validated, read-only set of definitions.
type Catalog struct {
	Brands     []Brand
	Categories []Category
	Idioms     []Idiom

	categories map[string]*Category
}

// Category returns the category with the given id.
func (c *Catalog) Category(id string) (*Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

// LoadError reports one definition or reference skipped while loading.
type LoadError struct {
	Kind     string // "brand", "model", "category", "category_alias", "idiom"
	BrandID  string
	ModelID  string
	Category string
	Ref      string
	Reason   string
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind)
	for _, kv := range [][2]string{{"brand", e.BrandID}, {"model", e.ModelID}, {"category", e.Category}, {"ref", e.Ref}} {
		if kv[1] != "" {
			fmt.Fprintf(&b, " %s=%q", kv[0], kv[1])
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Load validates definitions into a Catalog. It never aborts: invalid
// definitions and dangling references are skipped and reported.
func Load(defs Definitions) (*Catalog, []*LoadError) {
	var diags []*LoadError
	report := func(e *LoadError) { diags = append(diags, e) }

	c := &Catalog{categories: make(map[string]*Category)}

	// Categories first so model references can be checked.
	for _, def := range defs.Categories {
		id := strings.TrimSpace(def.ID)
		if id == "" {
			report(&LoadError{Kind: "category", Ref: def.Names.Canonical(), Reason: "missing id"})
			continue
		}
		if _, dup := c.categories[id]; dup {
			report(&LoadError{Kind: "category", Category: id, Reason: "duplicate id"})
			continue
		}
		c.Categories = append(c.Categories, Category{
			ID:      id,
			Names:   def.Names,
			Aliases: nonEmpty(def.Aliases),
		})
		c.categories[id] = nil
	}
	for i := range c.Categories {
		c.categories[c.Categories[i].ID] = &c.Categories[i]
	}

	for _, row := range defs.CategoryAliases {
		term := strings.TrimSpace(row.Term)
		if term == "" {
			report(&LoadError{Kind: "category_alias", Reason: "empty term"})
			continue
		}
		for _, id := range row.Categories {
			cat, ok := c.categories[id]
			if !ok {
				report(&LoadError{Kind: "category_alias", Category: id, Ref: term, Reason: "unknown category"})
				continue
			}
			cat.Aliases = append(cat.Aliases, term)
		}
	}

	brandIDs := make(map[string]bool)
	for _, def := range defs.Brands {
		id := strings.TrimSpace(def.ID)
		switch {
		case id == "":
			report(&LoadError{Kind: "brand", Ref: def.Names.Canonical(), Reason: "missing id"})
			continue
		case def.Names.empty():
			report(&LoadError{Kind: "brand", BrandID: id, Reason: "no name"})
			continue
		case brandIDs[id]:
			report(&LoadError{Kind: "brand", BrandID: id, Reason: "duplicate id"})
			continue
		}
		brandIDs[id] = true

		b := Brand{
			ID:       id,
			Names:    def.Names,
			Synonyms: nonEmpty(def.Synonyms),
		}
		for _, ref := range def.CategoryOverrides {
			if _, ok := c.categories[ref]; !ok {
				report(&LoadError{Kind: "brand", BrandID: id, Category: ref, Reason: "override references unknown category"})
				continue
			}
			b.CategoryOverrides = append(b.CategoryOverrides, ref)
		}

		modelIDs := make(map[string]bool)
		for _, md := range def.Models {
			mid := strings.TrimSpace(md.ID)
			switch {
			case mid == "":
				report(&LoadError{Kind: "model", BrandID: id, Ref: md.Names.Canonical(), Reason: "missing id"})
				continue
			case md.Names.empty():
				report(&LoadError{Kind: "model", BrandID: id, ModelID: mid, Reason: "no name"})
				continue
			case modelIDs[mid]:
				report(&LoadError{Kind: "model", BrandID: id, ModelID: mid, Reason: "duplicate id"})
				continue
			}
			modelIDs[mid] = true
			if md.BrandID != "" && md.BrandID != id {
				report(&LoadError{Kind: "model", BrandID: id, ModelID: mid, Ref: md.BrandID, Reason: "brand id disagrees with parent, parent kept"})
			}

			m := Model{
				ID:       mid,
				BrandID:  id,
				Names:    md.Names,
				Synonyms: nonEmpty(md.Synonyms),
			}
			for _, ref := range md.Categories {
				if _, ok := c.categories[ref]; !ok {
					report(&LoadError{Kind: "model", BrandID: id, ModelID: mid, Category: ref, Reason: "unknown category"})
					continue
				}
				m.Categories = append(m.Categories, ref)
			}
			b.Models = append(b.Models, m)
		}
		c.Brands = append(c.Brands, b)
	}

	for _, idiom := range defs.Idioms {
		if strings.TrimSpace(idiom.Display) == "" || strings.TrimSpace(idiom.SearchKey) == "" {
			report(&LoadError{Kind: "idiom", Ref: idiom.Display + idiom.SearchKey, Reason: "empty display or search key"})
			continue
		}
		c.Idioms = append(c.Idioms, idiom)
	}

	return c, diags
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
