// CLAUDE:SUMMARY Immutable alias index built once from a Catalog: alias->entities, entity->aliases, brand<->model adjacency, alias->categories, category->model aliases.
package lexicon

import (
	"strings"

	"github.com/hazyhaar/autolex/pkg/script"
)

// aliasSet is an insertion-ordered set of raw strings, deduplicated by
// normalized form. The first raw form seen is kept for display.
type aliasSet struct {
	raw  []string
	seen map[string]struct{}
}

func newAliasSet() *aliasSet {
	return &aliasSet{seen: make(map[string]struct{})}
}

func (s *aliasSet) add(raw string) bool {
	key := Normalize(raw)
	if key == "" {
		return false
	}
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.raw = append(s.raw, raw)
	return true
}

func (s *aliasSet) addAll(raws []string) {
	for _, r := range raws {
		s.add(r)
	}
}

func (s *aliasSet) has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[key]
	return ok
}

func (s *aliasSet) list() []string {
	if s == nil {
		return nil
	}
	return s.raw
}

// Index is the read-only alias index. It is never mutated after Build
// returns and is safe for concurrent use.
type Index struct {
	catalog *Catalog

	aliasToEntities        map[string][]Entity
	entityToAliases        map[Entity]*aliasSet
	brandToModels          map[Entity][]Entity
	modelToBrand           map[Entity]Entity
	aliasToCategories      map[string][]string
	categoryToModelAliases map[string]*aliasSet

	// composite holds the "{brand} {model}" keys that reach a model only
	// through the brand+model pairing.
	composite map[compositeKey]struct{}

	// keys lists every alias key in insertion (catalog) order.
	keys   []string
	keySet map[string]struct{}

	brands map[string]*Brand
	models map[Entity]*Model
}

// Stats summarizes an index.
type Stats struct {
	Brands     int `json:"brands"`
	Models     int `json:"models"`
	Categories int `json:"categories"`
	Aliases    int `json:"aliases"`
	Idioms     int `json:"idioms"`
}

// Build constructs the index for a catalog. Insertion order follows the
// catalog order, so the same catalog always yields the same index.
func Build(c *Catalog) *Index {
	if c == nil {
		c = &Catalog{categories: map[string]*Category{}}
	}
	idx := &Index{
		catalog:                c,
		aliasToEntities:        make(map[string][]Entity),
		entityToAliases:        make(map[Entity]*aliasSet),
		brandToModels:          make(map[Entity][]Entity),
		modelToBrand:           make(map[Entity]Entity),
		aliasToCategories:      make(map[string][]string),
		categoryToModelAliases: make(map[string]*aliasSet),
		composite:              make(map[compositeKey]struct{}),
		keySet:                 make(map[string]struct{}),
		brands:                 make(map[string]*Brand),
		models:                 make(map[Entity]*Model),
	}

	for bi := range c.Brands {
		b := &c.Brands[bi]
		be := BrandEntity(b.ID)
		idx.brands[b.ID] = b
		idx.brandToModels[be] = nil
		for _, alias := range append(b.Names.All(), b.Synonyms...) {
			idx.addEntityAlias(be, alias, true)
		}
		for _, cat := range b.CategoryOverrides {
			idx.categoryAliases(cat).addAll(b.Names.All())
		}

		for mi := range b.Models {
			m := &b.Models[mi]
			me := ModelEntity(b.ID, m.ID)
			idx.models[me] = m
			idx.brandToModels[be] = append(idx.brandToModels[be], me)
			idx.modelToBrand[me] = be

			aliases := append(m.Names.All(), m.Synonyms...)
			for _, alias := range aliases {
				idx.addEntityAlias(me, alias, true)
			}
			for _, composite := range compositeNames(b.Names, m.Names) {
				if key := Normalize(composite); !idx.entityAliases(me).has(key) {
					idx.composite[compositeKey{key, me}] = struct{}{}
				}
				idx.addEntityAlias(me, composite, false)
			}
			for _, cat := range m.Categories {
				set := idx.categoryAliases(cat)
				for _, alias := range aliases {
					set.add(alias)
					set.addAll(Tokens(Normalize(alias)))
				}
			}
		}
	}

	for ci := range c.Categories {
		cat := &c.Categories[ci]
		terms := append([]string{cat.ID}, cat.Names.All()...)
		for _, term := range append(terms, cat.Aliases...) {
			key := Normalize(term)
			if key == "" {
				continue
			}
			idx.addKey(key)
			if !containsString(idx.aliasToCategories[key], cat.ID) {
				idx.aliasToCategories[key] = append(idx.aliasToCategories[key], cat.ID)
			}
		}
	}

	return idx
}

type compositeKey struct {
	key   string
	model Entity
}

// viaComposite reports whether key resolves to model only as a brand+model
// composite.
func (idx *Index) viaComposite(key string, model Entity) bool {
	_, ok := idx.composite[compositeKey{key, model}]
	return ok
}

// compositeNames pairs brand and model names written in the same script.
// Thai and Lao are also joined without a space, as they are usually written.
func compositeNames(b, m Names) []string {
	var out []string
	pairs := [][2]string{{b.EN, m.EN}, {b.TH, m.TH}, {b.LO, m.LO}}
	for i, p := range pairs {
		bn, mn := strings.TrimSpace(p[0]), strings.TrimSpace(p[1])
		if bn == "" || mn == "" {
			continue
		}
		out = append(out, bn+" "+mn)
		if i > 0 {
			out = append(out, bn+mn)
		}
	}
	return out
}

// addEntityAlias registers raw as an alias of e and, when tokenize is set,
// each of its tokens of two or more runes.
func (idx *Index) addEntityAlias(e Entity, raw string, tokenize bool) {
	key := Normalize(raw)
	if key == "" {
		return
	}
	idx.link(key, e)
	set := idx.entityAliases(e)
	set.add(raw)

	if !tokenize {
		return
	}
	toks := Tokens(key)
	if len(toks) < 2 && (len(toks) == 0 || toks[0] == key) {
		return
	}
	for _, tok := range toks {
		idx.link(tok, e)
		set.add(tok)
	}
}

func (idx *Index) link(key string, e Entity) {
	idx.addKey(key)
	for _, have := range idx.aliasToEntities[key] {
		if have == e {
			return
		}
	}
	idx.aliasToEntities[key] = append(idx.aliasToEntities[key], e)
}

func (idx *Index) addKey(key string) {
	if _, ok := idx.keySet[key]; ok {
		return
	}
	idx.keySet[key] = struct{}{}
	idx.keys = append(idx.keys, key)
}

func (idx *Index) entityAliases(e Entity) *aliasSet {
	set, ok := idx.entityToAliases[e]
	if !ok {
		set = newAliasSet()
		idx.entityToAliases[e] = set
	}
	return set
}

func (idx *Index) categoryAliases(id string) *aliasSet {
	set, ok := idx.categoryToModelAliases[id]
	if !ok {
		set = newAliasSet()
		idx.categoryToModelAliases[id] = set
	}
	return set
}

// Entities returns the entities an alias resolves to, in catalog order.
func (idx *Index) Entities(alias string) []Entity {
	return cloneSlice(idx.aliasToEntities[Normalize(alias)])
}

// Aliases returns the raw aliases of an entity.
func (idx *Index) Aliases(e Entity) []string {
	return cloneSlice(idx.entityToAliases[e].list())
}

// Models returns the model entities of a brand entity.
func (idx *Index) Models(brand Entity) []Entity {
	return cloneSlice(idx.brandToModels[brand])
}

// BrandOf returns the parent brand of a model entity.
func (idx *Index) BrandOf(model Entity) (Entity, bool) {
	b, ok := idx.modelToBrand[model]
	return b, ok
}

// Categories returns the category ids an alias resolves to.
func (idx *Index) Categories(alias string) []string {
	return cloneSlice(idx.aliasToCategories[Normalize(alias)])
}

// Names returns the localized names of an entity.
func (idx *Index) Names(e Entity) (Names, bool) {
	switch e.Kind {
	case KindBrand:
		if b, ok := idx.brands[e.BrandID]; ok {
			return b.Names, true
		}
	case KindModel:
		if m, ok := idx.models[e]; ok {
			return m.Names, true
		}
	}
	return Names{}, false
}

// Display returns the entity name in script c. Models are shown bare.
func (idx *Index) Display(e Entity, c script.Class) string {
	n, _ := idx.Names(e)
	return n.For(c)
}

// Catalog returns the catalog the index was built from.
func (idx *Index) Catalog() *Catalog {
	return idx.catalog
}

// Stats returns entity and alias counts.
func (idx *Index) Stats() Stats {
	return Stats{
		Brands:     len(idx.brands),
		Models:     len(idx.models),
		Categories: len(idx.catalog.Categories),
		Aliases:    len(idx.keys),
		Idioms:     len(idx.catalog.Idioms),
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cloneSlice[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
