// CLAUDE:SUMMARY Prefix suggestions over the alias index: direct before indirect, brand then inline models, script-localized display, curated idioms.
package lexicon

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hazyhaar/autolex/pkg/script"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxInlineModels caps the "{brand} {model}" suggestions per brand.
const maxInlineModels = 6

// Suggestion tiers, best first. Compound brand+model suggestions sit one
// tier below the brand that produced them.
const (
	tierDirect   = 4
	tierIndirect = 2
)

// Suggestion is one entry of the suggestion list.
type Suggestion struct {
	Display   string `json:"display"`
	SearchKey string `json:"search_key"`
}

type scoredSuggestion struct {
	Suggestion
	tier int
}

// suggestionList collects suggestions deduplicated by normalized search
// key, keeping the best tier and the first position.
type suggestionList struct {
	items []scoredSuggestion
	pos   map[string]int
}

func (l *suggestionList) add(display, searchKey string, tier int) {
	key := Normalize(searchKey)
	if key == "" || display == "" {
		return
	}
	if i, ok := l.pos[key]; ok {
		if tier > l.items[i].tier {
			l.items[i].tier = tier
		}
		return
	}
	l.pos[key] = len(l.items)
	l.items = append(l.items, scoredSuggestion{Suggestion{Display: display, SearchKey: searchKey}, tier})
}

// Suggest returns up to limit suggestions for a typed prefix. Display
// strings follow the script of the prefix when the catalog has a name in
// it. An empty prefix or non-positive limit yields nothing.
func (idx *Index) Suggest(prefix string, limit int) []Suggestion {
	p := Normalize(prefix)
	if p == "" || limit <= 0 {
		return nil
	}
	cls := script.OfString(p)
	list := &suggestionList{pos: make(map[string]int)}

	// Brand aliases precede their models' composites in idx.keys, so a
	// brand is marked before any "{brand} {model}" key of it is reached.
	brandHit := make(map[Entity]bool)
	for _, key := range idx.keys {
		tier := suggestTier(key, p)
		if tier == 0 {
			continue
		}
		for _, e := range idx.aliasToEntities[key] {
			if e.Kind == KindModel && idx.viaComposite(key, e) {
				// A matched brand already lists its inline compounds.
				if b := idx.modelToBrand[e]; !brandHit[b] {
					idx.suggestCompound(list, b, e, cls, tier-1)
				}
				continue
			}
			if e.Kind == KindBrand {
				brandHit[e] = true
			}
			idx.suggestEntity(list, e, cls, tier)
		}
		for _, id := range idx.aliasToCategories[key] {
			if cat, ok := idx.catalog.Category(id); ok {
				list.add(cat.Names.For(cls), cat.ID, tier)
			}
		}
	}

	for _, idiom := range idx.catalog.Idioms {
		d, k := Normalize(idiom.Display), Normalize(idiom.SearchKey)
		if strings.HasPrefix(d, p) || strings.HasPrefix(k, p) {
			list.add(idiom.Display, idiom.SearchKey, tierDirect)
		}
	}

	sort.SliceStable(list.items, func(i, j int) bool {
		return list.items[i].tier > list.items[j].tier
	})

	if len(list.items) > limit {
		list.items = list.items[:limit]
	}
	out := make([]Suggestion, len(list.items))
	for i, it := range list.items {
		out[i] = it.Suggestion
	}
	return out
}

func (idx *Index) suggestEntity(list *suggestionList, e Entity, cls script.Class, tier int) {
	names, ok := idx.Names(e)
	if !ok {
		return
	}
	list.add(names.For(cls), names.Canonical(), tier)
	if e.Kind != KindBrand {
		return
	}
	for i, me := range idx.brandToModels[e] {
		if i == maxInlineModels {
			break
		}
		idx.suggestCompound(list, e, me, cls, tier-1)
	}
}

// suggestCompound adds the "{brand} {model}" suggestion for a model.
func (idx *Index) suggestCompound(list *suggestionList, brand, model Entity, cls script.Class, tier int) {
	bn, ok := idx.Names(brand)
	if !ok {
		return
	}
	mn, ok := idx.Names(model)
	if !ok {
		return
	}
	list.add(bn.For(cls)+" "+mn.For(cls), bn.Canonical()+" "+mn.Canonical(), tier)
}

// suggestTier grades an alias key against a normalized prefix: direct when
// the key starts with it, indirect when it occurs later in the key or when
// the key's head is one edit away from a prefix of three or more runes.
func suggestTier(key, p string) int {
	if strings.HasPrefix(key, p) {
		return tierDirect
	}
	if utf8.RuneCountInString(p) >= 2 && strings.Contains(key, p) {
		return tierIndirect
	}
	n := utf8.RuneCountInString(p)
	if n < 3 {
		return 0
	}
	head := key
	if utf8.RuneCountInString(key) > n {
		head = string([]rune(key)[:n])
	}
	if fuzzy.LevenshteinDistance(p, head) <= 1 {
		return tierIndirect
	}
	return 0
}
