// CLAUDE:SUMMARY Query expansion: resolve a query to entities (or categories) and return every equivalent alias, with a model-scoped variant.
package lexicon

// Expand returns every alias equivalent to query. The literal query is
// always first and the result is never empty.
//
// Brand matches pull in all of the brand's models; model matches pull in
// the parent brand. When no entity matches, a category alias expands to
// the category and the names of every model tagged with it.
func (idx *Index) Expand(query string) []string {
	key := Normalize(query)
	out := newAliasSet()
	out.add(query)
	if key == "" {
		return []string{query}
	}

	if ents := idx.aliasToEntities[key]; len(ents) > 0 {
		for _, e := range ents {
			out.addAll(idx.entityToAliases[e].list())
			switch e.Kind {
			case KindBrand:
				for _, m := range idx.brandToModels[e] {
					out.addAll(idx.entityToAliases[m].list())
				}
			case KindModel:
				if b, ok := idx.modelToBrand[e]; ok {
					out.addAll(idx.entityToAliases[b].list())
				}
			}
		}
		return out.list()
	}

	if cats := idx.aliasToCategories[key]; len(cats) > 0 {
		for _, id := range cats {
			idx.addCategory(out, id)
			out.addAll(idx.categoryToModelAliases[id].list())
		}
		return out.list()
	}

	return []string{query}
}

// ExpandWithoutBrandAliases narrows Expand for model-specific filtering.
//
// A query naming one or more models (and not a category alias) expands to
// those models' aliases only: no brand synonyms, no sibling models, and no
// alias a sibling model of the same brand also owns. A
// category alias expands to the names of models tagged with the matched
// categories, minus anything that is also an alias of an unrelated
// category. A bare brand expands like Expand.
func (idx *Index) ExpandWithoutBrandAliases(query string) []string {
	key := Normalize(query)
	if key == "" {
		return []string{query}
	}

	cats := idx.aliasToCategories[key]
	var models []Entity
	for _, e := range idx.aliasToEntities[key] {
		if e.Kind == KindModel {
			models = append(models, e)
		}
	}

	out := newAliasSet()
	out.add(query)

	switch {
	case len(models) > 0 && len(cats) == 0:
		matched := make(map[Entity]bool, len(models))
		for _, m := range models {
			matched[m] = true
		}
		for _, m := range models {
			for _, raw := range idx.entityToAliases[m].list() {
				if idx.sharedWithSibling(Normalize(raw), matched) {
					continue
				}
				out.add(raw)
			}
		}
		return out.list()

	case len(cats) > 0:
		matched := make(map[string]bool, len(cats))
		for _, id := range cats {
			matched[id] = true
		}
		candidates := newAliasSet()
		for _, id := range cats {
			idx.addCategory(candidates, id)
			candidates.addAll(idx.categoryToModelAliases[id].list())
		}
		for _, raw := range candidates.list() {
			if idx.bleeds(Normalize(raw), matched) {
				continue
			}
			out.add(raw)
		}
		return out.list()
	}

	return idx.Expand(query)
}

// sharedWithSibling reports whether key is also an alias of a model outside
// matched that belongs to the brand of a matched model.
func (idx *Index) sharedWithSibling(key string, matched map[Entity]bool) bool {
	for _, e := range idx.aliasToEntities[key] {
		if e.Kind != KindModel || matched[e] {
			continue
		}
		for m := range matched {
			if m.BrandID == e.BrandID {
				return true
			}
		}
	}
	return false
}

// bleeds reports whether key is an alias of a category outside matched.
func (idx *Index) bleeds(key string, matched map[string]bool) bool {
	for _, id := range idx.aliasToCategories[key] {
		if !matched[id] {
			return true
		}
	}
	return false
}

func (idx *Index) addCategory(out *aliasSet, id string) {
	out.add(id)
	if cat, ok := idx.catalog.Category(id); ok {
		out.addAll(cat.Names.All())
	}
}
