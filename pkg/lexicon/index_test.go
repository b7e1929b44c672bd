package lexicon

import (
	"reflect"
	"testing"
)

func TestBuildAliasToEntities(t *testing.T) {
	idx := testIndex(t)

	tests := []struct {
		alias string
		want  []Entity
	}{
		{"Toyota", []Entity{BrandEntity("toyota")}},
		{"โตโยต้า", []Entity{BrandEntity("toyota")}},
		{"HILUX", []Entity{ModelEntity("toyota", "hilux")}},
		{"ໄຮລັກ", []Entity{ModelEntity("toyota", "hilux")}},
		// Token of "Hilux Revo".
		{"revo", []Entity{ModelEntity("toyota", "hilux")}},
		// Composite brand+model names resolve to the model alone.
		{"toyota hilux", []Entity{ModelEntity("toyota", "hilux")}},
		{"โตโยต้า ไฮลักซ์", []Entity{ModelEntity("toyota", "hilux")}},
		{"โตโยต้าไฮลักซ์", []Entity{ModelEntity("toyota", "hilux")}},
		{"max", []Entity{ModelEntity("isuzu", "dmax")}},
		{"unknown", nil},
	}
	for _, tt := range tests {
		if got := idx.Entities(tt.alias); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Entities(%q) = %v, want %v", tt.alias, got, tt.want)
		}
	}
}

func TestBuildShortAliasNotTokenized(t *testing.T) {
	idx := testIndex(t)
	// "D-Max" normalizes to "d max": the whole alias is indexed but "d" is not.
	if got := idx.Entities("d max"); len(got) != 1 {
		t.Errorf("Entities(d max) = %v, want the D-Max model", got)
	}
	if got := idx.Entities("d"); got != nil {
		t.Errorf("Entities(d) = %v, want none", got)
	}
	if got := idx.Entities("3"); got != nil {
		t.Errorf("Entities(3) = %v, want none", got)
	}
}

func TestBuildAdjacency(t *testing.T) {
	idx := testIndex(t)

	toyota := BrandEntity("toyota")
	want := []Entity{
		ModelEntity("toyota", "hilux"),
		ModelEntity("toyota", "fortuner"),
		ModelEntity("toyota", "camry"),
	}
	if got := idx.Models(toyota); !reflect.DeepEqual(got, want) {
		t.Errorf("Models(toyota) = %v, want %v", got, want)
	}

	// model_to_brand is total and inverse of brand_to_models.
	for _, b := range idx.Catalog().Brands {
		be := BrandEntity(b.ID)
		for _, m := range idx.Models(be) {
			got, ok := idx.BrandOf(m)
			if !ok || got != be {
				t.Errorf("BrandOf(%v) = %v, %v; want %v", m, got, ok, be)
			}
		}
	}
}

func TestBuildCategories(t *testing.T) {
	idx := testIndex(t)

	tests := []struct {
		alias string
		want  []string
	}{
		{"pickup", []string{"pickup"}},
		{"truck", []string{"pickup"}},
		{"กระบะ", []string{"pickup"}},
		{"4x4", []string{"pickup", "suv"}},
		{"sport", []string{"suv"}},
		{"sport sedan", []string{"sedan"}},
		{"hilux", nil},
	}
	for _, tt := range tests {
		if got := idx.Categories(tt.alias); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Categories(%q) = %v, want %v", tt.alias, got, tt.want)
		}
	}

	pickup := idx.categoryToModelAliases["pickup"].list()
	for _, want := range []string{"Hilux", "ไฮลักซ์", "Hilux Revo", "revo", "Ranger", "D-Max", "max", "Isuzu", "อีซูซุ"} {
		if !containsFold(pickup, want) {
			t.Errorf("category pickup model aliases missing %q: %v", want, pickup)
		}
	}
	if containsFold(pickup, "Toyota") {
		t.Errorf("category pickup should not carry brand Toyota without override: %v", pickup)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, b := testIndex(t), testIndex(t)
	if !reflect.DeepEqual(a.keys, b.keys) {
		t.Error("alias key order differs between builds of the same catalog")
	}
	for _, q := range []string{"toyota", "hilux", "truck", "sport", "hil"} {
		if !reflect.DeepEqual(a.Expand(q), b.Expand(q)) {
			t.Errorf("Expand(%q) differs between builds", q)
		}
		if !reflect.DeepEqual(a.Suggest(q, 10), b.Suggest(q, 10)) {
			t.Errorf("Suggest(%q) differs between builds", q)
		}
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	idx := Build(nil)
	if got := idx.Expand("hilux"); !reflect.DeepEqual(got, []string{"hilux"}) {
		t.Errorf("Expand on empty index = %v, want literal", got)
	}
	if got := idx.Suggest("hil", 5); len(got) != 0 {
		t.Errorf("Suggest on empty index = %v, want none", got)
	}
	if st := idx.Stats(); st != (Stats{}) {
		t.Errorf("Stats = %+v, want zero", st)
	}
}

func TestStats(t *testing.T) {
	st := testIndex(t).Stats()
	if st.Brands != 5 || st.Models != 9 || st.Categories != 4 || st.Idioms != 2 {
		t.Errorf("Stats = %+v", st)
	}
	if st.Aliases == 0 {
		t.Error("Stats.Aliases = 0")
	}
}
