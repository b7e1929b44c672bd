package lexicon

import (
	"testing"
)

func TestMatchesWordBoundary(t *testing.T) {
	tests := []struct {
		caption string
		aliases []string
		want    bool
	}{
		{"newcar2024", []string{"ev"}, false},
		{"ev2024", []string{"ev"}, true},
		{"รถevใหม่", []string{"ev"}, true},
		{"ລົດevໃໝ່", []string{"ev"}, true},
		{"seven seats", []string{"ev"}, false},
		{"Toyota EV for sale", []string{"ev"}, true},
		{"(EV)", []string{"ev"}, true},
		{"Hilux Revo 2020", []string{"revo"}, true},
		{"Hiluxrevo", []string{"revo"}, false},
		// Thai aliases match inside unspaced Thai text.
		{"ขายไฮลักซ์มือสอง", []string{"ไฮลักซ์"}, true},
		{"ຂາຍໄຮລັກລາຄາຖືກ", []string{"ໄຮລັກ"}, true},
		{"", []string{"ev"}, false},
		{"anything", nil, false},
	}
	for _, tt := range tests {
		if got := Matches(tt.caption, tt.aliases); got != tt.want {
			t.Errorf("Matches(%q, %v) = %v, want %v", tt.caption, tt.aliases, got, tt.want)
		}
	}
}

func TestMatchesNoiseSuppression(t *testing.T) {
	tests := []struct {
		caption string
		aliases []string
		want    bool
	}{
		{"CX-5 2019 sale 5 seats", []string{"5"}, false},
		{"a car", []string{"a"}, false},
		{"model 2024", []string{"2024"}, false},
		{"CX-5 2019", []string{"5", "cx 5"}, true},
	}
	for _, tt := range tests {
		if got := Matches(tt.caption, tt.aliases); got != tt.want {
			t.Errorf("Matches(%q, %v) = %v, want %v", tt.caption, tt.aliases, got, tt.want)
		}
	}
}

func TestMatchesFuzzy(t *testing.T) {
	tests := []struct {
		caption string
		alias   string
		want    bool
	}{
		// Six runes or more: budget 2.
		{"fartunar for sale", "fortuner", true},
		{"fortunxx for sale", "fortuner", true},
		{"fxrtxnxr for sale", "fortuner", false},
		// Below six runes: budget 1.
		{"hulux 2019", "hilux", true},
		{"hulix 2019", "hilux", false},
		// Below three runes: no fuzzy at all.
		{"ex", "ev", false},
		// Multi-word aliases compare against token windows.
		{"toyata hilux vigo", "toyota hilux", true},
	}
	for _, tt := range tests {
		s := ScoreCaption(tt.caption, []string{tt.alias})
		if s.Matched() != tt.want {
			t.Errorf("ScoreCaption(%q, %q) = %+v, want matched=%v", tt.caption, tt.alias, s, tt.want)
		}
		if tt.want && s.Kind != MatchFuzzy {
			t.Errorf("ScoreCaption(%q, %q).Kind = %v, want fuzzy", tt.caption, tt.alias, s.Kind)
		}
	}
}

func TestScoreKinds(t *testing.T) {
	aliases := []string{"Hilux"}
	tests := []struct {
		caption string
		want    MatchKind
	}{
		{"HILUX", MatchExact},
		{"Hilux Revo 2.4", MatchPrefix},
		{"ขาย hilux ด่วน", MatchSubstring},
		{"hilix 2019", MatchFuzzy},
		{"ford ranger", MatchNone},
	}
	for _, tt := range tests {
		if got := ScoreCaption(tt.caption, aliases).Kind; got != tt.want {
			t.Errorf("ScoreCaption(%q).Kind = %v, want %v", tt.caption, got, tt.want)
		}
	}
}

func TestScoreOrdering(t *testing.T) {
	aliases := []string{"hilux"}
	exact := ScoreCaption("Hilux", aliases)
	sub := ScoreCaption("ขาย hilux ด่วน", aliases)
	fz := ScoreCaption("ขาย hilix ด่วน", aliases)

	if exact.Compare(sub) <= 0 {
		t.Errorf("exact %+v should rank above substring %+v", exact, sub)
	}
	if sub.Compare(fz) <= 0 {
		t.Errorf("substring %+v should rank above fuzzy %+v", sub, fz)
	}
	if !exact.Exact() || sub.Exact() {
		t.Errorf("Exact(): exact=%v substring=%v", exact.Exact(), sub.Exact())
	}
}

func TestScoreLongerAliasWins(t *testing.T) {
	s := ScoreCaption("ขาย hilux revo ด่วน", []string{"hilux", "hilux revo", "revo"})
	if s.Alias != "hilux revo" || s.Length != 10 {
		t.Errorf("best alias = %q (%d), want \"hilux revo\" (10)", s.Alias, s.Length)
	}
}

func TestScoreLongerLeadingAliasBeatsShortWholeCaption(t *testing.T) {
	aliases := []string{"hilux", "hilux revo"}
	whole := ScoreCaption("Hilux", aliases)
	leading := ScoreCaption("Hilux Revo 2020", aliases)

	if whole.Kind != MatchExact || whole.Length != 5 {
		t.Fatalf("ScoreCaption(Hilux) = %+v, want exact/5", whole)
	}
	if leading.Kind != MatchPrefix || leading.Length != 10 {
		t.Fatalf("ScoreCaption(Hilux Revo 2020) = %+v, want prefix/10", leading)
	}
	if leading.Compare(whole) <= 0 || whole.Compare(leading) >= 0 {
		t.Errorf("prefix/10 should rank above exact/5")
	}

	// Same length: the whole-caption match wins the tie.
	if exact := ScoreCaption("Hilux Revo", aliases); exact.Compare(leading) <= 0 {
		t.Errorf("exact %+v should rank above prefix %+v of equal length", exact, leading)
	}

	// Length never lifts a non-leading match over a leading one.
	inner := ScoreCaption("ขาย hilux revo", aliases)
	if inner.Compare(whole) >= 0 {
		t.Errorf("substring %+v should rank below exact %+v", inner, whole)
	}

	got := Rank([]Candidate{{ID: "a", Caption: "Hilux"}, {ID: "b", Caption: "Hilux Revo 2020"}}, aliases)
	if len(got) != 2 || got[0].ID != "b" {
		t.Errorf("Rank = %+v, want the longer leading match first", got)
	}
}

func TestRank(t *testing.T) {
	idx := testIndex(t)
	aliases := idx.Expand("hilux")
	candidates := []Candidate{
		{ID: "1", Caption: "Ford Ranger 2021"},
		{ID: "2", Caption: "ขาย โตโยต้า มือสอง"},
		{ID: "3", Caption: "Hilux"},
		{ID: "4", Caption: "ขาย hilix ด่วน"},
		{ID: "5", Caption: "รถ Hilux Revo สวย"},
		{ID: "6", Caption: "ขายไฮลักซ์"},
	}
	got := Rank(candidates, aliases)

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	want := []string{"3", "5", "2", "6", "4"}
	if len(ids) != len(want) {
		t.Fatalf("Rank ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Rank ids = %v, want %v", ids, want)
		}
	}
}

func TestRankStableOnTies(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Caption: "sale ranger"},
		{ID: "b", Caption: "cheap ranger"},
		{ID: "c", Caption: "used ranger"},
	}
	got := Rank(candidates, []string{"ranger"})
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Fatalf("Rank changed order of ties: %v", got)
		}
	}
}
