package lexicon

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"   ", ""},
		{"Toyota", "toyota"},
		{"  HILUX   Revo ", "hilux revo"},
		{"D-Max", "d max"},
		{"Hilux (Revo)", "hilux revo"},
		{"«Fortuner»", "fortuner"},
		{"CR-V/HR-V", "cr v hr v"},
		{"ＦＯＲＤ", "ford"},                // fullwidth folded by NFKC
		{"Ranger Raptor", "ranger raptor"}, // NBSP
		{"EV!!!", "ev"},
		{"โตโยต้า", "โตโยต้า"},
		{"ໂຕໂຢຕ້າ", "ໂຕໂຢຕ້າ"},
		{"รถ EV ใหม่", "รถ ev ใหม่"},
		{"a_b+c=d", "a b c d"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Toyota HILUX", "ＨＩＬＵＸ", "ไฮลักซ์ 2024", "ໄຮລັກ", "Ｃ－ＨＲ",
		"ﬁat", "Ⅳ", "é", "K", "İstanbul", "[[x]]", "\t\n a \r", "ꜱ", "ำ", "ຳ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hilux revo", []string{"hilux", "revo"}},
		{"d max", []string{"max"}},
		{"a", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := Tokens(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokens(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsNoise(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"5", true},
		{"2024", true},
		{"3 5", true},
		{"a", true},
		{"ev", false},
		{"cx5", false},
	}
	for _, tt := range tests {
		if got := isNoise(tt.in); got != tt.want {
			t.Errorf("isNoise(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
