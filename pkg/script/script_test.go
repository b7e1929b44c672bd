package script

import "testing"

func TestOf(t *testing.T) {
	tests := []struct {
		r    rune
		want Class
	}{
		{'a', Latin},
		{'Z', Latin},
		{'é', Latin},
		{'ก', Thai},
		{'๕', Thai},
		{'ຮ', Lao},
		{'ໄ', Lao},
		{'5', Other},
		{' ', Other},
		{'-', Other},
		{'日', Other},
	}
	for _, tt := range tests {
		if got := Of(tt.r); got != tt.want {
			t.Errorf("Of(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestOfString(t *testing.T) {
	tests := []struct {
		in   string
		want Class
	}{
		{"hil", Latin},
		{"2024 hilux", Latin},
		{"ไฮลักซ์", Thai},
		{"ໄຮລັກ", Lao},
		{"123", Other},
		{"", Other},
	}
	for _, tt := range tests {
		if got := OfString(tt.in); got != tt.want {
			t.Errorf("OfString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsWord(t *testing.T) {
	for _, r := range []rune{'a', '7', 'ก', 'ั', 'ັ'} {
		if !IsWord(r) {
			t.Errorf("IsWord(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{' ', '.', '(', '\t'} {
		if IsWord(r) {
			t.Errorf("IsWord(%q) = true, want false", r)
		}
	}
}

func TestDelimited(t *testing.T) {
	if !Latin.Delimited() || !Other.Delimited() {
		t.Error("latin and other should be whitespace-delimited")
	}
	if Thai.Delimited() || Lao.Delimited() {
		t.Error("thai and lao should not be whitespace-delimited")
	}
}
