package lexicon

import "testing"

// testDefinitions is a small three-language catalog shared by the tests.
func testDefinitions() Definitions {
	return Definitions{
		Categories: []Category{
			{ID: "pickup", Names: Names{EN: "Pickup", TH: "กระบะ", LO: "ກະບະ"}, Aliases: []string{"truck"}},
			{ID: "suv", Names: Names{EN: "SUV", TH: "เอสยูวี", LO: "ລົດ SUV"}, Aliases: []string{"sport"}},
			{ID: "sedan", Names: Names{EN: "Sedan", TH: "ซีดาน", LO: "ເກັງ"}, Aliases: []string{"saloon", "sport sedan"}},
			{ID: "ev", Names: Names{EN: "Electric", TH: "รถไฟฟ้า", LO: "ລົດໄຟຟ້າ"}},
		},
		CategoryAliases: []CategoryAlias{
			{Term: "4x4", Categories: []string{"pickup", "suv"}},
		},
		Brands: []Brand{
			{
				ID:       "toyota",
				Names:    Names{EN: "Toyota", TH: "โตโยต้า", LO: "ໂຕໂຢຕ້າ"},
				Synonyms: []string{"yota"},
				Models: []Model{
					{ID: "hilux", Names: Names{EN: "Hilux", TH: "ไฮลักซ์", LO: "ໄຮລັກ"}, Synonyms: []string{"Hilux Revo"}, Categories: []string{"pickup"}},
					{ID: "fortuner", Names: Names{EN: "Fortuner", TH: "ฟอร์จูนเนอร์"}, Synonyms: []string{"Fortuner Legender"}, Categories: []string{"suv"}},
					{ID: "camry", Names: Names{EN: "Camry", TH: "คัมรี่"}, Categories: []string{"sedan"}},
				},
			},
			{
				ID:    "ford",
				Names: Names{EN: "Ford", TH: "ฟอร์ด", LO: "ຟອດ"},
				Models: []Model{
					{ID: "ranger", Names: Names{EN: "Ranger", TH: "เรนเจอร์", LO: "ເຣນເຈີ"}, Categories: []string{"pickup"}},
					{ID: "everest", Names: Names{EN: "Everest", TH: "เอเวอเรสต์"}, Synonyms: []string{"Sport Sedan"}, Categories: []string{"suv"}},
				},
			},
			{
				ID:       "honda",
				Names:    Names{EN: "Honda", TH: "ฮอนด้า"},
				Synonyms: []string{"hon"},
				Models: []Model{
					{ID: "civic", Names: Names{EN: "Civic"}, Synonyms: []string{"Civic Sport"}, Categories: []string{"sedan"}},
					{ID: "chill", Names: Names{EN: "Chiller"}, Categories: []string{"suv"}},
				},
			},
			{
				ID:                "isuzu",
				Names:             Names{EN: "Isuzu", TH: "อีซูซุ"},
				CategoryOverrides: []string{"pickup"},
				Models: []Model{
					{ID: "dmax", Names: Names{EN: "D-Max", TH: "ดีแมคซ์"}, Categories: []string{"pickup"}},
				},
			},
			{
				ID:    "byd",
				Names: Names{EN: "BYD"},
				Models: []Model{
					{ID: "atto3", Names: Names{EN: "Atto 3"}, Categories: []string{"ev", "suv"}},
				},
			},
		},
		Idioms: []Idiom{
			{Display: "รถกระบะแต่ง", SearchKey: "pickup"},
			{Display: "Yota Vigo", SearchKey: "Hilux"},
		},
	}
}

func testIndex(t *testing.T) *Index {
	t.Helper()
	c, diags := Load(testDefinitions())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return Build(c)
}

func containsFold(list []string, want string) bool {
	key := Normalize(want)
	for _, s := range list {
		if Normalize(s) == key {
			return true
		}
	}
	return false
}
