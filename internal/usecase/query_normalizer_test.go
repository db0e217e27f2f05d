package usecase

import "testing"

func TestNormalizeQuery(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  string
	}{
		{name: "empty", query: "", want: ""},
		{name: "lower case", query: "Tomate", want: "tomate"},
		{name: "strips accents", query: "Jalapeño", want: "jalapeno"},
		{name: "strips several accents", query: "Limón y Plátano", want: "limon y platano"},
		{name: "removes punctuation", query: "pimiento, rojo!", want: "pimiento rojo"},
		{name: "collapses whitespace", query: "  aceite \t de   oliva ", want: "aceite de oliva"},
		{name: "keeps digits", query: "harina 000", want: "harina 000"},
		{name: "only punctuation", query: "¿?", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeQuery(tc.query); got != tc.want {
				t.Errorf("NormalizeQuery(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestNormalizeQuery_EquivalentQueriesShareKey(t *testing.T) {
	a := searchCacheKey(NormalizeQuery("  Jalapeño, Rojo "), 10)
	b := searchCacheKey(NormalizeQuery("jalapeno rojo"), 10)
	if a != b {
		t.Errorf("cache keys differ: %q vs %q", a, b)
	}
	if a != "ingredients:jalapeno rojo:10" {
		t.Errorf("unexpected key %q", a)
	}
}
