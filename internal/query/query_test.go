package query

import (
	"strings"
	"testing"
)

type person struct {
	ID      string
	Name    string
	Email   string
	Kind    string
	OwnerID *string
}

func ptr(s string) *string { return &s }

func personFields(p person) []string { return []string{p.Name, p.Email} }

func ids(people []person) string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return strings.Join(out, ",")
}

var people = []person{
	{ID: "1", Name: "Anna Eriksson", Email: "anna@example.se", Kind: "buyer"},
	{ID: "2", Name: "Björn Svensson", Email: "bjorn.eriksson@example.se", Kind: "seller", OwnerID: ptr("1")},
	{ID: "3", Name: "Cecilia Lind", Email: "cecilia@example.se", Kind: "both"},
	{ID: "4", Name: "David ERIKSSON", Email: "david@example.se", Kind: "buyer", OwnerID: ptr("9")},
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("matches any field case-insensitively in input order", func(t *testing.T) {
		t.Parallel()
		got := Search(people, "Eriksson", personFields)
		if ids(got) != "1,2,4" {
			t.Fatalf("unexpected result order %q", ids(got))
		}
	})

	t.Run("blank query matches everything", func(t *testing.T) {
		t.Parallel()
		for _, q := range []string{"", "   ", "\t"} {
			if got := Search(people, q, personFields); len(got) != len(people) {
				t.Fatalf("expected all items for %q, got %d", q, len(got))
			}
		}
	})

	t.Run("every result contains the needle", func(t *testing.T) {
		t.Parallel()
		for _, q := range []string{"a", "se", "lind", "XAMPLE", "zz", "anna ", " lind"} {
			for _, p := range Search(people, q, personFields) {
				if !Contains(p.Name, q) && !Contains(p.Email, q) {
					t.Fatalf("item %s returned for %q without a matching field", p.ID, q)
				}
			}
		}
	})

	t.Run("surrounding whitespace is part of the needle", func(t *testing.T) {
		t.Parallel()
		names := []string{"Anna", "Annalena Berg", "Anna Lind"}
		identity := func(s string) []string { return []string{s} }

		got := Search(names, "anna ", identity)
		if len(got) != 1 || got[0] != "Anna Lind" {
			t.Fatalf("expected only %q, got %q", "Anna Lind", got)
		}
		for _, name := range got {
			if !strings.Contains(strings.ToLower(name), "anna ") {
				t.Fatalf("returned %q which does not contain %q", name, "anna ")
			}
		}
		if got := Search(names, " berg", identity); len(got) != 1 || got[0] != "Annalena Berg" {
			t.Fatalf("expected leading space to match inside the name, got %q", got)
		}
	})

	t.Run("does not alias the input slice", func(t *testing.T) {
		t.Parallel()
		got := Search(people, "", personFields)
		got[0].Name = "mutated"
		if people[0].Name == "mutated" {
			t.Fatalf("search result aliases the input")
		}
	})
}

func TestFilterCategory(t *testing.T) {
	t.Parallel()

	kind := func(p person) string { return p.Kind }

	if got := FilterCategory(people, AllCategories, kind); len(got) != len(people) {
		t.Fatalf("expected all items for sentinel, got %d", len(got))
	}
	if got := FilterCategory(people, "", kind); len(got) != len(people) {
		t.Fatalf("expected all items for empty selection, got %d", len(got))
	}
	got := FilterCategory(people, "buyer", kind)
	if ids(got) != "1,4" {
		t.Fatalf("unexpected buyers %q", ids(got))
	}
	for _, p := range got {
		if p.Kind != "buyer" {
			t.Fatalf("unexpected kind %q", p.Kind)
		}
	}
}

func TestSearchAndFilterCommute(t *testing.T) {
	t.Parallel()

	kind := func(p person) string { return p.Kind }
	for _, q := range []string{"", "eriksson", "example", "lind", "nothing"} {
		for _, category := range []string{AllCategories, "buyer", "seller", "both"} {
			a := FilterCategory(Search(people, q, personFields), category, kind)
			b := Search(FilterCategory(people, category, kind), q, personFields)
			if ids(a) != ids(b) {
				t.Fatalf("q=%q category=%q: %q != %q", q, category, ids(a), ids(b))
			}
		}
	}
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	idOf := func(p person) string { return p.ID }

	got, ok := FindByID(people, "3", idOf)
	if !ok || got.Name != "Cecilia Lind" {
		t.Fatalf("expected Cecilia, got %+v (ok=%v)", got, ok)
	}

	missing, ok := FindByID(people, "404", idOf)
	if ok {
		t.Fatalf("expected lookup miss")
	}
	if missing.ID != "" {
		t.Fatalf("expected zero value on miss, got %+v", missing)
	}

	if _, ok := FindByID[person](nil, "1", idOf); ok {
		t.Fatalf("expected miss on nil collection")
	}

	if _, ok := FindByOptionalID(people, nil, idOf); ok {
		t.Fatalf("expected nil key to miss")
	}
	if got, ok := FindByOptionalID(people, people[1].OwnerID, idOf); !ok || got.ID != "1" {
		t.Fatalf("expected owner 1, got %+v", got)
	}
	if _, ok := FindByOptionalID(people, people[3].OwnerID, idOf); ok {
		t.Fatalf("expected dangling reference to miss")
	}
}

func TestManyByOptional(t *testing.T) {
	t.Parallel()

	got := ManyByOptional(people, "1", func(p person) *string { return p.OwnerID })
	if ids(got) != "2" {
		t.Fatalf("unexpected join %q", ids(got))
	}
	if got := ManyBy(people, "buyer", func(p person) string { return p.Kind }); ids(got) != "1,4" {
		t.Fatalf("unexpected join %q", ids(got))
	}
}

func TestSortStable(t *testing.T) {
	t.Parallel()

	byKind := func(a, b person) int { return strings.Compare(a.Kind, b.Kind) }
	got := SortStable(people, byKind)
	if ids(got) != "3,1,4,2" {
		t.Fatalf("unexpected stable order %q", ids(got))
	}
	if people[0].ID != "1" {
		t.Fatalf("input reordered")
	}
}

func TestTallyAndLimit(t *testing.T) {
	t.Parallel()

	counts := Tally(people, func(p person) string { return p.Kind })
	if counts["buyer"] != 2 || counts["seller"] != 1 || counts["both"] != 1 {
		t.Fatalf("unexpected tally %v", counts)
	}

	if got := Limit(people, 2); len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got := Limit(people, 0); len(got) != len(people) {
		t.Fatalf("expected no truncation for zero limit")
	}
}
