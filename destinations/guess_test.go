/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package destinations_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/Seednode/globetrotter/destinations"
)

func TestCheck(t *testing.T) {
	tokyo := destinations.Destination{
		City:    "Tokyo",
		Country: "Japan",
		Clues:   []string{"Neon"},
		FunFact: []string{"fun one", "fun two"},
		Trivia:  []string{"trivia one", "trivia two"},
	}

	src := destinations.NewSource(11)

	t.Run("Correct", func(t *testing.T) {
		result := destinations.Check(tokyo, "Tokyo, Japan", src)
		if !result.Correct {
			t.Fatal("expected a correct result")
		}
		if !slices.Contains(tokyo.FunFact, result.Fact) {
			t.Errorf("fact %q is not a fun fact", result.Fact)
		}
		if result.Answer != "Tokyo, Japan" {
			t.Errorf("got answer %q", result.Answer)
		}
	})

	t.Run("Incorrect", func(t *testing.T) {
		result := destinations.Check(tokyo, "Kyoto, Japan", src)
		if result.Correct {
			t.Fatal("expected an incorrect result")
		}
		if !slices.Contains(tokyo.Trivia, result.Fact) {
			t.Errorf("fact %q is not trivia", result.Fact)
		}
		if result.Answer != "Tokyo, Japan" {
			t.Errorf("got answer %q", result.Answer)
		}
	})

	t.Run("NoFacts", func(t *testing.T) {
		bare := destinations.Destination{City: "Lima", Country: "Peru", Clues: []string{"Ceviche"}}

		if result := destinations.Check(bare, "Lima, Peru", src); result.Fact != "" {
			t.Errorf("got fact %q, want none", result.Fact)
		}
	})
}

func TestClues(t *testing.T) {
	d := destinations.Destination{
		City:    "Cairo",
		Country: "Egypt",
		Clues:   []string{"pyramids", "the Nile", "the Sphinx", "Khan el-Khalili"},
	}

	src := destinations.NewSource(3)
	counts := map[int]int{}

	for i := 0; i < 500; i++ {
		clues := destinations.Clues(d, src)
		counts[len(clues)]++

		for j, c := range clues {
			if !slices.Contains(d.Clues, c) {
				t.Fatalf("unknown clue %q", c)
			}
			if slices.Index(clues, c) != j {
				t.Fatalf("repeated clue %q in %v", c, clues)
			}
		}
	}

	if counts[1] == 0 || counts[2] == 0 || len(counts) != 2 {
		t.Errorf("unexpected clue counts %v", counts)
	}

	if got := destinations.Clues(d, src); &got[0] == &d.Clues[0] {
		t.Error("Clues returned the destination's own slice")
	}

	single := destinations.Destination{City: "Oslo", Country: "Norway", Clues: []string{"fjords"}}
	for i := 0; i < 20; i++ {
		if got := destinations.Clues(single, src); !slices.Equal(got, single.Clues) {
			t.Fatalf("got %v, want %v", got, single.Clues)
		}
	}
}

func TestCatalogFind(t *testing.T) {
	catalog := withTokyo()

	d, ok := catalog.Find("Tokyo, Japan")
	if !ok || d.City != "Tokyo" {
		t.Errorf("got %+v, %v", d, ok)
	}

	if _, ok := catalog.Find("Tokyo"); ok {
		t.Error("found destination by partial key")
	}
}

func TestCatalogValidate(t *testing.T) {
	noClues := dest("Lima", "Peru")
	noClues.Clues = nil

	tests := []struct {
		name    string
		catalog destinations.Catalog
		want    error
	}{
		{"Valid", withTokyo(), nil},
		{"Empty", nil, destinations.ErrEmptyCatalog},
		{"TooFew", europe()[:3], destinations.ErrInsufficientDistinctDestinations},
		{"Duplicate", append(europe(), dest("Rome", "Italy")), destinations.ErrDuplicateDestination},
		{"MissingCity", append(europe(), dest("", "Peru")), destinations.ErrInvalidDestination},
		{"MissingCountry", append(europe(), dest("Lima", "")), destinations.ErrInvalidDestination},
		{"MissingClues", append(europe(), noClues), destinations.ErrInvalidDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}
