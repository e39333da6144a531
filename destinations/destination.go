/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package destinations picks quiz destinations and builds the multiple-choice
// answer sets shown to players.
package destinations

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog                     = errors.New("catalog is empty")
	ErrNoEligibleDestinations           = errors.New("no destinations left after exclusion")
	ErrInsufficientDistinctDestinations = errors.New("catalog needs at least 4 distinct destinations")
	ErrDuplicateDestination             = errors.New("duplicate destination")
	ErrInvalidDestination               = errors.New("invalid destination")
)

// OptionCount is the number of answers offered per question.
const OptionCount = 4

// Destination is a single quiz subject.
type Destination struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Clues   []string `json:"clues"`
	FunFact []string `json:"fun_fact"`
	Trivia  []string `json:"trivia"`
}

// Key returns the answer key, "{city}, {country}".
func (d Destination) Key() string {
	return Key(d.City, d.Country)
}

func Key(city, country string) string {
	return city + ", " + country
}

// Catalog is the full list of destinations. It is never modified once loaded.
type Catalog []Destination

// Find returns the destination with the given answer key.
func (c Catalog) Find(key string) (Destination, bool) {
	for _, d := range c {
		if d.Key() == key {
			return d, true
		}
	}

	return Destination{}, false
}

func (c Catalog) distinctKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(c))
	for _, d := range c {
		keys[d.Key()] = struct{}{}
	}

	return keys
}

// Validate reports whether the catalog can serve questions: every entry needs a
// city, a country and at least one clue, keys must be unique, and there must be
// enough distinct keys to fill an option set.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]int, len(c))
	for i, d := range c {
		switch {
		case d.City == "":
			return fmt.Errorf("%w: entry %d has no city", ErrInvalidDestination, i)
		case d.Country == "":
			return fmt.Errorf("%w: entry %d has no country", ErrInvalidDestination, i)
		case len(d.Clues) == 0:
			return fmt.Errorf("%w: %q has no clues", ErrInvalidDestination, d.Key())
		}

		if j, ok := seen[d.Key()]; ok {
			return fmt.Errorf("%w: %q at entries %d and %d", ErrDuplicateDestination, d.Key(), j, i)
		}
		seen[d.Key()] = i
	}

	if len(seen) < OptionCount {
		return fmt.Errorf("%w: have %d", ErrInsufficientDistinctDestinations, len(seen))
	}

	return nil
}
