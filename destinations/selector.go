/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package destinations

// Exclusion names the destination a player just saw. It only applies when
// both fields are set.
type Exclusion struct {
	City    string
	Country string
}

func (e Exclusion) active() bool {
	return e.City != "" && e.Country != ""
}

func (e Exclusion) matches(d Destination) bool {
	return e.active() && d.City == e.City && d.Country == e.Country
}

// Result is a chosen destination along with its shuffled answer options.
type Result struct {
	Destination
	Options []string `json:"options"`
}

// Pick returns a uniformly random destination from the entries of catalog
// not matched by exclude.
func Pick(catalog Catalog, exclude Exclusion, src Source) (Destination, error) {
	if len(catalog) == 0 {
		return Destination{}, ErrEmptyCatalog
	}

	if !exclude.active() {
		return catalog[src.IntN(len(catalog))], nil
	}

	eligible := make([]int, 0, len(catalog))
	for i, d := range catalog {
		if !exclude.matches(d) {
			eligible = append(eligible, i)
		}
	}

	if len(eligible) == 0 {
		return Destination{}, ErrNoEligibleDestinations
	}

	return catalog[eligible[src.IntN(len(eligible))]], nil
}

// Options returns OptionCount distinct answer keys in random order: the key of
// correct plus distractors drawn uniformly from catalog.
func Options(catalog Catalog, correct Destination, src Source) ([]string, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	correctKey := correct.Key()

	keys := catalog.distinctKeys()
	delete(keys, correctKey)
	if len(keys) < OptionCount-1 {
		return nil, ErrInsufficientDistinctDestinations
	}

	options := make([]string, 1, OptionCount)
	options[0] = correctKey

	present := map[string]bool{correctKey: true}

	for len(options) < OptionCount {
		key := catalog[src.IntN(len(catalog))].Key()
		if present[key] {
			continue
		}

		present[key] = true
		options = append(options, key)
	}

	shuffle(src, options)

	return options, nil
}

// Selector serves questions from a single catalog snapshot.
type Selector struct {
	catalog Catalog
	src     Source
}

// NewSelector returns a Selector over catalog. A nil src uses DefaultSource.
func NewSelector(catalog Catalog, src Source) *Selector {
	if src == nil {
		src = DefaultSource()
	}

	return &Selector{
		catalog: catalog,
		src:     src,
	}
}

// Next picks a destination not matched by exclude, then builds its options from
// the whole catalog, so the exclusion never shrinks the distractor pool.
func (s *Selector) Next(exclude Exclusion) (Result, error) {
	d, err := Pick(s.catalog, exclude, s.src)
	if err != nil {
		return Result{}, err
	}

	options, err := Options(s.catalog, d, s.src)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Destination: d,
		Options:     options,
	}, nil
}
