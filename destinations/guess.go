/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package destinations

// GuessResult is the feedback shown after a player answers.
type GuessResult struct {
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
	Fact    string `json:"fact,omitempty"`
}

// Check compares answer against the key of d. A correct answer earns a fun
// fact, a wrong one a piece of trivia.
func Check(d Destination, answer string, src Source) GuessResult {
	correct := answer == d.Key()

	facts := d.Trivia
	if correct {
		facts = d.FunFact
	}

	var fact string
	if len(facts) > 0 {
		fact = facts[src.IntN(len(facts))]
	}

	return GuessResult{
		Correct: correct,
		Answer:  d.Key(),
		Fact:    fact,
	}
}

// Clues returns one or two of the clues of d, chosen at random without
// repetition.
func Clues(d Destination, src Source) []string {
	n := 1 + src.IntN(2)
	if n > len(d.Clues) {
		n = len(d.Clues)
	}

	clues := make([]string, len(d.Clues))
	copy(clues, d.Clues)

	for i := 0; i < n; i++ {
		j := i + src.IntN(len(clues)-i)
		clues[i], clues[j] = clues[j], clues[i]
	}

	return clues[:n]
}
