package catalog

import (
	"math/rand/v2"
	"strings"
)

// Set records which catalog strings have been served.
type Set map[string]bool

// clone copies s so callers never see their input mutated.
func (s Set) clone() Set {
	out := make(Set, len(s)+1)
	for k, v := range s {
		if v {
			out[k] = true
		}
	}
	return out
}

// SelectReadingTopic picks a reading topic that is not in used and returns
// it together with the updated set. When every topic has been served the
// set starts over.
func SelectReadingTopic(used Set, rng *rand.Rand) (string, Set) {
	return selectFrom(readingSpace(), used, rng, func(string) bool { return true })
}

// SelectWritingTheme picks an integrated or independent writing theme.
// The returned theme carries its subtype prefix. Exhausting one subtype
// resets only that subtype's entries.
func SelectWritingTheme(used Set, integrated bool, rng *rand.Rand) (string, Set) {
	prefix := subtypePrefix(integrated)
	return selectFrom(writingSpace(integrated), used, rng, func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// selectFrom draws uniformly from the entries of space not present in
// used. inScope reports which used entries belong to space and may be
// cleared on exhaustion.
func selectFrom(space []string, used Set, rng *rand.Rand, inScope func(string) bool) (string, Set) {
	next := used.clone()
	if len(space) == 0 {
		return "", next
	}
	if rng == nil {
		rng = newRand()
	}

	for attempt := 0; attempt < 2; attempt++ {
		available := make([]string, 0, len(space))
		for _, s := range space {
			if !next[s] {
				available = append(available, s)
			}
		}
		if len(available) > 0 {
			pick := available[rng.IntN(len(available))]
			next[pick] = true
			return pick, next
		}
		for k := range next {
			if inScope(k) {
				delete(next, k)
			}
		}
	}

	// Unreachable with a non-empty space: the reset above empties scope.
	return "", next
}

// Rotation owns the used sets of one session.
type Rotation struct {
	Reading Set
	Writing Set

	rng *rand.Rand
}

// NewRotation creates an empty rotation. A nil rng uses a randomly seeded
// generator.
func NewRotation(rng *rand.Rand) *Rotation {
	if rng == nil {
		rng = newRand()
	}
	return &Rotation{
		Reading: Set{},
		Writing: Set{},
		rng:     rng,
	}
}

// NextReadingTopic selects the next reading topic and records it.
func (r *Rotation) NextReadingTopic() string {
	topic, used := SelectReadingTopic(r.Reading, r.rng)
	r.Reading = used
	return topic
}

// NextWritingTheme selects the next writing theme of the given subtype and
// records it.
func (r *Rotation) NextWritingTheme(integrated bool) string {
	theme, used := SelectWritingTheme(r.Writing, integrated, r.rng)
	r.Writing = used
	return theme
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
