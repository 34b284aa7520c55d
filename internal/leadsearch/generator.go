package leadsearch

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

const (
	idMin           = 1000
	idMax           = 9999
	contactNumMin   = 1
	contactNumMax   = 100
	maxNeedsPerLead = 4
)

// GeneratorSettings bounds the random draws. Both ranges are inclusive.
type GeneratorSettings struct {
	PoolMin  int
	PoolMax  int
	NeedsMin int
	NeedsMax int
}

// DefaultGeneratorSettings returns a pool of 5-12 leads with 1-3 needs each.
func DefaultGeneratorSettings() GeneratorSettings {
	return GeneratorSettings{PoolMin: 5, PoolMax: 12, NeedsMin: 1, NeedsMax: 3}
}

// Validate checks the ranges against each other and against the needs table size.
func (s GeneratorSettings) Validate(needsAvailable int) error {
	switch {
	case s.PoolMin < 1 || s.PoolMax < s.PoolMin:
		return fmt.Errorf("%w: pool size range %d-%d", ErrInvalidSettings, s.PoolMin, s.PoolMax)
	case s.NeedsMin < 1 || s.NeedsMax < s.NeedsMin || s.NeedsMax > maxNeedsPerLead:
		return fmt.Errorf("%w: needs range %d-%d", ErrInvalidSettings, s.NeedsMin, s.NeedsMax)
	case s.NeedsMax > needsAvailable:
		return fmt.Errorf("%w: needs max %d exceeds %d vocabulary entries", ErrInvalidSettings, s.NeedsMax, needsAvailable)
	}
	return nil
}

// Generator synthesizes lead pools. It holds no mutable state; randomness is
// supplied per call so one Generator can serve concurrent requests.
type Generator struct {
	vocab    *Vocabulary
	settings GeneratorSettings
	now      func() time.Time
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithClock overrides the time source used for FoundAt.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator validates the vocabulary and settings.
func NewGenerator(vocab *Vocabulary, settings GeneratorSettings, opts ...GeneratorOption) (*Generator, error) {
	if vocab == nil {
		return nil, fmt.Errorf("%w: nil vocabulary", ErrInvalidVocabulary)
	}
	if err := vocab.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(len(vocab.Needs)); err != nil {
		return nil, err
	}
	g := &Generator{
		vocab:    vocab,
		settings: settings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate draws a pool of leads whose scores lie in [minScore, ScoreCeiling].
// A negative minScore is raised to zero. When minScore exceeds the ceiling
// every lead gets ScoreCeiling, which the score filter then rejects.
func (g *Generator) Generate(rng *rand.Rand, minScore int) []Lead {
	size := intBetween(rng, g.settings.PoolMin, g.settings.PoolMax)
	foundAt := g.now().UTC()
	leads := make([]Lead, 0, size)
	for range size {
		leads = append(leads, g.lead(rng, minScore, foundAt))
	}
	return leads
}

func (g *Generator) lead(rng *rand.Rand, minScore int, foundAt time.Time) Lead {
	v := g.vocab
	return Lead{
		ID:       "client_" + strconv.Itoa(intBetween(rng, idMin, idMax)),
		Name:     pick(rng, v.FirstNames) + " " + pick(rng, v.Surnames),
		Company:  pick(rng, v.Companies),
		Industry: pick(rng, v.Industries),
		Needs:    sample(rng, v.Needs, intBetween(rng, g.settings.NeedsMin, g.settings.NeedsMax)),
		Score:    drawScore(rng, minScore),
		Contact:  fmt.Sprintf("contact@company%d%s", intBetween(rng, contactNumMin, contactNumMax), v.ContactDomain),
		Source:   pick(rng, v.Sources),
		FoundAt:  foundAt,
	}
}

func drawScore(rng *rand.Rand, minScore int) int {
	floor := max(minScore, 0)
	if floor >= ScoreCeiling {
		return ScoreCeiling
	}
	return intBetween(rng, floor, ScoreCeiling)
}

// intBetween returns a uniform int in [lo, hi].
func intBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func pick(rng *rand.Rand, table []string) string {
	return table[rng.IntN(len(table))]
}

// sample draws k distinct entries without replacement, in draw order.
func sample(rng *rand.Rand, table []string, k int) []string {
	idx := make([]int, len(table))
	for i := range idx {
		idx[i] = i
	}
	out := make([]string, 0, k)
	for i := range k {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, table[idx[i]])
	}
	return out
}
