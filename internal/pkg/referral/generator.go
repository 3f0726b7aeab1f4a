package referral

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
)

const (
	// DefaultAttempts bounds how many candidate codes are tried before giving up.
	DefaultAttempts = 5

	fallbackName = "intern"
	minSuffix    = 1000
	maxSuffix    = 9999
)

// CodeChecker reports whether a referral code is already assigned.
type CodeChecker interface {
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
}

// SuffixSource returns a numeric suffix in [1000, 9999].
type SuffixSource func() int

// Generator produces referral codes of the form <normalized name><4 digits>.
type Generator struct {
	checker  CodeChecker
	attempts int
	suffix   SuffixSource
}

type Option func(*Generator)

// WithAttempts overrides the number of candidates tried per call.
func WithAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.attempts = n
		}
	}
}

// WithSuffixSource replaces the random suffix source.
func WithSuffixSource(src SuffixSource) Option {
	return func(g *Generator) {
		if src != nil {
			g.suffix = src
		}
	}
}

func NewGenerator(checker CodeChecker, opts ...Option) *Generator {
	g := &Generator{
		checker:  checker,
		attempts: DefaultAttempts,
		suffix:   randomSuffix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a code not known to the checker, or ErrCodeGenerationExhausted when every
// attempt collided.
func (g *Generator) Generate(ctx context.Context, displayName string) (string, error) {
	base := Normalize(displayName)
	for i := 0; i < g.attempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code := base + strconv.Itoa(clampSuffix(g.suffix()))
		exists, err := g.checker.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check referral code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", domainErrors.ErrCodeGenerationExhausted
}

// Normalize lowercases name and drops every whitespace rune.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	if b.Len() == 0 {
		return fallbackName
	}
	return b.String()
}

func randomSuffix() int {
	return minSuffix + rand.IntN(maxSuffix-minSuffix+1)
}

func clampSuffix(n int) int {
	switch {
	case n < minSuffix:
		return minSuffix
	case n > maxSuffix:
		return maxSuffix
	default:
		return n
	}
}
