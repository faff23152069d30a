package text

import (
	"strings"

	"github.com/walteh/deeprename/pkg/errs"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Pair is a literal search/replace keyword pair
type Pair struct {
	From string `json:"from" yaml:"from" hcl:"from"`
	To   string `json:"to" yaml:"to" hcl:"to"`
}

// 🔍 Validate checks that the pair can be applied
func (p Pair) Validate() error {
	if p.From == "" {
		return errors.Errorf("%w: search keyword must not be empty", errs.ErrConfiguration)
	}
	return nil
}

// Noop reports whether applying the pair can never change anything.
func (p Pair) Noop() bool {
	return p.From == p.To
}

// Repeats reports whether the replacement text contains the search text.
func (p Pair) Repeats() bool {
	return strings.Contains(p.To, p.From)
}

func (p Pair) String() string {
	return p.From + "=" + p.To
}

// 📝 ParsePair parses "from=to" or "from|to"
func ParsePair(s string) (Pair, error) {
	sep := strings.IndexAny(s, "=|")
	if sep < 0 {
		return Pair{}, errors.Errorf("%w: pair %q must look like FROM=TO", errs.ErrConfiguration, s)
	}
	p := Pair{From: s[:sep], To: s[sep+1:]}
	if err := p.Validate(); err != nil {
		return Pair{}, errors.Errorf("parsing pair %q: %w", s, err)
	}
	return p, nil
}

// 🔄 Rewrite replaces every non-overlapping occurrence of from, scanning left
// to right. Matching is byte-exact and case-sensitive.
func Rewrite(segment, from, to string) string {
	if from == "" {
		return segment
	}
	return strings.ReplaceAll(segment, from, to)
}

// RewriteLast replaces only the rightmost occurrence of from in s and returns
// the index of the replaced occurrence, or -1 if s does not contain from.
func RewriteLast(s, from, to string) (string, int) {
	if from == "" {
		return s, -1
	}
	idx := strings.LastIndex(s, from)
	if idx < 0 {
		return s, -1
	}
	return s[:idx] + to + s[idx+len(from):], idx
}
