package pattern

import (
	"regexp"

	"github.com/treepath/treepath/debug"
	"github.com/treepath/treepath/tree"
)

type Kind int

const (
	LiteralKind Kind = iota
	GlobKind
	WildcardKind
	DeepWildcardKind
	AttributeKind
	PredicateKind
	RegexKind
	FuzzyKind
	IndexKind
	SliceKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		LiteralKind:      "Literal",
		GlobKind:         "Glob",
		WildcardKind:     "Wildcard",
		DeepWildcardKind: "DeepWildcard",
		AttributeKind:    "Attribute",
		PredicateKind:    "Predicate",
		RegexKind:        "Regex",
		FuzzyKind:        "Fuzzy",
		IndexKind:        "Index",
		SliceKind:        "Slice",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Segment is one compiled unit of a dot-path: a closed tagged variant
// discriminated by Kind. Bracket filters may carry a literal Name prefix
// (e.g. "user[type=admin]" has Name "user").
type Segment struct {
	Kind Kind
	Raw  string

	// Name is the literal for LiteralKind and the optional prefix for
	// bracket filter kinds; empty means no prefix.
	Name string

	Attrs     map[string]any // AttributeKind
	Pred      *Predicate     // PredicateKind
	Re        *regexp.Regexp // RegexKind
	FuzzyText string         // FuzzyKind
	Threshold float64        // FuzzyKind

	Idx               int  // IndexKind
	Start, Stop, Step *int // SliceKind; nil means unspecified

	glob *regexp.Regexp // GlobKind
}

// Candidate is one node tested against a segment, together with the sibling
// position the matcher observed while walking the parent.
type Candidate struct {
	Node     *tree.Node
	Pos      int // index among the parent's children
	Siblings int // number of the parent's children
	IsRoot   bool
}

// Matches reports whether the candidate satisfies the segment. Predicate
// evaluation errors fail closed: the candidate is a non-match and the error
// is visible only through TREEPATH_DEBUG_PREDICATE.
func (s *Segment) Matches(c Candidate) bool {
	if s.Name != "" && s.Kind != LiteralKind && s.Kind != GlobKind {
		if s.glob != nil {
			if !s.glob.MatchString(c.Node.Name()) {
				return false
			}
		} else if c.Node.Name() != s.Name {
			return false
		}
	}
	switch s.Kind {
	case LiteralKind:
		return c.Node.Name() == s.Name
	case GlobKind:
		return s.glob.MatchString(c.Node.Name())
	case WildcardKind, DeepWildcardKind:
		return true
	case AttributeKind:
		payload := c.Node.Payload()
		for k, want := range s.Attrs {
			got, ok := payload.Get(k)
			if !ok || !tree.ValueEqual(want, got) {
				return false
			}
		}
		return true
	case PredicateKind:
		ok, err := s.Pred.Eval(c)
		if err != nil {
			if debug.Predicate() {
				debug.Logf("predicate %q failed closed on %q: %v\n", s.Pred.Source, c.Node.Name(), err)
			}
			return false
		}
		return ok
	case RegexKind:
		return s.Re.MatchString(c.Node.Name())
	case FuzzyKind:
		return Ratio(c.Node.Name(), s.FuzzyText) >= s.Threshold
	case IndexKind:
		idx := s.Idx
		if idx < 0 {
			idx += c.Siblings
		}
		return c.Pos == idx
	case SliceKind:
		return sliceContains(c.Pos, c.Siblings, s.Start, s.Stop, s.Step)
	}
	return false
}

// sliceContains implements slice membership with the usual negative-index
// and clamping rules.
func sliceContains(pos, n int, start, stop, step *int) bool {
	st := 1
	if step != nil {
		st = *step
	}
	if st == 0 {
		return false
	}
	var lo, hi int
	if st > 0 {
		lo, hi = 0, n
	} else {
		lo, hi = n-1, -1
	}
	if start != nil {
		lo = normIndex(*start, n, st)
	}
	if stop != nil {
		hi = normIndex(*stop, n, st)
	}
	if st > 0 {
		if pos < lo || pos >= hi {
			return false
		}
		return (pos-lo)%st == 0
	}
	if pos > lo || pos <= hi {
		return false
	}
	return (lo-pos)%(-st) == 0
}

func normIndex(i, n, step int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		if step > 0 {
			return 0
		}
		return -1
	}
	if i >= n {
		if step > 0 {
			if i > n {
				return n
			}
			return i
		}
		return n - 1
	}
	return i
}

// Pattern is a compiled dot-path: an ordered segment sequence.
type Pattern []*Segment
