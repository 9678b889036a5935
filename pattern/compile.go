package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// Parse tokenizes and compiles a dot-path. An empty pattern is a syntax
// error; a pattern that later matches nothing is not.
func Parse(path string) (Pattern, error) {
	raws, err := Tokenize(path)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, syntaxErr(path, -1, "empty pattern")
	}
	segs := make(Pattern, 0, len(raws))
	for _, raw := range raws {
		// "**[...]" is a deep wildcard with an attached filter: any
		// depth, then a node passing the filter.
		if strings.HasPrefix(raw, "**[") {
			deep, err := Compile("**")
			if err != nil {
				return nil, err
			}
			segs = append(segs, deep)
			raw = raw[2:]
		}
		seg, err := Compile(raw)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// Compile turns one raw segment string into a Segment. Dispatch order, first
// match wins: wildcard, deep wildcard, regex, fuzzy, predicate, index/slice,
// attributes, glob, literal.
func Compile(raw string) (*Segment, error) {
	switch raw {
	case "*", "[*]":
		return &Segment{Kind: WildcardKind, Raw: raw}, nil
	case "**":
		return &Segment{Kind: DeepWildcardKind, Raw: raw}, nil
	}
	if strings.HasPrefix(raw, "~") {
		return compileRegex(raw)
	}
	if strings.HasPrefix(raw, "%") {
		return compileFuzzy(raw)
	}
	if open := strings.IndexByte(raw, '['); open >= 0 {
		if !strings.HasSuffix(raw, "]") {
			return nil, syntaxErr(raw, open, "unmatched '['")
		}
		return compileFilter(raw, raw[:open], raw[open+1:len(raw)-1])
	}
	if strings.ContainsRune(raw, '*') {
		glob, err := compileGlob(raw)
		if err != nil {
			return nil, syntaxErr(raw, -1, "bad glob: %v", err)
		}
		return &Segment{Kind: GlobKind, Raw: raw, Name: raw, glob: glob}, nil
	}
	return &Segment{Kind: LiteralKind, Raw: raw, Name: raw}, nil
}

func compileRegex(raw string) (*Segment, error) {
	body := raw[1:]
	flags := ""
	if j := strings.LastIndexByte(body, '~'); j >= 0 && validRegexFlags(body[j+1:]) {
		flags = body[j+1:]
		body = body[:j]
	}
	if body == "" {
		return nil, syntaxErr(raw, -1, "empty regex")
	}
	expr := body
	if strings.ContainsRune(flags, 'i') {
		expr = "(?i)" + expr
	}
	if strings.ContainsRune(flags, 'm') {
		expr = "(?m)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, syntaxErr(raw, -1, "bad regex: %v", err)
	}
	return &Segment{Kind: RegexKind, Raw: raw, Re: re}, nil
}

func validRegexFlags(flags string) bool {
	if flags == "" {
		return false
	}
	for _, c := range flags {
		if c != 'i' && c != 'm' {
			return false
		}
	}
	return true
}

const defaultFuzzyThreshold = 0.8

func compileFuzzy(raw string) (*Segment, error) {
	body := raw[1:]
	threshold := defaultFuzzyThreshold
	if j := strings.LastIndexByte(body, ':'); j >= 0 {
		t, err := strconv.ParseFloat(body[j+1:], 64)
		if err != nil {
			return nil, syntaxErr(raw, -1, "bad fuzzy threshold %q", body[j+1:])
		}
		threshold = t
		body = body[:j]
	}
	if body == "" {
		return nil, syntaxErr(raw, -1, "empty fuzzy pattern")
	}
	return &Segment{Kind: FuzzyKind, Raw: raw, FuzzyText: body, Threshold: threshold}, nil
}

var intRe = regexp.MustCompile(`^-?\d+$`)

func compileFilter(raw, name, inner string) (*Segment, error) {
	if inner == "" {
		return nil, syntaxErr(raw, -1, "empty filter")
	}
	// a "*" prefix places no constraint on the name; a glob prefix
	// constrains it by pattern
	var nameGlob *regexp.Regexp
	if name == "*" {
		name = ""
	} else if strings.ContainsRune(name, '*') {
		var err error
		nameGlob, err = compileGlob(name)
		if err != nil {
			return nil, syntaxErr(raw, -1, "bad glob: %v", err)
		}
	}
	var (
		seg *Segment
		err error
	)
	switch {
	case inner == "*":
		if nameGlob != nil {
			seg = &Segment{Kind: GlobKind, Raw: raw, Name: name, glob: nameGlob}
			return seg, nil
		}
		if name == "" {
			seg = &Segment{Kind: WildcardKind, Raw: raw}
			return seg, nil
		}
		// name[*] selects every child passing the name test, which is
		// just the literal
		return &Segment{Kind: LiteralKind, Raw: raw, Name: name}, nil
	case strings.HasPrefix(inner, "?(") && strings.HasSuffix(inner, ")"):
		var pred *Predicate
		pred, err = CompilePredicate(inner[2 : len(inner)-1])
		if err != nil {
			return nil, err
		}
		seg = &Segment{Kind: PredicateKind, Raw: raw, Name: name, Pred: pred}
	case intRe.MatchString(inner):
		idx, aerr := strconv.Atoi(inner)
		if aerr != nil {
			return nil, syntaxErr(raw, -1, "bad index %q", inner)
		}
		seg = &Segment{Kind: IndexKind, Raw: raw, Name: name, Idx: idx}
	case isSlice(inner):
		seg, err = compileSlice(raw, name, inner)
		if err != nil {
			return nil, err
		}
	case strings.ContainsRune(inner, '='):
		seg, err = compileAttrs(raw, name, inner)
		if err != nil {
			return nil, err
		}
	default:
		return nil, syntaxErr(raw, -1, "unknown filter shape %q", inner)
	}
	seg.glob = nameGlob
	return seg, nil
}

func isSlice(inner string) bool {
	if !strings.ContainsRune(inner, ':') {
		return false
	}
	for _, part := range strings.Split(inner, ":") {
		if part != "" && !intRe.MatchString(part) {
			return false
		}
	}
	return true
}

func compileSlice(raw, name, inner string) (*Segment, error) {
	parts := strings.Split(inner, ":")
	if len(parts) > 3 {
		return nil, syntaxErr(raw, -1, "bad slice %q", inner)
	}
	seg := &Segment{Kind: SliceKind, Raw: raw, Name: name}
	dst := []**int{&seg.Start, &seg.Stop, &seg.Step}
	for i, part := range parts {
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, syntaxErr(raw, -1, "bad slice %q", inner)
		}
		*dst[i] = &v
	}
	return seg, nil
}

func compileAttrs(raw, name, inner string) (*Segment, error) {
	attrs := make(map[string]any)
	for _, kv := range strings.Split(inner, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, syntaxErr(raw, -1, "bad attribute %q", kv)
		}
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, syntaxErr(raw, -1, "bad attribute %q", kv)
		}
		attrs[k] = CoerceValue(strings.TrimSpace(v))
	}
	return &Segment{Kind: AttributeKind, Raw: raw, Name: name, Attrs: attrs}, nil
}

// CoerceValue applies the DSL value coercion rules: quoted strings are
// unquoted, all-digit runs become int64, a single decimal point makes a
// float64, case-insensitive true/false become bool, anything else stays a
// string.
func CoerceValue(s string) any {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	if intRe.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	}
	if strings.Count(s, ".") == 1 {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func compileGlob(raw string) (*regexp.Regexp, error) {
	parts := strings.Split(raw, "*")
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}
