package pattern

// Tokenize splits a dot-path into raw segment strings. A '.' separates
// segments only at bracket depth 0; '\.' escapes a literal dot into the
// current segment. Empty segments are dropped. Unbalanced brackets are a
// *SyntaxError naming the offending byte index.
func Tokenize(path string) ([]string, error) {
	var (
		segs  []string
		cur   []byte
		depth int
	)
	openAt := -1
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch c {
		case '\\':
			if i+1 < len(path) && path[i+1] == '.' {
				cur = append(cur, '.')
				i++
				continue
			}
			cur = append(cur, c)
		case '[':
			if depth == 0 {
				openAt = i
			}
			depth++
			cur = append(cur, c)
		case ']':
			depth--
			if depth < 0 {
				return nil, syntaxErr(path, i, "unmatched ']'")
			}
			cur = append(cur, c)
		case '.':
			if depth > 0 {
				cur = append(cur, c)
				continue
			}
			if len(cur) > 0 {
				segs = append(segs, string(cur))
				cur = cur[:0]
			}
		default:
			cur = append(cur, c)
		}
	}
	if depth > 0 {
		return nil, syntaxErr(path, openAt, "unmatched '['")
	}
	if len(cur) > 0 {
		segs = append(segs, string(cur))
	}
	return segs, nil
}
