package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Predicate is one compiled "?(...)" filter expression. The expression is
// restricted: comparisons, boolean operators and the registered helpers
// below over the candidate's fields; no host code runs during evaluation.
type Predicate struct {
	Source string
	prog   *vm.Program
}

func CompilePredicate(src string) (*Predicate, error) {
	rewritten := rewriteHelperCalls(rewriteAtRefs(src))
	prog, err := expr.Compile(rewritten, predicateOpts()...)
	if err != nil {
		return nil, syntaxErr(src, -1, "bad predicate: %v", err)
	}
	return &Predicate{Source: src, prog: prog}, nil
}

// Eval runs the predicate against one candidate. Errors (unknown field,
// type mismatch, non-boolean result) are returned for the caller to treat
// as a non-match.
func (p *Predicate) Eval(c Candidate) (bool, error) {
	env := c.Node.Payload().ToMap()
	env["name"] = c.Node.Name()
	env["is_leaf"] = c.Node.IsLeaf()
	env["is_root"] = c.IsRoot
	env["children"] = map[string]any{"length": c.Node.NumChildren()}
	res, err := expr.Run(p.prog, env)
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("predicate returned %T, want bool", res)
	}
	return b, nil
}

// "contains" and "matches" are infix operators in the expression language,
// so the call-style helpers register under aliased names and
// rewriteHelperCalls translates the public call syntax to them.
var helperAliases = map[string]string{
	"contains": "str_contains",
	"matches":  "str_matches",
}

func predicateOpts() []expr.Option {
	return []expr.Option{
		expr.AllowUndefinedVariables(),
		expr.Function("str_contains", func(params ...any) (any, error) {
			return strings.Contains(params[0].(string), params[1].(string)), nil
		},
			new(func(string, string) bool)),
		expr.Function("startswith", func(params ...any) (any, error) {
			return strings.HasPrefix(params[0].(string), params[1].(string)), nil
		},
			new(func(string, string) bool)),
		expr.Function("endswith", func(params ...any) (any, error) {
			return strings.HasSuffix(params[0].(string), params[1].(string)), nil
		},
			new(func(string, string) bool)),
		expr.Function("str_matches", func(params ...any) (any, error) {
			return regexp.MatchString(params[1].(string), params[0].(string))
		},
			new(func(string, string) bool)),
	}
}

// rewriteAtRefs strips the "@." candidate prefix outside quoted strings, so
// "@.size > 10" compiles as "size > 10" against the candidate env.
func rewriteAtRefs(src string) string {
	var (
		res    []byte
		quote  byte
		inside bool
	)
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inside {
			res = append(res, c)
			if c == '\\' && i+1 < len(src) {
				res = append(res, src[i+1])
				i++
				continue
			}
			if c == quote {
				inside = false
			}
			continue
		}
		if c == '\'' || c == '"' {
			inside = true
			quote = c
			res = append(res, c)
			continue
		}
		if c == '@' && i+1 < len(src) && src[i+1] == '.' {
			i++
			continue
		}
		res = append(res, c)
	}
	return string(res)
}

// rewriteHelperCalls renames reserved helper names in call position, outside
// quoted strings. Infix uses of the same words pass through untouched.
func rewriteHelperCalls(src string) string {
	var (
		res    []byte
		quote  byte
		inside bool
	)
	for i := 0; i < len(src); {
		c := src[i]
		if inside {
			res = append(res, c)
			if c == '\\' && i+1 < len(src) {
				res = append(res, src[i+1])
				i += 2
				continue
			}
			if c == quote {
				inside = false
			}
			i++
			continue
		}
		if c == '\'' || c == '"' {
			inside = true
			quote = c
			res = append(res, c)
			i++
			continue
		}
		if isIdentByte(c) && (i == 0 || (!isIdentByte(src[i-1]) && src[i-1] != '.')) {
			j := i
			for j < len(src) && isIdentByte(src[j]) {
				j++
			}
			if alias, ok := helperAliases[src[i:j]]; ok && callFollows(src, j) {
				res = append(res, alias...)
				i = j
				continue
			}
		}
		res = append(res, c)
		i++
	}
	return string(res)
}

func callFollows(s string, j int) bool {
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	return j < len(s) && s[j] == '('
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
