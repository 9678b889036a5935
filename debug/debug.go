package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Match     bool
	Predicate bool
	Merge     bool
	Transform bool
}

var d *debug

func init() {
	d = &debug{}
	d.Match = boolEnv("TREEPATH_DEBUG_MATCH")
	d.Predicate = boolEnv("TREEPATH_DEBUG_PREDICATE")
	d.Merge = boolEnv("TREEPATH_DEBUG_MERGE")
	d.Transform = boolEnv("TREEPATH_DEBUG_TRANSFORM")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Match() bool {
	return d.Match
}
func Predicate() bool {
	return d.Predicate
}
func Merge() bool {
	return d.Merge
}
func Transform() bool {
	return d.Transform
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
