package pattern

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Ratio returns a similarity ratio in [0,1] between two strings:
// 2*M/T where M is the number of bytes in common runs and T the total
// length of both strings. Two empty strings are fully similar.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(a, b, false)
	common := 0
	for i := range diffs {
		if diffs[i].Type == diffpatch.DiffEqual {
			common += len(diffs[i].Text)
		}
	}
	return 2 * float64(common) / float64(len(a)+len(b))
}
