package treepath

import (
	"errors"
	"fmt"

	"github.com/treepath/treepath/tree"
)

var (
	// ErrValidation is the sentinel wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrMergeConflict is the sentinel wrapped by every MergeConflictError.
	ErrMergeConflict = errors.New("merge conflict")
)

// ValidationError reports the first node rejected by Validate when it is
// asked to raise.
type ValidationError struct {
	Node   *tree.Node
	Path   string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s at %s: %v", ErrValidation.Error(), e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MergeConflictError reports a payload key both trees define with unequal
// values while merging with StrategyCustom and no resolver.
type MergeConflictError struct {
	Path string
	Key  string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("%s at %s on key %q: no resolver supplied", ErrMergeConflict.Error(), e.Path, e.Key)
}

func (e *MergeConflictError) Unwrap() error {
	return ErrMergeConflict
}
