package patan

import "github.com/toefel18/patan/internal/store"

// ErrInvalidArgument is returned for empty names, nil snapshot components
// and a nil wrapped Statistics.
var ErrInvalidArgument = store.ErrInvalidArgument

// Suffixes appended to the name given to the task-timing methods.
const (
	SuffixOK     = ".ok"
	SuffixFailed = ".failed"
)
