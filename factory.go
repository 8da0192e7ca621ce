package patan

// New returns statistics that are safe for concurrent use.
func New() Statistics {
	// NewSynchronized only fails for a nil argument
	s, _ := NewSynchronized(NewFacade())
	return s
}

// NewSingleThreaded returns statistics without any locking. Use it when a
// single goroutine owns all recording and reading.
func NewSingleThreaded() Statistics {
	return NewFacade()
}
