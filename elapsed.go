package patan

// RecordElapsed runs task and records its duration in milliseconds under
// name+".ok" or name+".failed", returning the task's result and error
// unchanged. It is the value-returning form of RecordElapsedTimeOf; Go
// methods cannot take type parameters.
func RecordElapsed[T any](s Statistics, name string, task func() (T, error)) (T, error) {
	var result T
	err := s.RecordElapsedTimeOf(name, func() error {
		var err error
		result, err = task()
		return err
	})
	return result, err
}

// RecordElapsedNanosResult is RecordElapsed with nanosecond durations.
func RecordElapsedNanosResult[T any](s Statistics, name string, task func() (T, error)) (T, error) {
	var result T
	err := s.RecordElapsedNanosOf(name, func() error {
		var err error
		result, err = task()
		return err
	})
	return result, err
}
