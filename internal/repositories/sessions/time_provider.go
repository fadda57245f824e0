package sessions

import "time"

// TimeProvider stamps CreatedAt and UpdatedAt
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider uses the wall clock
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FixedTimeProvider always returns T, for tests
type FixedTimeProvider struct {
	T time.Time
}

func (f *FixedTimeProvider) Now() time.Time {
	return f.T
}
