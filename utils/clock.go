// Copyright 2023 Arch Systems Inc.
//
//    All Rights Reserved

package utils

import "time"

// Clock interface
type Clock interface {
	Now() time.Time
}

// RealClock provides a real clock
type RealClock struct{}

// Now returns the current date and time
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a fixed clock for tests
type MockClock struct {
	CurrentTime time.Time
}

// Now returns the configured time
func (c MockClock) Now() time.Time {
	return c.CurrentTime
}
