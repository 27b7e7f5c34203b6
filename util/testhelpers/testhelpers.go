// Copyright 2025-2026, Synclabs, Inc.
// For license information, see https://github.com/synclabs/taggedcell/blob/master/LICENSE

package testhelpers

import (
	"math/rand"
	"testing"
	"time"
)

var (
	red   = "\033[31;1m"
	clear = "\033[0;0m"
)

// Fail a test should an error occur
func RequireImpl(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatal(red, printables, err, clear)
	}
}

func FailImpl(t *testing.T, printables ...interface{}) {
	t.Helper()
	t.Fatal(red, printables, clear)
}

// Computes a pseudo-random uint64 on the interval [min, max]
func RandomUint64(min, max uint64) uint64 {
	return uint64(rand.Uint64()%(max-min+1) + min)
}

// Sleeps for a pseudo-random duration in [0, max), to jitter goroutine
// schedules in concurrency tests.
func RandomSleep(max time.Duration) {
	time.Sleep(time.Duration(rand.Int63n(int64(max))))
}
