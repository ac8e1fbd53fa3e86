package utils

import (
	"sync"
	"time"
)

var (
	sleepFunc func(time.Duration)
	mu        sync.Mutex // guards sleepFunc
)

func init() {
	ResetSleepFunc()
}

// Sleep calls the current sleep function. Retry loops use it so tests can
// observe backoff without waiting.
func Sleep(d time.Duration) {
	mu.Lock()
	f := sleepFunc
	mu.Unlock()
	f(d)
}

// SetSleepFunc allows for overriding the default sleep function, primarily for testing.
func SetSleepFunc(f func(time.Duration)) {
	mu.Lock()
	sleepFunc = f
	mu.Unlock()
}

// ResetSleepFunc resets the sleep function to the default time.Sleep.
func ResetSleepFunc() {
	SetSleepFunc(time.Sleep)
}
