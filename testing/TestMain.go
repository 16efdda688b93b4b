// Package testing puts the binaries into test mode for packages whose tests
// delegate their TestMain here.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var prepare sync.Once

// testEnv is applied before any test runs. REDIS_ADDR is cleared so the page
// cache stays disabled unless a test starts miniredis itself.
var testEnv = map[string]string{
	"WEALTHDASH_TEST_MODE": "1",
	"LOG_FORMAT":           "json",
}

// Prepare applies the test environment once per process.
func Prepare() {
	prepare.Do(func() {
		for key, value := range testEnv {
			_ = os.Setenv(key, value)
		}
		if os.Getenv("GOTENBERG_URL") == "" {
			_ = os.Setenv("GOTENBERG_URL", "http://127.0.0.1:0")
		}
		_ = os.Unsetenv("REDIS_ADDR")
	})
}

// TestMain prepares the environment and runs the package tests.
func TestMain(m *stdtesting.M) {
	Prepare()
	os.Exit(m.Run())
}
