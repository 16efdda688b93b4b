// Package guard switches binaries into test mode when blank-imported from a
// test, so calling main does not start servers or dial Redis.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("WEALTHDASH_TEST_MODE") == "" {
			_ = os.Setenv("WEALTHDASH_TEST_MODE", "1")
		}
	})
}
