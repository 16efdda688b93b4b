package app

import (
	"os"
	"sync"
)

const testModeEnv = "WEALTHDASH_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	return os.Getenv(testModeEnv) == "1"
})

// InTestMode reports whether WEALTHDASH_TEST_MODE=1 was set when first
// checked. The binaries return from main before any side effect when it is.
func InTestMode() bool {
	return testMode()
}
