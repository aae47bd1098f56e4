package app

import (
	"os"
	"strconv"
)

// TestModeEnv switches entry points into test mode. testing/TestMain.go sets it.
const TestModeEnv = "PEDIZONE_TEST_MODE"

// InTestMode reports whether entry points should return before dialing
// PostgreSQL, Redis or MongoDB. Any true value strconv.ParseBool accepts
// enables it.
func InTestMode() bool {
	on, err := strconv.ParseBool(os.Getenv(TestModeEnv))
	return err == nil && on
}
