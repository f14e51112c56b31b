package app

import (
	"mime"
	"os"
	"strconv"
	"sync"
)

// DASHBOARD_TEST_MODE keeps cmd/dashboard from opening sockets under go test.
const testModeEnv = "DASHBOARD_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	on, _ := strconv.ParseBool(os.Getenv(testModeEnv))
	return on
})

// InTestMode reports whether the process runs under the test harness.
func InTestMode() bool {
	return testMode()
}

// Slim container images ship without /etc/mime.types.
var staticTypes = map[string]string{
	".css": "text/css; charset=utf-8",
	".js":  "text/javascript; charset=utf-8",
	".svg": "image/svg+xml",
}

func init() {
	for ext, typ := range staticTypes {
		if mime.TypeByExtension(ext) == "" {
			_ = mime.AddExtensionType(ext, typ)
		}
	}
}
