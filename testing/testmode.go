// Package testing puts the process in test mode. Test files import it for
// its side effects:
//
//	import _ "github.com/inventory-pro/dashboard/testing"
package testing

import "os"

// Values applied unless the environment already sets them. An empty
// GOTENBERG_URL keeps PDF export disabled.
var defaults = map[string]string{
	"DASHBOARD_TEST_MODE": "1",
	"GOTENBERG_URL":       "",
	"LOG_LEVEL":           "error",
}

func init() {
	for key, value := range defaults {
		if _, ok := os.LookupEnv(key); !ok {
			_ = os.Setenv(key, value)
		}
	}
}
