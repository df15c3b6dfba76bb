// Package env keeps names of environment variables with special significance to
// the gallery programs.
package env

// Environment variables with special significance to the gallery programs.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	GALLERY_CONFIG          = "GALLERY_CONFIG"
	GALLERY_TEST_TIME_SCALE = "GALLERY_TEST_TIME_SCALE"
	HOME                    = "HOME"
	XDG_CONFIG_HOME         = "XDG_CONFIG_HOME"
)
