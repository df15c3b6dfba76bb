package store

import (
	"path/filepath"

	"github.com/elves/gallery/pkg/must"
	"github.com/elves/gallery/pkg/testutil"
)

// MustTempStore returns a Store backed by a file in a temporary directory. The
// Store is closed when the test finishes.
func MustTempStore(c testutil.Cleanuper) Store {
	st := must.OK1(NewStore(filepath.Join(testutil.TempDir(c), "db")))
	c.Cleanup(func() { st.Close() })
	return st
}
