package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
)

// LibraryFile is the metadata file marking a library root with the default codec.
var LibraryFile = fs.LibraryBase + fs.NewYAMLCodec().Ext()

// FindRoot looks upwards from startDir for the nearest directory holding a
// library file and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, LibraryFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: no %s in %s or any parent", core.ErrNotLibrary, LibraryFile, abs)
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.Mode().IsRegular()
}
