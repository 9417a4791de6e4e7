// internal/app/features/imagesapi/lister.go
package imagesapi

import (
	"context"
	"os"
)

// DirLister lists image names from a local directory. It backs the list
// endpoint for local storage deployments; a missing directory is an empty
// manager, not an error.
type DirLister struct {
	Dir string
}

// List returns the plain file names in the directory, skipping
// subdirectories.
func (l DirLister) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
