package fs

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	BaseDir      string `json:"base_dir"`
	MetadataExt  string `json:"metadata_ext"`
	NodesCreated int    `json:"nodes_created"`
	LastOpen     string `json:"last_open,omitempty"`
	LastLoaded   int    `json:"last_loaded"`
	LastSkipped  int    `json:"last_skipped"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		BaseDir:      r.config.BaseDir,
		MetadataExt:  r.codec.Ext(),
		NodesCreated: r.created,
		LastOpen:     r.lastOpen,
		LastLoaded:   r.lastLoaded,
		LastSkipped:  r.lastSkipped,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
