package platform

import (
	"github.com/aretw0/quire/pkg/adapters/fs"
	"github.com/aretw0/quire/pkg/core"
)

// New creates a Service backed by the configured repository.
//
//	svc, err := quire.New(quire.WithBaseDir("./notes"), quire.WithLogger(logger))
func New(opts ...Option) (*core.Service, error) {
	o := applyOptions(opts)
	return core.NewService(repository(o), o.logger), nil
}

// repository returns the injected repository or a filesystem one.
func repository(o *options) core.Repository {
	if o.repository != nil {
		return o.repository
	}
	return fs.NewRepository(fs.Config{
		BaseDir: o.baseDir,
		Logger:  o.logger,
		Codec:   o.codec,
	})
}
