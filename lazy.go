package geofy

import (
	"errors"
	"sync"
)

// ErrNotConfigured is returned by detectors whose collaborator constructor
// was never injected.
var ErrNotConfigured = errors.New("geofy: collaborator not configured")

// lazy memoizes a single expensive construction. The first caller runs
// init; everyone else (including concurrent first-calls) gets the same
// value or the same sticky error.
type lazy[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (l *lazy[T]) get(init func() (T, error)) (T, error) {
	l.once.Do(func() {
		if init == nil {
			l.err = ErrNotConfigured
			return
		}
		l.v, l.err = init()
	})
	return l.v, l.err
}

// getEmbedder returns the process-wide embedding model, loading it on
// first use.
func (cfg *Config) getEmbedder() (Embedder, error) {
	return cfg.embedder.get(cfg.NewEmbedder)
}

// getTextReader returns the process-wide OCR engine, loading it on
// first use.
func (cfg *Config) getTextReader() (TextReader, error) {
	return cfg.textReader.get(cfg.NewTextReader)
}
