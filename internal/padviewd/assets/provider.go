package assets

import (
	"context"
	"log/slog"

	"github.com/padview/padview/internal/padviewd/launch"
)

// Provider combines the fetcher and decoder into the single collaborator the
// display cycle uses to acquire a session's background image.
type Provider struct {
	store   *Store
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewProvider creates a provider over the given store.
func NewProvider(store *Store, logger *slog.Logger) *Provider {
	return &Provider{
		store:   store,
		fetcher: NewFetcher(store, logger),
		logger:  logger,
	}
}

// Acquire downloads and decodes the referenced image. A reference without a
// URL yields (nil, nil): a session with no image is not an error.
func (p *Provider) Acquire(ctx context.Context, ref launch.ImageRef) (*Asset, error) {
	url, ok := ref.URL()
	if !ok {
		return nil, nil
	}

	path, err := p.fetcher.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Clear empties the on-disk cache.
func (p *Provider) Clear() error {
	return p.store.Clear()
}
