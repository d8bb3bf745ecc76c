package assets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/padview/padview/internal/padviewd/errors"
)

// Fetcher downloads mission images into a Store.
type Fetcher struct {
	store  *Store
	http   *http.Client
	logger *slog.Logger
}

// NewFetcher creates a Fetcher using the given store.
func NewFetcher(store *Store, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		store:  store,
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Download retrieves rawURL into the store and returns the saved path. The
// URL's basename (with its exact extension) names the cached file.
func (f *Fetcher) Download(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", errors.NewError("ASSET_UNAVAILABLE",
			fmt.Sprintf("invalid image URL %q", rawURL),
			"assets.Download", errors.ErrAssetUnavailable)
	}

	name := path.Base(u.Path)
	if _, err := FormatFromPath(name); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.NewError("ASSET_UNAVAILABLE",
			fmt.Sprintf("building image request: %v", err),
			"assets.Download", errors.ErrAssetUnavailable)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return "", errors.NewError("ASSET_UNAVAILABLE",
			fmt.Sprintf("downloading image: %v", err),
			"assets.Download", errors.ErrAssetUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewError("ASSET_UNAVAILABLE",
			fmt.Sprintf("image download returned status %d", resp.StatusCode),
			"assets.Download", errors.ErrAssetUnavailable)
	}

	saved, err := f.store.Save(name, resp.Body)
	if err != nil {
		return "", errors.NewError("ASSET_UNAVAILABLE",
			fmt.Sprintf("saving image: %v", err),
			"assets.Download", errors.ErrAssetUnavailable)
	}

	f.logger.Info("image downloaded", "url", rawURL, "path", saved)
	return saved, nil
}
