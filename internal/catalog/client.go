package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/handiism/album-formatter/internal/httpx"
	"github.com/handiism/album-formatter/internal/model"
)

// Client fetches and parses Apple Music album pages.
//
// Example:
//
//	client := catalog.NewClient(httpClient, logger)
//	album, err := client.FetchAlbum(ctx, "https://music.apple.com/us/album/thriller/269572838")
type Client struct {
	http   *httpx.Client
	logger *slog.Logger
}

// NewClient creates a catalog Client. A nil logger disables logging.
func NewClient(http *httpx.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{http: http, logger: logger}
}

// FetchAlbum downloads the album page and parses it into a CatalogAlbum.
func (c *Client) FetchAlbum(ctx context.Context, url string) (*model.CatalogAlbum, error) {
	c.logger.Debug("fetching album page", "url", url)

	page, err := c.http.GetString(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	album, err := ParseAlbumPage(page)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	c.logger.Info("fetched album",
		"album", album.Name, "artist", album.ArtistLine(), "tracks", len(album.Tracks))
	return album, nil
}

// FetchArtwork downloads the album's cover art. Returns nil bytes when the
// album has no artwork URL.
func (c *Client) FetchArtwork(ctx context.Context, album *model.CatalogAlbum) ([]byte, error) {
	if !album.HasArtwork() {
		return nil, nil
	}
	return c.http.DownloadBytes(ctx, album.ArtworkURL)
}
