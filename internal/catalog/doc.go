// Package catalog retrieves the canonical album description from Apple
// Music.
//
// Album pages embed a schema.org MusicAlbum JSON block; the parser
// extracts it, tolerating the several shapes Apple uses for artist and
// genre fields, and converts it into the model.CatalogAlbum consumed by
// the matching engine. The cover art URL is rewritten to the fixed
// 512x512 rendition.
//
//	client := catalog.NewClient(httpx.NewClient(timeout), logger)
//	album, err := client.FetchAlbum(ctx, albumURL)
package catalog
