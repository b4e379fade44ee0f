// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package storage persists similarity index artifacts.
//
// Fitting the nearest-neighbour table is quadratic in the number of titles, so
// folioctl can fit it once and the server can load it at startup instead of
// refitting.
//
// # Storage Format
//
// Artifacts are stored with metadata in a gob-encoded, gzip-compressed file:
//
//	filename: {name}_v{version}.gob.gz
//
//	structure:
//	  - Metadata (ModelMetadata, including a SHA-256 checksum)
//	  - CompressedData (gzip-compressed gob-encoded state)
//
// The checksum is computed over the uncompressed gob bytes and verified on
// every load.
//
// # Usage Example
//
//	store, err := storage.NewStore("/data/model")
//	if err != nil {
//	    return err
//	}
//
//	meta := storage.ModelMetadata{ItemCount: len(state.Titles), TrainedAt: time.Now()}
//	err = store.Save(ctx, "similarity", 1, state, meta)
//
//	var loaded storage.SimilarityState
//	meta, err := store.Load(ctx, "similarity", 0, &loaded) // 0 = latest version
//
// # Thread Safety
//
// A Store serializes writes with a mutex; concurrent loads are allowed.
package storage
