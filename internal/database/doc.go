// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package database reads the rating dataset with an embedded, in-memory DuckDB.

The dataset is a flat file of rating records with the columns

	title     VARCHAR  required
	user_id   any      required, read as text
	rating    any      required, non-numeric values become NaN
	image_url VARCHAR  optional

in CSV (optionally compressed) or Parquet form. DuckDB infers the schema
(read_csv_auto / read_parquet), so numeric user IDs and ratings stored as
text both load without a schema file. Rows without a title or user_id are
dropped; everything else is passed through unchanged in file order, and
recommend.BuildMatrix applies the remaining record rules.

Usage:

	records, err := database.ReadRatings(ctx, &cfg.Dataset)
	if err != nil {
	    return err
	}
	matrix, averages, err := recommend.BuildMatrix(records)

The DuckDB instance exists only for the duration of the read; nothing is
persisted.
*/
package database
