// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

/*
Package query provides SQL building utilities for the database package.

WhereBuilder assembles parameterized WHERE clauses. FileSource and
DetectFormat turn a dataset path into the DuckDB table function that reads it:

	src, _ := query.FileSource("/data/final_rating.parquet", query.FormatAuto)
	// read_parquet('/data/final_rating.parquet')

	src, _ = query.FileSource("/data/final_rating.csv", query.FormatAuto)
	// read_csv_auto('/data/final_rating.csv', header = true)

Paths are embedded as quoted literals because DuckDB does not accept bound
parameters as table function arguments. QuoteLiteral doubles embedded single
quotes so any file name is safe to embed.
*/
package query
