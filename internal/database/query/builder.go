// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package query

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source formats understood by FileSource.
const (
	FormatAuto    = "auto"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// WhereBuilder accumulates AND-joined predicates and their bind arguments.
//
//	where, args := query.NewWhereBuilder().
//	    AddClause("rating IS NOT NULL").
//	    AddIn("title", []string{"Dune", "Emma"}).
//	    BuildWithPrefix()
//	// WHERE rating IS NOT NULL AND title IN (?, ?)
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

func NewWhereBuilder() *WhereBuilder { return &WhereBuilder{} }

// AddClause appends a predicate whose ? placeholders bind args.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn appends "expr IN (?, ...)". No values means no predicate, not an
// empty IN list.
func (wb *WhereBuilder) AddIn(expr string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return wb.AddClause(expr+" IN ("+marks+")", args...)
}

// Build returns the joined predicates, or the tautology "1=1" when there
// are none.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if wb.IsEmpty() {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	where, args := wb.Build()
	return "WHERE " + where, args
}

func (wb *WhereBuilder) Count() int    { return len(wb.clauses) }
func (wb *WhereBuilder) IsEmpty() bool { return len(wb.clauses) == 0 }

// QuoteLiteral quotes s as a SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteIdent quotes s as a SQL identifier.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// DetectFormat resolves FormatAuto from the file extension. Compressed CSV
// (".csv.gz") counts as CSV.
func DetectFormat(path, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatParquet:
		return FormatParquet, nil
	case "", FormatAuto:
	default:
		return "", fmt.Errorf("unsupported dataset format %q", format)
	}

	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".zst")
	switch filepath.Ext(name) {
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("cannot detect dataset format from %q", path)
	}
}

// FileSource returns the DuckDB table function reading path in format.
// Table function arguments cannot be bound as parameters, so the path is
// quoted as a literal.
func FileSource(path, format string) (string, error) {
	resolved, err := DetectFormat(path, format)
	if err != nil {
		return "", err
	}
	if resolved == FormatParquet {
		return fmt.Sprintf("read_parquet(%s)", QuoteLiteral(path)), nil
	}
	return fmt.Sprintf("read_csv_auto(%s, header = true)", QuoteLiteral(path)), nil
}
