// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-soup-sync/models"
)

const (
	soupEntriesTable = "soup_entries"
	soupsTable       = "soups"
	syncStatesTable  = "sync_states"
)

var (
	pathPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	soupNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func validateSoupName(name string) error {
	if !soupNamePattern.MatchString(name) {
		return fmt.Errorf("%w: soup %q", ErrInvalidPath, name)
	}
	return nil
}

func validatePath(path string) error {
	if !pathPattern.MatchString(path) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return nil
}

func jsonPath(path string) string {
	return "$." + path
}

// indexName is safe to splice into DDL: soup and path are validated
// identifiers and dots become underscores.
func indexName(soup, path string) string {
	return "soup_idx_" + soup + "_" + strings.ReplaceAll(path, ".", "_")
}

func buildCreateIndexStatement(soup, path string) (string, error) {
	if err := validateSoupName(soup); err != nil {
		return "", err
	}
	if err := validatePath(path); err != nil {
		return "", err
	}
	// expression indexes cannot take bound parameters
	return fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s ON %s (soup, json_extract(doc, '%s'))`,
		indexName(soup, path), soupEntriesTable, jsonPath(path),
	), nil
}

func applySoupFilters(b sq.SelectBuilder, spec models.QuerySpec) (sq.SelectBuilder, error) {
	if err := validateSoupName(spec.Soup); err != nil {
		return b, err
	}
	b = b.Where(sq.Eq{"soup": spec.Soup})

	if !spec.IncludeDeleted {
		b = b.Where(sq.Eq{"locally_deleted": false})
	}
	if spec.OnlyLocal {
		b = b.Where(sq.Eq{"local": true})
	}

	for _, path := range sortedKeys(spec.Match) {
		if err := validatePath(path); err != nil {
			return b, err
		}
		b = b.Where(sq.Expr("json_extract(doc, ?) = ?", jsonPath(path), spec.Match[path]))
	}
	for _, path := range sortedKeys(spec.Like) {
		if err := validatePath(path); err != nil {
			return b, err
		}
		b = b.Where(sq.Expr(`json_extract(doc, ?) LIKE ? ESCAPE '\'`, jsonPath(path), spec.Like[path]))
	}
	return b, nil
}

func buildSoupQuery(builder sq.StatementBuilderType, spec models.QuerySpec) (string, []any, error) {
	b, err := applySoupFilters(builder.Select("soup_entry_id", "doc").From(soupEntriesTable), spec)
	if err != nil {
		return "", nil, err
	}

	if spec.OrderPath != "" {
		if err := validatePath(spec.OrderPath); err != nil {
			return "", nil, err
		}
		dir := models.Ascending
		if spec.Order == models.Descending {
			dir = models.Descending
		}
		b = b.OrderByClause(fmt.Sprintf("json_extract(doc, ?) %s", dir), jsonPath(spec.OrderPath))
	}
	b = b.OrderBy("soup_entry_id").
		Limit(uint64(spec.Limit())).
		Offset(uint64(spec.Offset()))

	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSoupCountQuery(builder sq.StatementBuilderType, spec models.QuerySpec) (string, []any, error) {
	b, err := applySoupFilters(builder.Select("COUNT(*)").From(soupEntriesTable), spec)
	if err != nil {
		return "", nil, err
	}

	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
