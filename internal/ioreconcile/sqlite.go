package ioreconcile

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gbifreport/pkg/reconcile"
	_ "modernc.org/sqlite"
)

const (
	datasetCountsTable = "dataset_counts"
	summariesTable     = "publisher_summaries"
	duplicatesTable    = "duplicates"
)

// writeSQLite saves accumulated tables to a new SQLite database. An
// existing database at path is replaced.
func writeSQLite(path string, acc *reconcile.Accumulator) error {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	err := fillSQLite(tmp, acc)
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return WriteError(path, err)
	}

	slog.Info("SQLite database saved", "path", path)
	return nil
}

func fillSQLite(path string, acc *reconcile.Accumulator) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	counts := acc.DatasetCounts()
	rows := make([][]any, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []any{
			c.Publisher, c.DatasetName, c.DatasetKey,
			c.Total, c.Unique, c.Duplicates,
		})
	}
	err = insertRows(tx, datasetCountsTable, []column{
		{"publisher", "TEXT"},
		{"dataset_name", "TEXT"},
		{"dataset_key", "TEXT"},
		{"total", "INTEGER"},
		{"unique_count", "INTEGER"},
		{"duplicates", "INTEGER"},
	}, rows)
	if err != nil {
		return err
	}

	sums := acc.Summaries()
	rows = make([][]any, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []any{s.Publisher, s.Total, s.Duplicates, s.Unique})
	}
	err = insertRows(tx, summariesTable, []column{
		{"publisher", "TEXT"},
		{"total", "INTEGER"},
		{"duplicates", "INTEGER"},
		{"unique_count", "INTEGER"},
	}, rows)
	if err != nil {
		return err
	}

	dups := acc.Duplicates()
	cols := make([]column, len(dups.Columns))
	for i, c := range dups.Columns {
		cols[i] = column{c, "TEXT"}
	}
	rows = make([][]any, 0, dups.Len())
	for _, r := range dups.Rows {
		row := make([]any, len(r))
		for i := range r {
			row[i] = r[i]
		}
		rows = append(rows, row)
	}
	if err = insertRows(tx, duplicatesTable, cols, rows); err != nil {
		return err
	}

	return tx.Commit()
}

type column struct {
	name string
	kind string
}

func insertRows(tx *sql.Tx, table string, cols []column, rows [][]any) error {
	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quoteIdent(c.name)
		defs[i] = names[i] + " " + c.kind
		marks[i] = "?"
	}

	q := fmt.Sprintf("CREATE TABLE %s (%s)",
		quoteIdent(table), strings.Join(defs, ", "))
	if _, err := tx.Exec(q); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	q = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table),
		strings.Join(names, ", "),
		strings.Join(marks, ", "),
	)
	stmt, err := tx.Prepare(q)
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", table, err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err = stmt.Exec(r...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
