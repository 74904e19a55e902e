package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// QueryParams selects and orders the rows of a query.
type QueryParams struct {
	// Where is a condition without the WHERE keyword, for example
	// "Success = ? AND Strategy = ?".
	Where string

	// Args fill the placeholders of Where.
	Args []any

	// OrderBy is an ordering without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows. Zero means no limit. Offset only
	// applies together with a limit.
	Limit  int
	Offset int
}

func (p QueryParams) where(b *strings.Builder) {
	if p.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(p.Where)
	}
}

func (p QueryParams) selectSQL(table string) string {
	var b strings.Builder

	b.WriteString("SELECT * FROM ")
	b.WriteString(table)
	p.where(&b)

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(p.OrderBy)
	}

	if p.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", p.Limit)

		if p.Offset > 0 {
			fmt.Fprintf(&b, " OFFSET %d", p.Offset)
		}
	}

	return b.String()
}

func (p QueryParams) countSQL(table string) string {
	var b strings.Builder

	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(table)
	p.where(&b)

	return b.String()
}

// DataReader reads recorded tables back into structs.
type DataReader interface {
	// MapTable sets the struct type that the rows of a table are read into.
	MapTable(table string, sampleEntry any)

	// Count returns the number of rows that match, ignoring the limit.
	Count(ctx context.Context, table string, params QueryParams) (int, error)

	// Query returns a pointer to a new struct for every matching row.
	Query(ctx context.Context, table string, params QueryParams) ([]any, error)

	// Close closes the database.
	Close() error
}

type sqliteReader struct {
	db      *sql.DB
	typeMap map[string]reflect.Type
}

// NewReader opens a recorded database file. The file must exist.
func NewReader(path string) (DataReader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a reader over an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(table string, sampleEntry any) {
	r.typeMap[table] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) Count(
	ctx context.Context,
	table string,
	params QueryParams,
) (int, error) {
	var n int

	err := r.db.QueryRowContext(ctx, params.countSQL(table), params.Args...).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return n, nil
}

func (r *sqliteReader) Query(
	ctx context.Context,
	table string,
	params QueryParams,
) ([]any, error) {
	structType, ok := r.typeMap[table]
	if !ok {
		return nil, fmt.Errorf("table %s is not mapped", table)
	}

	rows, err := r.db.QueryContext(ctx, params.selectSQL(table), params.Args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	return scanRows(rows, structType)
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}

// Rows maps table to T and returns its matching rows.
func Rows[T any](
	ctx context.Context,
	r DataReader,
	table string,
	params QueryParams,
) ([]T, error) {
	var sample T

	r.MapTable(table, sample)

	results, err := r.Query(ctx, table, params)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(results))
	for _, res := range results {
		out = append(out, *res.(*T))
	}

	return out, nil
}

// scanRows reads every row into a new struct of structType. Columns without a
// matching field are skipped.
func scanRows(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var (
		results []any
		skipped any
	)

	for rows.Next() {
		entry := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, col := range columns {
			field := entry.Elem().FieldByName(col)
			if field.IsValid() {
				targets[i] = field.Addr().Interface()
			} else {
				targets[i] = &skipped
			}
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}
