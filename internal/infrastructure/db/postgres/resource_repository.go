package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

// ResourceRepository is the single storage implementation behind all four
// resource kinds. Statements are assembled from the schema registry; table
// and column names come from the static domain.Schemas map, never from
// request input.
type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) Insert(ctx context.Context, schema domain.Schema, rec domain.Record) error {
	columns := make([]string, 0, len(schema.Fields))
	placeholders := make([]string, 0, len(schema.Fields))
	args := make([]any, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		value, ok := rec[f.Name]
		if !ok {
			continue
		}
		columns = append(columns, schema.Column(f.Name))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, coerceValue(f, value))
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", schema.Singular, err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, schema domain.Schema, key any, fields domain.Record) error {
	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range schema.Fields {
		if f.Name == schema.PrimaryKey {
			continue
		}
		value, ok := fields[f.Name]
		if !ok {
			continue
		}
		args = append(args, coerceValue(f, value))
		assignments = append(assignments, fmt.Sprintf("%s = $%d", schema.Column(f.Name), len(args)))
	}
	if len(assignments) == 0 {
		return nil
	}

	args = append(args, r.coerceKey(schema, key))
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
		schema.Table, strings.Join(assignments, ", "), schema.Column(schema.PrimaryKey), len(args))
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", schema.Singular, err)
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, schema domain.Schema, key any) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Table, schema.Column(schema.PrimaryKey))
	if _, err := r.pool.Exec(ctx, query, r.coerceKey(schema, key)); err != nil {
		return fmt.Errorf("delete %s: %w", schema.Singular, err)
	}
	return nil
}

func (r *ResourceRepository) Get(ctx context.Context, schema domain.Schema, key any) (domain.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		columnList(schema), schema.Table, schema.Column(schema.PrimaryKey))
	rows, err := r.pool.Query(ctx, query, r.coerceKey(schema, key))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", schema.Singular, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get %s: %w", schema.Singular, err)
		}
		return nil, &domain.NotFoundError{Resource: schema.Singular, Key: key}
	}

	values, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", schema.Singular, err)
	}
	return toRecord(schema, values), nil
}

func (r *ResourceRepository) List(ctx context.Context, schema domain.Schema) ([]domain.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		columnList(schema), schema.Table, schema.Column(schema.PrimaryKey))
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", schema.Kind, err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", schema.Singular, err)
		}
		records = append(records, toRecord(schema, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", schema.Kind, err)
	}
	return records, nil
}

func columnList(schema domain.Schema) string {
	cols := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		cols[i] = schema.Column(f.Name)
	}
	return strings.Join(cols, ", ")
}

func toRecord(schema domain.Schema, values []any) domain.Record {
	rec := make(domain.Record, len(schema.Fields))
	for i, f := range schema.Fields {
		if i < len(values) {
			rec[f.Name] = values[i]
		}
	}
	return rec
}

func (r *ResourceRepository) coerceKey(schema domain.Schema, key any) any {
	field, _ := schema.FieldByName(schema.PrimaryKey)
	return coerceValue(field, key)
}

// coerceValue aligns a JSON-decoded value with the column type: JSON numbers
// arrive as float64, but integer columns want an integral value.
func coerceValue(f domain.Field, v any) any {
	if f.Type != domain.FieldInt {
		return v
	}
	switch t := v.(type) {
	case float64:
		return int64(t)
	case float32:
		return int64(t)
	case int:
		return int64(t)
	case int32:
		return int64(t)
	default:
		return v
	}
}
