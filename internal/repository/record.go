package repository

import (
	"context"

	"upgradedash/internal/model"
)

// RecordFilter is the request-scoped set of optional predicates over project
// records. Empty fields are not applied; all supplied predicates are ANDed.
// FechaInicio/FechaFin must already be coerced to strict YYYY-MM-DD form.
type RecordFilter struct {
	Ubicacion     string
	NomSede       string
	CategoriaTrab string
	Estado        string // case-insensitive exact match
	FechaInicio   string // inclusive lower bound on fecha_estado
	FechaFin      string // inclusive upper bound on fecha_estado
	Nombre        string // case-insensitive substring on nombre_completo
	Hostname      string // substring on hostname
}

// UpsertResult aggregates one batch upsert.
type UpsertResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// RecordRepository defines data access for project records using SQL queries
// only. No business logic here — strictly persistence operations.
type RecordRepository interface {
	// UpsertBatch inserts or fully overwrites each record keyed on record_id,
	// refreshing last_updated, inside a single transaction.
	UpsertBatch(ctx context.Context, records []model.Record) (UpsertResult, error)

	// Query returns all records satisfying the filter, ordered by
	// last_updated descending (record_id descending breaks ties).
	Query(ctx context.Context, f RecordFilter) ([]model.Record, error)

	// DistinctValues returns the sorted distinct non-empty values of a
	// categorical column across the full record population.
	DistinctValues(ctx context.Context, field string) ([]string, error)

	// DeleteAll wipes the records table. Used by the seed command only.
	DeleteAll(ctx context.Context) error
}
