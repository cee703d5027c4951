package service

import (
	"context"
	"strings"

	"upgradedash/internal/model"
	"upgradedash/internal/normalize"
	"upgradedash/internal/repository"
)

// SummaryQuery carries the raw, untrimmed filter parameters of one summary
// request. Date bounds are coerced to strict ISO form before use so a
// pass-through non-date never reaches a range comparison.
type SummaryQuery struct {
	Ubicacion     string
	NomSede       string
	CategoriaTrab string
	Estado        string
	FechaInicio   string
	FechaFin      string
	Nombre        string
	Hostname      string
}

// FilterOptions is one filter's available values plus the currently
// selected one, for client-side filter-UI population.
type FilterOptions struct {
	Options  []string `json:"options"`
	Selected string   `json:"selected"`
}

// DateFilters echoes the effective (coerced) date range back to the client.
type DateFilters struct {
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
}

// Summary is the aggregated dashboard payload.
type Summary struct {
	Total          int                       `json:"total"`
	StatusCounts   map[string]int            `json:"status_counts"`
	StatusBuckets  map[string]int            `json:"status_buckets"`
	Schedule       map[string]int            `json:"schedule"`
	ScheduleBrands map[string]map[string]int `json:"schedule_brands"`
	RecentUpdates  []model.Record            `json:"recent_updates"`
	StatusCatalog  []string                  `json:"status_catalog"`
	Filters        map[string]FilterOptions  `json:"filters"`
	DateFilters    DateFilters               `json:"date_filters"`
	HostnameFilter string                    `json:"hostname_filter"`
	NameFilter     string                    `json:"name_filter"`
	EstadoFilter   string                    `json:"estado_filter"`
	EstadoOptions  []string                  `json:"estado_options"`
}

// recentUpdatesCap truncates recent_updates unless a name filter is present.
const recentUpdatesCap = 10

// filterFields are the categorical columns whose distinct values populate
// the filter dropdowns.
var filterFields = []string{"ubicacion", "nom_sede", "categoria_trab"}

// SummaryService computes the aggregated dashboard view. Read-only with
// respect to record state.
type SummaryService interface {
	Build(ctx context.Context, q SummaryQuery) (*Summary, error)
}

type summaryService struct {
	records repository.RecordRepository
}

// NewSummaryService constructs a new SummaryService.
func NewSummaryService(records repository.RecordRepository) SummaryService {
	return &summaryService{records: records}
}

func (s *summaryService) Build(ctx context.Context, q SummaryQuery) (*Summary, error) {
	f := repository.RecordFilter{
		Ubicacion:     strings.TrimSpace(q.Ubicacion),
		NomSede:       strings.TrimSpace(q.NomSede),
		CategoriaTrab: strings.TrimSpace(q.CategoriaTrab),
		Estado:        strings.TrimSpace(q.Estado),
		FechaInicio:   normalize.CoerceISODate(strings.TrimSpace(q.FechaInicio)),
		FechaFin:      normalize.CoerceISODate(strings.TrimSpace(q.FechaFin)),
		Nombre:        strings.TrimSpace(q.Nombre),
		Hostname:      strings.TrimSpace(q.Hostname),
	}

	records, err := s.records.Query(ctx, f)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Total:          len(records),
		StatusCounts:   make(map[string]int),
		StatusBuckets:  make(map[string]int),
		Schedule:       make(map[string]int),
		ScheduleBrands: make(map[string]map[string]int),
		RecentUpdates:  make([]model.Record, 0, len(records)),
		StatusCatalog:  model.StatusCatalog,
		DateFilters:    DateFilters{FechaInicio: f.FechaInicio, FechaFin: f.FechaFin},
		HostnameFilter: f.Hostname,
		NameFilter:     f.Nombre,
		EstadoFilter:   f.Estado,
		EstadoOptions:  model.StatusCatalog,
	}

	for _, rec := range records {
		estado := strings.ToUpper(strings.TrimSpace(rec.Estado))
		if estado == "" {
			estado = model.NoStatusLabel
		}
		sum.StatusCounts[estado]++
		sum.StatusBuckets[model.StatusBucket(rec.Estado)]++

		if rec.FechaEstado != "" {
			sum.Schedule[rec.FechaEstado]++
			brands := sum.ScheduleBrands[rec.FechaEstado]
			if brands == nil {
				brands = make(map[string]int)
				sum.ScheduleBrands[rec.FechaEstado] = brands
			}
			// Blank brands count toward the schedule but not the per-brand split.
			if rec.Marca != "" {
				brands[rec.Marca]++
			}
		}

		view := rec
		view.Estado = estado
		sum.RecentUpdates = append(sum.RecentUpdates, view)
	}

	// The cap keeps the default dashboard light; a name search expects the
	// complete match list.
	if f.Nombre == "" && len(sum.RecentUpdates) > recentUpdatesCap {
		sum.RecentUpdates = sum.RecentUpdates[:recentUpdatesCap]
	}

	filters, err := s.buildFilters(ctx, f)
	if err != nil {
		return nil, err
	}
	sum.Filters = filters

	return sum, nil
}

// buildFilters lists the distinct values of each categorical field over the
// full (unfiltered) record population, alongside the selected values.
func (s *summaryService) buildFilters(ctx context.Context, f repository.RecordFilter) (map[string]FilterOptions, error) {
	selected := map[string]string{
		"ubicacion":      f.Ubicacion,
		"nom_sede":       f.NomSede,
		"categoria_trab": f.CategoriaTrab,
	}
	payload := make(map[string]FilterOptions, len(filterFields)+1)
	for _, field := range filterFields {
		options, err := s.records.DistinctValues(ctx, field)
		if err != nil {
			return nil, err
		}
		payload[field] = FilterOptions{Options: options, Selected: selected[field]}
	}
	payload["estado"] = FilterOptions{Options: model.StatusCatalog, Selected: f.Estado}
	return payload, nil
}
