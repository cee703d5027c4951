package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"upgradedash/internal/model"
	"upgradedash/internal/repository"
)

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RecordPostgres struct {
	db *sql.DB
}

// NewRecordPostgres creates a new RecordPostgres repository.
func NewRecordPostgres(db *sql.DB) *RecordPostgres {
	return &RecordPostgres{db: db}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

// selectColumns normalizes NULL and '' to the same empty value on the way
// out; every consumer treats the two identically.
const selectColumns = `
	record_id,
	COALESCE(ubicacion, ''), COALESCE(nom_sede, ''), COALESCE(categoria_trab, ''),
	COALESCE(nombre_completo, ''), COALESCE(perfil_imagen, ''), COALESCE(marca, ''),
	COALESCE(modelo, ''), COALESCE(serial_num, ''), COALESCE(hostname, ''),
	COALESCE(ip_equipo, ''), COALESCE(email_trabajo, ''), COALESCE(fecha_estado, ''),
	COALESCE(estado, ''), COALESCE(estado_coordinacion, ''), COALESCE(estado_upgrade, ''),
	COALESCE(fecha_programada, ''), COALESCE(fecha_ejecucion, ''), COALESCE(notas, ''),
	last_updated`

const upsertQuery = `
	INSERT INTO project_records (
		record_id, ubicacion, nom_sede, categoria_trab, nombre_completo,
		perfil_imagen, marca, modelo, serial_num, hostname, ip_equipo,
		email_trabajo, fecha_estado, estado, estado_coordinacion,
		estado_upgrade, fecha_programada, fecha_ejecucion, notas
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (record_id) DO UPDATE SET
		ubicacion = EXCLUDED.ubicacion,
		nom_sede = EXCLUDED.nom_sede,
		categoria_trab = EXCLUDED.categoria_trab,
		nombre_completo = EXCLUDED.nombre_completo,
		perfil_imagen = EXCLUDED.perfil_imagen,
		marca = EXCLUDED.marca,
		modelo = EXCLUDED.modelo,
		serial_num = EXCLUDED.serial_num,
		hostname = EXCLUDED.hostname,
		ip_equipo = EXCLUDED.ip_equipo,
		email_trabajo = EXCLUDED.email_trabajo,
		fecha_estado = EXCLUDED.fecha_estado,
		estado = EXCLUDED.estado,
		estado_coordinacion = EXCLUDED.estado_coordinacion,
		estado_upgrade = EXCLUDED.estado_upgrade,
		fecha_programada = EXCLUDED.fecha_programada,
		fecha_ejecucion = EXCLUDED.fecha_ejecucion,
		notas = EXCLUDED.notas,
		last_updated = now()
	RETURNING (xmax = 0) AS inserted`

// UpsertBatch inserts or fully overwrites each record keyed on record_id
// inside a single transaction. xmax = 0 distinguishes a fresh insert from a
// conflict update on the returned row.
func (r *RecordPostgres) UpsertBatch(ctx context.Context, records []model.Record) (repository.UpsertResult, error) {
	var res repository.UpsertResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		var inserted bool
		err := tx.QueryRowContext(ctx, upsertQuery,
			rec.RecordID,
			rec.Ubicacion,
			rec.NomSede,
			rec.CategoriaTrab,
			rec.NombreCompleto,
			rec.PerfilImagen,
			rec.Marca,
			rec.Modelo,
			rec.SerialNum,
			rec.Hostname,
			rec.IPEquipo,
			rec.EmailTrabajo,
			rec.FechaEstado,
			rec.Estado,
			rec.EstadoCoordinacion,
			rec.EstadoUpgrade,
			rec.FechaProgramada,
			rec.FechaEjecucion,
			rec.Notas,
		).Scan(&inserted)
		if err != nil {
			return repository.UpsertResult{}, fmt.Errorf("upsert record %s: %w", rec.RecordID, err)
		}
		if inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return repository.UpsertResult{}, fmt.Errorf("commit upsert tx: %w", err)
	}
	res.Total = res.Inserted + res.Updated
	return res, nil
}

// Query returns all records matching the filter, most recently updated first.
func (r *RecordPostgres) Query(ctx context.Context, f repository.RecordFilter) ([]model.Record, error) {
	q := "SELECT" + selectColumns + "\n\tFROM project_records"

	var conds []string
	var args []any
	add := func(format string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if f.Ubicacion != "" {
		add("ubicacion = $%d", f.Ubicacion)
	}
	if f.NomSede != "" {
		add("nom_sede = $%d", f.NomSede)
	}
	if f.CategoriaTrab != "" {
		add("categoria_trab = $%d", f.CategoriaTrab)
	}
	if f.Estado != "" {
		add("UPPER(estado) = UPPER($%d)", f.Estado)
	}
	if f.FechaInicio != "" {
		add("fecha_estado >= $%d", f.FechaInicio)
	}
	if f.FechaFin != "" {
		add("fecha_estado <= $%d", f.FechaFin)
	}
	if f.Nombre != "" {
		add("UPPER(nombre_completo) LIKE UPPER($%d)", "%"+f.Nombre+"%")
	}
	if f.Hostname != "" {
		add("hostname LIKE $%d", "%"+f.Hostname+"%")
	}

	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY last_updated DESC, record_id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(
			&rec.RecordID,
			&rec.Ubicacion,
			&rec.NomSede,
			&rec.CategoriaTrab,
			&rec.NombreCompleto,
			&rec.PerfilImagen,
			&rec.Marca,
			&rec.Modelo,
			&rec.SerialNum,
			&rec.Hostname,
			&rec.IPEquipo,
			&rec.EmailTrabajo,
			&rec.FechaEstado,
			&rec.Estado,
			&rec.EstadoCoordinacion,
			&rec.EstadoUpgrade,
			&rec.FechaProgramada,
			&rec.FechaEjecucion,
			&rec.Notas,
			&rec.LastUpdated,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// distinctColumns whitelists the categorical columns exposed as filter
// options; the column name is interpolated, so the whitelist is mandatory.
var distinctColumns = map[string]struct{}{
	"ubicacion":      {},
	"nom_sede":       {},
	"categoria_trab": {},
}

// DistinctValues returns the sorted distinct non-empty values of one
// whitelisted categorical column.
func (r *RecordPostgres) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if _, ok := distinctColumns[field]; !ok {
		return nil, fmt.Errorf("distinct values: unsupported field %q", field)
	}
	q := fmt.Sprintf(
		"SELECT DISTINCT %s FROM project_records WHERE %s IS NOT NULL AND %s <> '' ORDER BY %s",
		field, field, field, field,
	)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// DeleteAll wipes the records table.
func (r *RecordPostgres) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM project_records")
	return err
}
