package model

import (
	"strings"
	"time"
)

// Record is one hardware-upgrade tracking entry. Pure domain model with no
// database-specific dependencies or tags beyond JSON; all descriptive fields
// are optional strings populated from CSV uploads.
type Record struct {
	RecordID           string    `json:"record_id"`
	Ubicacion          string    `json:"ubicacion"`
	NomSede            string    `json:"nom_sede"`
	CategoriaTrab      string    `json:"categoria_trab"`
	NombreCompleto     string    `json:"nombre_completo"`
	PerfilImagen       string    `json:"perfil_imagen"`
	Marca              string    `json:"marca"`
	Modelo             string    `json:"modelo"`
	SerialNum          string    `json:"serial_num"`
	Hostname           string    `json:"hostname"`
	IPEquipo           string    `json:"ip_equipo"`
	EmailTrabajo       string    `json:"email_trabajo"`
	FechaEstado        string    `json:"fecha_estado"`
	Estado             string    `json:"estado"`
	EstadoCoordinacion string    `json:"estado_coordinacion"`
	EstadoUpgrade      string    `json:"estado_upgrade"`
	FechaProgramada    string    `json:"fecha_programada"`
	FechaEjecucion     string    `json:"fecha_ejecucion"`
	Notas              string    `json:"notas"`
	LastUpdated        time.Time `json:"last_updated"`
}

// RecordColumns is the canonical column order of project records, record_id
// first. CSV template generation and the upsert statement follow this order.
var RecordColumns = []string{
	"record_id",
	"ubicacion",
	"nom_sede",
	"categoria_trab",
	"nombre_completo",
	"perfil_imagen",
	"marca",
	"modelo",
	"serial_num",
	"hostname",
	"ip_equipo",
	"email_trabajo",
	"fecha_estado",
	"estado",
	"estado_coordinacion",
	"estado_upgrade",
	"fecha_programada",
	"fecha_ejecucion",
	"notas",
}

// StatusCatalog is the fixed vocabulary offered to the dashboard's estado
// filter. Uploaded statuses outside this list are still stored and counted.
var StatusCatalog = []string{
	"PROGRAMADO",
	"REPROGRAMADO",
	"EN PROCESO",
	"REALIZADO",
	"USER NO ASISTIO",
	"USER SIN RESPUESTA",
	"NO APLICA UPGRADE",
	"INCIDENCIA UPGRADE",
	"PENDIENTE",
}

// NoStatusLabel is the sentinel used when a record has no estado value.
const NoStatusLabel = "SIN ESTADO"

// Coarse bucket labels reported in status_buckets.
const (
	BucketDone       = "Completado"
	BucketInProgress = "En progreso"
	BucketPending    = "Pendiente"
	BucketOther      = "Otro"
	BucketNoStatus   = "Sin estado"
)

var doneStatuses = map[string]struct{}{
	"REALIZADO": {},
}

var inProgressStatuses = map[string]struct{}{
	"EN PROCESO":         {},
	"PROGRAMADO":         {},
	"REPROGRAMADO":       {},
	"INCIDENCIA UPGRADE": {},
}

var pendingStatuses = map[string]struct{}{
	"PENDIENTE":          {},
	"USER SIN RESPUESTA": {},
	"USER NO ASISTIO":    {},
	"NO APLICA UPGRADE":  {},
}

// StatusBucket maps a raw estado value to its coarse bucket label.
// The value is trimmed and upper-cased before lookup; empty values map to
// BucketNoStatus and unknown non-empty values to BucketOther.
func StatusBucket(value string) string {
	if value == "" {
		return BucketNoStatus
	}
	upper := normalizeStatus(value)
	if upper == "" {
		return BucketNoStatus
	}
	if _, ok := doneStatuses[upper]; ok {
		return BucketDone
	}
	if _, ok := inProgressStatuses[upper]; ok {
		return BucketInProgress
	}
	if _, ok := pendingStatuses[upper]; ok {
		return BucketPending
	}
	return BucketOther
}

func normalizeStatus(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
