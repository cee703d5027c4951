// Package ingest turns an uploaded CSV stream into canonical project
// records: header normalization, synonym mapping, value trimming, status
// upper-casing, and date normalization. Rows without a record identifier
// are dropped silently; only a fully empty result is an error.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"upgradedash/internal/model"
	"upgradedash/internal/normalize"
)

var (
	// ErrNoValidRows means the file decoded fine but no row carried a
	// non-empty record_id after mapping.
	ErrNoValidRows = errors.New("no valid rows in csv")
	// ErrInvalidEncoding means the file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("csv is not valid utf-8")
)

// fieldSynonyms maps normalized CSV headers to canonical record fields.
// Keys are compared after normalize.Header, so accents and case in the
// incoming file are irrelevant. Unknown headers are dropped.
var fieldSynonyms = map[string]string{
	"id":                  "record_id",
	"record_id":           "record_id",
	"ubicacion":           "ubicacion",
	"nom_sede":            "nom_sede",
	"categoria_trab":      "categoria_trab",
	"categoria":           "categoria_trab",
	"nombre_completo":     "nombre_completo",
	"nombre":              "nombre_completo",
	"perfil_imagen":       "perfil_imagen",
	"perfil":              "perfil_imagen",
	"marca":               "marca",
	"modelo":              "modelo",
	"serial_num":          "serial_num",
	"serialnumber":        "serial_num",
	"hostname":            "hostname",
	"ip_equipo":           "ip_equipo",
	"email_trabajo":       "email_trabajo",
	"correo":              "email_trabajo",
	"fecha_estado":        "fecha_estado",
	"estado":              "estado",
	"estado_coordinacion": "estado_coordinacion",
	"estado_coordinacin":  "estado_coordinacion",
	"estado_upgrade":      "estado_upgrade",
	"fecha_programada":    "fecha_programada",
	"fecha_programacion":  "fecha_programada",
	"fecha_ejecucion":     "fecha_ejecucion",
	"fecha_upgrade":       "fecha_ejecucion",
	"notas":               "notas",
}

var statusFields = []string{"estado", "estado_coordinacion", "estado_upgrade"}

var dateFields = []string{"fecha_estado", "fecha_programada", "fecha_ejecucion"}

// MapRow maps one raw CSV row (parallel header/value slices) onto canonical
// fields. Values are trimmed; headers without a synonym entry are dropped.
// ok is false when the row lacks a non-empty record_id after mapping.
func MapRow(headers, values []string) (map[string]string, bool) {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		key, known := fieldSynonyms[normalize.Header(h)]
		if !known {
			continue
		}
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		row[key] = v
	}
	if row["record_id"] == "" {
		return nil, false
	}
	for _, f := range statusFields {
		if v, present := row[f]; present {
			row[f] = strings.ToUpper(v)
		}
	}
	for _, f := range dateFields {
		if v, present := row[f]; present {
			row[f] = normalize.Date(v)
		}
	}
	return row, true
}

// ParseCSV reads an entire uploaded CSV (UTF-8, optional BOM, header row
// required) and returns the mapped records in file order. The whole file is
// one unit of work; a read error aborts the batch.
func ParseCSV(r io.Reader) ([]model.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, ErrInvalidEncoding
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrNoValidRows
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []model.Record
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row, ok := MapRow(headers, rec)
		if !ok {
			continue
		}
		records = append(records, toRecord(row))
	}
	if len(records) == 0 {
		return nil, ErrNoValidRows
	}
	return records, nil
}

func toRecord(row map[string]string) model.Record {
	return model.Record{
		RecordID:           row["record_id"],
		Ubicacion:          row["ubicacion"],
		NomSede:            row["nom_sede"],
		CategoriaTrab:      row["categoria_trab"],
		NombreCompleto:     row["nombre_completo"],
		PerfilImagen:       row["perfil_imagen"],
		Marca:              row["marca"],
		Modelo:             row["modelo"],
		SerialNum:          row["serial_num"],
		Hostname:           row["hostname"],
		IPEquipo:           row["ip_equipo"],
		EmailTrabajo:       row["email_trabajo"],
		FechaEstado:        row["fecha_estado"],
		Estado:             row["estado"],
		EstadoCoordinacion: row["estado_coordinacion"],
		EstadoUpgrade:      row["estado_upgrade"],
		FechaProgramada:    row["fecha_programada"],
		FechaEjecucion:     row["fecha_ejecucion"],
		Notas:              row["notas"],
	}
}
