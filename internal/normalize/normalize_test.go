package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"already canonical", "record_id", "record_id"},
		{"diacritics stripped", "Ubicación", "ubicacion"},
		{"trim and spaces", "  Nom Sede ", "nom_sede"},
		{"mixed case accents", "CATEGORÍA TRAB", "categoria_trab"},
		{"coordination accent", "Estado Coordinación", "estado_coordinacion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Header(tt.input))
		})
	}
}

func TestHeaderIdempotent(t *testing.T) {
	inputs := []string{"Ubicación", " Nom Sede ", "record_id", "Correo", "FECHA ESTADO"}
	for _, in := range inputs {
		once := Header(in)
		assert.Equal(t, once, Header(once), "normalizing %q twice must be stable", in)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"already iso", "2025-09-29", "2025-09-29"},
		{"iso datetime space", "2025-09-29 14:30:00", "2025-09-29"},
		{"iso datetime T", "2025-09-29T14:30:00", "2025-09-29"},
		{"iso datetime tz", "2025-09-29T14:30:00+05:00", "2025-09-29"},
		{"slash ymd", "2025/09/29", "2025-09-29"},
		{"dot ymd", "2025.09.29", "2025-09-29"},
		{"day first slash", "29/09/2025", "2025-09-29"},
		{"day first dash", "29-09-2025", "2025-09-29"},
		{"month first fallback", "12/25/2025", "2025-12-25"},
		{"ambiguous resolves day first", "03/04/2025", "2025-04-03"},
		{"trailing junk after prefix", "2025-09-29junk", "2025-09-29"},
		{"unparseable passthrough", "not-a-date", "not-a-date"},
		{"numeric passthrough", "12345", "12345"},
		{"trimmed passthrough", "  pendiente  ", "pendiente"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.input))
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	for _, v := range []string{"2020-01-01", "1999-12-31", "2025-06-15"} {
		assert.Equal(t, v, Date(v))
	}
}

func TestCoerceISODate(t *testing.T) {
	assert.Equal(t, "", CoerceISODate(""))
	assert.Equal(t, "2025-09-29", CoerceISODate("29/09/2025"))
	assert.Equal(t, "2025-09-29", CoerceISODate("2025-09-29 10:00:00"))
	// Pass-through values must not leak into range comparisons.
	assert.Equal(t, "", CoerceISODate("not-a-date"))
	assert.Equal(t, "", CoerceISODate("pendiente"))
}
