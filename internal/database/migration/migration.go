package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"upgradedash/internal/auth"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            BIGSERIAL   PRIMARY KEY,
  username      TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL DEFAULT 'standard',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_project_records",
		SQL: `CREATE TABLE IF NOT EXISTS project_records (
  id                  BIGSERIAL   PRIMARY KEY,
  record_id           TEXT        NOT NULL UNIQUE,
  ubicacion           TEXT,
  nom_sede            TEXT,
  categoria_trab      TEXT,
  nombre_completo     TEXT,
  perfil_imagen       TEXT,
  marca               TEXT,
  modelo              TEXT,
  serial_num          TEXT,
  hostname            TEXT,
  ip_equipo           TEXT,
  email_trabajo       TEXT,
  fecha_estado        TEXT,
  estado              TEXT,
  estado_coordinacion TEXT,
  estado_upgrade      TEXT,
  fecha_programada    TEXT,
  fecha_ejecucion     TEXT,
  notas               TEXT,
  last_updated        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_project_records_last_updated",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_project_records_last_updated ON project_records (last_updated DESC);`,
	},
	{
		Name: "create_index_project_records_estado",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_project_records_estado ON project_records (UPPER(estado));`,
	},
	{
		Name: "create_index_project_records_fecha_estado",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_project_records_fecha_estado ON project_records (fecha_estado);`,
	},
	{
		Name: "create_table_csv_uploads",
		SQL: `CREATE TABLE IF NOT EXISTS csv_uploads (
  id           UUID        PRIMARY KEY,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  inserted     INTEGER     NOT NULL DEFAULT 0,
  updated      INTEGER     NOT NULL DEFAULT 0,
  total        INTEGER     NOT NULL DEFAULT 0,
  uploaded_by  TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_csv_uploads_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_csv_uploads_created_at ON csv_uploads (created_at DESC);`,
	},
}

// EnsureMigrated checks if the 'project_records' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.project_records') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

// EnsureInitialAdmin creates the bootstrap 'admin' account when an initial
// password is configured and no admin user exists yet. An empty password
// logs a warning and is not an error.
func EnsureInitialAdmin(ctx context.Context, db *sql.DB, loc *time.Location, password string) error {
	if password == "" {
		logJSON(loc, map[string]any{
			"component": "database",
			"event":     "admin_bootstrap_skip",
			"level":     "warn",
			"msg":       "ADMIN_INITIAL_PASSWORD not set; initial admin account not created",
		})
		return nil
	}

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin')").Scan(&exists)
	if err != nil {
		return fmt.Errorf("check admin existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)",
		"admin", hash, "admin",
	)
	if err != nil {
		return fmt.Errorf("create initial admin: %w", err)
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "admin_bootstrap_created",
		"status":    "success",
		"msg":       "initial admin account 'admin' created",
	})
	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
