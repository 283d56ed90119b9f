// Package sqlite implementa el LedgerStore sobre un fichero SQLite local,
// una alternativa sin servidor al libro xlsx para puestos donde el libro
// compartido da problemas de bloqueo.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
)

var _ repository.LedgerStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS stock (
	position        INTEGER PRIMARY KEY,
	id              TEXT NOT NULL UNIQUE,
	designation     TEXT NOT NULL DEFAULT '',
	quantity        INTEGER NOT NULL DEFAULT 0,
	unit_price      TEXT NOT NULL DEFAULT '0',
	alert_threshold INTEGER NOT NULL DEFAULT 0,
	updated_at      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS sorties (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL,
	ts          TEXT NOT NULL,
	part_id     TEXT NOT NULL,
	designation TEXT NOT NULL DEFAULT '',
	quantity    INTEGER NOT NULL,
	operator    TEXT NOT NULL DEFAULT ''
);`

// Store almacén durable sobre SQLite (driver mattn/go-sqlite3 vía sqlx).
// Los importes se guardan como texto decimal para no perder exactitud.
type Store struct {
	db *sqlx.DB
}

// Open abre (o crea) la base y asegura el esquema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: crear directorio: %w", err)
	}
	db, err := sqlx.Connect("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: crear esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la base.
func (s *Store) Close() error { return s.db.Close() }

type stockRow struct {
	ID             string `db:"id"`
	Designation    string `db:"designation"`
	Quantity       int64  `db:"quantity"`
	UnitPrice      string `db:"unit_price"`
	AlertThreshold int64  `db:"alert_threshold"`
	UpdatedAt      string `db:"updated_at"`
}

type movementRow struct {
	ID          string `db:"id"`
	TS          string `db:"ts"`
	PartID      string `db:"part_id"`
	Designation string `db:"designation"`
	Quantity    int64  `db:"quantity"`
	Operator    string `db:"operator"`
}

// LoadStock lee la tabla de stock en orden de visualización.
func (s *Store) LoadStock(ctx context.Context) ([]entity.Part, error) {
	var rows []stockRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, designation, quantity, unit_price, alert_threshold, updated_at
		FROM stock ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: leer stock: %w", err)
	}

	parts := make([]entity.Part, 0, len(rows))
	for _, r := range rows {
		price, err := decimal.NewFromString(r.UnitPrice)
		if err != nil {
			price = decimal.Zero
		}
		updated, _ := time.Parse(time.RFC3339Nano, r.UpdatedAt)
		parts = append(parts, entity.Part{
			ID:             r.ID,
			Designation:    r.Designation,
			Quantity:       r.Quantity,
			UnitPrice:      price,
			AlertThreshold: r.AlertThreshold,
			UpdatedAt:      updated,
		})
	}
	return parts, nil
}

// ReplaceStock reemplaza la tabla completa en una transacción.
func (s *Store) ReplaceStock(ctx context.Context, parts []entity.Part) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stock`); err != nil {
		return fmt.Errorf("sqlite: vaciar stock: %w", err)
	}
	for i, p := range parts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO stock (position, id, designation, quantity, unit_price, alert_threshold, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, p.ID, p.Designation, p.Quantity, p.UnitPrice.String(), p.AlertThreshold,
			p.UpdatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("sqlite: insertar %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// AppendMovement inserta un registro de salida.
func (s *Store) AppendMovement(ctx context.Context, mov entity.Movement) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sorties (id, ts, part_id, designation, quantity, operator)
		VALUES (?, ?, ?, ?, ?, ?)`,
		mov.ID, mov.Timestamp.Format(time.RFC3339Nano), mov.PartID, mov.Designation, mov.Quantity, mov.Operator)
	if err != nil {
		return fmt.Errorf("sqlite: insertar movimiento: %w", err)
	}
	return nil
}

// LoadMovements lee el registro de salidas en orden de inserción.
func (s *Store) LoadMovements(ctx context.Context) ([]entity.Movement, error) {
	var rows []movementRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, ts, part_id, designation, quantity, operator
		FROM sorties ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: leer movimientos: %w", err)
	}

	movs := make([]entity.Movement, 0, len(rows))
	for _, r := range rows {
		ts, _ := time.Parse(time.RFC3339Nano, r.TS)
		movs = append(movs, entity.Movement{
			ID:          r.ID,
			Timestamp:   ts,
			PartID:      r.PartID,
			Designation: r.Designation,
			Quantity:    r.Quantity,
			Operator:    r.Operator,
		})
	}
	return movs, nil
}
