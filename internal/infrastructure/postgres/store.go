// Package postgres implementa el LedgerStore sobre PostgreSQL, para
// despliegues donde el libro xlsx compartido se queda corto. La semántica
// es la misma: la tabla de stock se reemplaza completa en una transacción
// y las salidas se insertan en un registro append-only.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emicampus/gmao-stock/internal/domain/entity"
	"github.com/emicampus/gmao-stock/internal/domain/repository"
)

var _ repository.LedgerStore = (*Store)(nil)

// Store almacén durable sobre PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el store sobre un pool ya conectado.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema crea las tablas si no existen (herramienta de un solo
// departamento: sin tooling de migraciones).
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS stock (
			position        INT PRIMARY KEY,
			id              TEXT NOT NULL UNIQUE,
			designation     TEXT NOT NULL DEFAULT '',
			quantity        BIGINT NOT NULL DEFAULT 0,
			unit_price      NUMERIC(14,2) NOT NULL DEFAULT 0,
			alert_threshold BIGINT NOT NULL DEFAULT 0,
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS sorties (
			seq         BIGSERIAL PRIMARY KEY,
			id          TEXT NOT NULL,
			ts          TIMESTAMPTZ NOT NULL,
			part_id     TEXT NOT NULL,
			designation TEXT NOT NULL DEFAULT '',
			quantity    BIGINT NOT NULL,
			operator    TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("postgres: crear esquema: %w", err)
	}
	return nil
}

// LoadStock lee la tabla de stock en orden de visualización.
func (s *Store) LoadStock(ctx context.Context) ([]entity.Part, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, designation, quantity, unit_price, alert_threshold, updated_at
		FROM stock ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("postgres: leer stock: %w", err)
	}
	defer rows.Close()

	var parts []entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.Designation, &p.Quantity, &p.UnitPrice, &p.AlertThreshold, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan stock: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

// ReplaceStock reemplaza la tabla completa en una transacción
// (semántica de sobreescritura total, igual que la hoja de cálculo).
func (s *Store) ReplaceStock(ctx context.Context, parts []entity.Part) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM stock`); err != nil {
		return fmt.Errorf("postgres: vaciar stock: %w", err)
	}
	for i, p := range parts {
		_, err := tx.Exec(ctx, `
			INSERT INTO stock (position, id, designation, quantity, unit_price, alert_threshold, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			i, p.ID, p.Designation, p.Quantity, p.UnitPrice, p.AlertThreshold, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("postgres: insertar %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// AppendMovement inserta un registro de salida.
func (s *Store) AppendMovement(ctx context.Context, mov entity.Movement) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sorties (id, ts, part_id, designation, quantity, operator)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		mov.ID, mov.Timestamp, mov.PartID, mov.Designation, mov.Quantity, mov.Operator)
	if err != nil {
		return fmt.Errorf("postgres: insertar movimiento: %w", err)
	}
	return nil
}

// LoadMovements lee el registro de salidas en orden de inserción.
func (s *Store) LoadMovements(ctx context.Context) ([]entity.Movement, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, ts, part_id, designation, quantity, operator
		FROM sorties ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("postgres: leer movimientos: %w", err)
	}
	defer rows.Close()

	var movs []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.PartID, &m.Designation, &m.Quantity, &m.Operator); err != nil {
			return nil, fmt.Errorf("postgres: scan movimiento: %w", err)
		}
		movs = append(movs, m)
	}
	return movs, rows.Err()
}
