/*
 * store.go, part of gotweezer.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package sweepdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	tweezer "github.com/rmera/gotweezer"
	"github.com/rmera/gotweezer/sweep"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a run is not in the database.
var ErrNotFound = errors.New("gotweezer/sweepdb: run not found")

// Store is an SQLite database of sweeps.
type Store struct {
	db *sql.DB
}

// Run describes one stored sweep.
type Run struct {
	ID      string
	Label   string
	Created time.Time
	Points  int
}

// dsnParams are applied by the driver to every new connection.
const dsnParams = "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	//SQLite supports only one writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores the setup and the points of a sweep in one transaction, and returns
// the ID of the new run.
func (s *Store) Save(ctx context.Context, label string, setup *sweep.Setup, points []sweep.Point) (string, error) {
	id := uuid.New().String()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()
	_, err = tx.ExecContext(ctx, `INSERT INTO runs (id, label, created, power, na, waist, mass) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, label, time.Now().UnixNano(), setup.Power, setup.NA, setup.Waist, setup.Mass)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for i, t := range setup.Transitions {
		_, err = tx.ExecContext(ctx, `INSERT INTO transitions (run_id, seq, name, omega, linewidth) VALUES (?, ?, ?, ?, ?)`,
			id, i, t.Name, t.Omega, t.Linewidth)
		if err != nil {
			return "", fmt.Errorf("insert transition %d: %w", i, err)
		}
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points (run_id, seq, wavelength, omega, waist, potential, scattering,
		omega_radial, omega_axial, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare points: %w", err)
	}
	defer stmt.Close()
	for i, p := range points {
		var perr sql.NullString
		if !p.Valid() {
			perr = sql.NullString{String: p.Err.Error(), Valid: true}
		}
		_, err = stmt.ExecContext(ctx, id, i, p.Wavelength, p.Omega, p.Waist, p.Potential, p.Scattering,
			p.OmegaRadial, p.OmegaAxial, perr)
		if err != nil {
			return "", fmt.Errorf("insert point %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Runs returns all the stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.id, r.label, r.created, COUNT(p.seq) FROM runs r
		LEFT JOIN points p ON p.run_id = r.id GROUP BY r.id ORDER BY r.created, r.id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var ret []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Label, &created, &r.Points); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Created = time.Unix(0, created)
		ret = append(ret, r)
	}
	return ret, rows.Err()
}

// Setup returns the setup of the run id.
func (s *Store) Setup(ctx context.Context, id string) (*sweep.Setup, error) {
	setup := new(sweep.Setup)
	err := s.db.QueryRowContext(ctx, `SELECT power, na, waist, mass FROM runs WHERE id = ?`, id).
		Scan(&setup.Power, &setup.NA, &setup.Waist, &setup.Mass)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", id, err)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name, omega, linewidth FROM transitions WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t tweezer.Transition
		if err := rows.Scan(&t.Name, &t.Omega, &t.Linewidth); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		setup.Transitions = append(setup.Transitions, t)
	}
	return setup, rows.Err()
}

// Points returns the points of the run id, in their original order. Resonant points
// get an Err wrapping tweezer.ErrSingular.
func (s *Store) Points(ctx context.Context, id string) ([]sweep.Point, error) {
	if _, err := s.Setup(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT wavelength, omega, waist, potential, scattering, omega_radial,
		omega_axial, error FROM points WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	defer rows.Close()
	var ret []sweep.Point
	for rows.Next() {
		var p sweep.Point
		var perr sql.NullString
		if err := rows.Scan(&p.Wavelength, &p.Omega, &p.Waist, &p.Potential, &p.Scattering,
			&p.OmegaRadial, &p.OmegaAxial, &perr); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		if perr.Valid {
			p.Err = fmt.Errorf("%s: %w", perr.String, tweezer.ErrSingular)
		}
		ret = append(ret, p)
	}
	return ret, rows.Err()
}

// Delete removes the run id and its points.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
