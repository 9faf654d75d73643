// Package audit keeps a sqlite log of served calculations. It lives
// strictly in the serving layer: the engine itself stays a pure function
// and never touches it.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"crm-engine/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS calculations (
	calculation_id             TEXT PRIMARY KEY,
	received_at                TEXT NOT NULL,
	reference_date             TEXT NOT NULL,
	outcome                    TEXT NOT NULL,
	coefficient_at_reference   REAL NOT NULL,
	coefficient_at_termination REAL,
	staleness                  TEXT NOT NULL,
	consistency                TEXT NOT NULL,
	duration_ms                INTEGER NOT NULL,
	response_json              TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the calculation log at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one served calculation. body is the response exactly as
// sent on the wire.
func (s *Store) Record(resp *model.CalculationResponse, body []byte) error {
	var atTermination sql.NullFloat64
	if v := resp.CalculationResult.CoefficientAtTermination; v != nil {
		atTermination = sql.NullFloat64{Float64: *v, Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO calculations (
			calculation_id, received_at, reference_date, outcome,
			coefficient_at_reference, coefficient_at_termination,
			staleness, consistency, duration_ms, response_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		resp.CalculationMetadata.CalculationID,
		time.Now().UTC().Format(time.RFC3339),
		resp.CalculationMetadata.ReferenceDate,
		resp.CalculationMetadata.CalculationOutcome,
		resp.CalculationResult.CoefficientAtReference,
		atTermination,
		resp.CalculationResult.Staleness,
		resp.CalculationResult.Consistency,
		resp.CalculationMetadata.CalculationDurationMs,
		string(body),
	)
	if err != nil {
		return fmt.Errorf("record calculation: %w", err)
	}
	return nil
}

// Entry is one logged calculation, as read back for inspection.
type Entry struct {
	CalculationID            string
	ReceivedAt               string
	ReferenceDate            string
	Outcome                  string
	CoefficientAtReference   float64
	CoefficientAtTermination *float64
	Staleness                string
	Consistency              string
}

// Get reads one logged calculation by id.
func (s *Store) Get(calculationID string) (*Entry, error) {
	row := s.db.QueryRow(`
		SELECT calculation_id, received_at, reference_date, outcome,
		       coefficient_at_reference, coefficient_at_termination,
		       staleness, consistency
		FROM calculations WHERE calculation_id = ?`, calculationID)
	var e Entry
	var atTermination sql.NullFloat64
	if err := row.Scan(&e.CalculationID, &e.ReceivedAt, &e.ReferenceDate, &e.Outcome,
		&e.CoefficientAtReference, &atTermination, &e.Staleness, &e.Consistency); err != nil {
		return nil, fmt.Errorf("get calculation: %w", err)
	}
	if atTermination.Valid {
		e.CoefficientAtTermination = &atTermination.Float64
	}
	return &e, nil
}

// Count returns the number of logged calculations.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM calculations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count calculations: %w", err)
	}
	return n, nil
}
