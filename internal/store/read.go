package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/fissure/internal/ir"
)

// ErrNotFound is returned by ReadRun when no run has the requested id.
var ErrNotFound = errors.New("run not found")

const runColumns = `id, seq, input_digest, segment_digest, bound, policy, size,
	lines, kept, diagonal, rejected, overlaps, engine_version`

// ReadRun returns the run with the given id.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.RunRecord{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return rec, nil
}

// ReadRuns returns the most recent limit runs, oldest first.
// A limit <= 0 returns every run.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the ledger is empty.
func (s *Store) ReadRuns(ctx context.Context, limit int) ([]ir.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	return s.queryRuns(ctx, `
		SELECT `+runColumns+` FROM (
			SELECT `+runColumns+` FROM runs
			ORDER BY seq DESC
			LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, limit)
}

// RunsByDigest returns every run over the same input text, oldest first.
func (s *Store) RunsByDigest(ctx context.Context, inputDigest string) ([]ir.RunRecord, error) {
	return s.queryRuns(ctx, `
		SELECT `+runColumns+` FROM runs
		WHERE input_digest = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, inputDigest)
}

// ReadRejections returns the lines a run rejected, in input order.
// Returns an empty slice (not nil) if the run rejected nothing or does not exist.
func (s *Store) ReadRejections(ctx context.Context, runID string) ([]ir.Rejection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT line, kind, text FROM rejections
		WHERE run_id = ?
		ORDER BY line ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rejections: %w", err)
	}
	defer rows.Close()

	rejections := []ir.Rejection{}
	for rows.Next() {
		var r ir.Rejection
		if err := rows.Scan(&r.Line, &r.Kind, &r.Text); err != nil {
			return nil, fmt.Errorf("scan rejection: %w", err)
		}
		rejections = append(rejections, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rejections: %w", err)
	}
	return rejections, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]ir.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (ir.RunRecord, error) {
	var rec ir.RunRecord
	err := sc.Scan(
		&rec.ID,
		&rec.Seq,
		&rec.InputDigest,
		&rec.SegmentDigest,
		&rec.Bound,
		&rec.Policy,
		&rec.Size,
		&rec.Lines,
		&rec.Kept,
		&rec.Diagonal,
		&rec.Rejected,
		&rec.Overlaps,
		&rec.EngineVersion,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.RunRecord{}, err
		}
		return ir.RunRecord{}, fmt.Errorf("scan run: %w", err)
	}
	return rec, nil
}
