package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/fissure/internal/ir"
)

// WriteRun records a completed run and the lines it rejected in a single
// transaction. The store assigns the next seq; rec.Seq is ignored.
//
// Returns:
//   - seq: the seq of the run (new or existing)
//   - inserted: false if a run with rec.ID was already recorded
//   - error: any error that occurred
//
// If inserted=false nothing is written.
func (s *Store) WriteRun(ctx context.Context, rec ir.RunRecord, rejections []ir.Rejection) (seq int64, inserted bool, err error) {
	if rec.ID == "" {
		return 0, false, fmt.Errorf("write run: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, rec.ID).Scan(&seq)
	switch {
	case err == nil:
		if err := tx.Commit(); err != nil {
			return 0, false, fmt.Errorf("write run: commit (existing): %w", err)
		}
		return seq, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("write run: lookup existing: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, false, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, input_digest, segment_digest, bound, policy, size,
		 lines, kept, diagonal, rejected, overlaps, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		seq,
		rec.InputDigest,
		rec.SegmentDigest,
		rec.Bound,
		rec.Policy,
		rec.Size,
		rec.Lines,
		rec.Kept,
		rec.Diagonal,
		rec.Rejected,
		rec.Overlaps,
		rec.EngineVersion,
	)
	if err != nil {
		return 0, false, fmt.Errorf("write run: insert run: %w", err)
	}

	for _, r := range rejections {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rejections (run_id, line, kind, text)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(run_id, line) DO NOTHING
		`, rec.ID, r.Line, r.Kind, r.Text)
		if err != nil {
			return 0, false, fmt.Errorf("write run: insert rejection line %d: %w", r.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("write run: commit: %w", err)
	}

	return seq, true, nil
}
