package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Record appends b to the registry and returns its seq.
//
// Uses ON CONFLICT(script_hash) DO NOTHING for idempotency: if the script was
// already recorded, the existing seq is returned with inserted=false and the
// stored row is left untouched.
func (r *Registry) Record(ctx context.Context, b Build) (seq int64, inserted bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("record build: begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	result, err := tx.ExecContext(ctx, `
		INSERT INTO builds
		(script_id, script_hash, ir_hash, module_name, clause_count, compiler_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(script_hash) DO NOTHING
	`,
		b.ScriptID,
		b.ScriptHash,
		b.IRHash,
		b.ModuleName,
		b.ClauseCount,
		b.CompilerVersion,
		b.IRVersion,
	)
	if err != nil {
		return 0, false, fmt.Errorf("record build: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("record build: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		seq, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("record build: last insert id: %w", err)
		}
		inserted = true
	} else {
		err = tx.QueryRowContext(ctx,
			`SELECT seq FROM builds WHERE script_hash = ?`, b.ScriptHash,
		).Scan(&seq)
		if err != nil {
			return 0, false, fmt.Errorf("record build: select existing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("record build: commit: %w", err)
	}

	r.logger.Debug("build recorded",
		zap.Int64("seq", seq),
		zap.String("script_id", b.ScriptID),
		zap.Bool("inserted", inserted),
	)
	return seq, inserted, nil
}
