package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const buildColumns = `seq, script_id, script_hash, ir_hash, module_name, clause_count, compiler_version, ir_version`

// List returns every recorded build in seq order.
// Returns an empty slice (not nil) when the registry is empty.
func (r *Registry) List(ctx context.Context) ([]Build, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+buildColumns+` FROM builds ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	builds := []Build{}
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}

// Lookup returns the build with the given script hash or script ID.
// Returns ErrNotFound if neither matches.
func (r *Registry) Lookup(ctx context.Context, key string) (Build, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+buildColumns+` FROM builds WHERE script_hash = ? OR script_id = ? ORDER BY seq ASC LIMIT 1`,
		key, key,
	)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, fmt.Errorf("lookup %q: %w", key, ErrNotFound)
	}
	return b, err
}

// LookupByIR returns every build compiled from the IR with the given hash,
// in seq order. Different module names yield different scripts for one IR.
func (r *Registry) LookupByIR(ctx context.Context, irHash string) ([]Build, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+buildColumns+` FROM builds WHERE ir_hash = ? ORDER BY seq ASC`, irHash)
	if err != nil {
		return nil, fmt.Errorf("query builds by ir: %w", err)
	}
	defer rows.Close()

	builds := []Build{}
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (Build, error) {
	var b Build
	err := row.Scan(
		&b.Seq,
		&b.ScriptID,
		&b.ScriptHash,
		&b.IRHash,
		&b.ModuleName,
		&b.ClauseCount,
		&b.CompilerVersion,
		&b.IRVersion,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, err
	}
	if err != nil {
		return Build{}, fmt.Errorf("scan build: %w", err)
	}
	return b, nil
}
