package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/basc/internal/ir"
	"github.com/roach88/basc/internal/preview"
	"github.com/roach88/basc/internal/timeline"
)

// ErrNotFound is returned when no build matches a lookup.
var ErrNotFound = errors.New("build not found")

// Build is one archived program.
type Build struct {
	ID              string  `json:"id"`
	Seq             int64   `json:"seq"`
	Scene           string  `json:"scene"`
	ProgramHash     string  `json:"program_hash"`
	Program         string  `json:"program"`
	ItemCount       int     `json:"item_count"`
	DurationMS      float64 `json:"duration_ms"`
	GrammarVersion  string  `json:"grammar_version"`
	CompilerVersion string  `json:"compiler_version"`
}

// SaveProgram archives prog as the newest build of scene. When the scene's
// latest build already has the same content hash nothing is written and
// that build is returned with created=false.
func (s *Store) SaveProgram(ctx context.Context, scene string, prog *timeline.Program) (b Build, created bool, err error) {
	text := prog.String()
	hash := ir.ProgramHash(text)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Build{}, false, fmt.Errorf("save program: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	latest, err := scanBuild(tx.QueryRowContext(ctx, selectBuild+`
		WHERE scene = ?
		ORDER BY seq DESC, id DESC
		LIMIT 1
	`, scene))
	switch {
	case err == nil && latest.ProgramHash == hash:
		if err := tx.Commit(); err != nil {
			return Build{}, false, fmt.Errorf("save program: %w", err)
		}
		s.logger.Debug("program unchanged", "scene", scene, "build", latest.ID, "hash", hash)
		return latest, false, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return Build{}, false, fmt.Errorf("save program: %w", err)
	}

	var seq int64
	if err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM builds`).Scan(&seq); err != nil {
		return Build{}, false, fmt.Errorf("save program: next seq: %w", err)
	}

	b = Build{
		ID:              s.ids.Generate(),
		Seq:             seq,
		Scene:           scene,
		ProgramHash:     hash,
		Program:         text,
		ItemCount:       len(prog.Definitions()),
		DurationMS:      preview.New(prog).Duration(),
		GrammarVersion:  ir.GrammarVersion,
		CompilerVersion: ir.CompilerVersion,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds
		(id, seq, scene, program_hash, program, item_count, duration_ms, grammar_version, compiler_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		b.Seq,
		b.Scene,
		b.ProgramHash,
		b.Program,
		b.ItemCount,
		b.DurationMS,
		b.GrammarVersion,
		b.CompilerVersion,
	)
	if err != nil {
		return Build{}, false, fmt.Errorf("save program: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return Build{}, false, fmt.Errorf("save program: %w", err)
	}

	s.logger.Debug("archived program", "scene", scene, "build", b.ID, "seq", b.Seq, "hash", hash)
	return b, true, nil
}

// Get returns the build with the given id.
func (s *Store) Get(ctx context.Context, id string) (Build, error) {
	b, err := scanBuild(s.db.QueryRowContext(ctx, selectBuild+` WHERE id = ?`, id))
	if err != nil {
		return Build{}, fmt.Errorf("get build %s: %w", id, err)
	}
	return b, nil
}

// Latest returns the newest build of scene.
func (s *Store) Latest(ctx context.Context, scene string) (Build, error) {
	b, err := scanBuild(s.db.QueryRowContext(ctx, selectBuild+`
		WHERE scene = ?
		ORDER BY seq DESC, id DESC
		LIMIT 1
	`, scene))
	if err != nil {
		return Build{}, fmt.Errorf("latest build of %s: %w", scene, err)
	}
	return b, nil
}

// FindByHash returns the earliest build of scene with the given content hash.
func (s *Store) FindByHash(ctx context.Context, scene, hash string) (Build, error) {
	b, err := scanBuild(s.db.QueryRowContext(ctx, selectBuild+`
		WHERE scene = ? AND program_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
		LIMIT 1
	`, scene, hash))
	if err != nil {
		return Build{}, fmt.Errorf("find build of %s by hash: %w", scene, err)
	}
	return b, nil
}

// History returns every build of scene, oldest first.
//
// Returns an empty slice (not nil) if the scene has no builds.
func (s *Store) History(ctx context.Context, scene string) ([]Build, error) {
	rows, err := s.db.QueryContext(ctx, selectBuild+`
		WHERE scene = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, scene)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
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
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return builds, nil
}

// Scenes returns the names of every archived scene, sorted.
func (s *Store) Scenes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT scene FROM builds ORDER BY scene COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query scenes: %w", err)
	}
	defer rows.Close()

	scenes := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		scenes = append(scenes, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenes: %w", err)
	}
	return scenes, nil
}

const selectBuild = `
	SELECT id, seq, scene, program_hash, program, item_count, duration_ms, grammar_version, compiler_version
	FROM builds`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (Build, error) {
	var b Build
	err := row.Scan(
		&b.ID,
		&b.Seq,
		&b.Scene,
		&b.ProgramHash,
		&b.Program,
		&b.ItemCount,
		&b.DurationMS,
		&b.GrammarVersion,
		&b.CompilerVersion,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, ErrNotFound
	}
	if err != nil {
		return Build{}, fmt.Errorf("scan build: %w", err)
	}
	return b, nil
}
