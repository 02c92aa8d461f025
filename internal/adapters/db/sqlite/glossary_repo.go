package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"locmate/internal/domain"
)

type GlossaryRepo struct{ *Repo }

func NewGlossaryRepo(db *sql.DB) *GlossaryRepo { return &GlossaryRepo{NewRepo(db)} }

func (r *GlossaryRepo) Create(ctx context.Context, g *domain.Glossary) error {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		q := r.SQ.Insert("glossaries").Columns("id", "name", "game_id", "is_active", "created_at", "updated_at").
			Values(g.ID, g.Name, g.GameID, g.IsActive, now.Format(time.RFC3339), now.Format(time.RFC3339))
		sqlStr, args, _ := q.ToSql()
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
		return insertEntries(ctx, tx, r.SQ, g)
	})
}

// Update rewrites the glossary row and replaces its entry set wholesale;
// entry order is the stored position.
func (r *GlossaryRepo) Update(ctx context.Context, g *domain.Glossary) error {
	g.UpdatedAt = time.Now().UTC()
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		q := r.SQ.Update("glossaries").
			Set("name", g.Name).Set("game_id", g.GameID).Set("is_active", g.IsActive).
			Set("updated_at", g.UpdatedAt.Format(time.RFC3339)).
			Where(sq.Eq{"id": g.ID})
		sqlStr, args, _ := q.ToSql()
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
		del := r.SQ.Delete("glossary_entries").Where(sq.Eq{"glossary_id": g.ID})
		sqlStr, args, _ = del.ToSql()
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
		return insertEntries(ctx, tx, r.SQ, g)
	})
}

func insertEntries(ctx context.Context, tx *sql.Tx, builder sq.StatementBuilderType, g *domain.Glossary) error {
	if len(g.Entries) == 0 {
		return nil
	}
	ib := builder.Insert("glossary_entries").
		Columns("id", "glossary_id", "source", "target", "case_sensitive", "whole_word", "category", "position")
	for i, e := range g.Entries {
		ib = ib.Values(e.ID, g.ID, e.Source, e.Target, e.CaseSensitive, e.WholeWord, e.Category, i)
	}
	sqlStr, args, _ := ib.ToSql()
	_, err := tx.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *GlossaryRepo) Get(ctx context.Context, id string) (*domain.Glossary, error) {
	q := r.SQ.Select("id", "name", "game_id", "is_active", "created_at", "updated_at").
		From("glossaries").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	g, err := scanGlossary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadEntries(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GlossaryRepo) List(ctx context.Context) ([]*domain.Glossary, error) {
	q := r.SQ.Select("id", "name", "game_id", "is_active", "created_at", "updated_at").
		From("glossaries").OrderBy("created_at")
	return r.queryGlossaries(ctx, q)
}

// ListActive returns the glossaries that apply to gameID: the global one
// (empty game_id) first, then game-specific ones.
func (r *GlossaryRepo) ListActive(ctx context.Context, gameID string) ([]*domain.Glossary, error) {
	q := r.SQ.Select("id", "name", "game_id", "is_active", "created_at", "updated_at").
		From("glossaries").
		Where(sq.Eq{"is_active": true}).
		Where(sq.Or{sq.Eq{"game_id": ""}, sq.Eq{"game_id": gameID}}).
		OrderBy("(game_id = '') DESC, created_at")
	return r.queryGlossaries(ctx, q)
}

func (r *GlossaryRepo) queryGlossaries(ctx context.Context, q sq.SelectBuilder) ([]*domain.Glossary, error) {
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Glossary
	for rows.Next() {
		g, err := scanGlossary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, g := range out {
		if err := r.loadEntries(ctx, g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *GlossaryRepo) loadEntries(ctx context.Context, g *domain.Glossary) error {
	q := r.SQ.Select("id", "source", "target", "case_sensitive", "whole_word", "category").
		From("glossary_entries").Where(sq.Eq{"glossary_id": g.ID}).OrderBy("position")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var e domain.GlossaryEntry
		if err := rows.Scan(&e.ID, &e.Source, &e.Target, &e.CaseSensitive, &e.WholeWord, &e.Category); err != nil {
			return err
		}
		e.GameID = g.GameID
		g.Entries = append(g.Entries, e)
	}
	return rows.Err()
}

func (r *GlossaryRepo) Delete(ctx context.Context, id string) error {
	q := r.SQ.Delete("glossaries").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func scanGlossary(row rowScanner) (*domain.Glossary, error) {
	var g domain.Glossary
	var created, updated string
	if err := row.Scan(&g.ID, &g.Name, &g.GameID, &g.IsActive, &created, &updated); err != nil {
		return nil, err
	}
	g.CreatedAt, _ = time.Parse(time.RFC3339, created)
	g.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &g, nil
}
