package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"

	"locmate/internal/domain"
	"locmate/internal/ports"
)

type MemoryRepo struct{ *Repo }

func NewMemoryRepo(db *sql.DB) *MemoryRepo { return &MemoryRepo{NewRepo(db)} }

const memoryColumns = "id, source_text, target_text, source_lang, target_lang, context, confidence, usage_count, project_id, game_id, file_path, tags_json, created_at, updated_at"

// Upsert inserts the entry or, on a (source_text, source_lang, target_lang,
// project_id) conflict, keeps the higher confidence and bumps usage_count.
func (r *MemoryRepo) Upsert(ctx context.Context, e *domain.MemoryEntry) error {
	now := time.Now().UTC().Format(time.RFC3339)
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return err
	}
	if e.UsageCount < 1 {
		e.UsageCount = 1
	}
	_, err = r.DB.ExecContext(ctx, `
        INSERT INTO memory_entries
            (source_text, target_text, source_lang, target_lang, context, confidence, usage_count, project_id, game_id, file_path, tags_json, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(source_text, source_lang, target_lang, project_id) DO UPDATE SET
            target_text = excluded.target_text,
            context = excluded.context,
            confidence = MAX(confidence, excluded.confidence),
            usage_count = usage_count + 1,
            game_id = excluded.game_id,
            file_path = excluded.file_path,
            tags_json = excluded.tags_json,
            updated_at = excluded.updated_at`,
		e.SourceText, e.TargetText, e.SourceLang, e.TargetLang, e.Context,
		e.Confidence, e.UsageCount, e.ProjectID, e.GameID, e.FilePath,
		string(tags), now, now)
	if err != nil {
		return err
	}
	stored, err := r.Get(ctx, e.Key())
	if err != nil {
		return err
	}
	if stored != nil {
		*e = *stored
	}
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, key domain.MemoryKey) (*domain.MemoryEntry, error) {
	q := r.SQ.Select(memoryColumns).From("memory_entries").Where(sq.Eq{
		"source_text": key.SourceText,
		"source_lang": key.SourceLang,
		"target_lang": key.TargetLang,
		"project_id":  key.ProjectID,
	})
	sqlStr, args, _ := q.ToSql()
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	e, err := scanMemoryEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *MemoryRepo) List(ctx context.Context, f ports.MemoryFilter) ([]*domain.MemoryEntry, error) {
	q := r.SQ.Select(memoryColumns).From("memory_entries")
	if f.SourceLang != "" {
		q = q.Where(sq.Eq{"source_lang": f.SourceLang})
	}
	if f.TargetLang != "" {
		q = q.Where(sq.Eq{"target_lang": f.TargetLang})
	}
	if f.ProjectID != "" {
		q = q.Where(sq.Eq{"project_id": f.ProjectID})
	}
	if f.GameID != "" {
		q = q.Where(sq.Eq{"game_id": f.GameID})
	}
	q = q.OrderBy("usage_count DESC, updated_at DESC")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.MemoryEntry
	for rows.Next() {
		e, err := scanMemoryEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *MemoryRepo) IncrementUsage(ctx context.Context, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	q := r.SQ.Update("memory_entries").
		Set("usage_count", sq.Expr("usage_count + 1")).
		Set("updated_at", now).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemoryEntry(row rowScanner) (*domain.MemoryEntry, error) {
	var e domain.MemoryEntry
	var tags, created, updated string
	if err := row.Scan(&e.ID, &e.SourceText, &e.TargetText, &e.SourceLang, &e.TargetLang,
		&e.Context, &e.Confidence, &e.UsageCount, &e.ProjectID, &e.GameID,
		&e.FilePath, &tags, &created, &updated); err != nil {
		return nil, err
	}
	if tags != "" {
		_ = json.Unmarshal([]byte(tags), &e.Tags)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	e.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &e, nil
}
