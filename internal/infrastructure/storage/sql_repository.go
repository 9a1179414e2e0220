package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/ports"
)

const (
	recordsTable  = "news_records"
	commentsTable = "news_comments"

	// Keeps multi-row inserts well below the Postgres parameter limit.
	commentBatchSize = 500
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS news_records (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		lead TEXT NOT NULL,
		url TEXT NOT NULL,
		category TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS news_comments (
		record_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		author TEXT NOT NULL,
		comment_date TEXT NOT NULL,
		content TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (record_id, position)
	)`,
}

// SQLRepository stores news records in two relational tables. The same code
// serves Postgres and SQLite; only the placeholder format differs.
type SQLRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RecordRepository = (*SQLRepository)(nil)

// NewSQLRepository wires a sql.DB implementation.
func NewSQLRepository(db *sql.DB, placeholder sq.PlaceholderFormat) *SQLRepository {
	return &SQLRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Migrate creates the tables when they are missing.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// Insert stores rec, replacing any record with the same id and its comments.
func (r *SQLRepository) Insert(ctx context.Context, rec domain.NewsRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.exec(ctx, tx, r.builder.Delete(commentsTable).Where(sq.Eq{"record_id": rec.Article.ID})); err != nil {
		return fmt.Errorf("clear comments: %w", err)
	}

	upsert := r.builder.Insert(recordsTable).
		Columns("id", "title", "lead", "url", "category", "created_at").
		Values(
			rec.Article.ID,
			rec.Article.Title,
			rec.Article.Lead,
			rec.Article.URL,
			string(rec.Article.Category),
			rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			lead = excluded.lead,
			url = excluded.url,
			category = excluded.category,
			created_at = excluded.created_at`)
	if err = r.exec(ctx, tx, upsert); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	for start := 0; start < len(rec.Comments); start += commentBatchSize {
		end := min(start+commentBatchSize, len(rec.Comments))

		insert := r.builder.Insert(commentsTable).
			Columns("record_id", "position", "author", "comment_date", "content", "sentiment", "user_id")
		for i := start; i < end; i++ {
			c := rec.Comments[i]
			insert = insert.Values(rec.Article.ID, i, c.Author, c.Date, c.Content, string(c.Sentiment), c.UserID)
		}
		if err = r.exec(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert comments: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// FindByID loads a record with its comments in original order.
func (r *SQLRepository) FindByID(ctx context.Context, id string) (domain.NewsRecord, error) {
	query, args, err := r.builder.
		Select("id", "title", "lead", "url", "category", "created_at").
		From(recordsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.NewsRecord{}, fmt.Errorf("build select: %w", err)
	}

	var (
		rec       domain.NewsRecord
		category  string
		createdAt string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.Article.ID,
		&rec.Article.Title,
		&rec.Article.Lead,
		&rec.Article.URL,
		&category,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewsRecord{}, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return domain.NewsRecord{}, fmt.Errorf("query record: %w", err)
	}
	rec.Article.Category = domain.Category(category)
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.NewsRecord{}, fmt.Errorf("parse created_at: %w", err)
	}

	rec.Comments, err = r.comments(ctx, id)
	if err != nil {
		return domain.NewsRecord{}, err
	}
	return rec, nil
}

func (r *SQLRepository) comments(ctx context.Context, id string) ([]domain.Comment, error) {
	query, args, err := r.builder.
		Select("author", "comment_date", "content", "sentiment", "user_id").
		From(commentsTable).
		Where(sq.Eq{"record_id": id}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build comments select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}

	result := make([]domain.Comment, 0)
	for rows.Next() {
		var (
			c         domain.Comment
			sentiment string
		)
		if err := rows.Scan(&c.Author, &c.Date, &c.Content, &sentiment, &c.UserID); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Sentiment = domain.Sentiment(sentiment)
		result = append(result, c)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// DeleteByID removes the record and its comments.
func (r *SQLRepository) DeleteByID(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.exec(ctx, tx, r.builder.Delete(commentsTable).Where(sq.Eq{"record_id": id})); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}

	query, args, err := r.builder.Delete(recordsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{ID: id}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close releases the underlying pool.
func (r *SQLRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLRepository) exec(ctx context.Context, tx *sql.Tx, stmt sq.Sqlizer) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}
