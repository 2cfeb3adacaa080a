package news

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const articleColumns = `id, image_url, cloudinary_id, date, time, description, tag,
	views, is_active, created_at, updated_at, created_by, updated_by`

type Repository interface {
	ListActive(ctx context.Context) ([]Article, error)
	ListAll(ctx context.Context) ([]Article, error)
	GetByID(ctx context.Context, id int64) (Article, error)
	Insert(ctx context.Context, a Article) (Article, error)
	Update(ctx context.Context, a Article) (Article, error)
	Delete(ctx context.Context, id int64) error
	ToggleActive(ctx context.Context, id int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) error
	Stats(ctx context.Context) (Stats, []TopArticle, error)
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]Article, error) {
	return r.list(ctx, `SELECT `+articleColumns+`
		FROM news_articles WHERE is_active = true ORDER BY created_at DESC`)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Article, error) {
	return r.list(ctx, `SELECT `+articleColumns+`
		FROM news_articles ORDER BY created_at DESC`)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]Article, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Article, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+articleColumns+`
		FROM news_articles WHERE id = $1`, id)
	return scanArticle(row)
}

func (r *PostgresRepository) Insert(ctx context.Context, a Article) (Article, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO news_articles (image_url, cloudinary_id, date, time, description, tag)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+articleColumns,
		a.ImageURL, a.CloudinaryID, a.Date, a.Time, a.Description, a.Tag,
	)
	return scanArticle(row)
}

func (r *PostgresRepository) Update(ctx context.Context, a Article) (Article, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE news_articles
		SET image_url = $1,
			cloudinary_id = $2,
			date = $3,
			time = $4,
			description = $5,
			tag = $6,
			updated_at = CURRENT_TIMESTAMP,
			updated_by = $7
		WHERE id = $8
		RETURNING `+articleColumns,
		a.ImageURL, a.CloudinaryID, a.Date, a.Time, a.Description, a.Tag, a.UpdatedBy, a.ID,
	)
	return scanArticle(row)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news_articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PostgresRepository) ToggleActive(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := r.pool.QueryRow(ctx, `
		UPDATE news_articles SET is_active = NOT is_active
		WHERE id = $1 RETURNING is_active`, id,
	).Scan(&active)
	return active, err
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE news_articles SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) Stats(ctx context.Context) (Stats, []TopArticle, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active = true),
			COUNT(*) FILTER (WHERE is_active = false),
			COALESCE(SUM(views), 0),
			COALESCE(AVG(views), 0)
		FROM news_articles`,
	).Scan(&stats.TotalArticles, &stats.ActiveArticles, &stats.InactiveArticles,
		&stats.TotalViews, &stats.AvgViewsPerArticle)
	if err != nil {
		return Stats{}, nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, tag, views, date FROM news_articles
		ORDER BY views DESC LIMIT 5`)
	if err != nil {
		return Stats{}, nil, err
	}
	defer rows.Close()

	top := make([]TopArticle, 0, 5)
	for rows.Next() {
		var t TopArticle
		if err := rows.Scan(&t.ID, &t.Tag, &t.Views, &t.Date); err != nil {
			return Stats{}, nil, err
		}
		top = append(top, t)
	}
	return stats, top, rows.Err()
}

func scanArticle(row pgx.Row) (Article, error) {
	var a Article
	err := row.Scan(
		&a.ID, &a.ImageURL, &a.CloudinaryID, &a.Date, &a.Time, &a.Description,
		&a.Tag, &a.Views, &a.IsActive, &a.CreatedAt, &a.UpdatedAt, &a.CreatedBy,
		&a.UpdatedBy,
	)
	return a, err
}
