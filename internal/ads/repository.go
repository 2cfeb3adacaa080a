package ads

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const adColumns = `id, image_url, cloudinary_id, is_active, created_at, updated_at, created_by, updated_by`

type Repository interface {
	GetActive(ctx context.Context) (ActiveAd, error)
	ListAll(ctx context.Context) ([]Ad, error)
	GetByID(ctx context.Context, id int64) (Ad, error)
	Insert(ctx context.Context, a Ad) (Ad, error)
	Update(ctx context.Context, a Ad) (Ad, error)
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64) (Ad, error)
	DeactivateAll(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetActive returns pgx.ErrNoRows when no ad is currently active.
func (r *PostgresRepository) GetActive(ctx context.Context) (ActiveAd, error) {
	var a ActiveAd
	err := r.pool.QueryRow(ctx, `
		SELECT id, image_url FROM ads WHERE is_active = true LIMIT 1`,
	).Scan(&a.ID, &a.ImageURL)
	return a, err
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Ad, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+adColumns+`
		FROM ads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Ad, 0)
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Ad, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+adColumns+` FROM ads WHERE id = $1`, id)
	return scanAd(row)
}

func (r *PostgresRepository) Insert(ctx context.Context, a Ad) (Ad, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ads (image_url, cloudinary_id, is_active)
		VALUES ($1, $2, false)
		RETURNING `+adColumns,
		a.ImageURL, a.CloudinaryID,
	)
	return scanAd(row)
}

func (r *PostgresRepository) Update(ctx context.Context, a Ad) (Ad, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE ads
		SET image_url = $1,
			cloudinary_id = $2,
			updated_at = CURRENT_TIMESTAMP,
			updated_by = $3
		WHERE id = $4
		RETURNING `+adColumns,
		a.ImageURL, a.CloudinaryID, a.UpdatedBy, a.ID,
	)
	return scanAd(row)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetActive deactivates every ad and activates the given one in a single
// transaction. An unknown id rolls the whole thing back, so the previously
// active ad stays active.
func (r *PostgresRepository) SetActive(ctx context.Context, id int64) (Ad, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Ad{}, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE ads SET is_active = false`); err != nil {
		return Ad{}, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE ads SET is_active = true WHERE id = $1
		RETURNING `+adColumns, id)
	a, err := scanAd(row)
	if err != nil {
		return Ad{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Ad{}, err
	}
	return a, nil
}

func (r *PostgresRepository) DeactivateAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE ads SET is_active = false`)
	return err
}

func (r *PostgresRepository) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active = true)
		FROM ads`,
	).Scan(&stats.TotalAds, &stats.ActiveAds)
	return stats, err
}

func scanAd(row pgx.Row) (Ad, error) {
	var a Ad
	err := row.Scan(
		&a.ID, &a.ImageURL, &a.CloudinaryID, &a.IsActive, &a.CreatedAt,
		&a.UpdatedAt, &a.CreatedBy, &a.UpdatedBy,
	)
	return a, err
}
