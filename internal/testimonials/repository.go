package testimonials

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const testimonialColumns = `id, video_url, cloudinary_id, name, prefix, views,
	is_active, display_order, created_at, updated_at, created_by, updated_by`

type Repository interface {
	ListActive(ctx context.Context) ([]PublicTestimonial, error)
	ListAll(ctx context.Context) ([]Testimonial, error)
	GetByID(ctx context.Context, id int64) (Testimonial, error)
	// InsertNext assigns display_order = max + 1 and inserts, atomically.
	InsertNext(ctx context.Context, t Testimonial) (Testimonial, error)
	Update(ctx context.Context, t Testimonial) (Testimonial, error)
	Delete(ctx context.Context, id int64) error
	ToggleActive(ctx context.Context, id int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) error
	// Reorder writes every {id, order} pair or none of them.
	Reorder(ctx context.Context, items []ReorderItem) error
	Stats(ctx context.Context) (Stats, []TopTestimonial, error)
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]PublicTestimonial, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, video_url, name, prefix, views
		FROM testimonials WHERE is_active = true
		ORDER BY display_order ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]PublicTestimonial, 0)
	for rows.Next() {
		var t PublicTestimonial
		if err := rows.Scan(&t.ID, &t.VideoURL, &t.Name, &t.Prefix, &t.Views); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Testimonial, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+testimonialColumns+`
		FROM testimonials
		ORDER BY display_order ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Testimonial, 0)
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Testimonial, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+testimonialColumns+`
		FROM testimonials WHERE id = $1`, id)
	return scanTestimonial(row)
}

func (r *PostgresRepository) InsertNext(ctx context.Context, t Testimonial) (Testimonial, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Testimonial{}, err
	}
	defer tx.Rollback(ctx)

	var maxOrder int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(display_order), 0) FROM testimonials`,
	).Scan(&maxOrder); err != nil {
		return Testimonial{}, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO testimonials (video_url, cloudinary_id, name, prefix, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+testimonialColumns,
		t.VideoURL, t.CloudinaryID, t.Name, t.Prefix, maxOrder+1,
	)
	created, err := scanTestimonial(row)
	if err != nil {
		return Testimonial{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Testimonial{}, err
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t Testimonial) (Testimonial, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE testimonials
		SET video_url = $1,
			cloudinary_id = $2,
			name = $3,
			prefix = $4,
			updated_at = CURRENT_TIMESTAMP,
			updated_by = $5
		WHERE id = $6
		RETURNING `+testimonialColumns,
		t.VideoURL, t.CloudinaryID, t.Name, t.Prefix, t.UpdatedBy, t.ID,
	)
	return scanTestimonial(row)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
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
		UPDATE testimonials SET is_active = NOT is_active
		WHERE id = $1 RETURNING is_active`, id,
	).Scan(&active)
	return active, err
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE testimonials SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) Reorder(ctx context.Context, items []ReorderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			UPDATE testimonials
			SET display_order = $1, updated_at = CURRENT_TIMESTAMP
			WHERE id = $2`,
			item.Order, item.ID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) Stats(ctx context.Context) (Stats, []TopTestimonial, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active = true),
			COUNT(*) FILTER (WHERE is_active = false),
			COALESCE(SUM(views), 0),
			COALESCE(AVG(views), 0)
		FROM testimonials`,
	).Scan(&stats.TotalTestimonials, &stats.ActiveTestimonials, &stats.InactiveTestimonials,
		&stats.TotalViews, &stats.AvgViewsPerTestimonial)
	if err != nil {
		return Stats{}, nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, prefix, views FROM testimonials
		ORDER BY views DESC LIMIT 5`)
	if err != nil {
		return Stats{}, nil, err
	}
	defer rows.Close()

	top := make([]TopTestimonial, 0, 5)
	for rows.Next() {
		var t TopTestimonial
		if err := rows.Scan(&t.ID, &t.Name, &t.Prefix, &t.Views); err != nil {
			return Stats{}, nil, err
		}
		top = append(top, t)
	}
	return stats, top, rows.Err()
}

func scanTestimonial(row pgx.Row) (Testimonial, error) {
	var t Testimonial
	err := row.Scan(
		&t.ID, &t.VideoURL, &t.CloudinaryID, &t.Name, &t.Prefix, &t.Views,
		&t.IsActive, &t.DisplayOrder, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
		&t.UpdatedBy,
	)
	return t, err
}
