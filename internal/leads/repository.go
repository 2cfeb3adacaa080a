package leads

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	InsertStudy(ctx context.Context, lead StudyLead) (StudyLead, error)
	InsertWork(ctx context.Context, lead WorkLead) (WorkLead, error)
	InsertInvest(ctx context.Context, lead InvestLead) (InvestLead, error)
	ListStudy(ctx context.Context) ([]StudyLead, error)
	ListWork(ctx context.Context) ([]WorkLead, error)
	ListInvest(ctx context.Context) ([]InvestLead, error)
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) InsertStudy(ctx context.Context, lead StudyLead) (StudyLead, error) {
	const query = `
		INSERT INTO study (
			country, qualification, age, education_topic, cgpa, budget,
			needs_loan, name, email, phone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, country, qualification, age, education_topic, cgpa, budget,
			needs_loan, name, email, phone, created_at`

	var out StudyLead
	err := r.pool.QueryRow(ctx, query,
		lead.Country, lead.Qualification, lead.Age, lead.EducationTopic,
		lead.CGPA, lead.Budget, lead.NeedsLoan, lead.Name, lead.Email, lead.Phone,
	).Scan(
		&out.ID, &out.Country, &out.Qualification, &out.Age, &out.EducationTopic,
		&out.CGPA, &out.Budget, &out.NeedsLoan, &out.Name, &out.Email, &out.Phone,
		&out.CreatedAt,
	)
	return out, err
}

func (r *PostgresRepository) InsertWork(ctx context.Context, lead WorkLead) (WorkLead, error) {
	const query = `
		INSERT INTO work_profiles (
			occupation, education, experience, name, email, phone
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, occupation, education, experience, name, email, phone, created_at`

	var out WorkLead
	err := r.pool.QueryRow(ctx, query,
		lead.Occupation, lead.Education, lead.Experience, lead.Name, lead.Email, lead.Phone,
	).Scan(
		&out.ID, &out.Occupation, &out.Education, &out.Experience,
		&out.Name, &out.Email, &out.Phone, &out.CreatedAt,
	)
	return out, err
}

func (r *PostgresRepository) InsertInvest(ctx context.Context, lead InvestLead) (InvestLead, error) {
	const query = `
		INSERT INTO invest (name, email, country)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, country, created_at`

	var out InvestLead
	err := r.pool.QueryRow(ctx, query, lead.Name, lead.Email, lead.Country).Scan(
		&out.ID, &out.Name, &out.Email, &out.Country, &out.CreatedAt,
	)
	return out, err
}

func (r *PostgresRepository) ListStudy(ctx context.Context) ([]StudyLead, error) {
	const query = `
		SELECT id, country, qualification, age, education_topic, cgpa, budget,
			needs_loan, name, email, phone, created_at
		FROM study ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]StudyLead, 0)
	for rows.Next() {
		var lead StudyLead
		if err := rows.Scan(
			&lead.ID, &lead.Country, &lead.Qualification, &lead.Age, &lead.EducationTopic,
			&lead.CGPA, &lead.Budget, &lead.NeedsLoan, &lead.Name, &lead.Email, &lead.Phone,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, lead)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListWork(ctx context.Context) ([]WorkLead, error) {
	const query = `
		SELECT id, occupation, education, experience, name, email, phone, created_at
		FROM work_profiles ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]WorkLead, 0)
	for rows.Next() {
		var lead WorkLead
		if err := rows.Scan(
			&lead.ID, &lead.Occupation, &lead.Education, &lead.Experience,
			&lead.Name, &lead.Email, &lead.Phone, &lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, lead)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListInvest(ctx context.Context) ([]InvestLead, error) {
	const query = `
		SELECT id, name, email, country, created_at
		FROM invest ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]InvestLead, 0)
	for rows.Next() {
		var lead InvestLead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Country, &lead.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, lead)
	}
	return items, rows.Err()
}
