package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the shared connection pool. The URL carries sslmode=require,
// which negotiates TLS without verifying the server certificate.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

var schemaStatements = []struct {
	table string
	ddl   string
}{
	{"study", `
		CREATE TABLE IF NOT EXISTS study (
			id SERIAL PRIMARY KEY,
			country VARCHAR(100),
			qualification VARCHAR(50),
			age VARCHAR(20),
			education_topic VARCHAR(100),
			cgpa VARCHAR(20),
			budget VARCHAR(50),
			needs_loan BOOLEAN,
			name VARCHAR(100),
			email VARCHAR(100),
			phone VARCHAR(20),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"work_profiles", `
		CREATE TABLE IF NOT EXISTS work_profiles (
			id SERIAL PRIMARY KEY,
			occupation VARCHAR(100),
			education VARCHAR(100),
			experience VARCHAR(100),
			name VARCHAR(100),
			email VARCHAR(100),
			phone VARCHAR(20),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"invest", `
		CREATE TABLE IF NOT EXISTS invest (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100),
			email VARCHAR(100),
			country VARCHAR(100),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`},
	{"news_articles", `
		CREATE TABLE IF NOT EXISTS news_articles (
			id SERIAL PRIMARY KEY,
			image_url TEXT NOT NULL,
			cloudinary_id VARCHAR(255),
			date VARCHAR(50) NOT NULL,
			time VARCHAR(50) NOT NULL,
			description JSONB NOT NULL,
			tag VARCHAR(100) NOT NULL,
			views INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			created_by VARCHAR(100) DEFAULT 'admin',
			updated_by VARCHAR(100) DEFAULT ''
		)`},
	{"testimonials", `
		CREATE TABLE IF NOT EXISTS testimonials (
			id SERIAL PRIMARY KEY,
			video_url TEXT NOT NULL,
			cloudinary_id VARCHAR(255),
			name VARCHAR(100) NOT NULL,
			prefix VARCHAR(10) DEFAULT 'None',
			views INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT true,
			display_order INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			created_by VARCHAR(100) DEFAULT 'admin',
			updated_by VARCHAR(100) DEFAULT ''
		)`},
	{"ads", `
		CREATE TABLE IF NOT EXISTS ads (
			id SERIAL PRIMARY KEY,
			image_url TEXT NOT NULL,
			cloudinary_id VARCHAR(255),
			is_active BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			created_by VARCHAR(100) DEFAULT 'admin',
			updated_by VARCHAR(100) DEFAULT ''
		)`},
}

// EnsureSchema creates the six tables if missing. A failed statement is
// logged and skipped so the process still serves the tables that do exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt.ddl); err != nil {
			log.Warn("schema bootstrap failed",
				slog.String("table", stmt.table),
				slog.String("error", err.Error()),
			)
			continue
		}
		log.Info("table ready", slog.String("table", stmt.table))
	}
}
