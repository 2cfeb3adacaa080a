package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"payana-backend/internal/config"
	"payana-backend/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedArticle struct {
	ImageURL    string
	Date        string
	Time        string
	Description []string
	Tag         string
}

type seedTestimonial struct {
	VideoURL string
	Name     string
	Prefix   string
	Order    int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	db.EnsureSchema(ctx, pool, logger)

	articles := []seedArticle{
		{
			ImageURL: "https://res.cloudinary.com/demo/image/upload/payana_news/ielts-update.jpg",
			Date:     "15 Jan 2026",
			Time:     "10:30 AM",
			Description: []string{
				"IELTS score requirements for Canadian study permits have been revised for the 2026 intake.",
				"Applicants targeting SDS processing should plan for the new band minimums.",
			},
			Tag: "Study Abroad",
		},
		{
			ImageURL: "https://res.cloudinary.com/demo/image/upload/payana_news/germany-jobs.jpg",
			Date:     "22 Jan 2026",
			Time:     "02:00 PM",
			Description: []string{
				"Germany has expanded its Opportunity Card quota for skilled workers in healthcare and IT.",
			},
			Tag: "Work Visa",
		},
	}

	testimonials := []seedTestimonial{
		{VideoURL: "https://res.cloudinary.com/demo/video/upload/payana_testimonials/aishwarya.mp4", Name: "Aishwarya", Prefix: "Ms", Order: 1},
		{VideoURL: "https://res.cloudinary.com/demo/video/upload/payana_testimonials/rahul.mp4", Name: "Rahul", Prefix: "Mr", Order: 2},
	}

	if empty, err := tableEmpty(ctx, pool, "news_articles"); err != nil {
		log.Fatal(err)
	} else if empty {
		for _, a := range articles {
			_, err := pool.Exec(ctx, `
				INSERT INTO news_articles (image_url, date, time, description, tag)
				VALUES ($1, $2, $3, $4, $5)`,
				a.ImageURL, a.Date, a.Time, a.Description, a.Tag,
			)
			if err != nil {
				log.Fatal(err)
			}
		}
		logger.Info("seeded news articles", slog.Int("count", len(articles)))
	} else {
		logger.Info("news articles already present, skipping")
	}

	if empty, err := tableEmpty(ctx, pool, "testimonials"); err != nil {
		log.Fatal(err)
	} else if empty {
		for _, t := range testimonials {
			_, err := pool.Exec(ctx, `
				INSERT INTO testimonials (video_url, name, prefix, display_order)
				VALUES ($1, $2, $3, $4)`,
				t.VideoURL, t.Name, t.Prefix, t.Order,
			)
			if err != nil {
				log.Fatal(err)
			}
		}
		logger.Info("seeded testimonials", slog.Int("count", len(testimonials)))
	} else {
		logger.Info("testimonials already present, skipping")
	}
}

func tableEmpty(ctx context.Context, pool *pgxpool.Pool, table string) (bool, error) {
	var count int64
	// table names come from the fixed list above, never from input
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
