package news

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"payana-backend/internal/media"
)

var ErrNotFound = errors.New("article not found")

const updatedByAdmin = "admin"

type Service struct {
	repo     Repository
	uploader media.Uploader
	log      *slog.Logger
}

func NewService(repo Repository, uploader media.Uploader, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		log:      log,
	}
}

type UpdateInput struct {
	Date        string
	Time        string
	Description string
	Tag         string
	Image       []byte
}

func (s *Service) ListPublic(ctx context.Context) ([]PublicArticle, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PublicArticle, 0, len(items))
	for _, a := range items {
		out = append(out, toPublic(a))
	}
	return out, nil
}

func (s *Service) ListAdmin(ctx context.Context) ([]Article, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Create(ctx context.Context, image []byte, date, timeOfDay, description, tag string) (Article, error) {
	upload, err := s.uploader.UploadImage(ctx, image)
	if err != nil {
		return Article{}, err
	}

	article := Article{
		ImageURL:     upload.URL,
		CloudinaryID: upload.PublicID,
		Date:         date,
		Time:         timeOfDay,
		Description:  normalizeDescription(description),
		Tag:          tag,
	}
	return s.repo.Insert(ctx, article)
}

func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (Article, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Article{}, ErrNotFound
		}
		return Article{}, err
	}

	imageURL := current.ImageURL
	cloudinaryID := current.CloudinaryID
	if len(input.Image) > 0 {
		upload, err := s.uploader.UploadImage(ctx, input.Image)
		if err != nil {
			return Article{}, err
		}
		// Drop the previous remote object only once the replacement exists.
		s.deleteMedia(ctx, current.CloudinaryID)
		imageURL = upload.URL
		cloudinaryID = upload.PublicID
	}

	description := current.Description
	if strings.TrimSpace(input.Description) != "" {
		description = normalizeDescription(input.Description)
	}

	updated := Article{
		ID:           id,
		ImageURL:     imageURL,
		CloudinaryID: cloudinaryID,
		Date:         fallback(input.Date, current.Date),
		Time:         fallback(input.Time, current.Time),
		Description:  description,
		Tag:          fallback(input.Tag, current.Tag),
		UpdatedBy:    updatedByAdmin,
	}
	return s.repo.Update(ctx, updated)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	s.deleteMedia(ctx, current.CloudinaryID)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ToggleActive(ctx context.Context, id int64) (bool, error) {
	active, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	return active, nil
}

func (s *Service) IncrementViews(ctx context.Context, id int64) error {
	return s.repo.IncrementViews(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (Stats, []TopArticle, error) {
	return s.repo.Stats(ctx)
}

// deleteMedia drops a remote object best-effort: the row operation proceeds
// whether or not the remote delete worked.
func (s *Service) deleteMedia(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.uploader.Delete(ctx, publicID, media.KindImage); err != nil {
		s.log.Warn("could not delete image from media host",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()),
		)
	}
}

// normalizeDescription accepts either a JSON-encoded string array or plain
// newline-separated text; blank lines are dropped.
func normalizeDescription(raw string) []string {
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return parsed
	}

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func fallback(value, current string) string {
	if value == "" {
		return current
	}
	return value
}
