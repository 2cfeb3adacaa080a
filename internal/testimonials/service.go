package testimonials

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"payana-backend/internal/media"
)

var ErrNotFound = errors.New("testimonial not found")

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

func (s *Service) ListPublic(ctx context.Context) ([]PublicTestimonial, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) ListAdmin(ctx context.Context) ([]Testimonial, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Create(ctx context.Context, video []byte, name, prefix string) (Testimonial, error) {
	upload, err := s.uploader.UploadVideo(ctx, video)
	if err != nil {
		return Testimonial{}, err
	}

	if prefix == "" {
		prefix = defaultPrefix
	}
	t := Testimonial{
		VideoURL:     upload.URL,
		CloudinaryID: upload.PublicID,
		Name:         name,
		Prefix:       prefix,
	}
	return s.repo.InsertNext(ctx, t)
}

func (s *Service) Update(ctx context.Context, id int64, video []byte, name, prefix string) (Testimonial, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Testimonial{}, ErrNotFound
		}
		return Testimonial{}, err
	}

	videoURL := current.VideoURL
	cloudinaryID := current.CloudinaryID
	if len(video) > 0 {
		upload, err := s.uploader.UploadVideo(ctx, video)
		if err != nil {
			return Testimonial{}, err
		}
		s.deleteMedia(ctx, current.CloudinaryID)
		videoURL = upload.URL
		cloudinaryID = upload.PublicID
	}

	if name == "" {
		name = current.Name
	}
	if prefix == "" {
		prefix = current.Prefix
	}

	updated := Testimonial{
		ID:           id,
		VideoURL:     videoURL,
		CloudinaryID: cloudinaryID,
		Name:         name,
		Prefix:       prefix,
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

func (s *Service) Reorder(ctx context.Context, items []ReorderItem) error {
	return s.repo.Reorder(ctx, items)
}

func (s *Service) IncrementViews(ctx context.Context, id int64) error {
	return s.repo.IncrementViews(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (Stats, []TopTestimonial, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) deleteMedia(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.uploader.Delete(ctx, publicID, media.KindVideo); err != nil {
		s.log.Warn("could not delete video from media host",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()),
		)
	}
}
