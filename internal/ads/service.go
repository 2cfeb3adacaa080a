package ads

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"payana-backend/internal/media"
)

var ErrNotFound = errors.New("ad not found")

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

// Active returns the currently active ad, or ok=false when none is set.
func (s *Service) Active(ctx context.Context) (ActiveAd, bool, error) {
	a, err := s.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ActiveAd{}, false, nil
		}
		return ActiveAd{}, false, err
	}
	return a, true, nil
}

func (s *Service) ListAdmin(ctx context.Context) ([]Ad, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Create(ctx context.Context, image []byte) (Ad, error) {
	upload, err := s.uploader.UploadImage(ctx, image)
	if err != nil {
		return Ad{}, err
	}
	return s.repo.Insert(ctx, Ad{ImageURL: upload.URL, CloudinaryID: upload.PublicID})
}

// Update replaces the ad image. A nil image leaves the current one in place
// and only touches the audit columns.
func (s *Service) Update(ctx context.Context, id int64, image []byte) (Ad, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ad{}, ErrNotFound
		}
		return Ad{}, err
	}

	imageURL := current.ImageURL
	cloudinaryID := current.CloudinaryID
	if len(image) > 0 {
		upload, err := s.uploader.UploadImage(ctx, image)
		if err != nil {
			return Ad{}, err
		}
		// Drop the previous remote object only once the replacement exists.
		s.deleteMedia(ctx, current.CloudinaryID)
		imageURL = upload.URL
		cloudinaryID = upload.PublicID
	}

	return s.repo.Update(ctx, Ad{
		ID:           id,
		ImageURL:     imageURL,
		CloudinaryID: cloudinaryID,
		UpdatedBy:    updatedByAdmin,
	})
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

func (s *Service) SetActive(ctx context.Context, id int64) (Ad, error) {
	a, err := s.repo.SetActive(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ad{}, ErrNotFound
		}
		return Ad{}, err
	}
	return a, nil
}

func (s *Service) DeactivateAll(ctx context.Context) error {
	return s.repo.DeactivateAll(ctx)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

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
