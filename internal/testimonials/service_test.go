package testimonials

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"

	"payana-backend/internal/media"
)

type fakeRepository struct {
	items  map[int64]Testimonial
	nextID int64
	err    error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: make(map[int64]Testimonial), nextID: 1}
}

func (f *fakeRepository) ListActive(ctx context.Context) ([]PublicTestimonial, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]PublicTestimonial, 0)
	for _, t := range f.items {
		if t.IsActive {
			out = append(out, PublicTestimonial{
				ID: t.ID, VideoURL: t.VideoURL, Name: t.Name, Prefix: t.Prefix, Views: t.Views,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepository) ListAll(ctx context.Context) ([]Testimonial, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Testimonial, 0)
	for _, t := range f.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id int64) (Testimonial, error) {
	t, ok := f.items[id]
	if !ok {
		return Testimonial{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeRepository) InsertNext(ctx context.Context, t Testimonial) (Testimonial, error) {
	if f.err != nil {
		return Testimonial{}, f.err
	}
	maxOrder := 0
	for _, existing := range f.items {
		if existing.DisplayOrder > maxOrder {
			maxOrder = existing.DisplayOrder
		}
	}
	t.ID = f.nextID
	t.DisplayOrder = maxOrder + 1
	t.IsActive = true
	f.nextID++
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeRepository) Update(ctx context.Context, t Testimonial) (Testimonial, error) {
	current, ok := f.items[t.ID]
	if !ok {
		return Testimonial{}, pgx.ErrNoRows
	}
	t.IsActive = current.IsActive
	t.Views = current.Views
	t.DisplayOrder = current.DisplayOrder
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepository) ToggleActive(ctx context.Context, id int64) (bool, error) {
	t, ok := f.items[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	t.IsActive = !t.IsActive
	f.items[id] = t
	return t.IsActive, nil
}

func (f *fakeRepository) IncrementViews(ctx context.Context, id int64) error {
	if t, ok := f.items[id]; ok {
		t.Views++
		f.items[id] = t
	}
	return nil
}

// Reorder applies every pair or none, like the real transaction.
func (f *fakeRepository) Reorder(ctx context.Context, items []ReorderItem) error {
	if f.err != nil {
		return f.err
	}
	for _, item := range items {
		if _, ok := f.items[item.ID]; !ok {
			return pgx.ErrNoRows
		}
	}
	for _, item := range items {
		t := f.items[item.ID]
		t.DisplayOrder = item.Order
		f.items[item.ID] = t
	}
	return nil
}

func (f *fakeRepository) Stats(ctx context.Context) (Stats, []TopTestimonial, error) {
	return Stats{TotalTestimonials: int64(len(f.items))}, nil, nil
}

type fakeUploader struct {
	uploads int
	deleted []string
	kinds   []string
}

func (f *fakeUploader) UploadImage(ctx context.Context, buf []byte) (media.UploadResult, error) {
	return f.UploadVideo(ctx, buf)
}

func (f *fakeUploader) UploadVideo(ctx context.Context, buf []byte) (media.UploadResult, error) {
	f.uploads++
	return media.UploadResult{
		URL:      fmt.Sprintf("https://cdn.example.com/video-%d", f.uploads),
		PublicID: fmt.Sprintf("public-%d", f.uploads),
	}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, publicID, kind string) error {
	f.deleted = append(f.deleted, publicID)
	f.kinds = append(f.kinds, kind)
	return nil
}

func newTestService(repo Repository, up media.Uploader) *Service {
	return NewService(repo, up, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateAssignsAscendingOrder(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo, &fakeUploader{})

	first, err := s.Create(context.Background(), []byte("v1"), "Aisha", "Ms")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	second, err := s.Create(context.Background(), []byte("v2"), "Rahul", "Mr")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if first.DisplayOrder != 1 || second.DisplayOrder != 2 {
		t.Fatalf("expected orders 1 and 2, got %d and %d", first.DisplayOrder, second.DisplayOrder)
	}
}

func TestCreateDefaultsPrefix(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo, &fakeUploader{})

	created, err := s.Create(context.Background(), []byte("v"), "Aisha", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Prefix != "None" {
		t.Fatalf("expected default prefix None, got %q", created.Prefix)
	}
}

func TestUpdateReplacesVideo(t *testing.T) {
	repo := newFakeRepository()
	up := &fakeUploader{}
	s := newTestService(repo, up)

	created, err := s.Create(context.Background(), []byte("v"), "Aisha", "Ms")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	oldID := created.CloudinaryID

	updated, err := s.Update(context.Background(), created.ID, []byte("v2"), "", "")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.CloudinaryID == oldID {
		t.Fatalf("video was not replaced")
	}
	if updated.Name != "Aisha" || updated.Prefix != "Ms" {
		t.Fatalf("blank fields should keep current values: %+v", updated)
	}
	if len(up.deleted) != 1 || up.deleted[0] != oldID {
		t.Fatalf("old video not deleted: %v", up.deleted)
	}
	if up.kinds[0] != media.KindVideo {
		t.Fatalf("expected video resource type for delete, got %s", up.kinds[0])
	}
}

func TestUpdateWithoutVideoKeepsFile(t *testing.T) {
	repo := newFakeRepository()
	up := &fakeUploader{}
	s := newTestService(repo, up)

	created, err := s.Create(context.Background(), []byte("v"), "Aisha", "Ms")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	updated, err := s.Update(context.Background(), created.ID, nil, "Aishwarya", "")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.CloudinaryID != created.CloudinaryID {
		t.Fatalf("video should be untouched without a new upload")
	}
	if updated.Name != "Aishwarya" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if len(up.deleted) != 0 {
		t.Fatalf("nothing should be deleted: %v", up.deleted)
	}
}

func TestReorderAllOrNothing(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo, &fakeUploader{})

	first, _ := s.Create(context.Background(), []byte("v1"), "A", "")
	second, _ := s.Create(context.Background(), []byte("v2"), "B", "")

	err := s.Reorder(context.Background(), []ReorderItem{
		{ID: first.ID, Order: 2},
		{ID: 999, Order: 1},
	})
	if err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if repo.items[first.ID].DisplayOrder != 1 {
		t.Fatalf("partial reorder was applied")
	}

	if err := s.Reorder(context.Background(), []ReorderItem{
		{ID: first.ID, Order: 2},
		{ID: second.ID, Order: 1},
	}); err != nil {
		t.Fatalf("Reorder error: %v", err)
	}
	if repo.items[first.ID].DisplayOrder != 2 || repo.items[second.ID].DisplayOrder != 1 {
		t.Fatalf("reorder not applied")
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := newTestService(newFakeRepository(), &fakeUploader{})
	if err := s.Delete(context.Background(), 7); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
