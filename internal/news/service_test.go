package news

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"

	"payana-backend/internal/media"
)

type fakeRepository struct {
	articles map[int64]Article
	nextID   int64
	err      error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{articles: make(map[int64]Article), nextID: 1}
}

func (f *fakeRepository) ListActive(ctx context.Context) ([]Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Article, 0)
	for _, a := range f.articles {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListAll(ctx context.Context) ([]Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Article, 0)
	for _, a := range f.articles {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id int64) (Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return Article{}, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeRepository) Insert(ctx context.Context, a Article) (Article, error) {
	if f.err != nil {
		return Article{}, f.err
	}
	a.ID = f.nextID
	a.IsActive = true
	f.nextID++
	f.articles[a.ID] = a
	return a, nil
}

func (f *fakeRepository) Update(ctx context.Context, a Article) (Article, error) {
	current, ok := f.articles[a.ID]
	if !ok {
		return Article{}, pgx.ErrNoRows
	}
	a.IsActive = current.IsActive
	a.Views = current.Views
	f.articles[a.ID] = a
	return a, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := f.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeRepository) ToggleActive(ctx context.Context, id int64) (bool, error) {
	a, ok := f.articles[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	a.IsActive = !a.IsActive
	f.articles[id] = a
	return a.IsActive, nil
}

func (f *fakeRepository) IncrementViews(ctx context.Context, id int64) error {
	if a, ok := f.articles[id]; ok {
		a.Views++
		f.articles[id] = a
	}
	return nil
}

func (f *fakeRepository) Stats(ctx context.Context) (Stats, []TopArticle, error) {
	return Stats{TotalArticles: int64(len(f.articles))}, nil, nil
}

type fakeUploader struct {
	uploads int
	deleted []string
	err     error
}

func (f *fakeUploader) UploadImage(ctx context.Context, buf []byte) (media.UploadResult, error) {
	if f.err != nil {
		return media.UploadResult{}, f.err
	}
	f.uploads++
	return media.UploadResult{
		URL:      "https://cdn.example.com/image-" + string(rune('0'+f.uploads)),
		PublicID: "public-" + string(rune('0'+f.uploads)),
	}, nil
}

func (f *fakeUploader) UploadVideo(ctx context.Context, buf []byte) (media.UploadResult, error) {
	return f.UploadImage(ctx, buf)
}

func (f *fakeUploader) Delete(ctx context.Context, publicID, kind string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func newTestService(repo Repository, up media.Uploader) *Service {
	return NewService(repo, up, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNormalizeDescriptionJSONArray(t *testing.T) {
	got := normalizeDescription(`["first paragraph","second paragraph"]`)
	want := []string{"first paragraph", "second paragraph"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeDescriptionPlainText(t *testing.T) {
	got := normalizeDescription("first\nsecond\n\nthird")
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCreateUploadsThenInserts(t *testing.T) {
	repo := newFakeRepository()
	up := &fakeUploader{}
	s := newTestService(repo, up)

	article, err := s.Create(context.Background(), []byte("img"), "15 Jan 2026", "10:30 AM", "line one", "Study Abroad")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if article.ImageURL == "" || article.CloudinaryID == "" {
		t.Fatalf("upload result not persisted: %+v", article)
	}
	if up.uploads != 1 {
		t.Fatalf("expected 1 upload, got %d", up.uploads)
	}
	if len(article.Description) != 1 || article.Description[0] != "line one" {
		t.Fatalf("unexpected description: %v", article.Description)
	}
}

func TestUpdateReplacesImageAndDeletesOld(t *testing.T) {
	repo := newFakeRepository()
	up := &fakeUploader{}
	s := newTestService(repo, up)

	created, err := s.Create(context.Background(), []byte("img"), "d", "t", "desc", "tag")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	oldID := created.CloudinaryID

	updated, err := s.Update(context.Background(), created.ID, UpdateInput{Image: []byte("new")})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.CloudinaryID == oldID {
		t.Fatalf("image was not replaced")
	}
	if len(up.deleted) != 1 || up.deleted[0] != oldID {
		t.Fatalf("old image not deleted, deleted=%v", up.deleted)
	}
	if updated.Date != "d" || updated.Tag != "tag" {
		t.Fatalf("blank fields should keep current values: %+v", updated)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestService(newFakeRepository(), &fakeUploader{})

	_, err := s.Update(context.Background(), 42, UpdateInput{Tag: "x"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesRowAndMedia(t *testing.T) {
	repo := newFakeRepository()
	up := &fakeUploader{}
	s := newTestService(repo, up)

	created, err := s.Create(context.Background(), []byte("img"), "d", "t", "desc", "tag")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := s.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(repo.articles) != 0 {
		t.Fatalf("row still present after delete")
	}
	if len(up.deleted) != 1 {
		t.Fatalf("media not deleted")
	}
}

func TestToggleActiveIsInvolution(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo, &fakeUploader{})

	created, err := s.Create(context.Background(), []byte("img"), "d", "t", "desc", "tag")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	first, err := s.ToggleActive(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}
	second, err := s.ToggleActive(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}
	if first == second {
		t.Fatalf("two toggles should flip the flag twice: %v then %v", first, second)
	}
	if second != created.IsActive {
		t.Fatalf("double toggle should restore the original state")
	}
}

func TestListPublicProjection(t *testing.T) {
	repo := newFakeRepository()
	s := newTestService(repo, &fakeUploader{})

	created, err := s.Create(context.Background(), []byte("img"), "d", "t", "desc", "tag")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.Create(context.Background(), []byte("img"), "d2", "t2", "desc2", "tag2"); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.ToggleActive(context.Background(), created.ID); err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}

	items, err := s.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected only active articles, got %d", len(items))
	}
	if items[0].Image == "" {
		t.Fatalf("public projection should carry the image url")
	}
}
