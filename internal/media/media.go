package media

import "context"

const (
	KindImage = "image"
	KindVideo = "video"

	// Multer-equivalent payload caps enforced before anything leaves memory.
	MaxImageBytes = 10 << 20
	MaxVideoBytes = 100 << 20
)

// UploadResult is what callers persist next to the row: the public URL and
// the id needed to delete the remote object later.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader streams in-memory buffers to the media host. Delete is best
// effort; callers log its error and move on.
type Uploader interface {
	UploadImage(ctx context.Context, buf []byte) (UploadResult, error)
	UploadVideo(ctx context.Context, buf []byte) (UploadResult, error)
	Delete(ctx context.Context, publicID, kind string) error
}
