package media

import (
	"bytes"
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	imageFolder = "payana_news"
	videoFolder = "payana_testimonials"
)

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// UploadImage stores the buffer under the articles/ads folder, bounded to
// 1200x800 with automatic quality.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, buf []byte) (UploadResult, error) {
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(buf), uploader.UploadParams{
		Folder:         imageFolder,
		ResourceType:   KindImage,
		Transformation: "c_limit,w_1200,h_800/q_auto:good",
	})
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// UploadVideo stores the buffer under the testimonials folder and waits for
// one 1280x720 mp4 rendition to be produced.
func (u *CloudinaryUploader) UploadVideo(ctx context.Context, buf []byte) (UploadResult, error) {
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(buf), uploader.UploadParams{
		Folder:         videoFolder,
		ResourceType:   KindVideo,
		Eager:          "c_limit,w_1280,h_720,f_mp4",
		EagerAsync:     api.Bool(false),
		Transformation: "q_auto:good",
	})
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicID, kind string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: kind,
	})
	return err
}
