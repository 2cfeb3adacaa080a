package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNoFile reports that the multipart field carried no file at all, as
// opposed to a file that failed the size or content-type checks.
var ErrNoFile = errors.New("no file uploaded")

func DecodeJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

func ValidationDetails(errs validator.ValidationErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field()] = err.Tag()
	}
	return details
}

// ReadFormFile pulls one multipart file into memory, mirroring multer's
// memory storage: a size cap and a client-declared content-type prefix check.
// The declared type is trusted, not verified against the bytes.
func ReadFormFile(r *http.Request, field string, maxBytes int64, typePrefix string) ([]byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrNoFile
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, fmt.Errorf("file too large: limit is %d bytes", maxBytes)
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, typePrefix) {
		return nil, fmt.Errorf("only %s files are allowed", strings.TrimSuffix(typePrefix, "/"))
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(buf)) > maxBytes {
		return nil, fmt.Errorf("file too large: limit is %d bytes", maxBytes)
	}
	return buf, nil
}
