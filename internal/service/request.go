package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/logic"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	pictureField = "profilePicture"
	// maxFormBytes bounds the non-file part of a request.
	maxFormBytes = 1 << 20
)

var errEmptyBody = fmt.Errorf("%w: no data provided", logic.ErrInvalidInput)

// decodeBody fills dst from a JSON or multipart body. Multipart text fields
// are re-encoded as a JSON object of strings so both encodings share the same
// field names and coercion rules. The picture is returned only for multipart
// requests that carry one.
func decodeBody(w http.ResponseWriter, r *http.Request, maxImageBytes int64, dst interface{}) (*models.ProfilePicture, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return decodeMultipart(w, r, maxImageBytes, dst)
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}")) {
		return nil, errEmptyBody
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON body: %v", logic.ErrInvalidInput, err)
	}
	return nil, nil
}

// decodeOptionalBody is decodeBody for routes where an empty body is a no-op patch.
func decodeOptionalBody(w http.ResponseWriter, r *http.Request, maxImageBytes int64, dst interface{}) (*models.ProfilePicture, error) {
	pic, err := decodeBody(w, r, maxImageBytes, dst)
	if errors.Is(err, errEmptyBody) {
		return nil, nil
	}
	return pic, err
}

func decodeMultipart(w http.ResponseWriter, r *http.Request, maxImageBytes int64, dst interface{}) (*models.ProfilePicture, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+maxFormBytes)
	if err := r.ParseMultipartForm(maxImageBytes + maxFormBytes); err != nil {
		return nil, fmt.Errorf("%w: malformed multipart body: %v", logic.ErrInvalidInput, err)
	}

	values := make(map[string]string, len(r.MultipartForm.Value))
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}

	pic, err := readPicture(r, maxImageBytes)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 && pic == nil {
		return nil, errEmptyBody
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode form values: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err)
	}
	return pic, nil
}

func readPicture(r *http.Request, maxImageBytes int64) (*models.ProfilePicture, error) {
	files := r.MultipartForm.File[pictureField]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	if fh.Size > maxImageBytes {
		return nil, fmt.Errorf("%w: profile picture exceeds %d bytes", logic.ErrInvalidInput, maxImageBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open profile picture: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read profile picture: %w", err)
	}
	if int64(len(data)) > maxImageBytes {
		return nil, fmt.Errorf("%w: profile picture exceeds %d bytes", logic.ErrInvalidInput, maxImageBytes)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &models.ProfilePicture{Data: data, ContentType: contentType}, nil
}

func pathObjectID(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s %q", logic.ErrInvalidInput, name, raw)
	}
	return id, nil
}
