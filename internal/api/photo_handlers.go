package api

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/qlpapp/qlp-server/internal/service"
)

func (s *Server) registerPhotoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:  "uploadPhoto",
		Method:       http.MethodPost,
		Path:         "/api/upload-foto",
		Summary:      "Upload employee photo",
		Description:  "Stores a base64 JPEG, PNG or WebP photo for an employee. Users may only update their own photo.",
		Tags:         []string{"Roster"},
		Security:     []map[string][]string{{"bearer": {}}},
		MaxBodyBytes: int64(base64.StdEncoding.EncodedLen(s.photoMaxBytes) + photoBodyOverhead),
	}, s.handleUploadPhoto)
}

// UploadPhotoInput wraps the photo upload for Huma.
type UploadPhotoInput struct {
	Body service.UploadPhotoRequest
}

// PhotoOutput wraps the stored photo metadata for Huma.
type PhotoOutput struct {
	Body *service.PhotoResult
}

func (s *Server) handleUploadPhoto(ctx context.Context, input *UploadPhotoInput) (*PhotoOutput, error) {
	user, err := GetUser(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Photos.Upload(ctx, user, input.Body)
	if err != nil {
		return nil, err
	}

	return &PhotoOutput{Body: result}, nil
}
