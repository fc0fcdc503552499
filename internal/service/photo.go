package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qlpapp/qlp-server/internal/domain"
	domainerrors "github.com/qlpapp/qlp-server/internal/errors"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/media/images"
	"github.com/qlpapp/qlp-server/internal/store"
)

// UploadPhotoRequest replaces an employee's profile photo.
type UploadPhotoRequest struct {
	CPF   string `json:"cpf" validate:"required"`
	Image string `json:"imagemBase64" validate:"required"`
}

// PhotoResult describes a stored photo.
type PhotoResult struct {
	CPF      string `json:"cpf"`
	MIME     string `json:"mime"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	BlurHash string `json:"blurhash"`
}

// PhotoService stores profile photos on roster records.
type PhotoService struct {
	store    store.Store
	maxBytes int
	logger   *slog.Logger
}

// NewPhotoService creates a photo service. maxBytes caps the decoded image size.
func NewPhotoService(store store.Store, maxBytes int, logger *slog.Logger) *PhotoService {
	return &PhotoService{store: store, maxBytes: maxBytes, logger: orDiscard(logger)}
}

// Upload validates the image and stores it with its BlurHash. Users may only
// replace their own photo; administrators may replace any.
func (s *PhotoService) Upload(ctx context.Context, actor *domain.User, req UploadPhotoRequest) (*PhotoResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cpf := DigitsOnly(req.CPF)
	if cpf == "" || req.Image == "" {
		return nil, domainerrors.Validation("cpf and image are required")
	}
	if actor == nil {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	if !actor.IsAdmin() && actor.CPF != cpf {
		return nil, domainerrors.Forbidden("cannot change another employee's photo")
	}

	photo, err := images.DecodePhoto(req.Image, s.maxBytes)
	if err != nil {
		return nil, photoError(err)
	}

	err = s.store.UpdateEmployeePhoto(ctx, cpf, photo.DataURL(), photo.BlurHash)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("employee %s not found", cpf)
	}
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	s.logger.Info("photo updated",
		logger.CPF("cpf", cpf),
		logger.CPF("by", actor.CPF),
		"mime", photo.MIME,
		"bytes", len(photo.Data),
	)

	return &PhotoResult{
		CPF:      cpf,
		MIME:     photo.MIME,
		Width:    photo.Width,
		Height:   photo.Height,
		BlurHash: photo.BlurHash,
	}, nil
}

func photoError(err error) error {
	switch {
	case errors.Is(err, images.ErrEmptyPhoto),
		errors.Is(err, images.ErrInvalidEncoding),
		errors.Is(err, images.ErrUnsupportedImage),
		errors.Is(err, images.ErrCorruptImage),
		errors.Is(err, images.ErrPhotoTooLarge):
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid photo").
			WithDetails(map[string]string{"imagemBase64": err.Error()})
	default:
		return fmt.Errorf("decode photo: %w", err)
	}
}
