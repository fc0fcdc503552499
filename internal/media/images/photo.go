// Package images decodes uploaded profile photos and derives their placeholders.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Photo upload failures.
var (
	ErrEmptyPhoto       = errors.New("photo is empty")
	ErrPhotoTooLarge    = errors.New("photo exceeds size limit")
	ErrInvalidEncoding  = errors.New("photo is not valid base64")
	ErrUnsupportedImage = errors.New("photo must be JPEG, PNG or WebP")
	ErrCorruptImage     = errors.New("photo could not be decoded")
)

// allowedTypes are the MIME types accepted for profile photos.
var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Photo is a validated profile photo.
type Photo struct {
	Data     []byte
	MIME     string
	Width    int
	Height   int
	BlurHash string
}

// DataURL renders the photo the way clients embed it in <img src>.
func (p *Photo) DataURL() string {
	return "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// DecodePhoto accepts raw base64 or a data: URL, sniffs the real content
// type and decodes the image. maxBytes limits the decoded size; zero disables the check.
func DecodePhoto(payload string, maxBytes int) (*Photo, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		_, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, ErrInvalidEncoding
		}
		payload = rest
	}
	if payload == "" {
		return nil, ErrEmptyPhoto
	}
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return nil, ErrPhotoTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
	}
	if len(data) == 0 {
		return nil, ErrEmptyPhoto
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, ErrPhotoTooLarge
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedImage, mt.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptImage, err)
	}

	hash, err := ComputeBlurHash(img)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &Photo{
		Data:     data,
		MIME:     mt.String(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		BlurHash: hash,
	}, nil
}
