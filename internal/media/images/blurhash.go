package images

import (
	"fmt"
	"image"

	"github.com/bbrks/go-blurhash"
)

// blurHashSize bounds the thumbnail the hash is computed from.
// A placeholder needs little resolution and 64px keeps encoding in the millisecond range.
const blurHashSize = 64

// ComputeBlurHash returns a 4x3-component BlurHash for img (about 20 characters).
func ComputeBlurHash(img image.Image) (string, error) {
	hash, err := blurhash.Encode(4, 3, resizeForBlurHash(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

// resizeForBlurHash scales img down with nearest-neighbor sampling,
// keeping the aspect ratio.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	if srcWidth <= blurHashSize && srcHeight <= blurHashSize {
		return img
	}

	dstWidth, dstHeight := blurHashSize, blurHashSize
	if srcWidth > srcHeight {
		dstHeight = max(1, srcHeight*blurHashSize/srcWidth)
	} else {
		dstWidth = max(1, srcWidth*blurHashSize/srcHeight)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := range dstHeight {
		for x := range dstWidth {
			srcX := int(float64(x) * xRatio)
			srcY := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}

	return dst
}
