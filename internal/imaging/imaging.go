// Package imaging validates, compresses and thumbnails uploaded item photos.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"barangku/pkg/errors"
)

const (
	// MaxBytes is the byte budget for a stored photo.
	MaxBytes = 1 << 20 // 1 MiB
	// MaxDimension is the largest width or height for stored photos.
	MaxDimension = 1600
	// ThumbnailSize is the edge length of the square thumbnail.
	ThumbnailSize = 256

	startQuality = 85
	minQuality   = 40
	qualityStep  = 10
)

// AllowedMIME lists the accepted input formats. HEIC is not decodable here;
// clients convert before upload, everything else is rejected up front.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Result is a processed photo ready for storage.
type Result struct {
	Data []byte
	MIME string
}

// Validate sniffs the payload's real content type and rejects formats the
// pipeline cannot decode. Client-supplied headers are not trusted.
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.BadRequest("Image is empty", nil)
	}
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return "", errors.BadRequest(fmt.Sprintf("Unsupported image format: %s", detected), nil)
	}
	return detected, nil
}

// Compress brings a photo under maxBytes. Non-PNG input already within
// budget is returned byte-identical; PNG is always re-encoded. Quality is
// reduced first (85 down to 40 in steps of 10), and only if that is not
// enough are the dimensions halved and the quality ladder retried.
func Compress(data []byte, maxBytes int) (*Result, error) {
	mime, err := Validate(data)
	if err != nil {
		return nil, err
	}

	if mime != "image/png" && len(data) <= maxBytes {
		return &Result{Data: data, MIME: mime}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.BadRequest("Failed to decode image", err)
	}

	img = downscale(img, MaxDimension)

	for {
		for quality := startQuality; quality >= minQuality; quality -= qualityStep {
			encoded, err := encodeJPEG(img, quality)
			if err != nil {
				return nil, err
			}
			if len(encoded) <= maxBytes {
				return &Result{Data: encoded, MIME: "image/jpeg"}, nil
			}
		}

		bounds := img.Bounds()
		if bounds.Dx() <= 64 || bounds.Dy() <= 64 {
			return nil, errors.BadRequest("Image cannot be compressed under the size limit", nil)
		}
		img = downscale(img, bounds.Dx()/2)
	}
}

// Thumbnail center-crops the photo to a square and scales it to
// ThumbnailSize. The result is always JPEG.
func Thumbnail(data []byte) (*Result, error) {
	if _, err := Validate(data); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.BadRequest("Failed to decode image", err)
	}

	bounds := img.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	x0 := bounds.Min.X + (bounds.Dx()-side)/2
	y0 := bounds.Min.Y + (bounds.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, ThumbnailSize, ThumbnailSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	encoded, err := encodeJPEG(dst, startQuality)
	if err != nil {
		return nil, err
	}
	return &Result{Data: encoded, MIME: "image/jpeg"}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Internal("Failed to encode image", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes so neither dimension exceeds maxDim, preserving aspect
// ratio. Returns the original image when already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = h * maxDim / w
	} else {
		newH = maxDim
		newW = w * maxDim / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
