package thumbnail

import (
	"bytes"
	"fmt"
	_ "image/gif"  // For gif decoder
	_ "image/jpeg" // For jpeg decoder
	_ "image/png"  // For png decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // For bmp decoder
	_ "golang.org/x/image/webp" // For webp decoder
)

// Generate decodes the image at imagePath and scales it to fit within a
// size by size box, keeping the aspect ratio. The result is PNG encoded.
//
// Thumbnails are kept in memory only.
func Generate(imagePath string, size int) ([]byte, error) {
	if size < 1 {
		return nil, fmt.Errorf("invalid thumbnail size %d", size)
	}

	img, err := imaging.Open(imagePath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", imagePath, err)
	}

	// Fit never upscales, so small images stay as they are
	thumbnail := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail for %s: %w", imagePath, err)
	}

	return buf.Bytes(), nil
}
