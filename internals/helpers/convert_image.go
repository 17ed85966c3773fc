package helper

import (
	"bytes"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Profile pictures are normalized to a square WebP thumbnail before storage
// so the table never holds multi-megabyte originals.
const (
	dpMaxUploadBytes = 2 << 20 // 2MB raw upload cap
	dpEdge           = 256
	dpWebPQuality    = 85
)

// ConvertProfileImageToWebP decodes an uploaded image (jpeg/png/webp),
// crops it to a centered square, resizes to 256px and re-encodes as WebP.
func ConvertProfileImageToWebP(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > dpMaxUploadBytes {
		return nil, fmt.Errorf("image exceeds %dKB limit (%dKB)", dpMaxUploadBytes/1024, fileHeader.Size/1024)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fill(img, dpEdge, dpEdge, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, thumb, &webp.Options{Quality: dpWebPQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
