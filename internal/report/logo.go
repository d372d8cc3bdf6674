package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// DefaultLogoWidth is the pixel width logos are scaled down to
const DefaultLogoWidth = 240

// PrepareLogo decodes an image, scales it down to maxWidth keeping the
// aspect ratio and re-encodes it as PNG for embedding in PDFs
func PrepareLogo(r io.Reader, maxWidth int) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}
