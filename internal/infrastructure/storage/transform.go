package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// ImageTransform acota la foto a MaxWidth×MaxHeight (sin ampliar) y la recodifica como JPEG.
type ImageTransform struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Apply decodifica data (respetando la orientación EXIF), la reduce si excede los límites
// manteniendo la proporción y devuelve el JPEG resultante.
func (t ImageTransform) Apply(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedMedia, err)
	}
	b := img.Bounds()
	if b.Dx() > t.MaxWidth || b.Dy() > t.MaxHeight {
		img = imaging.Fit(img, t.MaxWidth, t.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(t.Quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
