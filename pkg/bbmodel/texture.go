package bbmodel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // embedded sources are PNG data URIs
	"strings"
)

const dataURIPrefix = "data:image/"

// DecodeImage decodes the texture's embedded data-URI source into an
// RGBA image.
func (t Texture) DecodeImage() (*image.RGBA, error) {
	if !strings.HasPrefix(t.Source, dataURIPrefix) {
		return nil, fmt.Errorf("%w: texture %q has no embedded source", ErrBadTextureSource, t.Name)
	}
	_, encoded, ok := strings.Cut(t.Source, ",")
	if !ok {
		return nil, fmt.Errorf("%w: texture %q data URI has no payload", ErrBadTextureSource, t.Name)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: texture %q: %v", ErrBadTextureSource, t.Name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: texture %q: %v", ErrBadTextureSource, t.Name, err)
	}
	return toRGBA(img), nil
}

// DecodeTextures decodes all embedded texture sources, keyed by id.
// Textures without a usable source are skipped; the caller decides
// whether the remaining set is sufficient.
func (m *Model) DecodeTextures() (map[int]*image.RGBA, error) {
	out := make(map[int]*image.RGBA, len(m.Textures))
	var firstErr error
	for _, tex := range m.Textures {
		if !tex.ID.Valid {
			continue
		}
		img, err := tex.DecodeImage()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out[tex.ID.ID] = img
	}
	return out, firstErr
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
