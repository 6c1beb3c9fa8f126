package texture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/voxforge/headcast/pkg/bbmodel"
)

// Java player-head skin layout: a 64x64 texture whose head part lives
// in the top-left 32x32 area, one 8x8 region per face.
const (
	HeadTextureSize = 64
	HeadActiveArea  = 32
	headFaceSize    = 8
)

var headFaceRegions = map[bbmodel.FaceID]image.Rectangle{
	bbmodel.FaceUp:    image.Rect(8, 0, 16, 8),
	bbmodel.FaceDown:  image.Rect(16, 0, 24, 8),
	bbmodel.FaceNorth: image.Rect(8, 8, 16, 16),
	bbmodel.FaceSouth: image.Rect(24, 8, 32, 16),
	bbmodel.FaceEast:  image.Rect(0, 8, 8, 16),
	bbmodel.FaceWest:  image.Rect(16, 8, 24, 16),
}

// PaintHead assembles face tiles into a head skin. Faces without a tile
// (hidden, degenerate or undeclared) are painted opaque black so the
// engine never shows stale skin pixels through them.
func PaintHead(tiles map[bbmodel.FaceID]*Tile, filter Filter) *image.RGBA {
	head := image.NewRGBA(image.Rect(0, 0, HeadTextureSize, HeadTextureSize))
	black := image.NewUniform(color.RGBA{0, 0, 0, 255})

	for _, face := range bbmodel.FaceOrder {
		region := headFaceRegions[face]
		tile, ok := tiles[face]
		if !ok || tile == nil {
			draw.Draw(head, region, black, image.Point{}, draw.Src)
			continue
		}
		filter.scaler().Scale(head, region, tile.Image, tile.Image.Bounds(), xdraw.Src, nil)
	}
	return head
}

// EncodeDataURI encodes an image as the base64 PNG data URI the output
// format embeds in paintTexture fields.
func EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("texture: encoding head png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FallbackTexture returns the built-in placeholder skin: each face
// region filled with a distinct solid color so misses are obvious in
// the engine without aborting the conversion.
func FallbackTexture() *image.RGBA {
	colors := map[bbmodel.FaceID]color.RGBA{
		bbmodel.FaceUp:    {255, 255, 255, 255},
		bbmodel.FaceDown:  {255, 255, 0, 255},
		bbmodel.FaceNorth: {255, 0, 0, 255},
		bbmodel.FaceSouth: {255, 165, 0, 255},
		bbmodel.FaceEast:  {0, 255, 0, 255},
		bbmodel.FaceWest:  {0, 0, 255, 255},
	}
	img := image.NewRGBA(image.Rect(0, 0, HeadTextureSize, HeadTextureSize))
	for face, region := range headFaceRegions {
		draw.Draw(img, region, image.NewUniform(colors[face]), image.Point{}, draw.Src)
	}
	return img
}
