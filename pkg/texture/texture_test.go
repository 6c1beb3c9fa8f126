package texture

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxforge/headcast/pkg/bbmodel"
	"github.com/voxforge/headcast/pkg/geom"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// left half red, right half blue
func twoToneImage(w, h int) *image.RGBA {
	img := solidImage(w, h, color.RGBA{255, 0, 0, 255})
	draw.Draw(img, image.Rect(w/2, 0, w, h), image.NewUniform(color.RGBA{0, 0, 255, 255}), image.Point{}, draw.Src)
	return img
}

func texRef(id int) bbmodel.TextureRef {
	return bbmodel.TextureRef{ID: id, Valid: true}
}

func wholeElementCell(el bbmodel.Element) (geom.GridCell, geom.AABB) {
	bounds := geom.NewAABB(mgl32.Vec3(el.From), mgl32.Vec3(el.To))
	return geom.GridCell{Box: bounds}, bounds
}

func TestResolveTileSolidColorRoundTrip(t *testing.T) {
	red := color.RGBA{200, 30, 30, 255}
	mgr := NewManager(map[int]*image.RGBA{0: solidImage(7, 13, red)}, nil)
	sub := NewSubdivider(mgr, FilterNearest)

	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{16, 16, 16},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			bbmodel.FaceNorth: {UV: [4]float32{0, 0, 7, 13}, Texture: texRef(0)},
		},
	}
	cell, bounds := wholeElementCell(el)

	tile, err := sub.ResolveTile(el, bbmodel.FaceNorth, cell, bounds)
	if err != nil {
		t.Fatalf("ResolveTile failed: %v", err)
	}
	if tile.Image.Bounds().Dx() != TileSize || tile.Image.Bounds().Dy() != TileSize {
		t.Fatalf("tile is %v, want %dx%d", tile.Image.Bounds(), TileSize, TileSize)
	}
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			if got := tile.Image.RGBAAt(x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want %v (no color bleed allowed)", x, y, got, red)
			}
		}
	}
	if tile.Degraded {
		t.Error("tile should not be degraded")
	}
	if tile.TextureID != 0 {
		t.Errorf("expected texture id 0, got %d", tile.TextureID)
	}
}

func TestResolveTileAbsentFace(t *testing.T) {
	mgr := NewManager(nil, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{From: [3]float32{0, 0, 0}, To: [3]float32{16, 16, 16}}
	cell, bounds := wholeElementCell(el)

	tile, err := sub.ResolveTile(el, bbmodel.FaceUp, cell, bounds)
	if tile != nil || err != nil {
		t.Errorf("absent face: got tile=%v err=%v, want nil/nil", tile, err)
	}
}

func TestResolveTileDegenerateUV(t *testing.T) {
	mgr := NewManager(map[int]*image.RGBA{0: solidImage(16, 16, color.RGBA{A: 255})}, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{16, 16, 16},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			bbmodel.FaceNorth: {UV: [4]float32{4, 4, 4, 12}, Texture: texRef(0)},
		},
	}
	cell, bounds := wholeElementCell(el)

	if _, err := sub.ResolveTile(el, bbmodel.FaceNorth, cell, bounds); !errors.Is(err, ErrDegenerateUVRect) {
		t.Errorf("expected ErrDegenerateUVRect, got %v", err)
	}
}

func TestResolveTileMissingTextureDegrades(t *testing.T) {
	mgr := NewManager(nil, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{16, 16, 16},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			bbmodel.FaceNorth: {UV: [4]float32{0, 0, 64, 64}, Texture: texRef(9)},
		},
	}
	cell, bounds := wholeElementCell(el)

	tile, err := sub.ResolveTile(el, bbmodel.FaceNorth, cell, bounds)
	if err != nil {
		t.Fatalf("missing texture must degrade, not fail: %v", err)
	}
	if !tile.Degraded {
		t.Error("expected Degraded to be set")
	}
	if tile.TextureID != -1 {
		t.Errorf("expected texture id -1 for fallback, got %d", tile.TextureID)
	}
}

func TestResolveTileSubdividesAlongX(t *testing.T) {
	// 32-wide element split in two along X over a two-tone source.
	mgr := NewManager(map[int]*image.RGBA{0: twoToneImage(32, 16)}, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{32, 16, 16},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			bbmodel.FaceSouth: {UV: [4]float32{0, 0, 32, 16}, Texture: texRef(0)},
			bbmodel.FaceNorth: {UV: [4]float32{0, 0, 32, 16}, Texture: texRef(0)},
		},
	}
	bounds := geom.NewAABB(mgl32.Vec3(el.From), mgl32.Vec3(el.To))
	cells := geom.SubdivisionGrid(bounds, [3]int{2, 1, 1})

	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	// South face reads left-to-right: first cell sees the left (red) half.
	tile, err := sub.ResolveTile(el, bbmodel.FaceSouth, cells[0], bounds)
	if err != nil {
		t.Fatal(err)
	}
	if got := tile.Image.RGBAAt(16, 8); got != red {
		t.Errorf("south/cell0 = %v, want red", got)
	}

	// North is viewed from -Z, so the same cell maps to the right half.
	tile, err = sub.ResolveTile(el, bbmodel.FaceNorth, cells[0], bounds)
	if err != nil {
		t.Fatal(err)
	}
	if got := tile.Image.RGBAAt(16, 8); got != blue {
		t.Errorf("north/cell0 = %v, want blue", got)
	}
}

func TestResolveTileMirroredUV(t *testing.T) {
	mgr := NewManager(map[int]*image.RGBA{0: twoToneImage(32, 16)}, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{16, 16, 16},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			// u corners swapped: mirrored horizontally
			bbmodel.FaceSouth: {UV: [4]float32{32, 0, 0, 16}, Texture: texRef(0)},
		},
	}
	cell, bounds := wholeElementCell(el)

	tile, err := sub.ResolveTile(el, bbmodel.FaceSouth, cell, bounds)
	if err != nil {
		t.Fatal(err)
	}
	// Source left half is red; mirrored it lands on the right.
	if got := tile.Image.RGBAAt(TileSize-4, 8); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("mirrored tile right side = %v, want red", got)
	}
}

func TestResolveTileMirroredSubdivision(t *testing.T) {
	// A mirrored face runs right-to-left across its texture, so after
	// splitting, the model-left cell must sample the source's right half.
	mgr := NewManager(map[int]*image.RGBA{0: twoToneImage(32, 16)}, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{32, 16, 16},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			bbmodel.FaceSouth: {UV: [4]float32{32, 0, 0, 16}, Texture: texRef(0)},
		},
	}
	bounds := geom.NewAABB(mgl32.Vec3(el.From), mgl32.Vec3(el.To))
	cells := geom.SubdivisionGrid(bounds, [3]int{2, 1, 1})

	tile, err := sub.ResolveTile(el, bbmodel.FaceSouth, cells[0], bounds)
	if err != nil {
		t.Fatal(err)
	}
	if got := tile.Image.RGBAAt(16, 8); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("mirrored south/cell0 = %v, want blue (source right half)", got)
	}

	tile, err = sub.ResolveTile(el, bbmodel.FaceSouth, cells[1], bounds)
	if err != nil {
		t.Fatal(err)
	}
	if got := tile.Image.RGBAAt(16, 8); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("mirrored south/cell1 = %v, want red (source left half)", got)
	}
}

func TestResolveTileUpDownOrientation(t *testing.T) {
	// The up face reads with north at the top of its UV rect; down is
	// the view from below, so its Z axis runs the other way.
	green := color.RGBA{0, 255, 0, 255}
	magenta := color.RGBA{255, 0, 255, 255}
	src := solidImage(16, 32, green)
	draw.Draw(src, image.Rect(0, 16, 16, 32), image.NewUniform(magenta), image.Point{}, draw.Src)

	mgr := NewManager(map[int]*image.RGBA{0: src}, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{16, 16, 32},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			bbmodel.FaceUp:   {UV: [4]float32{0, 0, 16, 32}, Texture: texRef(0)},
			bbmodel.FaceDown: {UV: [4]float32{0, 0, 16, 32}, Texture: texRef(0)},
		},
	}
	bounds := geom.NewAABB(mgl32.Vec3(el.From), mgl32.Vec3(el.To))
	cells := geom.SubdivisionGrid(bounds, [3]int{1, 1, 2})

	// North cell of the up face samples the top of the rect.
	tile, err := sub.ResolveTile(el, bbmodel.FaceUp, cells[0], bounds)
	if err != nil {
		t.Fatal(err)
	}
	if got := tile.Image.RGBAAt(16, 16); got != green {
		t.Errorf("up/north cell = %v, want green (rect top)", got)
	}

	// The same cell seen from below samples the bottom.
	tile, err = sub.ResolveTile(el, bbmodel.FaceDown, cells[0], bounds)
	if err != nil {
		t.Fatal(err)
	}
	if got := tile.Image.RGBAAt(16, 16); got != magenta {
		t.Errorf("down/north cell = %v, want magenta (rect bottom)", got)
	}
}

func TestManagerResolve(t *testing.T) {
	src := solidImage(4, 4, color.RGBA{9, 9, 9, 255})
	mgr := NewManager(map[int]*image.RGBA{3: src}, nil)

	img, err := mgr.Resolve(texRef(3))
	if err != nil || img != src {
		t.Errorf("registered id: got %v, %v", img, err)
	}

	img, err = mgr.Resolve(texRef(8))
	if !errors.Is(err, ErrMissingTexture) {
		t.Errorf("missing id: expected ErrMissingTexture, got %v", err)
	}
	if img == nil {
		t.Error("missing id must still yield the fallback image")
	}

	if _, err = mgr.Resolve(bbmodel.TextureRef{}); !errors.Is(err, ErrMissingTexture) {
		t.Errorf("null reference: expected ErrMissingTexture, got %v", err)
	}
}

func TestStretchTileUsesFullUV(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	mgr := NewManager(map[int]*image.RGBA{0: solidImage(3, 50, red)}, nil)
	sub := NewSubdivider(mgr, FilterNearest)
	el := bbmodel.Element{
		From: [3]float32{0, 0, 0},
		To:   [3]float32{48, 4, 4},
		Faces: map[bbmodel.FaceID]*bbmodel.Face{
			bbmodel.FaceUp: {UV: [4]float32{0, 0, 3, 50}, Texture: texRef(0)},
		},
	}

	tile, err := sub.StretchTile(el, bbmodel.FaceUp)
	if err != nil {
		t.Fatal(err)
	}
	if tile.Image.Bounds().Dx() != TileSize || tile.Image.Bounds().Dy() != TileSize {
		t.Fatalf("stretch tile is %v, want %dx%d", tile.Image.Bounds(), TileSize, TileSize)
	}
	if got := tile.Image.RGBAAt(1, 1); got != red {
		t.Errorf("stretched pixel = %v, want %v", got, red)
	}
}

func TestPaintHead(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	tiles := map[bbmodel.FaceID]*Tile{
		bbmodel.FaceNorth: {Face: bbmodel.FaceNorth, Image: solidImage(TileSize, TileSize, red)},
	}

	head := PaintHead(tiles, FilterNearest)
	if head.Bounds().Dx() != HeadTextureSize || head.Bounds().Dy() != HeadTextureSize {
		t.Fatalf("head is %v, want %dx%d", head.Bounds(), HeadTextureSize, HeadTextureSize)
	}
	// North region carries the tile color.
	if got := head.RGBAAt(12, 12); got != red {
		t.Errorf("north region = %v, want %v", got, red)
	}
	// Faces without tiles are opaque black.
	if got := head.RGBAAt(4, 12); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("east region = %v, want opaque black", got)
	}
	// Outside the head part stays transparent.
	if got := head.RGBAAt(48, 48); got != (color.RGBA{}) {
		t.Errorf("outside area = %v, want transparent", got)
	}
}

func TestEncodeDataURI(t *testing.T) {
	uri, err := EncodeDataURI(solidImage(4, 4, color.RGBA{1, 2, 3, 255}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("unexpected prefix: %.40s", uri)
	}
}

func TestParseFilter(t *testing.T) {
	if f, err := ParseFilter(""); err != nil || f != FilterNearest {
		t.Errorf("empty filter: got %v, %v", f, err)
	}
	if _, err := ParseFilter("bicubic"); err == nil {
		t.Error("expected error for unknown filter")
	}
}
