package bbmodel

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

const minimalModel = `{
  "name": "test model",
  "resolution": {"width": 64, "height": 64},
  "elements": [
    {
      "name": "body",
      "from": [0, 0, 0],
      "to": [16, 16, 16],
      "rotation": [0, 45, 0],
      "origin": [8, 8, 8],
      "faces": {
        "north": {"uv": [0, 0, 16, 16], "texture": 0},
        "up": {"uv": [16, 0, 32, 16], "texture": "0"}
      }
    }
  ],
  "textures": [
    {"id": "0", "name": "skin"}
  ]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(minimalModel))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if m.Name != "test model" {
		t.Errorf("expected name 'test model', got %q", m.Name)
	}
	if len(m.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(m.Elements))
	}

	el := m.Elements[0]
	if el.To != [3]float32{16, 16, 16} {
		t.Errorf("unexpected to corner: %v", el.To)
	}
	if el.Rotation[1] != 45 {
		t.Errorf("expected y rotation 45, got %f", el.Rotation[1])
	}

	north := el.VisibleFace(FaceNorth)
	if north == nil {
		t.Fatal("expected north face to be present")
	}
	if !north.Texture.Valid || north.Texture.ID != 0 {
		t.Errorf("north texture ref: got %+v", north.Texture)
	}
	// String texture ids must parse the same as numeric ones.
	up := el.VisibleFace(FaceUp)
	if up == nil || !up.Texture.Valid || up.Texture.ID != 0 {
		t.Errorf("up texture ref: got %+v", up)
	}
	if el.VisibleFace(FaceDown) != nil {
		t.Error("absent face should resolve to nil")
	}
}

func TestParseUnreadable(t *testing.T) {
	if _, err := Parse([]byte("{not json")); !errors.Is(err, ErrUnreadableModel) {
		t.Errorf("expected ErrUnreadableModel, got %v", err)
	}
}

func TestParseRequiresElements(t *testing.T) {
	if _, err := Parse([]byte(`{"name": "empty"}`)); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
	// An empty elements array is a valid, if pointless, model.
	if _, err := Parse([]byte(`{"name": "empty", "elements": []}`)); err != nil {
		t.Errorf("empty elements array should parse: %v", err)
	}
}

func TestNormalized(t *testing.T) {
	el := Element{From: [3]float32{16, 0, 8}, To: [3]float32{0, 16, 4}}
	n := el.Normalized()
	if n.From != [3]float32{0, 0, 4} || n.To != [3]float32{16, 16, 8} {
		t.Errorf("normalization wrong: from=%v to=%v", n.From, n.To)
	}
	if err := n.Validate(); err != nil {
		t.Errorf("normalized element should validate: %v", err)
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	nan := float32(0)
	nan /= nan
	el := Element{From: [3]float32{0, 0, 0}, To: [3]float32{nan, 1, 1}}
	if err := el.Validate(); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("expected ErrInvalidElement, got %v", err)
	}
}

func TestPivotDefaultsToCenter(t *testing.T) {
	el := Element{From: [3]float32{0, 0, 0}, To: [3]float32{16, 8, 4}}
	p := el.Pivot()
	if p.X() != 8 || p.Y() != 4 || p.Z() != 2 {
		t.Errorf("expected center pivot (8,4,2), got %v", p)
	}

	el.Origin = &[3]float32{1, 2, 3}
	p = el.Pivot()
	if p.X() != 1 || p.Y() != 2 || p.Z() != 3 {
		t.Errorf("expected declared origin, got %v", p)
	}
}

func TestUVRectMirrorFlags(t *testing.T) {
	f := &Face{UV: [4]float32{16, 0, 0, 8}}
	umin, vmin, umax, vmax, mu, mv := f.UVRect()
	if umin != 0 || umax != 16 || vmin != 0 || vmax != 8 {
		t.Errorf("rect: got (%f,%f,%f,%f)", umin, vmin, umax, vmax)
	}
	if !mu || mv {
		t.Errorf("expected mirrorU only, got mirrorU=%v mirrorV=%v", mu, mv)
	}
	if f.UVArea() != 128 {
		t.Errorf("expected area 128, got %f", f.UVArea())
	}
}

func TestDecodeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	tex := Texture{
		Name:   "white",
		Source: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}

	decoded, err := tex.DecodeImage()
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 4 {
		t.Errorf("unexpected bounds: %v", decoded.Bounds())
	}
	if got := decoded.RGBAAt(2, 2); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("unexpected pixel: %v", got)
	}
}

func TestDecodeImageRejectsExternalSource(t *testing.T) {
	tex := Texture{Name: "ext", Source: "textures/skin.png"}
	if _, err := tex.DecodeImage(); !errors.Is(err, ErrBadTextureSource) {
		t.Errorf("expected ErrBadTextureSource, got %v", err)
	}
}
