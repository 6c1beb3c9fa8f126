// Package bbmodel parses Blockbench .bbmodel files into the in-memory
// element model consumed by the conversion pipeline. Only the generic
// cuboid subset is read: elements with from/to corners, a rotation
// about a pivot, and per-face UV rectangles referencing embedded
// textures.
package bbmodel

import (
	"errors"
)

// Parse errors.
var (
	ErrUnreadableModel  = errors.New("bbmodel: unreadable model file")
	ErrInvalidElement   = errors.New("bbmodel: invalid element geometry")
	ErrMissingField     = errors.New("bbmodel: missing required field")
	ErrBadTextureSource = errors.New("bbmodel: bad texture source")
)

// FaceID names one of the six cuboid faces. North is -Z, east is +X,
// up is +Y, matching Blockbench's model space.
type FaceID string

const (
	FaceNorth FaceID = "north"
	FaceSouth FaceID = "south"
	FaceEast  FaceID = "east"
	FaceWest  FaceID = "west"
	FaceUp    FaceID = "up"
	FaceDown  FaceID = "down"
)

// FaceOrder is the canonical enumeration order for faces. Iterating
// element faces through this slice keeps conversion output stable.
var FaceOrder = []FaceID{FaceNorth, FaceSouth, FaceEast, FaceWest, FaceUp, FaceDown}

// Model is one parsed .bbmodel file.
type Model struct {
	Name       string     `json:"name"`
	Resolution Resolution `json:"resolution"`
	Elements   []Element  `json:"elements"`
	Textures   []Texture  `json:"textures"`
}

// Resolution is the project texture resolution UVs are declared in.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Element is one cuboid of the model.
type Element struct {
	Name     string           `json:"name"`
	From     [3]float32       `json:"from"`
	To       [3]float32       `json:"to"`
	Rotation [3]float32       `json:"rotation"`
	Origin   *[3]float32      `json:"origin"`
	Faces    map[FaceID]*Face `json:"faces"`
}

// Face is the texture mapping of one element face. A nil Face in
// Element.Faces means the face is not rendered.
type Face struct {
	UV      [4]float32 `json:"uv"`
	Texture TextureRef `json:"texture"`
}

// Texture is one texture entry of the model, usually with an embedded
// base64 data-URI source.
type Texture struct {
	ID     TextureRef `json:"id"`
	Name   string     `json:"name"`
	Source string     `json:"source"`
}
