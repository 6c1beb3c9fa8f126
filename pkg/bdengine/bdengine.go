// Package bdengine reads and writes BDEngine project files.
//
// A project file is a base64-encoded gzip stream of a compact JSON
// array holding a single root collection node. Display entities live
// in the root's children; this package only emits player-head item
// displays, the one primitive whose texture can be painted per
// instance.
package bdengine

import "errors"

var (
	// ErrNotProject marks input that does not decode to a project file.
	ErrNotProject = errors.New("bdengine: not a bdengine project file")
	// ErrFileExists marks a refused overwrite of an existing output file.
	ErrFileExists = errors.New("bdengine: output file already exists")
)

// Engine constraints and unit conversions.
const (
	// HeadNativeSize is the edge length of an unscaled player head in
	// model units. Scales are expressed relative to it.
	HeadNativeSize = 8
	// PixelsPerBlock converts model units to world blocks.
	PixelsPerBlock = 16
	// MinScale is the smallest per-axis scale the engine accepts; zero
	// scales make a head disappear and break its editor gizmo.
	MinScale = 0.0011
	// HeadNodeName selects an invisible player_head item display.
	HeadNodeName = "player_head[display=none]"
	// SkyBrightness is the fixed light level painted heads render at.
	SkyBrightness = 15
)

// Project is the top-level file payload: a one-element array holding
// the root collection.
type Project []*CollectionNode

// CollectionNode groups child display nodes under a shared transform.
type CollectionNode struct {
	IsCollection bool        `json:"isCollection"`
	Name         string      `json:"name"`
	NBT          string      `json:"nbt"`
	Settings     Settings    `json:"settings"`
	MainNBT      string      `json:"mainNBT"`
	Transforms   Transform   `json:"transforms"`
	Children     []*HeadNode `json:"children"`
	ListAnim     []Animation `json:"listAnim"`
}

// Settings holds per-collection editor settings.
type Settings struct {
	DefaultBrightness bool `json:"defaultBrightness"`
}

// Animation is one entry of a collection's animation list. Projects
// always carry at least the default entry.
type Animation struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// HeadNode is a player-head item display with a painted texture.
type HeadNode struct {
	IsItemDisplay    bool       `json:"isItemDisplay"`
	Name             string     `json:"name"`
	Brightness       Brightness `json:"brightness"`
	NBT              string     `json:"nbt"`
	TagHead          TagHead    `json:"tagHead"`
	TextureValueList []string   `json:"textureValueList"`
	PaintTexture     string     `json:"paintTexture"`
	Transforms       Transform  `json:"transforms"`
}

// Brightness is a fixed light override for one display node.
type Brightness struct {
	Sky   int `json:"sky"`
	Block int `json:"block"`
}

// TagHead carries the skin profile value of a head item. Painted heads
// leave it empty; the engine reads pixels from PaintTexture instead.
type TagHead struct {
	Value string `json:"Value"`
}

// NewProject builds a root collection with an identity transform and
// the default animation entry.
func NewProject(name string) *CollectionNode {
	return &CollectionNode{
		IsCollection: true,
		Name:         name,
		Transforms:   Identity(),
		Children:     []*HeadNode{},
		ListAnim:     []Animation{{ID: 1, Name: "Default"}},
	}
}

// NewHeadNode builds a painted player-head display node.
func NewHeadNode(transforms Transform, paintTexture string) *HeadNode {
	return &HeadNode{
		IsItemDisplay:    true,
		Name:             HeadNodeName,
		Brightness:       Brightness{Sky: SkyBrightness, Block: 0},
		TextureValueList: []string{},
		PaintTexture:     paintTexture,
		Transforms:       transforms,
	}
}
