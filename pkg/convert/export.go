package convert

import (
	"fmt"

	"github.com/voxforge/headcast/pkg/bdengine"
	"github.com/voxforge/headcast/pkg/texture"
)

// BuildProject assembles primitives into an output project tree, one
// painted head node per primitive, preserving primitive order.
func BuildProject(name string, primitives []Primitive) (*bdengine.CollectionNode, error) {
	root := bdengine.NewProject(name)
	for i := range primitives {
		p := &primitives[i]
		uri, err := texture.EncodeDataURI(p.Texture)
		if err != nil {
			return nil, fmt.Errorf("encoding head texture for %s: %w", p.Element, err)
		}
		transform := bdengine.Compose(p.Rotation, p.Scale, p.Position)
		root.Children = append(root.Children, bdengine.NewHeadNode(transform, uri))
	}
	return root, nil
}
