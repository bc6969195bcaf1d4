package harvest

import (
	"github.com/vovakirdan/fruit-harvest/internal/config"
	"github.com/vovakirdan/fruit-harvest/internal/core"
)

// Resolver maps pointer positions to live objects.
type Resolver struct {
	ContainerWidth float64 // Play-area width in pixels
	hitBoxes       map[Kind]config.Size
	defaultHitBox  config.Size
}

// NewResolver builds a resolver from the per-kind hit boxes in cfg.
func NewResolver(cfg *config.HarvestConfig, containerWidth float64) *Resolver {
	r := &Resolver{
		ContainerWidth: containerWidth,
		hitBoxes:       make(map[Kind]config.Size, len(cfg.Objects)),
		defaultHitBox:  cfg.Field.DefaultHitBox,
	}
	for name, obj := range cfg.Objects {
		if obj.HitBox.Width > 0 && obj.HitBox.Height > 0 {
			r.hitBoxes[Kind(name)] = obj.HitBox
		}
	}
	return r
}

// HitBox returns the hit-box size for a kind, falling back to the default.
func (r *Resolver) HitBox(k Kind) config.Size {
	if size, ok := r.hitBoxes[k]; ok {
		return size
	}
	return r.defaultHitBox
}

// Bounds returns the object's hit box in absolute pixels.
func (r *Resolver) Bounds(obj FallingObject) core.Box {
	size := r.HitBox(obj.Kind)
	cx := obj.X * r.ContainerWidth / 100
	return core.CenteredBox(cx, obj.Y, size.Width, size.Height)
}

// Resolve returns the id of the topmost object whose hit box contains the
// point. Later entries in objects are on top.
func (r *Resolver) Resolve(pointerX, pointerY float64, objects []FallingObject) (string, bool) {
	for i := len(objects) - 1; i >= 0; i-- {
		if r.Bounds(objects[i]).Contains(pointerX, pointerY) {
			return objects[i].ID, true
		}
	}
	return "", false
}

// Overlaps reports whether two objects' hit boxes intersect.
func (r *Resolver) Overlaps(a, b FallingObject) bool {
	return r.Bounds(a).Intersects(r.Bounds(b))
}
