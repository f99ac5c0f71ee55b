package catalog

import (
	"math"

	"github.com/piwi3910/furnish/internal/model"
)

// builtinSpecs is the showroom set shipped with the application.
// Dimensions are real-world meters before the import scale is applied.
var builtinSpecs = []model.FurnitureSpec{
	{
		ID:           "painting-1",
		Name:         "Wall Painting",
		Category:     model.CategoryWallDecor,
		Footprint:    model.Footprint{Width: 1.2, Depth: 0.05, Height: 0.9},
		Scale:        0.6,
		Zone:         model.ZoneWall,
		Orientation:  model.OrientationWallAligned,
		WallDistance: 0.05,
		HeightOffset: 1.5, // eye level
		Essential:    true,
	},
	{
		ID:           "pot-1",
		Name:         "Decorative Pot",
		Category:     model.CategoryFloorDecor,
		Footprint:    model.Footprint{Width: 0.3, Depth: 0.3, Height: 0.6},
		Scale:        0.3,
		Zone:         model.ZoneCorner,
		Orientation:  model.OrientationFixed,
		WallDistance: 0.3,
		Essential:    true,
	},
	{
		ID:           "rug-1",
		Name:         "Area Rug",
		Category:     model.CategoryFloorDecor,
		Footprint:    model.Footprint{Width: 2.5, Depth: 1.8, Height: 0.02},
		Scale:        1.25,
		Zone:         model.ZoneCenter,
		Orientation:  model.OrientationFixed,
		WallDistance: 1.0,
		HeightOffset: 0.001,
		Essential:    true,
	},
	{
		ID:           "shelf-1",
		Name:         "Storage Shelf",
		Category:     model.CategoryStorage,
		Footprint:    model.Footprint{Width: 0.8, Depth: 0.35, Height: 1.8},
		Scale:        0.9,
		Zone:         model.ZoneWall,
		Orientation:  model.OrientationWallAligned,
		WallDistance: 0.02,
		Essential:    true,
	},
	{
		ID:           "sofa-1",
		Name:         "Living Room Sofa",
		Category:     model.CategorySeating,
		Footprint:    model.Footprint{Width: 2.2, Depth: 0.9, Height: 0.85},
		Scale:        1.1,
		Zone:         model.ZoneWall,
		Orientation:  model.OrientationWallAligned,
		WallDistance: 0.3,
		Essential:    true,
	},
	{
		ID:           "table-1",
		Name:         "Side Table",
		Category:     model.CategoryTable,
		Footprint:    model.Footprint{Width: 0.5, Depth: 0.5, Height: 0.5},
		Scale:        0.5,
		BaseRotation: model.Vec3{X: math.Pi / 2, Z: math.Pi / 2},
		Zone:         model.ZoneCenter,
		Orientation:  model.OrientationFixed,
		WallDistance: 0.8,
		Essential:    true,
	},
	{
		ID:           "table-2",
		Name:         "Coffee Table",
		Category:     model.CategoryTable,
		Footprint:    model.Footprint{Width: 1.2, Depth: 0.6, Height: 0.4},
		Scale:        0.7,
		BaseRotation: model.Vec3{Z: math.Pi / 2},
		Zone:         model.ZoneCenter,
		Orientation:  model.OrientationFixed,
		WallDistance: 0.8,
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return MustNew(builtinSpecs...)
}
