package model

import (
	"fmt"
	"math"
)

// RoomConfig is the caller-supplied room description.
type RoomConfig struct {
	Width      float64 `json:"width" toml:"width"`             // X extent, meters
	Depth      float64 `json:"depth" toml:"depth"`             // Y extent, meters
	WallHeight float64 `json:"wall_height" toml:"wall_height"` // meters
	Margin     float64 `json:"margin" toml:"margin"`           // Placement inset from each wall
}

// DefaultRoomConfig returns the 6x6 showroom used by the built-in catalog.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		Width:      6,
		Depth:      6,
		WallHeight: 3.2,
		Margin:     0.3,
	}
}

// RoomBounds is an axis-aligned rectangle on the floor plane.
type RoomBounds struct {
	MinX       float64 `json:"min_x"`
	MaxX       float64 `json:"max_x"`
	MinY       float64 `json:"min_y"`
	MaxY       float64 `json:"max_y"`
	WallHeight float64 `json:"wall_height"`
	Margin     float64 `json:"margin"` // Total inset already applied to these bounds
}

// Inset shrinks the rectangle by margin on every side.
func (b RoomBounds) Inset(margin float64) RoomBounds {
	return RoomBounds{
		MinX:       b.MinX + margin,
		MaxX:       b.MaxX - margin,
		MinY:       b.MinY + margin,
		MaxY:       b.MaxY - margin,
		WallHeight: b.WallHeight,
		Margin:     b.Margin + margin,
	}
}

// Width returns the X extent.
func (b RoomBounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Depth returns the Y extent.
func (b RoomBounds) Depth() float64 {
	return b.MaxY - b.MinY
}

// Center returns the midpoint of the rectangle.
func (b RoomBounds) Center() (x, y float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Empty reports whether the rectangle has no positive area.
func (b RoomBounds) Empty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// Room is a validated rectangular room centred on the origin.
type Room struct {
	cfg RoomConfig
}

// NewRoom validates cfg. Errors wrap ErrInvalidRoom.
func NewRoom(cfg RoomConfig) (*Room, error) {
	for _, v := range []float64{cfg.Width, cfg.Depth, cfg.WallHeight, cfg.Margin} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: dimensions must be finite, got %gx%g wall %g margin %g",
				ErrInvalidRoom, cfg.Width, cfg.Depth, cfg.WallHeight, cfg.Margin)
		}
	}
	if cfg.Width <= 0 || cfg.Depth <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %gx%g", ErrInvalidRoom, cfg.Width, cfg.Depth)
	}
	if cfg.WallHeight <= 0 {
		return nil, fmt.Errorf("%w: wall height must be positive, got %g", ErrInvalidRoom, cfg.WallHeight)
	}
	if cfg.Margin < 0 {
		return nil, fmt.Errorf("%w: margin must not be negative, got %g", ErrInvalidRoom, cfg.Margin)
	}
	if 2*cfg.Margin >= cfg.Width || 2*cfg.Margin >= cfg.Depth {
		return nil, fmt.Errorf("%w: margin %g leaves no placement area in a %gx%g room", ErrInvalidRoom, cfg.Margin, cfg.Width, cfg.Depth)
	}
	return &Room{cfg: cfg}, nil
}

// Bounds returns the full floor rectangle.
func (r *Room) Bounds() RoomBounds {
	return RoomBounds{
		MinX:       -r.cfg.Width / 2,
		MaxX:       r.cfg.Width / 2,
		MinY:       -r.cfg.Depth / 2,
		MaxY:       r.cfg.Depth / 2,
		WallHeight: r.cfg.WallHeight,
	}
}

// InsetBounds returns the floor rectangle shrunk by margin on each side.
func (r *Room) InsetBounds(margin float64) RoomBounds {
	return r.Bounds().Inset(margin)
}

// PlacementBounds returns the bounds inset by the configured margin.
func (r *Room) PlacementBounds() RoomBounds {
	return r.InsetBounds(r.cfg.Margin)
}
