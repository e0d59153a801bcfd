package model

import "github.com/google/uuid"

// PropPreset represents a reusable prop definition without a quantity.
type PropPreset struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Width   float64 `json:"width"` // tiles
	Depth   float64 `json:"depth"` // tiles
	Profile string  `json:"profile"`
}

// NewPropPreset creates a new PropPreset with a generated ID.
func NewPropPreset(name string, width, depth float64, profile string) PropPreset {
	return PropPreset{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Width:   width,
		Depth:   depth,
		Profile: profile,
	}
}

// ToProp converts a preset into a Prop with the given quantity.
func (pp PropPreset) ToProp(qty int) Prop {
	p := NewProp(pp.Name, pp.Width, pp.Depth, qty)
	p.Profile = pp.Profile
	return p
}

// RoomPreset represents a reusable room definition.
type RoomPreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Width     int     `json:"width"` // tiles
	Depth     int     `json:"depth"` // tiles
	TileScale float64 `json:"tile_scale"`
}

// NewRoomPreset creates a new RoomPreset with a generated ID.
func NewRoomPreset(name string, width, depth int, tileScale float64) RoomPreset {
	return RoomPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     width,
		Depth:     depth,
		TileScale: tileScale,
	}
}

// ToRoomSpec converts a preset into a RoomSpec.
func (rp RoomPreset) ToRoomSpec() RoomSpec {
	return NewRoomSpec(rp.Name, rp.Width, rp.Depth, rp.TileScale)
}

// Catalog holds the user's saved prop and room presets.
type Catalog struct {
	Props []PropPreset `json:"props"`
	Rooms []RoomPreset `json:"rooms"`
}

// DefaultCatalog returns a catalog populated with common defaults.
func DefaultCatalog() Catalog {
	return Catalog{
		Props: []PropPreset{
			NewPropPreset("Crate", 1, 1, "Clustered"),
			NewPropPreset("Barrel", 1, 1, "Clustered"),
			NewPropPreset("Table", 2, 1, "Cozy"),
			NewPropPreset("Bookshelf", 2, 1, "Cozy"),
			NewPropPreset("Bed", 2, 3, "Cozy"),
			NewPropPreset("Rug", 3, 2, "Scattered"),
			NewPropPreset("Brazier", 1, 1, "Scattered"),
			NewPropPreset("Market Stall", 3, 2, "Cozy"),
		},
		Rooms: []RoomPreset{
			NewRoomPreset("Hut 6x6", 6, 6, 1.0),
			NewRoomPreset("Cottage 8x10", 8, 10, 1.0),
			NewRoomPreset("Hall 16x12", 16, 12, 1.0),
			NewRoomPreset("Warehouse 24x16", 24, 16, 2.0),
		},
	}
}

// FindPropByName returns a pointer to the first prop preset with the given
// name, or nil.
func (c *Catalog) FindPropByName(name string) *PropPreset {
	for i := range c.Props {
		if c.Props[i].Name == name {
			return &c.Props[i]
		}
	}
	return nil
}

// FindRoomByName returns a pointer to the first room preset with the given
// name, or nil.
func (c *Catalog) FindRoomByName(name string) *RoomPreset {
	for i := range c.Rooms {
		if c.Rooms[i].Name == name {
			return &c.Rooms[i]
		}
	}
	return nil
}

// PropNames returns the prop preset names, in catalog order.
func (c *Catalog) PropNames() []string {
	names := make([]string, len(c.Props))
	for i, p := range c.Props {
		names[i] = p.Name
	}
	return names
}

// RoomNames returns the room preset names, in catalog order.
func (c *Catalog) RoomNames() []string {
	names := make([]string, len(c.Rooms))
	for i, r := range c.Rooms {
		names[i] = r.Name
	}
	return names
}
