package model

import (
	"time"

	"github.com/google/uuid"
)

// PlanTemplate represents a reusable plan configuration that captures rooms,
// props, and settings but not scatter results.
type PlanTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Rooms       []RoomSpec      `json:"rooms"`
	Props       []Prop          `json:"props"`
	Settings    ScatterSettings `json:"settings"`
}

// NewPlanTemplate creates a new template from the given plan data.
// It copies rooms, props, and settings but intentionally excludes results.
func NewPlanTemplate(name, description string, rooms []RoomSpec, props []Prop, settings ScatterSettings) PlanTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return PlanTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Rooms:       copyRooms(rooms),
		Props:       copyProps(props),
		Settings:    settings,
	}
}

// ToPlan creates a new Plan from this template.
// Rooms and props get fresh IDs so they are independent of the template.
func (t PlanTemplate) ToPlan(planName string) Plan {
	rooms := make([]RoomSpec, len(t.Rooms))
	for i, r := range t.Rooms {
		rooms[i] = NewRoomSpec(r.Label, r.Width, r.Depth, r.TileScale)
		rooms[i].Origin = r.Origin
		rooms[i].Blocked = r.Blocked
	}

	props := make([]Prop, len(t.Props))
	for i, p := range t.Props {
		props[i] = NewProp(p.Label, p.Footprint.Width, p.Footprint.Depth, p.Quantity)
		props[i].Profile = p.Profile
	}

	return Plan{
		Name:     planName,
		Rooms:    rooms,
		Props:    props,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of plan templates.
type TemplateStore struct {
	Templates []PlanTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []PlanTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t PlanTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *PlanTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *PlanTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// copyRooms creates a copy of a rooms slice.
func copyRooms(rooms []RoomSpec) []RoomSpec {
	if rooms == nil {
		return []RoomSpec{}
	}
	cp := make([]RoomSpec, len(rooms))
	copy(cp, rooms)
	return cp
}

// copyProps creates a copy of a props slice.
func copyProps(props []Prop) []Prop {
	if props == nil {
		return []Prop{}
	}
	cp := make([]Prop, len(props))
	copy(cp, props)
	return cp
}
