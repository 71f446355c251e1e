package rigid

import (
	"errors"
	"fmt"

	"github.com/san-kum/gaitsim/internal/spatial"
)

// WorldName is the reserved name of the fixed world frame.
const WorldName = "World"

var (
	ErrNoSuchBody    = errors.New("rigid: body not found")
	ErrBodyDestroyed = errors.New("rigid: body destroyed")
	ErrDuplicateBody = errors.New("rigid: duplicate body name")
	ErrReservedName  = errors.New("rigid: reserved body name")
)

// BodyID is a stable handle into a World. WorldID refers to the world
// frame.
type BodyID int

const WorldID BodyID = -1

func (id BodyID) IsWorld() bool { return id == WorldID }

// Frames resolves body handles to their current pose.
type Frames interface {
	Pose(id BodyID) (Pose, error)
	BodyName(id BodyID) string
}

type slot struct {
	body  Body
	alive bool
}

// World is an append-only arena of bodies.
type World struct {
	slots []slot
	index map[string]BodyID
}

func NewWorld() *World {
	return &World{index: make(map[string]BodyID)}
}

func (w *World) AddBody(b Body) (BodyID, error) {
	if b.Name == WorldName {
		return 0, fmt.Errorf("%w: %s", ErrReservedName, b.Name)
	}
	if _, ok := w.index[b.Name]; ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateBody, b.Name)
	}
	b.Orientation = spatial.Normalize(b.Orientation)
	id := BodyID(len(w.slots))
	w.slots = append(w.slots, slot{body: b, alive: true})
	w.index[b.Name] = id
	return id, nil
}

// Body returns the live body behind id.
func (w *World) Body(id BodyID) (*Body, error) {
	if id < 0 || int(id) >= len(w.slots) {
		return nil, fmt.Errorf("%w: handle %d", ErrNoSuchBody, id)
	}
	s := &w.slots[id]
	if !s.alive {
		return nil, fmt.Errorf("%w: %s", ErrBodyDestroyed, s.body.Name)
	}
	return &s.body, nil
}

func (w *World) Lookup(name string) (BodyID, bool) {
	id, ok := w.index[name]
	return id, ok
}

// Resolve maps a body name, or WorldName, to a handle.
func (w *World) Resolve(name string) (BodyID, error) {
	if name == WorldName {
		return WorldID, nil
	}
	id, ok := w.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoSuchBody, name)
	}
	return id, nil
}

func (w *World) Pose(id BodyID) (Pose, error) {
	if id.IsWorld() {
		return IdentityPose(), nil
	}
	b, err := w.Body(id)
	if err != nil {
		return Pose{}, err
	}
	return b.Pose(), nil
}

func (w *World) BodyName(id BodyID) string {
	if id.IsWorld() {
		return WorldName
	}
	if id < 0 || int(id) >= len(w.slots) {
		return fmt.Sprintf("<body %d>", id)
	}
	return w.slots[id].body.Name
}

// Destroy invalidates id. The handle is never reused.
func (w *World) Destroy(id BodyID) error {
	if _, err := w.Body(id); err != nil {
		return err
	}
	w.slots[id].alive = false
	delete(w.index, w.slots[id].body.Name)
	return nil
}

// IDs returns the live handles in creation order.
func (w *World) IDs() []BodyID {
	ids := make([]BodyID, 0, len(w.slots))
	for i, s := range w.slots {
		if s.alive {
			ids = append(ids, BodyID(i))
		}
	}
	return ids
}

func (w *World) Len() int { return len(w.IDs()) }
