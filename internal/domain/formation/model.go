package formation

import (
	"fmt"

	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
)

// Placement is where a slot renders on the pitch. Presentation only:
// no rule in this module reads it.
type Placement struct {
	Bottom Offsets
	Right  Offsets
}

type Offsets struct {
	Mobile  int
	Desktop int
}

// Slot is a named position in a formation template to which exactly one
// player may be assigned.
type Slot struct {
	ID        string
	Name      string
	Position  player.Position
	Placement Placement
}

// Formation is an ordered set of slots, e.g. 4-3-3.
type Formation struct {
	ID    string
	Name  string
	Slots []Slot
}

func (f Formation) SlotByID(slotID string) (Slot, bool) {
	for _, s := range f.Slots {
		if s.ID == slotID {
			return s, true
		}
	}
	return Slot{}, false
}

func (f Formation) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("formation id is required")
	}
	if f.Name == "" {
		return fmt.Errorf("formation name is required")
	}
	if len(f.Slots) == 0 {
		return fmt.Errorf("formation slots are required")
	}

	seen := make(map[string]struct{}, len(f.Slots))
	for _, s := range f.Slots {
		if s.ID == "" {
			return fmt.Errorf("slot id is required")
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate slot id: %s", s.ID)
		}
		seen[s.ID] = struct{}{}
		if _, ok := player.AllPositions[s.Position]; !ok {
			return fmt.Errorf("invalid slot position: %s", s.Position)
		}
	}

	return nil
}
