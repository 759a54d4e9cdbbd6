package squad

import (
	"fmt"
	"time"
)

// Squad is one team's slot-to-player mapping under a chosen formation.
// Slot IDs are formation-specific, so switching formation resets the map.
type Squad struct {
	TeamID      string
	FormationID string
	Assignments map[string]string // slot id -> player id
	UpdatedAt   time.Time
}

// SlotOf returns the slot the player currently occupies, if any.
func (s Squad) SlotOf(playerID string) (string, bool) {
	for slotID, assigned := range s.Assignments {
		if assigned == playerID {
			return slotID, true
		}
	}
	return "", false
}

func (s Squad) Validate() error {
	if s.TeamID == "" {
		return fmt.Errorf("squad team id is required")
	}
	if s.FormationID == "" {
		return fmt.Errorf("squad formation id is required")
	}

	seen := make(map[string]string, len(s.Assignments))
	for slotID, playerID := range s.Assignments {
		if playerID == "" {
			return fmt.Errorf("slot %s maps to an empty player id", slotID)
		}
		if prev, dup := seen[playerID]; dup {
			return fmt.Errorf("player %s assigned to both %s and %s", playerID, prev, slotID)
		}
		seen[playerID] = slotID
	}

	return nil
}
