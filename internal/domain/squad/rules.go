package squad

import (
	"errors"

	"github.com/victorgomez09/fantasy-manager/internal/domain/formation"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
)

var (
	ErrPlayerNotOwned        = errors.New("player is not on the team roster")
	ErrPositionMismatch      = errors.New("player cannot occupy this position")
	ErrPlayerAlreadyAssigned = errors.New("player already occupies another slot")
	ErrUnknownSlot           = errors.New("slot does not exist in formation")
)

// ViolationReason classifies one completeness failure.
type ViolationReason string

const (
	ViolationSlotEmpty        ViolationReason = "slot_empty"
	ViolationPositionMismatch ViolationReason = "position_mismatch"
	ViolationPlayerNotOwned   ViolationReason = "player_not_owned"
)

// Violation is one reason a squad is not ready. Completeness checks
// return every violation instead of stopping at the first.
type Violation struct {
	SlotID   string
	SlotName string
	Position player.Position
	PlayerID string
	Reason   ViolationReason
}

// CanOccupy reports whether the player fits the slot: primary position
// match or the slot's position among the player's alternatives.
func CanOccupy(p player.Player, slot formation.Slot) bool {
	return p.CanPlay(slot.Position)
}

// Completeness evaluates a squad against its formation and the team's
// current roster. playersByID must contain every assigned player that
// still exists; missing or foreign-owned entries surface as violations.
func Completeness(f formation.Formation, s Squad, teamID string, playersByID map[string]player.Player) []Violation {
	violations := make([]Violation, 0)
	for _, slot := range f.Slots {
		playerID, filled := s.Assignments[slot.ID]
		if !filled {
			violations = append(violations, Violation{
				SlotID:   slot.ID,
				SlotName: slot.Name,
				Position: slot.Position,
				Reason:   ViolationSlotEmpty,
			})
			continue
		}

		p, known := playersByID[playerID]
		if !known || p.OwnerTeamID != teamID {
			violations = append(violations, Violation{
				SlotID:   slot.ID,
				SlotName: slot.Name,
				Position: slot.Position,
				PlayerID: playerID,
				Reason:   ViolationPlayerNotOwned,
			})
			continue
		}

		if !CanOccupy(p, slot) {
			violations = append(violations, Violation{
				SlotID:   slot.ID,
				SlotName: slot.Name,
				Position: slot.Position,
				PlayerID: playerID,
				Reason:   ViolationPositionMismatch,
			})
		}
	}

	return violations
}
