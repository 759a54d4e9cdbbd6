package player

import "fmt"

// Position represents football position categories used in squad rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is an athlete that can be owned by a team and traded on the market.
type Player struct {
	ID                   string
	Name                 string
	ShirtNumber          int
	Position             Position
	AlternativePositions []Position
	OwnerTeamID          string // empty means free agent
	MarketValue          int64
	ImageURL             string
}

// CanPlay reports whether the player may occupy a slot of the given
// position type, either as primary position or listed alternative.
func (p Player) CanPlay(pos Position) bool {
	if p.Position == pos {
		return true
	}
	for _, alt := range p.AlternativePositions {
		if alt == pos {
			return true
		}
	}
	return false
}

func (p Player) IsFreeAgent() bool {
	return p.OwnerTeamID == ""
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	for _, alt := range p.AlternativePositions {
		if _, ok := AllPositions[alt]; !ok {
			return fmt.Errorf("invalid alternative position: %s", alt)
		}
	}
	if p.MarketValue <= 0 {
		return fmt.Errorf("player market value must be greater than zero")
	}

	return nil
}
