package team

import "fmt"

// Team is one user's club: it owns players and a budget account.
type Team struct {
	ID          string
	OwnerUserID string
	Name        string
	Short       string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.OwnerUserID == "" {
		return fmt.Errorf("team owner user id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
