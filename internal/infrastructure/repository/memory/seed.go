package memory

import (
	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/formation"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	"github.com/victorgomez09/fantasy-manager/internal/domain/team"
)

const (
	UserIDAlice = "user-alice"
	UserIDBruno = "user-bruno"

	TeamIDAlice = "team-alice-fc"
	TeamIDBruno = "team-bruno-cf"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDAlice, OwnerUserID: UserIDAlice, Name: "Alice FC", Short: "ALC"},
		{ID: TeamIDBruno, OwnerUserID: UserIDBruno, Name: "Bruno CF", Short: "BRN"},
	}
}

func SeedAccounts() []budget.Account {
	return []budget.Account{
		{UserID: UserIDAlice, Balance: budget.InitialBalance},
		{UserID: UserIDBruno, Balance: budget.InitialBalance},
	}
}

// SeedPlayers gives each demo team a playable core and leaves the rest
// as free agents for the market refresh to rotate in.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-gk-01", Name: "Iker Navas", ShirtNumber: 1, Position: player.PositionGoalkeeper, OwnerTeamID: TeamIDAlice, MarketValue: 4_500_000},
		{ID: "pl-def-01", Name: "Marcos Ayala", ShirtNumber: 4, Position: player.PositionDefender, OwnerTeamID: TeamIDAlice, MarketValue: 6_200_000},
		{ID: "pl-def-02", Name: "Jules Mendy", ShirtNumber: 3, Position: player.PositionDefender, OwnerTeamID: TeamIDAlice, MarketValue: 5_800_000},
		{ID: "pl-mid-01", Name: "Tomas Lemar", ShirtNumber: 8, Position: player.PositionMidfielder, OwnerTeamID: TeamIDAlice, MarketValue: 9_400_000},
		{ID: "pl-mid-02", Name: "Santi Paredes", ShirtNumber: 10, Position: player.PositionMidfielder, AlternativePositions: []player.Position{player.PositionForward}, OwnerTeamID: TeamIDAlice, MarketValue: 11_000_000},
		{ID: "pl-fwd-01", Name: "Dario Costa", ShirtNumber: 9, Position: player.PositionForward, OwnerTeamID: TeamIDAlice, MarketValue: 14_500_000},

		{ID: "pl-gk-02", Name: "Ugo Meret", ShirtNumber: 13, Position: player.PositionGoalkeeper, OwnerTeamID: TeamIDBruno, MarketValue: 3_900_000},
		{ID: "pl-def-03", Name: "Nico Estupinan", ShirtNumber: 2, Position: player.PositionDefender, AlternativePositions: []player.Position{player.PositionMidfielder}, OwnerTeamID: TeamIDBruno, MarketValue: 7_100_000},
		{ID: "pl-mid-03", Name: "Pablo Roque", ShirtNumber: 6, Position: player.PositionMidfielder, OwnerTeamID: TeamIDBruno, MarketValue: 8_300_000},
		{ID: "pl-fwd-02", Name: "Leo Bastoni", ShirtNumber: 11, Position: player.PositionForward, OwnerTeamID: TeamIDBruno, MarketValue: 12_700_000},

		{ID: "pl-free-01", Name: "Ivan Sorga", ShirtNumber: 25, Position: player.PositionGoalkeeper, MarketValue: 2_400_000},
		{ID: "pl-free-02", Name: "Raul Tapia", ShirtNumber: 16, Position: player.PositionDefender, MarketValue: 3_100_000},
		{ID: "pl-free-03", Name: "Mateo Brozek", ShirtNumber: 18, Position: player.PositionMidfielder, AlternativePositions: []player.Position{player.PositionDefender}, MarketValue: 4_800_000},
		{ID: "pl-free-04", Name: "Ante Livaja", ShirtNumber: 20, Position: player.PositionForward, MarketValue: 6_900_000},
	}
}

// SeedFormations is the built-in template catalog. Placements are pitch
// render offsets in percent, one pair for mobile and one for desktop.
func SeedFormations() []formation.Formation {
	return []formation.Formation{
		{
			ID:   "4-3-3",
			Name: "4-3-3",
			Slots: []formation.Slot{
				{ID: "gk", Name: "GK", Position: player.PositionGoalkeeper, Placement: placement(12, 25, 50, 50)},
				{ID: "cb1", Name: "CB", Position: player.PositionDefender, Placement: placement(32, 42, 36, 37)},
				{ID: "cb2", Name: "CB", Position: player.PositionDefender, Placement: placement(32, 42, 61, 63)},
				{ID: "rb", Name: "RB", Position: player.PositionDefender, Placement: placement(37, 50, 11, 22)},
				{ID: "lb", Name: "LB", Position: player.PositionDefender, Placement: placement(37, 50, 86, 78)},
				{ID: "cm1", Name: "CM", Position: player.PositionMidfielder, Placement: placement(58, 63, 23, 35)},
				{ID: "cm2", Name: "CM", Position: player.PositionMidfielder, Placement: placement(58, 63, 50, 50)},
				{ID: "cm3", Name: "CM", Position: player.PositionMidfielder, Placement: placement(58, 63, 77, 65)},
				{ID: "rw", Name: "RW", Position: player.PositionForward, Placement: placement(80, 82, 20, 30)},
				{ID: "lw", Name: "LW", Position: player.PositionForward, Placement: placement(80, 82, 80, 70)},
				{ID: "st", Name: "ST", Position: player.PositionForward, Placement: placement(86, 87, 50, 50)},
			},
		},
		{
			ID:   "4-4-2",
			Name: "4-4-2",
			Slots: []formation.Slot{
				{ID: "gk", Name: "GK", Position: player.PositionGoalkeeper, Placement: placement(12, 25, 50, 50)},
				{ID: "cb1", Name: "CB", Position: player.PositionDefender, Placement: placement(32, 42, 37, 37)},
				{ID: "cb2", Name: "CB", Position: player.PositionDefender, Placement: placement(32, 42, 63, 63)},
				{ID: "rb", Name: "RB", Position: player.PositionDefender, Placement: placement(37, 50, 15, 22)},
				{ID: "lb", Name: "LB", Position: player.PositionDefender, Placement: placement(37, 50, 85, 78)},
				{ID: "rm", Name: "RM", Position: player.PositionMidfielder, Placement: placement(65, 70, 15, 20)},
				{ID: "cm1", Name: "CM", Position: player.PositionMidfielder, Placement: placement(53, 63, 38, 40)},
				{ID: "cm2", Name: "CM", Position: player.PositionMidfielder, Placement: placement(53, 63, 62, 60)},
				{ID: "lm", Name: "LM", Position: player.PositionMidfielder, Placement: placement(65, 70, 85, 80)},
				{ID: "st1", Name: "ST", Position: player.PositionForward, Placement: placement(86, 87, 32, 42)},
				{ID: "st2", Name: "ST", Position: player.PositionForward, Placement: placement(86, 87, 68, 58)},
			},
		},
		{
			ID:   "3-5-2",
			Name: "3-5-2",
			Slots: []formation.Slot{
				{ID: "gk", Name: "GK", Position: player.PositionGoalkeeper, Placement: placement(12, 25, 50, 50)},
				{ID: "cb1", Name: "CB", Position: player.PositionDefender, Placement: placement(32, 42, 20, 30)},
				{ID: "cb2", Name: "CB", Position: player.PositionDefender, Placement: placement(32, 42, 50, 50)},
				{ID: "cb3", Name: "CB", Position: player.PositionDefender, Placement: placement(32, 42, 80, 70)},
				{ID: "rm", Name: "RM", Position: player.PositionMidfielder, Placement: placement(70, 68, 15, 20)},
				{ID: "cdm1", Name: "CDM", Position: player.PositionMidfielder, Placement: placement(50, 60, 25, 35)},
				{ID: "cam", Name: "CAM", Position: player.PositionMidfielder, Placement: placement(70, 70, 50, 50)},
				{ID: "cdm2", Name: "CDM", Position: player.PositionMidfielder, Placement: placement(50, 60, 75, 65)},
				{ID: "lm", Name: "LM", Position: player.PositionMidfielder, Placement: placement(70, 68, 85, 80)},
				{ID: "st1", Name: "ST", Position: player.PositionForward, Placement: placement(90, 87, 32, 42)},
				{ID: "st2", Name: "ST", Position: player.PositionForward, Placement: placement(90, 87, 68, 58)},
			},
		},
	}
}

// DefaultSeed is the dataset the API boots with when no database is
// configured.
func DefaultSeed() Seed {
	return Seed{
		Players:  SeedPlayers(),
		Teams:    SeedTeams(),
		Accounts: SeedAccounts(),
	}
}

func placement(bottomMobile, bottomDesktop, rightMobile, rightDesktop int) formation.Placement {
	return formation.Placement{
		Bottom: formation.Offsets{Mobile: bottomMobile, Desktop: bottomDesktop},
		Right:  formation.Offsets{Mobile: rightMobile, Desktop: rightDesktop},
	}
}
