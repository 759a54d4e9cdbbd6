package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	"github.com/victorgomez09/fantasy-manager/internal/domain/team"
)

type listingRowModel struct {
	ID           string     `db:"id"`
	PlayerID     string     `db:"player_id"`
	SellerTeamID string     `db:"seller_team_id"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	ClosesAt     *time.Time `db:"closes_at"`
}

func (m listingRowModel) toDomain() market.Listing {
	return market.Listing{
		ID:           m.ID,
		PlayerID:     m.PlayerID,
		SellerTeamID: m.SellerTeamID,
		Status:       market.ListingStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		ClosesAt:     m.ClosesAt,
	}
}

type bidRowModel struct {
	ListingID    string    `db:"listing_id"`
	BidderUserID string    `db:"bidder_user_id"`
	Amount       int64     `db:"amount"`
	PlacedAt     time.Time `db:"placed_at"`
}

func (m bidRowModel) toDomain() market.Bid {
	return market.Bid{
		ListingID:    m.ListingID,
		BidderUserID: m.BidderUserID,
		Amount:       m.Amount,
		PlacedAt:     m.PlacedAt,
	}
}

type accountRowModel struct {
	UserID    string    `db:"user_id"`
	Balance   int64     `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m accountRowModel) toDomain() budget.Account {
	return budget.Account{
		UserID:    m.UserID,
		Balance:   m.Balance,
		UpdatedAt: m.UpdatedAt,
	}
}

type playerRowModel struct {
	ID                   string         `db:"id"`
	Name                 string         `db:"name"`
	ShirtNumber          int            `db:"shirt_number"`
	Position             string         `db:"position"`
	AlternativePositions pq.StringArray `db:"alternative_positions"`
	OwnerTeamID          string         `db:"owner_team_id"`
	MarketValue          int64          `db:"market_value"`
	ImageURL             string         `db:"image_url"`
}

func (m playerRowModel) toDomain() player.Player {
	alts := make([]player.Position, 0, len(m.AlternativePositions))
	for _, alt := range m.AlternativePositions {
		alts = append(alts, player.Position(alt))
	}

	return player.Player{
		ID:                   m.ID,
		Name:                 m.Name,
		ShirtNumber:          m.ShirtNumber,
		Position:             player.Position(m.Position),
		AlternativePositions: alts,
		OwnerTeamID:          m.OwnerTeamID,
		MarketValue:          m.MarketValue,
		ImageURL:             m.ImageURL,
	}
}

type teamRowModel struct {
	ID          string `db:"id"`
	OwnerUserID string `db:"owner_user_id"`
	Name        string `db:"name"`
	Short       string `db:"short"`
}

func (m teamRowModel) toDomain() team.Team {
	return team.Team{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Short:       m.Short,
	}
}

type squadRowModel struct {
	TeamID      string    `db:"team_id"`
	FormationID string    `db:"formation_id"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type squadSlotRowModel struct {
	TeamID   string `db:"team_id"`
	SlotID   string `db:"slot_id"`
	PlayerID string `db:"player_id"`
}
