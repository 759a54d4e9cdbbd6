package market

import (
	"fmt"
	"time"
)

// ListingStatus tracks the lifecycle of a market listing.
type ListingStatus string

const (
	ListingStatusOpen      ListingStatus = "open"
	ListingStatusResolved  ListingStatus = "resolved"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// Listing is one player offered on the transfer market. A player has at
// most one open listing at a time. SellerTeamID is empty for free agents
// placed by the scheduled market refresh.
type Listing struct {
	ID           string
	PlayerID     string
	SellerTeamID string
	Status       ListingStatus
	CreatedAt    time.Time
	ClosesAt     *time.Time
}

func (l Listing) IsOpen() bool {
	return l.Status == ListingStatusOpen
}

// IsDue reports whether a scheduled listing should be resolved now.
// Listings without ClosesAt are resolved manually.
func (l Listing) IsDue(now time.Time) bool {
	return l.Status == ListingStatusOpen && l.ClosesAt != nil && !l.ClosesAt.After(now)
}

func (l Listing) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("listing id is required")
	}
	if l.PlayerID == "" {
		return fmt.Errorf("listing player id is required")
	}
	switch l.Status {
	case ListingStatusOpen, ListingStatusResolved, ListingStatusCancelled:
	default:
		return fmt.Errorf("invalid listing status: %s", l.Status)
	}

	return nil
}

// Bid is one user's offer for a listed player. A bidder holds at most one
// bid per listing; re-bidding replaces amount and timestamp, it never
// creates a second row.
type Bid struct {
	ListingID    string
	BidderUserID string
	Amount       int64
	PlacedAt     time.Time
}

func (b Bid) Validate() error {
	if b.ListingID == "" {
		return fmt.Errorf("bid listing id is required")
	}
	if b.BidderUserID == "" {
		return fmt.Errorf("bid bidder user id is required")
	}
	if b.Amount <= 0 {
		return fmt.Errorf("bid amount must be greater than zero")
	}

	return nil
}
