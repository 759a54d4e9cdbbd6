package market

import (
	"context"
	"time"
)

// Repository exposes listing and bid persistence. Implementations used
// inside a unit of work must make GetListingForUpdate block concurrent
// resolutions of the same listing until the transaction ends.
type Repository interface {
	GetListing(ctx context.Context, listingID string) (Listing, bool, error)
	GetListingForUpdate(ctx context.Context, listingID string) (Listing, bool, error)
	GetOpenListingByPlayer(ctx context.Context, playerID string) (Listing, bool, error)
	ListOpenListings(ctx context.Context) ([]Listing, error)
	ListDueListings(ctx context.Context, now time.Time) ([]Listing, error)
	CreateListing(ctx context.Context, listing Listing) error
	UpdateListingStatus(ctx context.Context, listingID string, status ListingStatus) error

	ListBids(ctx context.Context, listingID string) ([]Bid, error)
	GetBid(ctx context.Context, listingID, bidderUserID string) (Bid, bool, error)
	UpsertBid(ctx context.Context, bid Bid) error
	DeleteBids(ctx context.Context, listingID string) error
}
