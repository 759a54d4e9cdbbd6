package memory

import (
	"context"
	"sort"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
)

// MarketRepository operates on the transaction's state snapshot; it is
// only handed out inside Store.Do.
type MarketRepository struct {
	st *state
}

func (r *MarketRepository) GetListing(_ context.Context, listingID string) (market.Listing, bool, error) {
	l, ok := r.st.listings[listingID]
	return l, ok, nil
}

func (r *MarketRepository) GetListingForUpdate(ctx context.Context, listingID string) (market.Listing, bool, error) {
	// Transactions are serial in memory mode; a plain read is already
	// exclusive.
	return r.GetListing(ctx, listingID)
}

func (r *MarketRepository) GetOpenListingByPlayer(_ context.Context, playerID string) (market.Listing, bool, error) {
	for _, l := range r.st.listings {
		if l.PlayerID == playerID && l.IsOpen() {
			return l, true, nil
		}
	}
	return market.Listing{}, false, nil
}

func (r *MarketRepository) ListOpenListings(_ context.Context) ([]market.Listing, error) {
	out := make([]market.Listing, 0, len(r.st.listings))
	for _, l := range r.st.listings {
		if l.IsOpen() {
			out = append(out, l)
		}
	}
	sortListings(out)
	return out, nil
}

func (r *MarketRepository) ListDueListings(_ context.Context, now time.Time) ([]market.Listing, error) {
	var out []market.Listing
	for _, l := range r.st.listings {
		if l.IsDue(now) {
			out = append(out, l)
		}
	}
	sortListings(out)
	return out, nil
}

func (r *MarketRepository) CreateListing(_ context.Context, listing market.Listing) error {
	r.st.listings[listing.ID] = listing
	return nil
}

func (r *MarketRepository) UpdateListingStatus(_ context.Context, listingID string, status market.ListingStatus) error {
	l, ok := r.st.listings[listingID]
	if !ok {
		return nil
	}
	l.Status = status
	r.st.listings[listingID] = l
	return nil
}

func (r *MarketRepository) ListBids(_ context.Context, listingID string) ([]market.Bid, error) {
	byBidder := r.st.bids[listingID]
	out := make([]market.Bid, 0, len(byBidder))
	for _, b := range byBidder {
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].PlacedAt.Before(out[j].PlacedAt)
		}
		return out[i].BidderUserID < out[j].BidderUserID
	})
	return out, nil
}

func (r *MarketRepository) GetBid(_ context.Context, listingID, bidderUserID string) (market.Bid, bool, error) {
	b, ok := r.st.bids[listingID][bidderUserID]
	return b, ok, nil
}

func (r *MarketRepository) UpsertBid(_ context.Context, bid market.Bid) error {
	if r.st.bids[bid.ListingID] == nil {
		r.st.bids[bid.ListingID] = make(map[string]market.Bid)
	}
	r.st.bids[bid.ListingID][bid.BidderUserID] = bid
	return nil
}

func (r *MarketRepository) DeleteBids(_ context.Context, listingID string) error {
	delete(r.st.bids, listingID)
	return nil
}

func sortListings(listings []market.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if !listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
			return listings[i].CreatedAt.Before(listings[j].CreatedAt)
		}
		return listings[i].ID < listings[j].ID
	})
}
