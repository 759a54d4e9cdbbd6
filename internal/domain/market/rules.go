package market

import "errors"

var (
	ErrListingClosed     = errors.New("listing is not open")
	ErrAlreadyResolved   = errors.New("listing already resolved")
	ErrBidTooLow         = errors.New("bid amount is too low")
	ErrSelfBid           = errors.New("cannot bid on a player your own team owns")
	ErrDuplicateListing  = errors.New("player already has an open listing")
	ErrListingNotExpired = errors.New("listing close time has not elapsed")
)

// HighestBid returns the current winning candidate: highest amount,
// ties broken by earliest PlacedAt so the first bidder to reach the top
// amount keeps it.
func HighestBid(bids []Bid) (Bid, bool) {
	var best Bid
	found := false
	for _, b := range bids {
		if !found {
			best = b
			found = true
			continue
		}
		if b.Amount > best.Amount {
			best = b
			continue
		}
		if b.Amount == best.Amount && b.PlacedAt.Before(best.PlacedAt) {
			best = b
		}
	}

	return best, found
}

// WithoutBidder filters out one bidder's bid, used when a winning bid is
// disqualified at resolution time and selection must fall through.
func WithoutBidder(bids []Bid, bidderUserID string) []Bid {
	remaining := make([]Bid, 0, len(bids))
	for _, b := range bids {
		if b.BidderUserID == bidderUserID {
			continue
		}
		remaining = append(remaining, b)
	}

	return remaining
}
