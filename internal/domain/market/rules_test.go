package market

import (
	"testing"
	"time"
)

func TestHighestBid_TieGoesToEarliestBidder(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	bids := []Bid{
		{ListingID: "l1", BidderUserID: "user-b", Amount: 100, PlacedAt: t2},
		{ListingID: "l1", BidderUserID: "user-a", Amount: 100, PlacedAt: t1},
	}

	best, ok := HighestBid(bids)
	if !ok {
		t.Fatal("expected a highest bid")
	}
	if best.BidderUserID != "user-a" {
		t.Fatalf("expected earliest bidder to win the tie, got %s", best.BidderUserID)
	}
}

func TestHighestBid_PrefersLargerAmount(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	bids := []Bid{
		{ListingID: "l1", BidderUserID: "user-a", Amount: 100, PlacedAt: t1},
		{ListingID: "l1", BidderUserID: "user-b", Amount: 250, PlacedAt: t1.Add(time.Hour)},
		{ListingID: "l1", BidderUserID: "user-c", Amount: 180, PlacedAt: t1.Add(2 * time.Hour)},
	}

	best, ok := HighestBid(bids)
	if !ok {
		t.Fatal("expected a highest bid")
	}
	if best.BidderUserID != "user-b" || best.Amount != 250 {
		t.Fatalf("unexpected winner: %s amount=%d", best.BidderUserID, best.Amount)
	}
}

func TestHighestBid_Empty(t *testing.T) {
	if _, ok := HighestBid(nil); ok {
		t.Fatal("expected no highest bid for empty set")
	}
}

func TestWithoutBidder(t *testing.T) {
	bids := []Bid{
		{ListingID: "l1", BidderUserID: "user-a", Amount: 100},
		{ListingID: "l1", BidderUserID: "user-b", Amount: 90},
	}

	remaining := WithoutBidder(bids, "user-a")
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining bid, got %d", len(remaining))
	}
	if remaining[0].BidderUserID != "user-b" {
		t.Fatalf("unexpected remaining bidder: %s", remaining[0].BidderUserID)
	}
}

func TestListing_IsDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name    string
		listing Listing
		want    bool
	}{
		{name: "open and elapsed", listing: Listing{Status: ListingStatusOpen, ClosesAt: &past}, want: true},
		{name: "open but not elapsed", listing: Listing{Status: ListingStatusOpen, ClosesAt: &future}, want: false},
		{name: "manual listing never due", listing: Listing{Status: ListingStatusOpen}, want: false},
		{name: "resolved listing never due", listing: Listing{Status: ListingStatusResolved, ClosesAt: &past}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.listing.IsDue(now); got != tc.want {
				t.Fatalf("IsDue = %v, want %v", got, tc.want)
			}
		})
	}
}
