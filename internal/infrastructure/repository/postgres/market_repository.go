package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
)

type MarketRepository struct {
	tx *sqlx.Tx
}

const listingColumns = `id, player_id, COALESCE(seller_team_id, '') AS seller_team_id, status, created_at, closes_at`

func (r *MarketRepository) GetListing(ctx context.Context, listingID string) (market.Listing, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM market_listings WHERE id = $1`, listingColumns)

	var row listingRowModel
	if err := r.tx.GetContext(ctx, &row, query, listingID); err != nil {
		if isNotFound(err) {
			return market.Listing{}, false, nil
		}
		return market.Listing{}, false, fmt.Errorf("get listing: %w", err)
	}

	return row.toDomain(), true, nil
}

// GetListingForUpdate locks the listing row until the surrounding
// transaction ends, serializing concurrent resolutions.
func (r *MarketRepository) GetListingForUpdate(ctx context.Context, listingID string) (market.Listing, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM market_listings WHERE id = $1 FOR UPDATE`, listingColumns)

	var row listingRowModel
	if err := r.tx.GetContext(ctx, &row, query, listingID); err != nil {
		if isNotFound(err) {
			return market.Listing{}, false, nil
		}
		return market.Listing{}, false, fmt.Errorf("get listing for update: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MarketRepository) GetOpenListingByPlayer(ctx context.Context, playerID string) (market.Listing, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM market_listings WHERE player_id = $1 AND status = $2`, listingColumns)

	var row listingRowModel
	if err := r.tx.GetContext(ctx, &row, query, playerID, string(market.ListingStatusOpen)); err != nil {
		if isNotFound(err) {
			return market.Listing{}, false, nil
		}
		return market.Listing{}, false, fmt.Errorf("get open listing by player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MarketRepository) ListOpenListings(ctx context.Context) ([]market.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM market_listings WHERE status = $1 ORDER BY created_at, id`, listingColumns)

	var rows []listingRowModel
	if err := r.tx.SelectContext(ctx, &rows, query, string(market.ListingStatusOpen)); err != nil {
		return nil, fmt.Errorf("list open listings: %w", err)
	}

	listings := make([]market.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toDomain())
	}

	return listings, nil
}

func (r *MarketRepository) ListDueListings(ctx context.Context, now time.Time) ([]market.Listing, error) {
	query := fmt.Sprintf(`
SELECT %s FROM market_listings
WHERE status = $1
  AND closes_at IS NOT NULL
  AND closes_at <= $2
ORDER BY created_at, id`, listingColumns)

	var rows []listingRowModel
	if err := r.tx.SelectContext(ctx, &rows, query, string(market.ListingStatusOpen), now); err != nil {
		return nil, fmt.Errorf("list due listings: %w", err)
	}

	listings := make([]market.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, row.toDomain())
	}

	return listings, nil
}

func (r *MarketRepository) CreateListing(ctx context.Context, listing market.Listing) error {
	const query = `
INSERT INTO market_listings (id, player_id, seller_team_id, status, created_at, closes_at)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)`

	if _, err := r.tx.ExecContext(ctx, query,
		listing.ID,
		listing.PlayerID,
		listing.SellerTeamID,
		string(listing.Status),
		listing.CreatedAt,
		listing.ClosesAt,
	); err != nil {
		return fmt.Errorf("create listing: %w", err)
	}

	return nil
}

func (r *MarketRepository) UpdateListingStatus(ctx context.Context, listingID string, status market.ListingStatus) error {
	const query = `UPDATE market_listings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.tx.ExecContext(ctx, query, listingID, string(status))
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update listing status rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update listing status: listing %s not found", listingID)
	}

	return nil
}

func (r *MarketRepository) ListBids(ctx context.Context, listingID string) ([]market.Bid, error) {
	const query = `
SELECT listing_id, bidder_user_id, amount, placed_at
FROM market_bids
WHERE listing_id = $1
ORDER BY placed_at, bidder_user_id`

	var rows []bidRowModel
	if err := r.tx.SelectContext(ctx, &rows, query, listingID); err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	bids := make([]market.Bid, 0, len(rows))
	for _, row := range rows {
		bids = append(bids, row.toDomain())
	}

	return bids, nil
}

func (r *MarketRepository) GetBid(ctx context.Context, listingID, bidderUserID string) (market.Bid, bool, error) {
	const query = `
SELECT listing_id, bidder_user_id, amount, placed_at
FROM market_bids
WHERE listing_id = $1 AND bidder_user_id = $2`

	var row bidRowModel
	if err := r.tx.GetContext(ctx, &row, query, listingID, bidderUserID); err != nil {
		if isNotFound(err) {
			return market.Bid{}, false, nil
		}
		return market.Bid{}, false, fmt.Errorf("get bid: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MarketRepository) UpsertBid(ctx context.Context, bid market.Bid) error {
	const query = `
INSERT INTO market_bids (listing_id, bidder_user_id, amount, placed_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (listing_id, bidder_user_id)
DO UPDATE SET amount = EXCLUDED.amount, placed_at = EXCLUDED.placed_at`

	if _, err := r.tx.ExecContext(ctx, query, bid.ListingID, bid.BidderUserID, bid.Amount, bid.PlacedAt); err != nil {
		return fmt.Errorf("upsert bid: %w", err)
	}

	return nil
}

func (r *MarketRepository) DeleteBids(ctx context.Context, listingID string) error {
	const query = `DELETE FROM market_bids WHERE listing_id = $1`

	if _, err := r.tx.ExecContext(ctx, query, listingID); err != nil {
		return fmt.Errorf("delete bids: %w", err)
	}

	return nil
}
