package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

func (h *Handler) GetMarket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMarket")
	defer span.End()

	listings, err := h.marketService.GetMarket(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get market failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]marketListingDTO, 0, len(listings))
	for _, l := range listings {
		items = append(items, marketListingToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateListing")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createListingRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var closesAt *time.Time
	if strings.TrimSpace(req.ClosesAt) != "" {
		parsed, err := time.Parse(time.RFC3339, req.ClosesAt)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: closes_at must be RFC3339: %v", usecase.ErrInvalidInput, err))
			return
		}
		closesAt = &parsed
	}

	listing, err := h.marketService.CreateListing(ctx, usecase.CreateListingInput{
		SellerUserID: principal.UserID,
		PlayerID:     req.PlayerID,
		ClosesAt:     closesAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create listing failed", "user_id", principal.UserID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, listingToDTO(listing))
}

func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBid")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))

	var req placeBidRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.bidService.PlaceBid(ctx, usecase.PlaceBidInput{
		BidderUserID: principal.UserID,
		ListingID:    listingID,
		Amount:       req.Amount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bid failed", "user_id", principal.UserID, "listing_id", listingID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bidViewDTO{
		ListingID:      view.ListingID,
		PlayerID:       view.PlayerID,
		YourAmount:     view.YourAmount,
		PreviousAmount: view.PreviousAmount,
		HighestAmount:  view.HighestAmount,
		BidCount:       view.BidCount,
		PlacedAtUTC:    view.PlacedAt.UTC().Format(time.RFC3339),
	})
}

// ResolveListing settles an auction ahead of its deadline. Manual
// resolution is an admin action; the scheduled sweep uses the job route.
func (h *Handler) ResolveListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveListing")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	if !principal.IsAdmin() {
		writeError(ctx, w, fmt.Errorf("%w: resolving listings requires the admin role", usecase.ErrUnauthorized))
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	resolution, err := h.marketService.ResolveListing(ctx, listingID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve listing failed", "listing_id", listingID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolutionToDTO(resolution))
}

func (h *Handler) CancelListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelListing")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	listingID := strings.TrimSpace(r.PathValue("listingID"))
	if err := h.marketService.CancelListing(ctx, principal, listingID); err != nil {
		h.logger.WarnContext(ctx, "cancel listing failed", "user_id", principal.UserID, "listing_id", listingID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"listing_id": listingID, "status": string(market.ListingStatusCancelled)})
}

type createListingRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	ClosesAt string `json:"closes_at"`
}

type placeBidRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type listingDTO struct {
	ID           string `json:"id"`
	PlayerID     string `json:"player_id"`
	SellerTeamID string `json:"seller_team_id,omitempty"`
	Status       string `json:"status"`
	CreatedAtUTC string `json:"created_at_utc"`
	ClosesAtUTC  string `json:"closes_at_utc,omitempty"`
}

type marketListingDTO struct {
	ListingID     string `json:"listing_id"`
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name"`
	Position      string `json:"position"`
	MarketValue   int64  `json:"market_value"`
	SellerTeamID  string `json:"seller_team_id,omitempty"`
	HighestAmount int64  `json:"highest_amount"`
	BidCount      int    `json:"bid_count"`
	ClosesAtUTC   string `json:"closes_at_utc,omitempty"`
}

type bidViewDTO struct {
	ListingID      string `json:"listing_id"`
	PlayerID       string `json:"player_id"`
	YourAmount     int64  `json:"your_amount"`
	PreviousAmount int64  `json:"previous_amount,omitempty"`
	HighestAmount  int64  `json:"highest_amount"`
	BidCount       int    `json:"bid_count"`
	PlacedAtUTC    string `json:"placed_at_utc"`
}

type resolutionDTO struct {
	ListingID     string   `json:"listing_id"`
	PlayerID      string   `json:"player_id"`
	Outcome       string   `json:"outcome"`
	WinnerUserID  string   `json:"winner_user_id,omitempty"`
	WinnerTeamID  string   `json:"winner_team_id,omitempty"`
	SellerUserID  string   `json:"seller_user_id,omitempty"`
	Amount        int64    `json:"amount,omitempty"`
	Disqualified  []string `json:"disqualified,omitempty"`
	ClearedSlotID string   `json:"cleared_slot_id,omitempty"`
}

func listingToDTO(v market.Listing) listingDTO {
	dto := listingDTO{
		ID:           v.ID,
		PlayerID:     v.PlayerID,
		SellerTeamID: v.SellerTeamID,
		Status:       string(v.Status),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.ClosesAt != nil {
		dto.ClosesAtUTC = v.ClosesAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func marketListingToDTO(v usecase.ListingView) marketListingDTO {
	dto := marketListingDTO{
		ListingID:     v.ListingID,
		PlayerID:      v.PlayerID,
		PlayerName:    v.PlayerName,
		Position:      v.Position,
		MarketValue:   v.MarketValue,
		SellerTeamID:  v.SellerTeamID,
		HighestAmount: v.HighestAmount,
		BidCount:      v.BidCount,
	}
	if v.ClosesAt != nil {
		dto.ClosesAtUTC = v.ClosesAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func resolutionToDTO(v usecase.Resolution) resolutionDTO {
	return resolutionDTO{
		ListingID:     v.ListingID,
		PlayerID:      v.PlayerID,
		Outcome:       string(v.Outcome),
		WinnerUserID:  v.WinnerUserID,
		WinnerTeamID:  v.WinnerTeamID,
		SellerUserID:  v.SellerUserID,
		Amount:        v.Amount,
		Disqualified:  v.Disqualified,
		ClearedSlotID: v.ClearedSlotID,
	}
}
