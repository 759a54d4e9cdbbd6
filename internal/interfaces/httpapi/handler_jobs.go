package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

// RunMarketSweepJob settles every listing whose deadline has passed.
// Invoked by the scheduler through the internal job token.
func (h *Handler) RunMarketSweepJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMarketSweepJob")
	defer span.End()

	var req marketSweepJobRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.sweepService.SweepDueListings(ctx, usecase.SweepInput{
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "market sweep job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunMarketRefreshJob rotates free agents onto the open market.
func (h *Handler) RunMarketRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunMarketRefreshJob")
	defer span.End()

	var req marketRefreshJobRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	var ttl time.Duration
	if req.ListingTTLHours > 0 {
		ttl = time.Duration(req.ListingTTLHours) * time.Hour
	}

	result, err := h.refreshService.RefreshMarket(ctx, usecase.RefreshInput{
		BatchSize:  req.BatchSize,
		ListingTTL: ttl,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "market refresh job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// decodeOptionalBody reads a job payload where an empty body means "all
// defaults". Malformed JSON is still rejected.
func decodeOptionalBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(target)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

type marketSweepJobRequest struct {
	MaxWorkers int  `json:"max_workers"`
	DryRun     bool `json:"dry_run"`
}

type marketRefreshJobRequest struct {
	BatchSize       int `json:"batch_size"`
	ListingTTLHours int `json:"listing_ttl_hours"`
	MaxWorkers      int `json:"max_workers"`
}
