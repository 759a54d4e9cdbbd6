package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/market", handler.GetMarket)
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedMarketRoutes(mux, handler, verifier)
	registerAuthorizedSquadRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/market-sweep", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMarketSweepJob)))
	mux.Handle("POST /v1/internal/jobs/market-refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMarketRefreshJob)))
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/team", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("GET /v1/budget", RequireAuth(verifier, http.HandlerFunc(handler.GetBudget)))
}

func registerAuthorizedMarketRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/market/listings", RequireAuth(verifier, http.HandlerFunc(handler.CreateListing)))
	mux.Handle("DELETE /v1/market/listings/{listingID}", RequireAuth(verifier, http.HandlerFunc(handler.CancelListing)))
	mux.Handle("POST /v1/market/listings/{listingID}/bids", RequireAuth(verifier, http.HandlerFunc(handler.PlaceBid)))
	mux.Handle("POST /v1/market/listings/{listingID}/resolve", RequireAuth(verifier, http.HandlerFunc(handler.ResolveListing)))
}

func registerAuthorizedSquadRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/squad", RequireAuth(verifier, http.HandlerFunc(handler.GetSquad)))
	mux.Handle("PUT /v1/squad/formation", RequireAuth(verifier, http.HandlerFunc(handler.SetFormation)))
	mux.Handle("PUT /v1/squad/slots/{slotID}", RequireAuth(verifier, http.HandlerFunc(handler.AssignPlayer)))
	mux.Handle("DELETE /v1/squad/slots/{slotID}", RequireAuth(verifier, http.HandlerFunc(handler.ClearSlot)))
	mux.Handle("GET /v1/squad/validate", RequireAuth(verifier, http.HandlerFunc(handler.ValidateSquad)))
}
