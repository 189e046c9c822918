package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/burrowlabs/bunnyhit-go/internal/api/response"
	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/services/leaderboard"
)

// RewardsHandler handles reward ledger endpoints
type RewardsHandler struct {
	leaderboard *leaderboard.Service
}

// NewRewardsHandler creates a new rewards handler
func NewRewardsHandler(service *leaderboard.Service) *RewardsHandler {
	return &RewardsHandler{
		leaderboard: service,
	}
}

// Get handles GET /api/v1/rewards/{fid}
func (h *RewardsHandler) Get(w http.ResponseWriter, r *http.Request) {
	fid, err := fidFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	balance, err := h.leaderboard.Rewards(r.Context(), fid)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RewardBalanceFromModel(balance))
}

// Claim handles POST /api/v1/rewards/{fid}/claim
func (h *RewardsHandler) Claim(w http.ResponseWriter, r *http.Request) {
	fid, err := fidFromPath(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	claimed, err := h.leaderboard.ClaimRewards(r.Context(), fid)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClaimRewards{ClaimedPoints: claimed})
}

func fidFromPath(r *http.Request) (model.FID, error) {
	raw := mux.Vars(r)["fid"]
	fid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fid <= 0 {
		return 0, NewInvalidRequestError("fid must be a positive integer")
	}
	return model.FID(fid), nil
}
