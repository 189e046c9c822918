package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/burrowlabs/bunnyhit-go/internal/api/request"
	"github.com/burrowlabs/bunnyhit-go/internal/api/response"
	"github.com/burrowlabs/bunnyhit-go/internal/model"
	"github.com/burrowlabs/bunnyhit-go/internal/services/leaderboard"
)

// maxTopLimit caps the standings page size
const maxTopLimit = 100

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboard *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: service,
	}
}

// Top handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := leaderboard.DefaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	entries, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// Submit handles POST /api/v1/scores
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.FID <= 0 {
		WriteError(w, NewInvalidRequestError("fid is required"))
		return
	}
	if req.Score < 0 {
		WriteError(w, NewInvalidRequestError("score must be non-negative"))
		return
	}

	player := model.Identity{
		FID:         model.FID(req.FID),
		Username:    req.Username,
		DisplayName: req.DisplayName,
	}

	entry, newBest, err := h.leaderboard.SubmitRound(r.Context(), player, req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	if entry == nil {
		// Zero-score round for a player with no prior entry
		response.JSON(w, http.StatusOK, response.SubmitScore{Accepted: req.Score > 0})
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitScore{
		Entry:    response.LeaderboardEntryFromModel(entry),
		NewBest:  newBest,
		Accepted: req.Score > 0,
	})
}
