package matching

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
	"github.com/yogeshsaini7172/flingzz-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SwipeAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto SwipeActionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.RecordSwipe(r.Context(), userID, &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotSwipeSelf):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrTargetNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrSwipeLimitReached):
			utils.RespondWithError(w, http.StatusTooManyRequests, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record swipe")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

func (h *Handler) AckMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match id")
		return
	}

	if err := h.service.AckMatch(r.Context(), userID, matchID); err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to acknowledge match")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, AckResponse{MatchID: matchID, Acked: true})
}

func (h *Handler) GetSwipesRemaining(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	remaining, err := h.service.SwipesRemaining(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get remaining swipes")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"remaining": remaining})
}
