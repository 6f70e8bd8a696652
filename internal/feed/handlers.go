package feed

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
	"github.com/yogeshsaini7172/flingzz-backend/internal/common/utils"
	"github.com/yogeshsaini7172/flingzz-backend/internal/profile"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetFeed(r.Context(), userID, req)
	if err != nil {
		h.respondFeedError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) PairingFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.PairingFeed(r.Context(), userID, req)
	if err != nil {
		h.respondFeedError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*FeedRequest, bool) {
	var req FeedRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return nil, false
		}
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	if req.AgeMin > 0 && req.AgeMax > 0 && req.AgeMin > req.AgeMax {
		utils.RespondWithError(w, http.StatusBadRequest, "age_min must not exceed age_max")
		return nil, false
	}

	return &req, true
}

func (h *Handler) respondFeedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCursor):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, profile.ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build feed")
	}
}
