package scoring

import (
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

// ComputeQCS recomputes the caller's score breakdown
func (h *Handler) ComputeQCS(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	rec, err := h.service.ComputeQCS(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute score")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ComputeResponse{
		TotalScore: rec.Total,
		Components: Breakdown{
			Completeness: rec.Completeness,
			Affiliation:  rec.Affiliation,
			PsychDepth:   rec.PsychDepth,
			Behavioral:   rec.Behavioral,
			Total:        rec.Total,
		},
	})
}

// GetQCS returns the stored breakdown, computing on demand if missing
func (h *Handler) GetQCS(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	rec, err := h.service.GetQCS(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get score")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, rec)
}
