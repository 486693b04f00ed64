package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StaminaSetter records an actor's stamina. provider.StaminaTracker implements it.
type StaminaSetter interface {
	Set(actorID string, percent float64) error
}

// SetStaminaRequest sets an actor's stamina in [0,1]
type SetStaminaRequest struct {
	Percent *float64 `json:"percent" validate:"required,gte=0,lte=1"`
}

// HandleSetStamina handles PUT /actors/{actorID}/stamina
func HandleSetStamina(stamina StaminaSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID := chi.URLParam(r, "actorID")
		if actorID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingActorID)
			return
		}

		var req SetStaminaRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set stamina"); err != nil {
			return
		}

		if err := stamina.Set(actorID, *req.Percent); err != nil {
			respondServiceError(w, r, "Set stamina", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStaminaUpdated})
	}
}
