package tower

import (
	"log/slog"
	"net/http"
	dto "tower_backend/internal/api/dto/tower"
	"tower_backend/internal/converter"
	"tower_backend/internal/middleware"
	"tower_backend/internal/service"
	"tower_backend/pkg/req"
	"tower_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv   service.TowerService
	Logger *slog.Logger
}

type Handler struct {
	serv   service.TowerService
	logger *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:   deps.Serv,
		logger: deps.Logger,
	}
}

// Advance - попытка подняться на следующий уровень. Ставка нужна только из idle
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestBody, err := req.Decode[dto.AdvanceRequest](r.Body)
	if err != nil {
		resp.WriteErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.serv.Advance(r.Context(), userID, converter.ToAdvanceRequest(requestBody))
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAdvanceResponse(res))
}

// Take - перенос части стека на баланс
func (h *Handler) Take(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestBody, err := req.Decode[dto.TakeRequest](r.Body)
	if err != nil {
		resp.WriteErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if requestBody.Amount == nil {
		resp.WriteErrorMessage(w, http.StatusBadRequest, "amount is required")
		return
	}

	res, err := h.serv.Take(r.Context(), userID, *requestBody.Amount)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTakeResponse(res))
}

func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := h.serv.Abandon(r.Context(), userID)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAbandonResponse(res))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	state, err := h.serv.State(r.Context(), userID)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(state))
}

// Stats - RTP по всем завершенным раундам
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}
