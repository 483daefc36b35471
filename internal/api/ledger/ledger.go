package ledger

import (
	"log/slog"
	"net/http"
	"strconv"
	"tower_backend/internal/converter"
	"tower_backend/internal/middleware"
	"tower_backend/internal/service"
	"tower_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv   service.LedgerService
	Logger *slog.Logger
}

type Handler struct {
	serv   service.LedgerService
	logger *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:   deps.Serv,
		logger: deps.Logger,
	}
}

// Transactions - последние движения средств, новые первыми
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, limit, ok := h.listParams(w, r)
	if !ok {
		return
	}

	list, err := h.serv.ListTransactions(r.Context(), userID, limit)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTransactionsResponse(list))
}

// GameHistory - последние завершенные раунды, новые первыми
func (h *Handler) GameHistory(w http.ResponseWriter, r *http.Request) {
	userID, limit, ok := h.listParams(w, r)
	if !ok {
		return
	}

	list, err := h.serv.ListGameHistory(r.Context(), userID, limit)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGameHistoryResponse(list))
}

// listParams - пользователь из контекста и ?limit. 0 означает размер страницы по умолчанию
func (h *Handler) listParams(w http.ResponseWriter, r *http.Request) (userID, limit int, ok bool) {
	userID, ok = middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return 0, 0, false
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			resp.WriteErrorMessage(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return 0, 0, false
		}
		limit = n
	}

	return userID, limit, true
}
