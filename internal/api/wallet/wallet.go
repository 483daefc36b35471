package wallet

import (
	"context"
	"github.com/shopspring/decimal"
	"log/slog"
	"net/http"
	dto "tower_backend/internal/api/dto/wallet"
	"tower_backend/internal/middleware"
	"tower_backend/internal/model"
	"tower_backend/internal/service"
	"tower_backend/pkg/req"
	"tower_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv   service.WalletService
	Logger *slog.Logger
}

type Handler struct {
	serv   service.WalletService
	logger *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:   deps.Serv,
		logger: deps.Logger,
	}
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	balance, err := h.serv.Balance(r.Context(), userID)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}

func (h *Handler) CashIn(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, h.serv.CashIn)
}

func (h *Handler) CashOut(w http.ResponseWriter, r *http.Request) {
	h.cash(w, r, h.serv.CashOut)
}

func (h *Handler) cash(w http.ResponseWriter, r *http.Request, move func(context.Context, int, decimal.Decimal) (*model.Transaction, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestBody, err := req.Decode[dto.AmountRequest](r.Body)
	if err != nil {
		resp.WriteErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if requestBody.Amount == nil {
		resp.WriteErrorMessage(w, http.StatusBadRequest, "amount is required")
		return
	}

	tx, err := move(r.Context(), userID, *requestBody.Amount)
	if err != nil {
		resp.WriteError(w, r, h.logger, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.CashResponse{
		TransactionID: tx.ID,
		Balance:       tx.BalanceAfter,
	})
}
