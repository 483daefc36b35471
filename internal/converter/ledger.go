package converter

import (
	dto "tower_backend/internal/api/dto/ledger"
	"tower_backend/internal/model"
)

func ToTransactionsResponse(list []model.Transaction) dto.TransactionsResponse {
	res := dto.TransactionsResponse{Transactions: make([]dto.Transaction, 0, len(list))}
	for _, t := range list {
		res.Transactions = append(res.Transactions, dto.Transaction{
			ID:           t.ID,
			Type:         string(t.Type),
			Amount:       t.Amount,
			BalanceAfter: t.BalanceAfter,
			CreatedAt:    t.CreatedAt,
		})
	}
	return res
}

func ToGameHistoryResponse(list []model.GameHistory) dto.GameHistoryResponse {
	res := dto.GameHistoryResponse{Games: make([]dto.Game, 0, len(list))}
	for _, h := range list {
		g := dto.Game{
			ID:        h.ID,
			RoundID:   h.RoundID,
			BetAmount: h.BetAmount,
			Level:     h.Level,
			Won:       h.Won,
			CreatedAt: h.CreatedAt,
		}
		if h.PrizeAmount.Valid {
			prize := h.PrizeAmount.Decimal
			g.PrizeAmount = &prize
		}
		res.Games = append(res.Games, g)
	}
	return res
}
