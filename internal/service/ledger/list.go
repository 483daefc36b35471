package ledger

import (
	"context"
	"tower_backend/internal/model"
)

// ListTransactions - последние транзакции пользователя, новые первыми
func (s *serv) ListTransactions(ctx context.Context, userID, limit int) ([]model.Transaction, error) {
	list, err := s.ledgerRepo.ListTransactions(ctx, userID, s.limit(limit))
	if err != nil {
		return nil, model.Persistence("list transactions", err)
	}
	return list, nil
}

// ListGameHistory - последние завершенные раунды пользователя, новые первыми
func (s *serv) ListGameHistory(ctx context.Context, userID, limit int) ([]model.GameHistory, error) {
	list, err := s.ledgerRepo.ListGameHistory(ctx, userID, s.limit(limit))
	if err != nil {
		return nil, model.Persistence("list game history", err)
	}
	return list, nil
}
