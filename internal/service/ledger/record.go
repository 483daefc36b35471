package ledger

import (
	"context"
	"fmt"
	"tower_backend/internal/model"
)

// RecordTransaction - добавляет запись о пополнении или выводе.
// Вызывается внутри транзакции кошелька, ошибка откатывает изменение баланса
func (s *serv) RecordTransaction(ctx context.Context, tx *model.Transaction) error {
	// 1. Валидация
	if !tx.Type.Valid() {
		return &model.InvalidAmountError{Msg: fmt.Sprintf("unknown transaction type %q", tx.Type)}
	}
	if !tx.Amount.IsPositive() {
		return &model.InvalidAmountError{Msg: "transaction amount must be positive"}
	}
	if tx.BalanceAfter.IsNegative() {
		return &model.InvalidAmountError{Msg: "balance after transaction is negative"}
	}

	// 2. Время записи ставит леджер
	tx.CreatedAt = s.now().UTC()

	// 3. Запись
	id, err := s.ledgerRepo.InsertTransaction(ctx, tx)
	if err != nil {
		return model.Persistence("record transaction", err)
	}
	tx.ID = id

	return nil
}

// RecordGameHistory - добавляет запись о завершенном раунде
func (s *serv) RecordGameHistory(ctx context.Context, h *model.GameHistory) error {
	// 1. Валидация
	if !h.BetAmount.IsPositive() {
		return &model.InvalidAmountError{Msg: "bet amount must be positive"}
	}
	if h.Level < 0 {
		return &model.InvalidAmountError{Msg: "level must not be negative"}
	}
	if h.Won && (!h.PrizeAmount.Valid || !h.PrizeAmount.Decimal.IsPositive()) {
		return &model.InvalidAmountError{Msg: "won round must have a positive prize"}
	}
	if !h.Won && h.PrizeAmount.Valid {
		return &model.InvalidAmountError{Msg: "lost round must not have a prize"}
	}

	h.CreatedAt = s.now().UTC()

	id, err := s.ledgerRepo.InsertGameHistory(ctx, h)
	if err != nil {
		return model.Persistence("record game history", err)
	}
	h.ID = id

	return nil
}
