package wallet

import (
	"context"
	"github.com/shopspring/decimal"
	"log/slog"
	"tower_backend/internal/events"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
	"tower_backend/internal/service"
)

type serv struct {
	txManager repository.TxManager
	userRepo  repository.UserRepository
	ledger    service.LedgerService
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(
	txManager repository.TxManager,
	userRepo repository.UserRepository,
	ledger service.LedgerService,
	publisher events.Publisher,
	logger *slog.Logger,
) *serv {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

// validateAmount - сумма положительная и не точнее копейки
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &model.InvalidAmountError{Msg: "amount must be positive"}
	}
	if !amount.Equal(amount.Round(2)) {
		return &model.InvalidAmountError{Msg: "amount must have at most two decimal places"}
	}
	return nil
}

// publish - событие уходит после коммита, сбой брокера не отменяет операцию
func (s *serv) publish(ctx context.Context, tx *model.Transaction) {
	if err := s.publisher.Publish(context.WithoutCancel(ctx), events.FromTransaction(tx)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cash movement",
			slog.Int("user_id", tx.UserID),
			slog.Int64("transaction_id", tx.ID),
			slog.String("error", err.Error()))
	}
}
