package wallet

import (
	"context"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
)

// Lock - блокирует баланс пользователя до конца текущей транзакции и возвращает его
func (s *serv) Lock(ctx context.Context, userID int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.userRepo.LockBalance(ctx, userID)
		return err
	})
	if err != nil {
		return decimal.Zero, model.Persistence("lock balance", err)
	}
	return balance, nil
}

// Balance - текущий баланс без блокировки
func (s *serv) Balance(ctx context.Context, userID int) (decimal.Decimal, error) {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, model.Persistence("get balance", err)
	}
	return balance, nil
}

// Debit - списание внутри игры, журнал транзакций не пишется
func (s *serv) Debit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.debit(ctx, userID, amount)
		return err
	})
	if err != nil {
		return decimal.Zero, model.Persistence("debit", err)
	}
	return balance, nil
}

// Credit - зачисление внутри игры, журнал транзакций не пишется
func (s *serv) Credit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.credit(ctx, userID, amount)
		return err
	})
	if err != nil {
		return decimal.Zero, model.Persistence("credit", err)
	}
	return balance, nil
}

// debit и credit работают только внутри открытой транзакции
func (s *serv) debit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.userRepo.LockBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if balance.LessThan(amount) {
		return decimal.Zero, &model.InsufficientFundsError{Msg: "insufficient funds"}
	}

	balance = balance.Sub(amount)
	if err = s.userRepo.UpdateBalance(ctx, userID, balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *serv) credit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error) {
	balance, err := s.userRepo.LockBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	balance = balance.Add(amount)
	if err = s.userRepo.UpdateBalance(ctx, userID, balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
