package wallet

import (
	"context"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
)

// CashIn - пополнение баланса извне, пишет одну транзакцию в журнал
func (s *serv) CashIn(ctx context.Context, userID int, amount decimal.Decimal) (*model.Transaction, error) {
	return s.move(ctx, userID, amount, model.TransactionCashIn)
}

// CashOut - вывод с баланса. Активный раунд не затрагивается
func (s *serv) CashOut(ctx context.Context, userID int, amount decimal.Decimal) (*model.Transaction, error) {
	return s.move(ctx, userID, amount, model.TransactionCashOut)
}

func (s *serv) move(ctx context.Context, userID int, amount decimal.Decimal, typ model.TransactionType) (*model.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	tx := &model.Transaction{
		UserID: userID,
		Type:   typ,
		Amount: amount,
	}

	// Баланс и запись в журнале меняются в одной транзакции
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		// 1. Изменить баланс
		if typ == model.TransactionCashIn {
			tx.BalanceAfter, err = s.credit(ctx, userID, amount)
		} else {
			tx.BalanceAfter, err = s.debit(ctx, userID, amount)
		}
		if err != nil {
			return err
		}

		// 2. Записать транзакцию
		return s.ledger.RecordTransaction(ctx, tx)
	})
	if err != nil {
		return nil, model.Persistence(string(typ), err)
	}

	s.publish(ctx, tx)

	return tx, nil
}
