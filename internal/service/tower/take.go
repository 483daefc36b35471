package tower

import (
	"context"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
)

// Take - перенос части стека на баланс.
// Когда стек обнулился, раунд засчитывается выигранным и сбрасывается
func (s *serv) Take(ctx context.Context, userID int, amount decimal.Decimal) (*model.TakeResult, error) {
	var (
		res  *model.TakeResult
		done *finished
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокировка и текущий раунд
		if _, err := s.wallet.Lock(ctx, userID); err != nil {
			return err
		}
		round, err := s.activeRound(ctx, userID)
		if err != nil {
			return err
		}
		if round == nil {
			return &model.InvalidStateError{Msg: "no active round"}
		}

		// 2. Уменьшаем стек
		outcome, err := take(round, amount)
		if err != nil {
			return err
		}

		// 3. Зачисляем забранное, журнал транзакций не пишется
		balance, err := s.wallet.Credit(ctx, userID, amount)
		if err != nil {
			return err
		}

		// 4. Полный вывод завершает раунд
		if outcome == model.OutcomeCashedOut {
			done, err = s.finish(ctx, round, outcome, true, true)
		} else if err = s.roundRepo.SaveRound(ctx, round); err != nil {
			err = model.Persistence("save round", err)
		}
		if err != nil {
			return err
		}

		res = &model.TakeResult{
			RoundID:      round.ID,
			Level:        round.Level,
			StackedPrize: round.StackedPrize,
			Balance:      balance,
			Outcome:      outcome,
		}
		return nil
	})
	if err != nil {
		return nil, model.Persistence("take", err)
	}

	s.afterCommit(ctx, done)

	return res, nil
}
