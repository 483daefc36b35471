package tower

import (
	"context"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
)

// Advance - попытка пройти следующий уровень.
// В idle принимает ставку и начинает раунд, в climbing ставка игнорируется
func (s *serv) Advance(ctx context.Context, userID int, req model.AdvanceRequest) (*model.AdvanceResult, error) {
	var (
		res  *model.AdvanceResult
		done *finished
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокируем баланс пользователя до конца транзакции
		balance, err := s.wallet.Lock(ctx, userID)
		if err != nil {
			return err
		}

		// 2. Загружаем активный раунд
		round, err := s.activeRound(ctx, userID)
		if err != nil {
			return err
		}
		if req.RoundID != nil && (round == nil || round.ID != *req.RoundID) {
			return &model.InvalidStateError{Msg: "round already finished"}
		}

		// 3. В idle списываем ставку и открываем раунд
		persisted := round != nil
		if round == nil {
			if req.Bet == nil {
				return &model.InvalidStateError{Msg: "bet is required to start a round"}
			}
			if err = s.validateBet(*req.Bet, balance); err != nil {
				return err
			}

			balance, err = s.wallet.Debit(ctx, userID, *req.Bet)
			if err != nil {
				return err
			}
			round = newRound(userID, *req.Bet, s.now().UTC())
		}

		// 4. Ровно один бросок на вызов
		draw := s.generator.Draw()
		outcome := climb(round, draw, s.cfg.MaxLevels())

		// 5. Применяем исход
		switch outcome {
		case model.OutcomeFell:
			done, err = s.finish(ctx, round, outcome, false, persisted)
		case model.OutcomeCompleted:
			balance, err = s.wallet.Credit(ctx, userID, complete(round))
			if err == nil {
				done, err = s.finish(ctx, round, outcome, true, persisted)
			}
		default:
			if err = s.roundRepo.SaveRound(ctx, round); err != nil {
				err = model.Persistence("save round", err)
			}
		}
		if err != nil {
			return err
		}

		res = &model.AdvanceResult{
			RoundID:      round.ID,
			Level:        round.Level,
			StackedPrize: round.StackedPrize,
			Multiplier:   draw.Multiplier,
			Success:      draw.Success,
			Balance:      balance,
			Outcome:      outcome,
			Multipliers:  round.Multipliers,
		}
		if outcome == model.OutcomeFell {
			res.StackedPrize = decimal.Zero
		}
		return nil
	})
	if err != nil {
		return nil, model.Persistence("advance", err)
	}

	s.afterCommit(ctx, done)

	return res, nil
}

// validateBet - ставка не меньше минимальной, не точнее копейки и в пределах баланса
func (s *serv) validateBet(bet, balance decimal.Decimal) error {
	if bet.LessThan(s.cfg.MinBet()) {
		return &model.InvalidAmountError{Msg: "bet is below the minimum of " + s.cfg.MinBet().String()}
	}
	if !bet.Equal(bet.Round(2)) {
		return &model.InvalidAmountError{Msg: "bet must have at most two decimal places"}
	}
	if bet.GreaterThan(balance) {
		return &model.InsufficientFundsError{Msg: "insufficient funds"}
	}
	return nil
}
