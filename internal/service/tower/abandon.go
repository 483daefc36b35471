package tower

import (
	"context"
	"tower_backend/internal/model"
)

// Abandon - игрок сдается, стек сгорает без зачисления
func (s *serv) Abandon(ctx context.Context, userID int) (*model.AbandonResult, error) {
	var (
		res  *model.AbandonResult
		done *finished
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		balance, err := s.wallet.Lock(ctx, userID)
		if err != nil {
			return err
		}
		round, err := s.activeRound(ctx, userID)
		if err != nil {
			return err
		}
		if round == nil {
			return &model.InvalidStateError{Msg: "no active round"}
		}

		if done, err = s.finish(ctx, round, model.OutcomeAbandoned, false, true); err != nil {
			return err
		}

		res = &model.AbandonResult{
			RoundID: round.ID,
			Level:   round.Level,
			Balance: balance,
			Outcome: model.OutcomeAbandoned,
		}
		return nil
	})
	if err != nil {
		return nil, model.Persistence("abandon", err)
	}

	s.afterCommit(ctx, done)

	return res, nil
}
