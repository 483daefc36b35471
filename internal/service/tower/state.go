package tower

import (
	"context"
	"github.com/shopspring/decimal"
	"slices"
	"tower_backend/internal/model"
)

// State - снимок для отрисовки башни, ничего не меняет.
// Баланс и раунд читаются под блокировкой пользователя, чтобы не разойтись с параллельным Advance
func (s *serv) State(ctx context.Context, userID int) (*model.RoundState, error) {
	var (
		balance decimal.Decimal
		round   *model.Round
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		if balance, err = s.wallet.Lock(ctx, userID); err != nil {
			return err
		}
		round, err = s.activeRound(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	state := &model.RoundState{
		Status:       model.RoundIdle,
		Balance:      balance,
		Bet:          decimal.Zero,
		MaxLevels:    s.cfg.MaxLevels(),
		StackedPrize: decimal.Zero,
		Multipliers:  []decimal.Decimal{},
	}
	if round == nil {
		return state, nil
	}

	id := round.ID
	state.Status = model.RoundClimbing
	state.RoundID = &id
	state.Bet = round.Bet
	state.Level = round.Level
	state.StackedPrize = round.StackedPrize
	state.Multipliers = slices.Clone(round.Multipliers)
	if m, ok := round.LastMultiplier(); ok {
		state.LastMultiplier = &m
	}

	return state, nil
}

// Stats - статистика по раундам, завершенным с запуска процесса
func (s *serv) Stats() model.TowerStats {
	return s.statsRepo.TowerStats()
}
