package tower

import (
	"context"
	"github.com/shopspring/decimal"
	"log/slog"
	"time"
	"tower_backend/internal/config"
	"tower_backend/internal/events"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
	"tower_backend/internal/rng"
	"tower_backend/internal/service"
)

// Deps - зависимости сервиса башни
type Deps struct {
	TxManager repository.TxManager
	Wallet    service.WalletService
	Ledger    service.LedgerService
	RoundRepo repository.RoundRepository
	StatsRepo repository.StatsRepository
	Generator rng.Generator
	Config    config.TowerConfig
	Publisher events.Publisher
	Logger    *slog.Logger
}

type serv struct {
	txManager repository.TxManager
	wallet    service.WalletService
	ledger    service.LedgerService
	roundRepo repository.RoundRepository
	statsRepo repository.StatsRepository
	generator rng.Generator
	cfg       config.TowerConfig
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(d Deps) *serv {
	return &serv{
		txManager: d.TxManager,
		wallet:    d.Wallet,
		ledger:    d.Ledger,
		roundRepo: d.RoundRepo,
		statsRepo: d.StatsRepo,
		generator: d.Generator,
		cfg:       d.Config,
		publisher: d.Publisher,
		logger:    d.Logger,
		now:       time.Now,
	}
}

// finished - итог завершенного раунда, обрабатывается после коммита
type finished struct {
	history *model.GameHistory
	outcome model.Outcome
	payout  decimal.Decimal
}

// finish - пишет историю и сбрасывает игрока в idle внутри транзакции.
// persisted=false для раунда, который не успели сохранить
func (s *serv) finish(ctx context.Context, r *model.Round, outcome model.Outcome, won, persisted bool) (*finished, error) {
	h := history(r, won)
	if err := s.ledger.RecordGameHistory(ctx, h); err != nil {
		return nil, err
	}

	if persisted {
		if err := s.roundRepo.DeleteRound(ctx, r.UserID, r.ID); err != nil {
			return nil, model.Persistence("delete round", err)
		}
	}

	return &finished{history: h, outcome: outcome, payout: r.Taken}, nil
}

// afterCommit - статистика и событие по завершенному раунду
func (s *serv) afterCommit(ctx context.Context, f *finished) {
	if f == nil {
		return
	}

	s.statsRepo.UpdateState(f.history.BetAmount, f.payout)

	s.logger.InfoContext(ctx, "round finished",
		slog.Int("user_id", f.history.UserID),
		slog.String("round_id", f.history.RoundID.String()),
		slog.String("outcome", string(f.outcome)),
		slog.Int("level", f.history.Level))

	if err := s.publisher.Publish(context.WithoutCancel(ctx), events.FromGameHistory(f.history, f.outcome)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish round result",
			slog.String("round_id", f.history.RoundID.String()),
			slog.String("error", err.Error()))
	}
}

// activeRound - текущий раунд пользователя или nil
func (s *serv) activeRound(ctx context.Context, userID int) (*model.Round, error) {
	r, err := s.roundRepo.GetRound(ctx, userID)
	if err != nil {
		return nil, model.Persistence("get round", err)
	}
	return r, nil
}
