package round_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

const (
	table           = "tower_rounds"
	colUserID       = "user_id"
	colRoundID      = "round_id"
	colBet          = "bet"
	colLevel        = "level"
	colStackedPrize = "stacked_prize"
	colTaken        = "taken"
	colMultipliers  = "multipliers"
	colStartedAt    = "started_at"
)

type repo struct {
	db repository.QuerierGetter
}

func NewRoundRepository(db repository.QuerierGetter) repository.RoundRepository {
	return &repo{
		db: db,
	}
}

// GetRound - активный раунд пользователя. nil без ошибки, если игрок в idle
func (r *repo) GetRound(ctx context.Context, userID int) (*model.Round, error) {
	query := sq.Select(colRoundID, colUserID, colBet, colLevel, colStackedPrize, colTaken, colMultipliers, colStartedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		round model.Round
		raw   []byte
	)
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&round.ID, &round.UserID, &round.Bet, &round.Level, &round.StackedPrize, &round.Taken, &raw, &round.StartedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &round.Multipliers); err != nil {
			return nil, fmt.Errorf("failed to decode multipliers: %w", err)
		}
	}
	if round.Multipliers == nil {
		round.Multipliers = []decimal.Decimal{}
	}

	return &round, nil
}

// SaveRound - создает или перезаписывает активный раунд пользователя.
// У пользователя не больше одного раунда, конфликт по user_id обновляет строку
func (r *repo) SaveRound(ctx context.Context, round *model.Round) error {
	multipliers := round.Multipliers
	if multipliers == nil {
		multipliers = []decimal.Decimal{}
	}
	raw, err := json.Marshal(multipliers)
	if err != nil {
		return fmt.Errorf("failed to encode multipliers: %w", err)
	}

	query := sq.Insert(table).
		Columns(colUserID, colRoundID, colBet, colLevel, colStackedPrize, colTaken, colMultipliers, colStartedAt).
		Values(round.UserID, round.ID, round.Bet, round.Level, round.StackedPrize, round.Taken, string(raw), round.StartedAt).
		Suffix("ON CONFLICT (" + colUserID + ") DO UPDATE SET " +
			colRoundID + " = EXCLUDED." + colRoundID + ", " +
			colBet + " = EXCLUDED." + colBet + ", " +
			colLevel + " = EXCLUDED." + colLevel + ", " +
			colStackedPrize + " = EXCLUDED." + colStackedPrize + ", " +
			colTaken + " = EXCLUDED." + colTaken + ", " +
			colMultipliers + " = EXCLUDED." + colMultipliers + ", " +
			colStartedAt + " = EXCLUDED." + colStartedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

// DeleteRound - сбрасывает игрока в idle
func (r *repo) DeleteRound(ctx context.Context, userID int, roundID uuid.UUID) error {
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID, colRoundID: roundID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.InvalidStateError{Msg: "round already finished"}
	}

	return nil
}
