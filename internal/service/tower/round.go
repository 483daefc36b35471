package tower

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
	"tower_backend/internal/model"
)

// newRound - раунд сразу после принятой ставки, уровень 0 и пустой стек
func newRound(userID int, bet decimal.Decimal, now time.Time) *model.Round {
	return &model.Round{
		ID:           uuid.New(),
		UserID:       userID,
		Bet:          bet,
		StackedPrize: decimal.Zero,
		Taken:        decimal.Zero,
		Multipliers:  []decimal.Decimal{},
		StartedAt:    now,
	}
}

// compound - стек после пройденного уровня.
// Ставка прибавляется на каждом уровне, и множитель применяется дважды: к приросту и ко всей сумме
func compound(stacked, bet, multiplier decimal.Decimal) decimal.Decimal {
	return stacked.Add(bet.Mul(multiplier)).Mul(multiplier).Round(2)
}

// climb - применяет бросок к раунду. Множитель запоминается при любом исходе
func climb(r *model.Round, d model.Draw, maxLevels int) model.Outcome {
	r.Multipliers = append(r.Multipliers, d.Multiplier)

	if !d.Success {
		return model.OutcomeFell
	}

	r.StackedPrize = compound(r.StackedPrize, r.Bet, d.Multiplier)
	r.Level++

	if r.Level >= maxLevels {
		return model.OutcomeCompleted
	}
	return model.OutcomeClimbed
}

// complete - переносит весь стек в забранное, возвращает сумму к зачислению
func complete(r *model.Round) decimal.Decimal {
	amount := r.StackedPrize
	r.Taken = r.Taken.Add(amount)
	r.StackedPrize = decimal.Zero
	return amount
}

// take - забирает часть стека
func take(r *model.Round, amount decimal.Decimal) (model.Outcome, error) {
	if !amount.IsPositive() {
		return "", &model.InvalidAmountError{Msg: "amount must be positive"}
	}
	if !amount.Equal(amount.Round(2)) {
		return "", &model.InvalidAmountError{Msg: "amount must have at most two decimal places"}
	}
	if amount.GreaterThan(r.StackedPrize) {
		return "", &model.InvalidAmountError{Msg: "amount exceeds stacked prize"}
	}

	r.StackedPrize = r.StackedPrize.Sub(amount)
	r.Taken = r.Taken.Add(amount)

	if r.StackedPrize.IsZero() {
		return model.OutcomeCashedOut, nil
	}
	return model.OutcomeTaken, nil
}

// history - запись в журнал игр для завершенного раунда.
// Выигрыш - все, что игрок забрал за раунд. Проигранный раунд приза не имеет
func history(r *model.Round, won bool) *model.GameHistory {
	h := &model.GameHistory{
		UserID:    r.UserID,
		RoundID:   r.ID,
		BetAmount: r.Bet,
		Level:     r.Level,
		Won:       won,
	}
	if won {
		h.PrizeAmount = decimal.NewNullDecimal(r.Taken)
	}
	return h
}
