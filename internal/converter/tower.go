package converter

import (
	"github.com/shopspring/decimal"
	dto "tower_backend/internal/api/dto/tower"
	"tower_backend/internal/model"
)

func ToAdvanceRequest(req dto.AdvanceRequest) model.AdvanceRequest {
	return model.AdvanceRequest{
		Bet:     req.Bet,
		RoundID: req.RoundID,
	}
}

// status - состояние раунда после операции
func status(o model.Outcome) string {
	if o.Finished() {
		return string(model.RoundIdle)
	}
	return string(model.RoundClimbing)
}

func ToAdvanceResponse(res *model.AdvanceResult) dto.AdvanceResponse {
	return dto.AdvanceResponse{
		RoundID:      res.RoundID,
		Status:       status(res.Outcome),
		Outcome:      string(res.Outcome),
		Success:      res.Success,
		Multiplier:   res.Multiplier,
		Level:        res.Level,
		StackedPrize: res.StackedPrize,
		Balance:      res.Balance,
		Multipliers:  nonNil(res.Multipliers),
	}
}

func ToTakeResponse(res *model.TakeResult) dto.TakeResponse {
	return dto.TakeResponse{
		RoundID:      res.RoundID,
		Status:       status(res.Outcome),
		Outcome:      string(res.Outcome),
		Level:        res.Level,
		StackedPrize: res.StackedPrize,
		Balance:      res.Balance,
	}
}

func ToAbandonResponse(res *model.AbandonResult) dto.AbandonResponse {
	return dto.AbandonResponse{
		RoundID: res.RoundID,
		Status:  status(res.Outcome),
		Outcome: string(res.Outcome),
		Level:   res.Level,
		Balance: res.Balance,
	}
}

func ToStateResponse(s *model.RoundState) dto.StateResponse {
	return dto.StateResponse{
		Status:         string(s.Status),
		RoundID:        s.RoundID,
		Balance:        s.Balance,
		Bet:            s.Bet,
		Level:          s.Level,
		MaxLevels:      s.MaxLevels,
		StackedPrize:   s.StackedPrize,
		LastMultiplier: s.LastMultiplier,
		Multipliers:    nonNil(s.Multipliers),
	}
}

func ToStatsResponse(s model.TowerStats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalRounds: s.TotalRounds,
		TotalBet:    s.TotalBet,
		TotalPayout: s.TotalPayout,
		CurrentRTP:  s.CurrentRTP,
		WindowRTP:   s.WindowRTP,
		WindowSize:  s.WindowSize,
	}
}

func nonNil(list []decimal.Decimal) []decimal.Decimal {
	if list == nil {
		return []decimal.Decimal{}
	}
	return list
}
