package stats_repo

import (
	"github.com/shopspring/decimal"
	"sync"
	"tower_backend/internal/model"
	"tower_backend/internal/repository"
)

const defaultWindowSize = 500

// roundResult - ставка и выплата одного завершенного раунда
type roundResult struct {
	bet    decimal.Decimal
	payout decimal.Decimal
}

// StateRepo - статистика башни в памяти процесса.
// Сбрасывается при рестарте, учет денег живет в леджере
type StateRepo struct {
	mtx         sync.RWMutex
	totalRounds int
	totalBet    decimal.Decimal
	totalPayout decimal.Decimal
	window      []roundResult
	windowSize  int
}

var _ repository.StatsRepository = (*StateRepo)(nil)

// NewStatsRepository Конструктор репозитория со скользящим окном windowSize раундов
func NewStatsRepository(windowSize int) *StateRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &StateRepo{
		window:     make([]roundResult, 0, windowSize),
		windowSize: windowSize,
	}
}

// UpdateState Обновление статистики после завершения раунда
func (r *StateRepo) UpdateState(bet, payout decimal.Decimal) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.totalRounds++
	r.totalBet = r.totalBet.Add(bet)
	r.totalPayout = r.totalPayout.Add(payout)

	// Добавляем раунд в окно и поддерживаем его размер
	r.window = append(r.window, roundResult{bet: bet, payout: payout})
	if len(r.window) > r.windowSize {
		r.window = r.window[1:]
	}
}

// TowerStats Получение текущей статистики. Возвращает копию
func (r *StateRepo) TowerStats() model.TowerStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var windowBet, windowPayout decimal.Decimal
	for _, res := range r.window {
		windowBet = windowBet.Add(res.bet)
		windowPayout = windowPayout.Add(res.payout)
	}

	return model.TowerStats{
		TotalRounds: r.totalRounds,
		TotalBet:    r.totalBet,
		TotalPayout: r.totalPayout,
		CurrentRTP:  rtp(r.totalBet, r.totalPayout),
		WindowRTP:   rtp(windowBet, windowPayout),
		WindowSize:  r.windowSize,
	}
}

func rtp(bet, payout decimal.Decimal) float64 {
	if !bet.IsPositive() {
		return 0
	}
	v, _ := payout.Div(bet).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return v
}
