package ledger

import (
	"time"
	"tower_backend/internal/config"
	"tower_backend/internal/repository"
)

type serv struct {
	ledgerRepo repository.LedgerRepository
	pageSize   int
	now        func() time.Time
}

func NewService(ledgerRepo repository.LedgerRepository, cfg config.LedgerConfig) *serv {
	return &serv{
		ledgerRepo: ledgerRepo,
		pageSize:   cfg.PageSize(),
		now:        time.Now,
	}
}

// limit - размер страницы не больше настроенного
func (s *serv) limit(limit int) int {
	if limit <= 0 || limit > s.pageSize {
		return s.pageSize
	}
	return limit
}
