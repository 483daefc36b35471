package wallet

import "github.com/shopspring/decimal"

type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount"` // Сумма, строкой или числом
}

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type CashResponse struct {
	TransactionID int64           `json:"transaction_id"`
	Balance       decimal.Decimal `json:"balance"`
}
