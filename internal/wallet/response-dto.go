package wallet

type BalanceResponse struct {
	UserID         string `json:"user_id"`
	Points         int64  `json:"points"`
	ConversionRate int    `json:"conversion_rate"`
}

type HistoryResponse struct {
	Transactions []PointTransaction `json:"transactions"`
	Total        int64              `json:"total"`
	Page         int                `json:"page"`
	Limit        int                `json:"limit"`
	TotalPages   int                `json:"total_pages"`
}
