package wallet

type PurchasePointsRequest struct {
	Amount              float64 `json:"amount" binding:"required,gt=0"`
	PaypalTransactionID string  `json:"paypal_transaction_id" binding:"required,min=5,max=100"`
}

type HistoryQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
