package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required" example:"alice@example.com"` // 必須是單純的 user@domain 位址 (不接受 "bob" 或顯示名稱)，儲存前轉小寫
	Password string `json:"password" validate:"required" example:"Secret123!"`     // 最長 72 bytes
}
