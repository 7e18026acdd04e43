package dto

// RegisterRequest HTTP注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50" example:"书虫"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UserResponse HTTP用户响应(不含密码)
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email" example:"user@example.com"`
	Nickname string `json:"nickname" example:"书虫"`
}

// UserInfo 登录响应中的用户信息
type UserInfo struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email" example:"user@example.com"`
	Nickname string `json:"nickname" example:"书虫"`
	IsStaff  bool   `json:"is_staff" example:"false"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in" example:"7200"` // Access Token过期时间(秒)
}
