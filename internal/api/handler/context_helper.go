package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fantaAstic/cs310-final/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString("user_id")
	if s == "" {
		response.Unauthorized(c, response.CodeTokenMissing, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	s := c.GetString("role")
	if s == "" {
		response.Unauthorized(c, response.CodeTokenMissing, "未认证")
		return "", false
	}
	return s, true
}

// tokenMeta 当前 access token 的 jti 与过期时间（注销时写入黑名单）
func tokenMeta(c *gin.Context) (string, time.Time) {
	jti := c.GetString("token_jti")
	exp := c.GetTime("token_exp")
	if exp.IsZero() {
		exp = time.Now().Add(time.Hour)
	}
	return jti, exp
}
