package handler

import (
	"github.com/eaglebank/registry/shared/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, h *AuthHandler, secret []byte) {
	users := r.Group("/api/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/refresh", h.RefreshToken)
		users.GET("/me", middleware.AuthMiddleware(secret), h.Me)
	}
}
