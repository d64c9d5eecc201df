package main

import (
	"log"

	"github.com/eaglebank/registry/api-gateway/internal/proxy"
	"github.com/eaglebank/registry/shared/config"
	"github.com/eaglebank/registry/shared/server"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	router := server.NewRouter(cfg.GinMode)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "api-gateway"})
	})

	// Authentication is enforced by the services themselves; tokens pass
	// through untouched.
	proxy.RegisterRoutes(router, proxy.Targets{
		Bank:    cfg.BankServiceURL,
		Library: cfg.LibraryServiceURL,
		Auth:    cfg.AuthServiceURL,
	}, nil)

	server.Run("API Gateway", cfg.Port, router)
}
