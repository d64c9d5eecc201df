package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the bank API. write wraps every mutating route; pass
// middleware.OptionalAuth to enforce authentication when configured.
func RegisterRoutes(r gin.IRouter, customers *CustomerHandler, accounts *AccountHandler, write gin.HandlerFunc) {
	c := r.Group("/api/customers")
	{
		c.GET("", customers.ListCustomers)
		c.GET("/search", customers.SearchCustomers)
		c.GET("/:id", customers.GetCustomer)
		c.POST("", write, customers.CreateCustomer)
		c.PUT("/:id", write, customers.UpdateCustomer)
		c.DELETE("/:id", write, customers.DeleteCustomer)
	}

	a := r.Group("/api/accounts")
	{
		a.GET("", accounts.ListAccounts)
		a.GET("/search", accounts.SearchAccounts)
		a.GET("/:id", accounts.GetAccount)
		a.POST("", write, accounts.CreateAccount)
		a.PUT("/:id", write, accounts.UpdateAccount)
		a.DELETE("/:id", write, accounts.DeleteAccount)
	}
}
