package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts /api/authors and /api/books. write guards the
// mutating routes.
func RegisterRoutes(r gin.IRouter, authors *AuthorHandler, books *BookHandler, write gin.HandlerFunc) {
	a := r.Group("/api/authors")
	{
		a.GET("", authors.ListAuthors)
		a.GET("/search", authors.SearchAuthors)
		a.GET("/:id", authors.GetAuthor)
		a.POST("", write, authors.CreateAuthor)
		a.PUT("/:id", write, authors.UpdateAuthor)
		a.DELETE("/:id", write, authors.DeleteAuthor)
	}

	b := r.Group("/api/books")
	{
		b.GET("", books.ListBooks)
		b.GET("/search", books.SearchBooks)
		b.GET("/:id", books.GetBook)
		b.POST("", write, books.CreateBook)
		b.PUT("/:id", write, books.UpdateBook)
		b.DELETE("/:id", write, books.DeleteBook)
	}
}
