package middleware

import (
	"net/http"

	"github.com/eaglebank/registry/shared/utils"
	"github.com/gin-gonic/gin"
)

// PathID parses the :id path parameter. On failure it writes a 400 and
// returns false.
func PathID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// RequiredQuery returns the query parameter key. An absent key writes a 400;
// a present but empty value is returned as is.
func RequiredQuery(c *gin.Context, key string) (string, bool) {
	value, ok := c.GetQuery(key)
	if !ok {
		RespondWithError(c, http.StatusBadRequest, "Query parameter '"+key+"' is required")
		return "", false
	}
	return value, true
}

// BindJSON decodes the body into req and runs struct validation, writing the
// 400 response itself when either step fails.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if validationErrors := ValidateRequest(req); validationErrors != nil {
		RespondWithValidationError(c, validationErrors)
		return false
	}
	return true
}

// RespondWithInternalError attaches err to the context for the access log
// and writes a 500 with a generic message.
func RespondWithInternalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	RespondWithError(c, http.StatusInternalServerError, message)
}
