package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
)

// CalculateQuote prices a labor intake form.
//
// POST /v1/quotes/calculate
func (s *Server) CalculateQuote(c *gin.Context) {
	var form quotedomain.QuoteFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		AbortWithError(c, quotedomain.ErrInvalidForm)
		return
	}

	quote, err := s.quoteSvc.Calculate(c.Request.Context(), form)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
