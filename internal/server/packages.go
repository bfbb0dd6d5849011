package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	packagepricedomain "github.com/renolab/bathquote/internal/packageprice/domain"
	quotedomain "github.com/renolab/bathquote/internal/quote/domain"
)

type pricePackageRequest struct {
	PackageCode   string                           `json:"package_code" binding:"required"`
	Configuration packagepricedomain.Configuration `json:"configuration" binding:"required"`
}

// PricePackage totals the materials for a package in a bathroom
// configuration.
//
// POST /v1/packages/price
func (s *Server) PricePackage(c *gin.Context) {
	var req pricePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, quotedomain.ErrInvalidForm)
		return
	}

	result, err := s.packageSvc.Price(c.Request.Context(), req.PackageCode, req.Configuration)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
