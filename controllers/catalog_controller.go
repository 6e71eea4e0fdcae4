package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroLucas003/virada-brewery-store/gateway"
)

// CatalogController is a thin pass-through to the backend catalog;
// the storefront holds no product state of its own.
type CatalogController struct {
	API *gateway.Client
}

func NewCatalogController(api *gateway.Client) *CatalogController {
	return &CatalogController{API: api}
}

// Products lists the public catalog.
func (cc *CatalogController) Products(c *gin.Context) {
	products, err := cc.API.PublicProducts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}
