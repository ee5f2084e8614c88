package controller

import (
	"errors"
	"net/http"

	"github.com/ecocart/ecocart/web/service"
	"github.com/ecocart/ecocart/web/session"

	"github.com/gin-gonic/gin"
)

// AddItemForm is the add-to-cart request body.
type AddItemForm struct {
	ProductId string `json:"productId" form:"productId"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

// UpdateItemForm is the quantity-change request body.
type UpdateItemForm struct {
	Quantity int `json:"quantity" form:"quantity"`
}

// CartController manages the logged-in user's cart.
type CartController struct {
	BaseController

	cartService service.CartService
}

// NewCartController creates a CartController and registers its routes.
// All cart routes require a login.
func NewCartController(g *gin.RouterGroup) *CartController {
	a := &CartController{}
	a.initRouter(g)
	return a
}

func (a *CartController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/cart")
	g.Use(a.checkLogin)

	g.GET("", a.getCart)
	g.DELETE("", a.clearCart)
	g.POST("/items", a.addItem)
	g.PUT("/items/:id", a.updateItem)
	g.DELETE("/items/:id", a.removeItem)
	g.POST("/offset", a.offsetQuote)
}

func (a *CartController) userId(c *gin.Context) string {
	userId, _ := session.GetUserId(c)
	return userId
}

func (a *CartController) getCart(c *gin.Context) {
	cart, err := a.cartService.GetCart(a.userId(c))
	jsonObj(c, cart, err)
}

func (a *CartController) addItem(c *gin.Context) {
	var form AddItemForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	err := a.cartService.AddItem(a.userId(c), form.ProductId, form.Quantity)
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		pureJsonMsg(c, http.StatusNotFound, false, "Product not found")
	case errors.Is(err, service.ErrOutOfStock):
		pureJsonMsg(c, http.StatusBadRequest, false, "Product out of stock")
	default:
		jsonMsg(c, "Added to cart", err)
	}
}

func (a *CartController) updateItem(c *gin.Context) {
	var form UpdateItemForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	err := a.cartService.UpdateQuantity(a.userId(c), c.Param("id"), form.Quantity)
	if errors.Is(err, service.ErrProductNotInCart) {
		pureJsonMsg(c, http.StatusNotFound, false, "Item not in cart")
		return
	}
	jsonMsg(c, "Cart updated", err)
}

func (a *CartController) removeItem(c *gin.Context) {
	err := a.cartService.RemoveItem(a.userId(c), c.Param("id"))
	jsonMsg(c, "Removed from cart", err)
}

func (a *CartController) clearCart(c *gin.Context) {
	err := a.cartService.ClearCart(a.userId(c))
	jsonMsg(c, "Cart cleared", err)
}

func (a *CartController) offsetQuote(c *gin.Context) {
	quote, err := a.cartService.OffsetQuote(a.userId(c))
	jsonObj(c, quote, err)
}
