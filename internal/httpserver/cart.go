package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xDonalx/BuildStore/internal/domain"
	cartsvc "github.com/xDonalx/BuildStore/internal/service/cart"
)

func (h *handlers) addToCart(c *gin.Context) {
	sess := currentSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "product not found")
		return
	}

	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			sess.AddFlash("Enter a whole number for the quantity.")
			c.Redirect(http.StatusFound, "/cart")
			return
		}
	}

	line, err := h.cart.Add(c.Request.Context(), &sess.Data.Cart, id, quantity)
	switch {
	case err == nil:
		sess.MarkDirty()
		if line.Quantity > quantity {
			sess.AddFlash(fmt.Sprintf("Quantity of %q increased to %d.", line.Name, line.Quantity))
		} else {
			sess.AddFlash(fmt.Sprintf("%q added to the cart (x%d).", line.Name, quantity))
		}
		c.Redirect(http.StatusFound, "/cart")
	case errors.Is(err, domain.ErrNotFound):
		c.String(http.StatusNotFound, "product not found")
	case errors.Is(err, cartsvc.ErrInvalidQuantity):
		sess.AddFlash("Quantity must be at least 1.")
		c.Redirect(http.StatusFound, "/cart")
	default:
		h.logger.Printf("add to cart: product=%d error=%v", id, err)
		c.String(http.StatusInternalServerError, "cannot add to cart")
	}
}

func (h *handlers) viewCart(c *gin.Context) {
	sess := currentSession(c)
	view := h.cart.Checkout(sess.Data.Cart)
	h.render(c, http.StatusOK, "cart.html", gin.H{"cart": view})
}

func (h *handlers) clearCart(c *gin.Context) {
	sess := currentSession(c)
	h.cart.Clear(&sess.Data.Cart)
	sess.MarkDirty()
	sess.AddFlash("Cart cleared.")
	c.Redirect(http.StatusFound, "/cart")
}

func (h *handlers) checkout(c *gin.Context) {
	sess := currentSession(c)
	view := h.cart.Checkout(sess.Data.Cart)
	h.render(c, http.StatusOK, "checkout.html", gin.H{"cart": view})
}

func (h *handlers) confirmPurchase(c *gin.Context) {
	sess := currentSession(c)
	h.cart.ConfirmPurchase(&sess.Data.Cart)
	sess.MarkDirty()
	sess.AddFlash("Thank you for your purchase!")
	c.Redirect(http.StatusFound, "/products")
}
