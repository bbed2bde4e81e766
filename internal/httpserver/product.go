package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xDonalx/BuildStore/internal/assets"
	"github.com/xDonalx/BuildStore/internal/domain"
	catalogsvc "github.com/xDonalx/BuildStore/internal/service/catalog"
)

type productView struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Image       string
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       domain.FormatCents(p.PriceCents),
		Image:       p.Image,
	}
}

func (h *handlers) products(c *gin.Context) {
	list, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.logger.Printf("products: list error=%v", err)
		c.String(http.StatusInternalServerError, "cannot load products")
		return
	}
	views := make([]productView, 0, len(list))
	for _, p := range list {
		views = append(views, toProductView(p))
	}
	h.render(c, http.StatusOK, "products.html", gin.H{"products": views})
}

func (h *handlers) productDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "product not found")
		return
	}
	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.String(http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("product detail: id=%d error=%v", id, err)
		c.String(http.StatusInternalServerError, "cannot load product")
		return
	}
	h.render(c, http.StatusOK, "product_detail.html", gin.H{"product": toProductView(*p)})
}

func (h *handlers) addProductForm(c *gin.Context) {
	h.render(c, http.StatusOK, "add_product.html", nil)
}

func (h *handlers) addProduct(c *gin.Context) {
	sess := currentSession(c)

	in := catalogsvc.CreateInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
	}

	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Printf("add product: open upload error=%v", err)
			sess.AddFlash("Could not read the uploaded image.")
			h.render(c, http.StatusOK, "add_product.html", nil)
			return
		}
		defer file.Close()
		in.Image = &catalogsvc.Upload{Filename: fileHeader.Filename, Reader: file}
	}

	_, err = h.catalog.Create(c.Request.Context(), in)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/products")
	case errors.Is(err, catalogsvc.ErrMissingImage):
		sess.AddFlash("Choose an image for the product.")
		h.render(c, http.StatusOK, "add_product.html", nil)
	case errors.Is(err, catalogsvc.ErrMissingFields):
		sess.AddFlash("Name and description are required.")
		h.render(c, http.StatusOK, "add_product.html", nil)
	case errors.Is(err, domain.ErrInvalidPrice):
		sess.AddFlash("Enter a valid non-negative price.")
		h.render(c, http.StatusOK, "add_product.html", nil)
	case errors.Is(err, assets.ErrUnsupportedType), errors.Is(err, assets.ErrEmptyFilename):
		sess.AddFlash("The uploaded file must be an image.")
		h.render(c, http.StatusOK, "add_product.html", nil)
	default:
		h.logger.Printf("add product: error=%v", err)
		sess.AddFlash("Could not save the product, please try again.")
		h.render(c, http.StatusOK, "add_product.html", nil)
	}
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "product not found")
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.String(http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("delete product: id=%d error=%v", id, err)
		c.String(http.StatusInternalServerError, "cannot delete product")
		return
	}
	c.Redirect(http.StatusFound, "/products")
}
