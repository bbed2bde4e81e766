package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	cartsvc "github.com/xDonalx/BuildStore/internal/service/cart"
	catalogsvc "github.com/xDonalx/BuildStore/internal/service/catalog"
	identitysvc "github.com/xDonalx/BuildStore/internal/service/identity"
	profilesvc "github.com/xDonalx/BuildStore/internal/service/profile"
	"github.com/xDonalx/BuildStore/internal/session"
)

// Deps bundles the services and settings the router needs.
type Deps struct {
	IdentitySvc    *identitysvc.Service
	CatalogSvc     *catalogsvc.Service
	CartSvc        *cartsvc.Service
	ProfileSvc     *profilesvc.Service
	Sessions       *session.Manager
	TemplateGlob   string
	UploadDir      string
	AllowedOrigins []string
}

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = deps.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	router.Use(cors.New(corsCfg))

	if deps.TemplateGlob != "" {
		router.LoadHTMLGlob(deps.TemplateGlob)
	}
	if deps.UploadDir != "" {
		router.Static("/static/images", deps.UploadDir)
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{
		logger:   logger,
		identity: deps.IdentitySvc,
		catalog:  deps.CatalogSvc,
		cart:     deps.CartSvc,
		profile:  deps.ProfileSvc,
		sessions: deps.Sessions,
	}

	pages := router.Group("", h.withSession())
	pages.GET("/", h.home)
	pages.GET("/about", h.about)

	pages.GET("/login", h.loginForm)
	pages.POST("/login", h.login)
	pages.GET("/register", h.registerForm)
	pages.POST("/register", h.register)
	pages.GET("/logout", h.logout)

	pages.GET("/products", h.products)
	pages.GET("/product/:id", h.productDetail)
	pages.GET("/add_product", h.requireUser, h.addProductForm)
	pages.POST("/add_product", h.requireUser, h.addProduct)
	pages.GET("/delete_product/:id", h.deleteProduct)

	pages.GET("/add_to_cart/:id", h.addToCart)
	pages.GET("/cart", h.viewCart)
	pages.GET("/clear_cart", h.clearCart)
	pages.GET("/checkout", h.checkout)
	pages.GET("/confirm_purchase", h.confirmPurchase)

	pages.GET("/profile", h.requireUser, h.profileForm)
	pages.POST("/profile", h.requireUser, h.updateProfile)

	return router, nil
}
