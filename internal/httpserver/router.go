package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
	statsrepo "storefront/internal/repository/stats"
	authsvc "storefront/internal/service/auth"
	productsvc "storefront/internal/service/product"
)

type AuthService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Identify(ctx context.Context, token string) (*domain.User, error)
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	SetQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error)
	Remove(ctx context.Context, userID, lineID string) error
	Clear(ctx context.Context, userID string) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (*domain.Order, error)
}

type OrderService interface {
	List(ctx context.Context, user *domain.User) ([]domain.Order, error)
	Get(ctx context.Context, user *domain.User, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.OrderStatus) (int, error)
	BulkDelete(ctx context.Context, ids []string) (int, error)
}

type StatsService interface {
	Summarize(ctx context.Context, period string) (*statsrepo.Summary, error)
}

// Deps carries the services the handlers depend on.
type Deps struct {
	AuthSvc     AuthService
	ProductSvc  ProductService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	StatsSvc    StatsService
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))
	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))

	authed := router.Group("", authRequired(deps.AuthSvc))
	authed.GET("/me", meHandler)
	authed.GET("/cart", getCartHandler(deps.CartSvc))
	authed.POST("/cart/add", addToCartHandler(deps.CartSvc))
	authed.POST("/cart/remove", removeFromCartHandler(deps.CartSvc))
	authed.PUT("/cart/lines/:id", setCartLineHandler(deps.CartSvc))
	authed.DELETE("/cart/lines/:id", removeCartLineHandler(deps.CartSvc))
	authed.POST("/cart/clear", clearCartHandler(deps.CartSvc))
	authed.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
	authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))

	staff := authed.Group("", staffOnly())
	staff.POST("/products", createProductHandler(deps.ProductSvc))
	staff.PUT("/products/:id", updateProductHandler(deps.ProductSvc))
	staff.DELETE("/products/:id", deleteProductHandler(deps.ProductSvc))
	staff.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc))
	staff.PATCH("/orders", bulkUpdateOrdersHandler(deps.OrderSvc))
	staff.DELETE("/orders", bulkDeleteOrdersHandler(deps.OrderSvc))
	staff.GET("/dashboard/stats", statsHandler(deps.StatsSvc))

	return router, nil
}
