package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BUTnghiemtuc/MobiTechPro/internal/auth"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/domain"
	"github.com/BUTnghiemtuc/MobiTechPro/internal/service"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/health"
	"github.com/BUTnghiemtuc/MobiTechPro/pkg/middleware"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	Users    *service.UserService
	Products *service.ProductService
	Brands   *service.BrandService
	Tags     *service.TagService
	Reviews  *service.ReviewService
	Cart     *service.CartService
	Orders   *service.OrderService
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svcs Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("store"))
	r.Use(middleware.Tracing("store"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	authenticate := middleware.Auth(tokenValidator(jwtManager))
	staffOnly := middleware.RequireRole(domain.RoleStaff)

	authHandler := NewAuthHandler(svcs.Users, logger)
	userHandler := NewUserHandler(svcs.Users, logger)
	productHandler := NewProductHandler(svcs.Products, logger)
	brandHandler := NewBrandHandler(svcs.Brands, logger)
	tagHandler := NewTagHandler(svcs.Tags, logger)
	reviewHandler := NewReviewHandler(svcs.Reviews, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	orderHandler := NewOrderHandler(svcs.Orders, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(authenticate).Get("/me", authHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			// Catalog reads are safe to cache briefly at the edge.
			r.With(middleware.CacheControl(60)).Get("/", productHandler.ListProducts)
			r.With(middleware.CacheControl(60)).Get("/{id}", productHandler.GetProduct)
			r.Get("/{id}/reviews", reviewHandler.ListReviews)
			r.With(authenticate).Post("/{id}/reviews", reviewHandler.CreateReview)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, staffOnly)
				r.Post("/", productHandler.CreateProduct)
				r.Put("/{id}", productHandler.UpdateProduct)
				r.Delete("/{id}", productHandler.DeleteProduct)
				r.Post("/{id}/tags/{tagID}", tagHandler.AssignTag)
				r.Delete("/{id}/tags/{tagID}", tagHandler.UnassignTag)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.With(middleware.CacheControl(300)).Get("/", tagHandler.ListTags)
			r.With(middleware.CacheControl(300)).Get("/stats", tagHandler.TagStats)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, staffOnly)
				r.Post("/", tagHandler.CreateTag)
				r.Delete("/{id}", tagHandler.DeleteTag)
			})
		})

		r.Route("/brands", func(r chi.Router) {
			r.With(middleware.CacheControl(300)).Get("/", brandHandler.ListBrands)
			r.With(middleware.CacheControl(300)).Get("/{id}", brandHandler.GetBrand)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, staffOnly)
				r.Post("/", brandHandler.CreateBrand)
				r.Put("/{id}", brandHandler.UpdateBrand)
				r.Delete("/{id}", brandHandler.DeleteBrand)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Post("/items", cartHandler.AddCartItem)
				r.Delete("/items/{productID}", cartHandler.RemoveCartItem)
			})

			r.Post("/checkout", orderHandler.Checkout)
			r.Get("/orders", orderHandler.ListMyOrders)
			r.Get("/orders/{id}", orderHandler.GetOrder)

			r.Put("/users/me", userHandler.UpdateMe)
			r.Put("/users/me/password", userHandler.ChangePassword)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(authenticate, staffOnly)
			r.Get("/", orderHandler.ListAllOrders)
			r.Put("/{id}/status", orderHandler.UpdateOrderStatus)
			r.Delete("/{id}", orderHandler.DeleteOrder)
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Use(authenticate, staffOnly)
			r.Get("/", userHandler.ListUsers)
			r.Delete("/{id}", userHandler.DeleteUser)
		})
	})

	return r
}

// tokenValidator adapts the JWT manager to the auth middleware contract.
func tokenValidator(m *auth.JWTManager) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := m.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		}, nil
	}
}
