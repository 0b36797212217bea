package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Juliban27/DiningThrough/docs"
	"github.com/Juliban27/DiningThrough/internal/auth"
	"github.com/Juliban27/DiningThrough/internal/queue"
	"github.com/Juliban27/DiningThrough/internal/ratelimiter"
	"github.com/Juliban27/DiningThrough/internal/repo"
	"github.com/Juliban27/DiningThrough/internal/service"
	"github.com/Juliban27/DiningThrough/internal/store/mongo"
	"github.com/Juliban27/DiningThrough/internal/store/redis"
	"github.com/Juliban27/DiningThrough/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config             config
	logger             *zap.SugaredLogger
	rateLimiter        ratelimiter.Limiter
	storage            *mongo.Storage
	cartStore          *redis.CartStore
	broker             queue.Broker
	authenticator      *auth.Authenticator
	productRepo        repo.ProductRepository
	orderRepo          repo.OrderRepository
	billRepo           repo.BillRepository
	restaurantRepo     repo.RestaurantRepository
	userRepo           repo.UserRepository
	cartService        *service.CartService
	checkoutService    *service.CheckoutService
	orderService       *service.OrderService
	ratingService      *service.RatingService
	authService        *service.AuthService
	orderStatusWorker  *worker.OrderStatusWorker
	orderCreatedWorker *worker.OrderCreatedWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	redis       redisConfig
	rabbitMQ    rabbitMQConfig
	auth        authConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type redisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type authConfig struct {
	secret string
	issuer string
	expiry time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Post("/register", app.registerHandler)
		r.Post("/login", app.loginHandler)

		r.Get("/restaurants", app.listRestaurantsHandler)
		r.Get("/restaurants/{id}", app.getRestaurantHandler)

		r.Get("/products", app.listProductsHandler)
		r.Get("/products/{id}", app.getProductHandler)
		r.Get("/products/{id}/ratings", app.listRatingsHandler)
		r.Get("/products/{id}/ratings/average", app.getRatingAverageHandler)

		// authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Get("/cart", app.getCartHandler)
			r.Delete("/cart", app.clearCartHandler)
			r.Post("/cart/items", app.addCartItemHandler)
			r.Post("/cart/items/{product_id}/increment", app.incrementCartItemHandler)
			r.Post("/cart/items/{product_id}/decrement", app.decrementCartItemHandler)
			r.Delete("/cart/items/{product_id}", app.removeCartItemHandler)
			r.Put("/cart/restaurant", app.setCartRestaurantHandler)

			r.Post("/checkout", app.checkoutHandler)

			r.Get("/orders", app.listOrdersHandler)
			r.Get("/orders/{id}", app.getOrderHandler)

			r.Get("/bills", app.listBillsHandler)
			r.Get("/bills/{id}", app.getBillHandler)

			r.Post("/products/{id}/ratings", app.submitRatingHandler)

			// admin routes
			r.Group(func(r chi.Router) {
				r.Use(app.AdminOnlyMiddleware)

				r.Get("/admin", app.adminSummaryHandler)
				r.Get("/users", app.listUsersHandler)

				r.Post("/products", app.createProductHandler)
				r.Put("/products/{id}", app.updateProductHandler)
				r.Patch("/products/{id}", app.patchProductStockHandler)
				r.Delete("/products/{id}", app.deleteProductHandler)

				r.Post("/restaurants", app.createRestaurantHandler)
				r.Put("/restaurants/{id}", app.updateRestaurantHandler)
				r.Delete("/restaurants/{id}", app.deleteRestaurantHandler)

				r.Post("/orders", app.createOrderHandler)
				r.Put("/orders/{id}", app.updateOrderHandler)
				r.Delete("/orders/{id}", app.deleteOrderHandler)
				r.Get("/orders/{id}/audit", app.getOrderAuditHandler)

				r.Post("/bills", app.createBillHandler)
			})
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "DiningThrough"
	docs.SwaggerInfo.Description = "API for the campus food-ordering platform"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.orderStatusWorker != nil {
		if err := app.orderStatusWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order status worker: %w", err)
		}
	}
	if app.orderCreatedWorker != nil {
		if err := app.orderCreatedWorker.Start(); err != nil {
			return fmt.Errorf("failed to start order created worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.orderStatusWorker != nil {
			app.orderStatusWorker.Stop()
		}
		if app.orderCreatedWorker != nil {
			app.orderCreatedWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.cartStore != nil {
			if err := app.cartStore.Close(); err != nil {
				app.logger.Errorw("error closing Redis", "error", err)
			} else {
				app.logger.Info("Redis connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
