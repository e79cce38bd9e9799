package server

import (
	"context"
	"net/http"
	"time"

	authdomain "github.com/foodledger/foodledger/internal/auth/domain"
	"github.com/foodledger/foodledger/internal/config"
	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
	memodomain "github.com/foodledger/foodledger/internal/memo/domain"
	reportdomain "github.com/foodledger/foodledger/internal/report/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log.Named("http")))
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware(!cfg.IsProduction()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB

	authSvc       authdomain.Service
	ingredientSvc ingredientdomain.Service
	dishSvc       dishdomain.Service
	foodSvc       fooddomain.Service
	memoSvc       memodomain.Service
	reportSvc     reportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	AuthSvc       authdomain.Service
	IngredientSvc ingredientdomain.Service
	DishSvc       dishdomain.Service
	FoodSvc       fooddomain.Service
	MemoSvc       memodomain.Service
	ReportSvc     reportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		authSvc:       p.AuthSvc,
		ingredientSvc: p.IngredientSvc,
		dishSvc:       p.DishSvc,
		foodSvc:       p.FoodSvc,
		memoSvc:       p.MemoSvc,
		reportSvc:     p.ReportSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Ingredients --------
	api.GET("/ingredients", s.ListIngredients)
	api.GET("/ingredients/:id", s.GetIngredientByID)
	api.POST("/ingredients", s.AuthRequired(), s.CreateIngredient)
	api.PUT("/ingredients/:id", s.AuthRequired(), s.UpdateIngredient)
	api.DELETE("/ingredients/:id", s.AuthRequired(), s.DeleteIngredient)

	// -------- Dishes --------
	api.GET("/dishes", s.ListDishes)
	api.GET("/dishes/:id", s.GetDishByID)
	api.POST("/dishes", s.AuthRequired(), s.CreateDish)
	api.PUT("/dishes/:id", s.AuthRequired(), s.UpdateDish)
	api.DELETE("/dishes/:id", s.AuthRequired(), s.DeleteDish)

	// -------- Completed foods --------
	api.GET("/completed-foods", s.ListCompletedFoods)
	api.GET("/completed-foods/:id", s.GetCompletedFoodByID)
	api.POST("/completed-foods", s.AuthRequired(), s.CreateCompletedFood)
	api.PUT("/completed-foods/:id", s.AuthRequired(), s.UpdateCompletedFood)
	api.DELETE("/completed-foods/:id", s.AuthRequired(), s.DeleteCompletedFood)

	// -------- Memos --------
	api.GET("/memos", s.ListMemos)
	api.GET("/memos/:id", s.GetMemoByID)
	api.POST("/memos", s.AuthRequired(), s.CreateMemo)
	api.PUT("/memos/:id", s.AuthRequired(), s.UpdateMemo)
	api.DELETE("/memos/:id", s.AuthRequired(), s.DeleteMemo)

	// -------- Reports --------
	reports := api.Group("/reports")
	reports.GET("/ingredients/genres", s.GetIngredientGenreStats)
	reports.GET("/dishes/genres", s.GetDishGenreStats)
	reports.GET("/ingredients/popularity", s.GetIngredientPopularity)
	reports.GET("/completed-foods/profitability", s.GetProfitabilityDistribution)
	reports.GET("/trends", s.GetTrends)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// Module wires the HTTP surface: engine, metrics, route registration and the
// listener lifecycle.
var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) {}),
	fx.Invoke(run),
)
