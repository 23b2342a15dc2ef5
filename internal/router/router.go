package router

import (
	"time"

	"gescom/internal/config"
	"gescom/internal/handler"
	"gescom/internal/infra"
	"gescom/internal/middleware"
	"gescom/internal/repository"
	"gescom/internal/scheduler"
	"gescom/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// report scheduler, left to the caller to start and stop.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *scheduler.Scheduler, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	utilisateurRepo := repository.NewUtilisateurRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	clientRepo := repository.NewClientRepository(db)
	venteRepo := repository.NewVenteRepository(db)
	mouvementRepo := repository.NewMouvementStockRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	livraisonRepo := repository.NewLivraisonRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(utilisateurRepo, cfg)
	stockSvc := service.NewStockService(produitRepo, mouvementRepo, rdb)
	venteSvc := service.NewVenteService(venteRepo, clientRepo, stockSvc, rdb)
	produitSvc := service.NewProduitService(produitRepo, mouvementRepo, venteRepo, reservationRepo, rdb)
	clientSvc := service.NewClientService(clientRepo, venteRepo)
	reservationSvc := service.NewReservationService(reservationRepo, produitRepo, clientRepo, venteSvc, rdb)
	livraisonSvc := service.NewLivraisonService(livraisonRepo, clientRepo)
	exportSvc := service.NewExportService(venteRepo, mouvementRepo, mailer, cfg)

	sched, err := scheduler.New(exportSvc, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produitsH := handler.NewProduitsHandler(produitSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	ventesH := handler.NewVentesHandler(venteSvc)
	stocksH := handler.NewStocksHandler(stockSvc)
	reservationsH := handler.NewReservationsHandler(reservationSvc)
	livraisonsH := handler.NewLivraisonsHandler(livraisonSvc)
	exportsH := handler.NewExportsHandler(exportSvc, sched)
	dashboardH := handler.NewDashboardHandler(venteSvc, stockSvc, reservationSvc, livraisonSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		produits := v1.Group("/produits")
		{
			produits.POST("", produitsH.Creer)
			produits.GET("", produitsH.Lister)
			produits.GET("/:id", produitsH.ObtenirParID)
			produits.PATCH("/:id", produitsH.Actualiser)
			produits.DELETE("/:id", produitsH.Supprimer)
			produits.POST("/:id/reapprovisionner", stocksH.Reapprovisionner)
		}

		clients := v1.Group("/clients")
		{
			clients.POST("", clientsH.Creer)
			clients.GET("", clientsH.Lister)
			clients.GET("/:id", clientsH.ObtenirParID)
			clients.PATCH("/:id", clientsH.Actualiser)
			clients.DELETE("/:id", clientsH.Supprimer)
			clients.GET("/:id/ventes", clientsH.Ventes)
		}

		ventes := v1.Group("/ventes")
		{
			ventes.POST("", ventesH.Creer)
			ventes.GET("", ventesH.Lister)
			ventes.GET("/statistiques", ventesH.Statistiques)
			ventes.GET("/statistiques/periode", ventesH.StatistiquesPeriode)
			ventes.GET("/:id", ventesH.ObtenirParID)
		}

		stocks := v1.Group("/stocks")
		{
			stocks.POST("/mouvements", stocksH.AjouterMouvement)
			stocks.GET("/mouvements", stocksH.ListerMouvements)
			stocks.GET("/bas", stocksH.StockBas)
			stocks.GET("/etat", stocksH.EtatStock)
		}

		reservations := v1.Group("/reservations")
		{
			reservations.POST("", reservationsH.Creer)
			reservations.GET("", reservationsH.Lister)
			reservations.GET("/expirees", reservationsH.Expirees)
			reservations.GET("/statistiques", reservationsH.Statistiques)
			reservations.GET("/:id", reservationsH.ObtenirParID)
			reservations.PATCH("/:id/statut", reservationsH.ModifierStatut)
			reservations.POST("/:id/confirmer", reservationsH.Confirmer)
		}

		livraisons := v1.Group("/livraisons")
		{
			livraisons.POST("", livraisonsH.Creer)
			livraisons.GET("", livraisonsH.Lister)
			livraisons.GET("/statistiques", livraisonsH.Statistiques)
			livraisons.GET("/:id", livraisonsH.ObtenirParID)
			livraisons.PATCH("/:id/statut", livraisonsH.ModifierStatut)
		}

		exports := v1.Group("/exports")
		{
			exports.GET("", exportsH.Lister)
			exports.POST("", exportsH.Exporter)
		}

		v1.GET("/dashboard", dashboardH.Obtenir)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, sched, nil
}
