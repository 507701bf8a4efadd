package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/esp-dakar/espeat-api/docs"
	v1 "github.com/esp-dakar/espeat-api/internal/api/handler/v1"
	"github.com/esp-dakar/espeat-api/internal/api/middleware"
	"github.com/esp-dakar/espeat-api/internal/config"
	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/gateway"
	"github.com/esp-dakar/espeat-api/internal/repository"
	"github.com/esp-dakar/espeat-api/internal/repository/dao"
	"github.com/esp-dakar/espeat-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	ticketHandler := s.initTicketHandler(db)
	restaurantHandler := s.initRestaurantHandler(db)
	propositionHandler := s.initPropositionHandler(db)
	scanHandler := s.initScanHandler(db)
	statsHandler := s.initStatsHandler(db)

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	verifyJWT := middleware.NewAuthenticator(conf.API.JWTSigningKey, userSvc).VerifyJWT()

	s.MountHandlers(verifyJWT, authHandler, userHandler, ticketHandler, restaurantHandler, propositionHandler, scanHandler, statsHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	ticketDAO := dao.NewTicketDAO(db)
	repo := repository.NewTicketRepository(ticketDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))

	payments := gateway.NewRouter(
		s.Config.Payment,
		gateway.NewStripeGateway(s.Config.Stripe),
		gateway.NewMobileMoneyGateway(),
	)

	svc := service.NewTicketService(repo, userRepo, payments)
	handler := v1.NewTicketHandler(svc)

	return handler
}

func (s *Server) initRestaurantHandler(db *gorm.DB) *v1.RestaurantHandler {
	restaurantDAO := dao.NewRestaurantDAO(db)
	menuDAO := dao.NewMenuDAO(db)
	repo := repository.NewRestaurantRepository(restaurantDAO, menuDAO)
	svc := service.NewRestaurantService(repo)
	handler := v1.NewRestaurantHandler(svc)

	return handler
}

func (s *Server) initPropositionHandler(db *gorm.DB) *v1.PropositionHandler {
	propositionDAO := dao.NewPropositionDAO(db)
	repo := repository.NewPropositionRepository(propositionDAO)
	restaurantRepo := repository.NewRestaurantRepository(dao.NewRestaurantDAO(db), dao.NewMenuDAO(db))
	svc := service.NewPropositionService(repo, restaurantRepo)
	handler := v1.NewPropositionHandler(svc)

	return handler
}

func (s *Server) initScanHandler(db *gorm.DB) *v1.ScanHandler {
	scanDAO := dao.NewScanDAO(db)
	repo := repository.NewScanRepository(scanDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewScanService(repo, userRepo)
	handler := v1.NewScanHandler(svc)

	return handler
}

func (s *Server) initStatsHandler(db *gorm.DB) *v1.StatsHandler {
	statsDAO := dao.NewStatsDAO(db)
	repo := repository.NewStatsRepository(statsDAO)
	cacheTTL := time.Duration(s.Config.Statistics.CacheTTLSeconds) * time.Second
	svc := service.NewStatsService(repo, cacheTTL)
	handler := v1.NewStatsHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	verifyJWT gin.HandlerFunc,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	ticketHandler *v1.TicketHandler,
	restaurantHandler *v1.RestaurantHandler,
	propositionHandler *v1.PropositionHandler,
	scanHandler *v1.ScanHandler,
	statsHandler *v1.StatsHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, verifyJWT)
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
		users.PUT("/users/:userID", userHandler.HandleUpdateUser)
	}

	admin := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleManager))
	{
		admin.GET("/users", userHandler.HandleListUsers)
		admin.POST("/users", userHandler.HandleCreateUser)
		admin.DELETE("/users/:userID", userHandler.HandleDeleteUser)
	}

	tickets := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleStudent))
	{
		tickets.POST("/tickets/purchases", ticketHandler.HandlePurchaseTickets)
		tickets.GET("/tickets/purchases", ticketHandler.HandleListPurchases)
		tickets.POST("/tickets/shares", ticketHandler.HandleShareTickets)
		tickets.GET("/tickets/shares", ticketHandler.HandleListShares)
		tickets.GET("/tickets/balance", ticketHandler.HandleGetBalance)
	}

	restaurants := s.Router.Group(basePath, verifyJWT)
	{
		restaurants.GET("/restaurants", restaurantHandler.HandleListRestaurants)
		restaurants.GET("/restaurants/:restaurantID/menus", restaurantHandler.HandleListMenus)
	}

	menus := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleRestaurateur))
	{
		menus.POST("/restaurants/:restaurantID/menus", restaurantHandler.HandleCreateMenu)
		menus.PUT("/restaurants/:restaurantID/menus/:menuID", restaurantHandler.HandleUpdateMenu)
		menus.DELETE("/restaurants/:restaurantID/menus/:menuID", restaurantHandler.HandleDeleteMenu)
	}

	propositions := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleStudent, domain.RoleRestaurateur))
	{
		propositions.GET("/propositions", propositionHandler.HandleListPropositions)
	}
	propose := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleStudent))
	{
		propose.POST("/propositions", propositionHandler.HandleSubmitProposition)
	}
	review := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleRestaurateur))
	{
		review.POST("/propositions/:propositionID/review", propositionHandler.HandleReviewProposition)
	}

	scans := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleAgent))
	{
		scans.POST("/scans", scanHandler.HandleScanTicket)
		scans.GET("/scans", scanHandler.HandleListScans)
	}

	statistics := s.Router.Group(basePath, verifyJWT, middleware.RequireRoles(domain.RoleManager))
	{
		statistics.GET("/statistics", statsHandler.HandleGetStatistics)
		statistics.GET("/statistics/monthly", statsHandler.HandleGetMonthlySales)
		statistics.GET("/statistics/export", statsHandler.HandleExportStatistics)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ESP'eat API"
	docs.SwaggerInfo.Description = "Meal ticket management for the ESP campus restaurants."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
