package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/artesania/feria-api/docs"
	v1 "github.com/artesania/feria-api/internal/api/handler/v1"
	"github.com/artesania/feria-api/internal/api/middleware"
	"github.com/artesania/feria-api/internal/config"
	"github.com/artesania/feria-api/internal/repository"
	"github.com/artesania/feria-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, store repository.Store) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	allocSvc := service.NewAllocationService(store)
	fairSvc := service.NewFairService(store)
	applicationSvc := service.NewApplicationService(store, allocSvc)
	authSvc := service.NewAuthService(store)
	userSvc := service.NewUserService(store)

	s.MountHandlers(
		v1.NewAuthHandler(s.Config.API, authSvc),
		v1.NewFairHandler(fairSvc),
		v1.NewArtisanHandler(allocSvc),
		v1.NewApplicationHandler(applicationSvc),
		v1.NewUserHandler(userSvc),
		v1.NewPublicHandler(fairSvc, allocSvc),
	)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	fairHandler *v1.FairHandler,
	artisanHandler *v1.ArtisanHandler,
	applicationHandler *v1.ApplicationHandler,
	userHandler *v1.UserHandler,
	publicHandler *v1.PublicHandler,
) {
	const basePath = "/api/v1"

	open := s.Router.Group(basePath)
	{
		open.POST("/auth/signup", authHandler.HandleSignup)
		open.POST("/auth/login", authHandler.HandleLogin)
		open.GET("/public/fairs", publicHandler.HandlePublicFairs)
		open.GET("/public/artisans", publicHandler.HandlePublicArtisans)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/fairs", fairHandler.HandleListFairs)
		authed.GET("/fairs/options", fairHandler.HandleCategoryOptions)
		authed.GET("/fairs/:fairID", fairHandler.HandleGetFair)
		authed.POST("/fairs", fairHandler.HandleCreateFair)
		authed.PUT("/fairs/:fairID", fairHandler.HandleUpdateFair)
		authed.DELETE("/fairs/:fairID", fairHandler.HandleDeleteFair)

		authed.GET("/artisans", artisanHandler.HandleListArtisans)
		authed.GET("/artisans/:artisanID", artisanHandler.HandleGetArtisan)
		authed.POST("/artisans", artisanHandler.HandleCreateArtisan)
		authed.PUT("/artisans/:artisanID", artisanHandler.HandleUpdateArtisan)
		authed.DELETE("/artisans/:artisanID", artisanHandler.HandleDeleteArtisan)

		authed.POST("/applications", applicationHandler.HandleSubmitApplication)
		authed.GET("/applications", applicationHandler.HandleListApplications)
		authed.POST("/applications/:applicationID/approve", applicationHandler.HandleApproveApplication)
		authed.POST("/applications/:applicationID/reject", applicationHandler.HandleRejectApplication)

		authed.GET("/users/me/favorites", userHandler.HandleListFavorites)
		authed.POST("/users/me/favorites/:fairID", userHandler.HandleToggleFavorite)
		authed.GET("/users/me/profile", userHandler.HandleGetProfile)
		authed.PUT("/users/me/profile", userHandler.HandleUpdateProfile)
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.PUT("/users/:userID", userHandler.HandleUpdateUser)
		authed.DELETE("/users/:userID", userHandler.HandleDeleteUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Feria API"
	docs.SwaggerInfo.Description = "Artisan fair registrations with per-category quotas."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
