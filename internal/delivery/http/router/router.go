// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"careerconnect/internal/delivery/http/middleware"
	"careerconnect/internal/delivery/http/router/handler"
	"careerconnect/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	CompanyHandler     *handler.CompanyHandler
	JobHandler         *handler.JobHandler
	ApplicationHandler *handler.ApplicationHandler
	ArticleHandler     *handler.ArticleHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	companyHandler     *handler.CompanyHandler
	jobHandler         *handler.JobHandler
	applicationHandler *handler.ApplicationHandler
	articleHandler     *handler.ArticleHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		userHandler:        params.UserHandler,
		companyHandler:     params.CompanyHandler,
		jobHandler:         params.JobHandler,
		applicationHandler: params.ApplicationHandler,
		articleHandler:     params.ArticleHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/verify-signup-2fa", r.authHandler.VerifySignupOTP)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Routes scoped to the authenticated caller
	meGroup := e.Group("/users/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.PUT("", r.userHandler.UpdateProfile)
		meGroup.PUT("/two-factor", r.authHandler.SetTwoFactor)
		meGroup.POST("/avatar", r.userHandler.UploadAvatar)
		meGroup.POST("/resume", r.userHandler.UploadResume)
		meGroup.GET("/join-request", r.companyHandler.GetMyJoinRequest)
		meGroup.GET("/applications", r.applicationHandler.ListMine)
		meGroup.GET("/articles", r.articleHandler.ListMine)
	}

	// Company directory and membership routes
	companyGroup := e.Group("/companies")
	{
		companyGroup.GET("", r.companyHandler.ListCompanies)
		companyGroup.GET("/:id", r.companyHandler.GetCompany)

		authed := companyGroup.Group("")
		authed.Use(r.authMiddleware.Authenticate)
		{
			authed.POST("", r.companyHandler.CreateCompany,
				r.authMiddleware.RequireRole(entity.RoleRecruiter))
			authed.PUT("/:id", r.companyHandler.UpdateCompany,
				r.authMiddleware.RequireCompanyRole(entity.CompanyRoleAdmin))
			authed.POST("/:id/logo", r.companyHandler.UploadLogo,
				r.authMiddleware.RequireCompanyRole(entity.CompanyRoleAdmin))
			authed.POST("/join-requests", r.companyHandler.SubmitJoinRequest,
				r.authMiddleware.RequireRole(entity.RoleRecruiter))
			authed.GET("/:id/join-requests", r.companyHandler.ListJoinRequests,
				r.authMiddleware.RequireCompanyRole(entity.CompanyRoleAdmin))
			authed.PUT("/join-requests/:requestId", r.companyHandler.DecideJoinRequest,
				r.authMiddleware.RequireCompanyRole(entity.CompanyRoleAdmin))
			authed.GET("/:id/members", r.companyHandler.ListMembers)
			authed.DELETE("/:id/members/:memberId", r.companyHandler.RemoveMember,
				r.authMiddleware.RequireCompanyRole(entity.CompanyRoleAdmin))
		}
	}

	// Job board routes
	jobGroup := e.Group("/jobs")
	{
		jobGroup.GET("", r.jobHandler.ListJobs)
		jobGroup.GET("/:id", r.jobHandler.GetJob)

		authed := jobGroup.Group("")
		authed.Use(r.authMiddleware.Authenticate)
		{
			manage := r.authMiddleware.RequireCompanyRole(entity.CompanyRoleAdmin, entity.CompanyRoleRecruiter)
			authed.POST("", r.jobHandler.CreateJob, manage)
			authed.PUT("/:id", r.jobHandler.UpdateJob, manage)
			authed.POST("/:id/close", r.jobHandler.CloseJob, manage)
			authed.DELETE("/:id", r.jobHandler.DeleteJob, manage)
			authed.GET("/:id/applications", r.applicationHandler.ListForJob, manage)
			authed.POST("/:id/applications", r.applicationHandler.Apply,
				r.authMiddleware.RequireRole(entity.RoleCandidate))
		}
	}

	// Application review routes
	applicationGroup := e.Group("/applications")
	applicationGroup.Use(r.authMiddleware.Authenticate)
	{
		applicationGroup.PUT("/:id/status", r.applicationHandler.UpdateStatus,
			r.authMiddleware.RequireCompanyRole(entity.CompanyRoleAdmin, entity.CompanyRoleRecruiter))
	}

	// Article routes
	articleGroup := e.Group("/articles")
	{
		articleGroup.GET("", r.articleHandler.ListPublished)
		articleGroup.GET("/:slug", r.articleHandler.GetArticleBySlug, r.authMiddleware.OptionalAuthenticate)

		authed := articleGroup.Group("")
		authed.Use(r.authMiddleware.Authenticate)
		{
			authed.POST("", r.articleHandler.CreateArticle)
			authed.PUT("/:id", r.articleHandler.UpdateArticle)
			authed.DELETE("/:id", r.articleHandler.DeleteArticle)
		}
	}
}
