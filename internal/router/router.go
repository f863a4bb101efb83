package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sporting-life/enrollment-api/api/swagger"
	"github.com/sporting-life/enrollment-api/internal/handler"
	"github.com/sporting-life/enrollment-api/internal/middleware"
	"github.com/sporting-life/enrollment-api/internal/models"
	"github.com/sporting-life/enrollment-api/internal/service"
	"github.com/sporting-life/enrollment-api/pkg/config"
	"github.com/sporting-life/enrollment-api/pkg/logger"
	corsmiddleware "github.com/sporting-life/enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sporting-life/enrollment-api/pkg/middleware/requestid"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *zap.Logger
	Auth        *service.AuthService
	Users       *service.UserService
	Classes     *service.ClassService
	Selections  *service.SelectionService
	Enrollments *service.EnrollmentService
	Payments    *service.PaymentService
	Metrics     *service.MetricsService
}

// New assembles the gin engine with every route behind its access policy.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	classHandler := handler.NewClassHandler(deps.Classes)
	selectionHandler := handler.NewSelectionHandler(deps.Selections)
	enrollmentHandler := handler.NewEnrollmentHandler(deps.Enrollments)
	paymentHandler := handler.NewPaymentHandler(deps.Payments)
	reportHandler := handler.NewReportHandler(deps.Payments)
	metricsHandler := handler.NewMetricsHandler(deps.Metrics)

	authed := middleware.JWT(deps.Auth)
	guard := func(policy middleware.Policy) gin.HandlerFunc {
		return middleware.Guard(deps.Users, policy)
	}
	adminOnly := guard(middleware.Policy{Role: models.RoleAdmin})

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Sporting Life Server is Running")
	})
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Session tokens.
	r.POST("/jwt", authHandler.CreateToken)

	// Users and roles.
	r.POST("/users", userHandler.Register)
	r.GET("/users", authed, adminOnly, userHandler.List)
	r.GET("/user", authed, guard(middleware.Policy{SelfQuery: "email", MismatchStatus: http.StatusUnauthorized}), userHandler.Get)
	r.PATCH("/update-user/:id", authed, adminOnly, userHandler.UpdateRole)
	r.GET("/user/admin/:email", authed, userHandler.AdminProbe)
	r.GET("/user/instructor/:email", authed, userHandler.InstructorProbe)
	r.GET("/instructors", userHandler.Instructors)

	// Class catalog.
	r.GET("/classes", classHandler.ListPublic)
	r.GET("/all-classes", authed, adminOnly, classHandler.ListAll)
	r.POST("/classes", authed, guard(middleware.Policy{Role: models.RoleInstructor}), classHandler.Create)
	r.GET("/my-classes", authed, guard(middleware.Policy{Role: models.RoleInstructor, SelfQuery: "email"}), classHandler.MyClasses)
	r.PATCH("/class/:id", classHandler.ReserveSeat)
	r.PATCH("/update-class-status/:id", authed, adminOnly, classHandler.UpdateStatus)
	r.PATCH("/update-feedback/:id", authed, adminOnly, classHandler.UpdateFeedback)

	// Cart.
	r.POST("/select-class", selectionHandler.Select)
	r.GET("/selected", authed, guard(middleware.Policy{SelfQuery: "email", MismatchStatus: http.StatusUnauthorized}), selectionHandler.List)
	r.GET("/selected/:id", authed, selectionHandler.Get)
	r.DELETE("/selected/:id", selectionHandler.Delete)

	// Payments.
	r.POST("/create-payment-intent", paymentHandler.CreateIntent)
	r.POST("/payment", authed, paymentHandler.Record)
	r.GET("/payment/:id/receipt.pdf", authed, paymentHandler.Receipt)
	r.GET("/payments", authed, guard(middleware.Policy{SelfQuery: "email"}), paymentHandler.List)

	// Enrollments.
	r.POST("/enrolled", enrollmentHandler.Record)
	r.GET("/enrolled", authed, guard(middleware.Policy{SelfQuery: "email"}), enrollmentHandler.List)

	// Admin exports.
	r.GET("/admin/ledger.csv", authed, adminOnly, reportHandler.LedgerCSV)
	r.GET("/admin/ledger.pdf", authed, adminOnly, reportHandler.LedgerPDF)

	return r
}
