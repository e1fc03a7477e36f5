package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	PaymentUC    *payroll.PaymentUseCase
	DeductionUC  *payroll.DeductionUseCase
	ReceiptUC    *payroll.ReceiptUseCase
	StatisticsUC *appanalytics.StatisticsUseCase
	Sessions     *Sessions
	Session      *SessionHandler
	Revocations  TokenRevocations // nil → lista en memoria propia
	JWTSecret    string
}

// Router registra las rutas de la API. Cada endpoint de negocio se autoriza con
// la ruta de navegación equivalente, así la API y el menú nunca discrepan.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	s := deps.Sessions

	revocations := deps.Revocations
	if revocations == nil {
		revocations = auth.NewRevocations()
	}
	requireToken := AuthMiddleware(deps.JWTSecret, revocations)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, s, revocations)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", requireToken, authHandler.Logout)

	protected := api.Group("", requireToken)

	// Sesión
	sess := protected.Group("/session")
	sess.Post("/refresh", deps.Session.Refresh)
	sess.Get("/", RequireSession(s), deps.Session.Get)
	sess.Get("/menu", RequireSession(s), deps.Session.Menu)
	sess.Get("/permissions", RequireSession(s), deps.Session.Permissions)
	sess.Get("/guard", RequireSession(s), deps.Session.Guard)
	sess.Get("/events", RequireSession(s), deps.Session.Events)

	// Empleados
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", RequireRoute(s, rbac.RouteEmployees), employeeHandler.List)
	employees.Post("/", RequireRoute(s, rbac.RouteAddEmployee), employeeHandler.Create)
	employees.Get("/:id", RequireRouteFunc(s, withParam(rbac.RouteEmployeeDetail)), employeeHandler.GetByID)
	employees.Put("/:id", RequireRouteFunc(s, withParam(rbac.RouteEditEmployee)), employeeHandler.Update)

	// Nómina
	payrollHandler := NewPayrollHandler(deps.PaymentUC, deps.DeductionUC, deps.ReceiptUC)
	payments := protected.Group("/payments")
	payments.Get("/", RequireRoute(s, rbac.RoutePayments), payrollHandler.ListPayments)
	payments.Post("/", RequireRoute(s, rbac.RouteAddPayment), payrollHandler.RegisterPayment)
	payments.Get("/:id/receipt", RequireRouteFunc(s, withParam(rbac.RoutePaymentReceipt)), payrollHandler.Receipt)

	discounts := protected.Group("/discounts")
	discounts.Get("/", RequireRoute(s, rbac.RouteDiscounts), payrollHandler.ListDiscounts)
	discounts.Post("/", RequireRoute(s, rbac.RouteAddDiscount), payrollHandler.RegisterDiscount)

	advances := protected.Group("/advances")
	advances.Get("/", RequireRoute(s, rbac.RouteAdvances), payrollHandler.ListAdvances)
	advances.Post("/", RequireRoute(s, rbac.RouteAddAdvance), payrollHandler.RegisterAdvance)

	// Dashboard
	statsHandler := NewStatisticsHandler(deps.StatisticsUC)
	protected.Get("/dashboard/statistics", RequireRoute(s, rbac.RouteStatistics), statsHandler.Get)

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRoute(s, rbac.RouteUsers), userHandler.List)
	users.Post("/", RequireRoute(s, rbac.RouteUsers), userHandler.Create)
	users.Patch("/:id/role", RequireRouteFunc(s, withParam(rbac.RouteUserDetail)), userHandler.UpdateRole)
	users.Patch("/:id/active", RequireRouteFunc(s, withParam(rbac.RouteUserDetail)), userHandler.SetActive)
}

// withParam ruta de navegación con el :id de la petición, p. ej. "employee_detail/42".
func withParam(route string) func(c *fiber.Ctx) string {
	return func(c *fiber.Ctx) string {
		return route + "/" + c.Params("id")
	}
}
