// Package sandbox is an in-memory stand-in for the Paisa backend.
//
// It serves the same REST surface the client consumes so the CLI and TUI can
// be demoed offline and the client packages can be tested end to end. Data
// lives in process memory and is lost on exit.
package sandbox

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/theirongolddev/paisa/internal/model"
)

// Seeded administrator credentials.
const (
	AdminEmail    = "admin@paisa.local"
	AdminPassword = "admin123"
	adminName     = "Administrator"
)

const tokenTTL = 24 * time.Hour

type user struct {
	id        string
	email     string
	name      string
	role      model.Role
	hash      []byte
	createdAt time.Time
}

type session struct {
	email   string
	expires time.Time
}

type account struct {
	model.Account
	userID string
}

type transaction struct {
	model.Transaction
	userID string
}

// Server holds the sandbox state. It is safe for concurrent use.
type Server struct {
	mu           sync.Mutex
	users        map[string]*user // by email
	tokens       map[string]session
	accounts     []*account
	transactions []*transaction
	budgets      map[string]model.Budget // by user id

	now        func() time.Time
	log        *slog.Logger
	bcryptCost int
	startedAt  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger routes request logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for dates and token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.bcryptCost = cost }
}

// New returns a sandbox with the administrator account seeded.
func New(opts ...Option) *Server {
	s := &Server{
		users:      make(map[string]*user),
		tokens:     make(map[string]session),
		budgets:    make(map[string]model.Budget),
		now:        time.Now,
		log:        slog.New(slog.DiscardHandler),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()

	if _, err := s.addUser(AdminEmail, AdminPassword, adminName, model.RoleAdmin); err != nil {
		s.log.Error("seeding admin failed", "error", err)
	}
	return s
}

// Handler returns the HTTP handler serving the API under /api.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)

	authed := api.Group("", s.requireAuth())
	authed.GET("/accounts", s.listAccounts)
	authed.POST("/accounts", s.createAccount)
	authed.PUT("/accounts/:id", s.updateAccount)
	authed.DELETE("/accounts/:id", s.deleteAccount)

	authed.GET("/transactions", s.listTransactions)
	authed.POST("/transactions", s.createTransaction)
	authed.PUT("/transactions/:id", s.updateTransaction)
	authed.DELETE("/transactions/:id", s.deleteTransaction)

	authed.GET("/budgets", s.getBudget)
	authed.POST("/budgets", s.saveBudget)
	authed.DELETE("/budgets", s.deleteBudget)

	authed.GET("/dashboard", s.dashboard)
	authed.POST("/ai/recommendations", s.recommendations)

	admin := authed.Group("/admin", requireRole(model.RoleAdmin))
	admin.GET("/users", s.adminUsers)
	admin.GET("/accounts", s.adminAccounts)
	admin.GET("/transactions", s.adminTransactions)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
