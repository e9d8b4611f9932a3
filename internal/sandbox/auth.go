package sandbox

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/theirongolddev/paisa/internal/model"
)

const ctxUser = "sandbox.user"

var errEmailTaken = errors.New("email already exists")

// addUser must be called with s.mu held or before the server is shared.
func (s *Server) addUser(email, password, name string, role model.Role) (*user, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.users[email]; ok {
		return nil, errEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &user{
		id:        uuid.NewString(),
		email:     email,
		name:      name,
		role:      role,
		hash:      hash,
		createdAt: s.now(),
	}
	s.users[email] = u
	return u, nil
}

// issueToken builds an unsigned JWT-shaped token and remembers it. Only
// tokens issued here are accepted, so the missing signature is harmless.
func (s *Server) issueToken(u *user) string {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	now := s.now()
	payload, _ := json.Marshal(map[string]any{
		"sub":   u.email,
		"email": u.email,
		"name":  u.name,
		"role":  u.role,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	})

	token := header + "." + enc.EncodeToString(payload) + "." + strings.ReplaceAll(uuid.NewString(), "-", "")
	s.tokens[token] = session{email: u.email, expires: now.Add(tokenTTL)}
	return token
}

func authResponse(token string, u *user) model.AuthResponse {
	return model.AuthResponse{Token: token, Email: u.email, Name: u.name, Role: u.role}
}

func (s *Server) login(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(strings.TrimSpace(req.Email))]
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	c.JSON(http.StatusOK, authResponse(s.issueToken(u), u))
}

func (s *Server) register(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, "Email, password and name are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.addUser(req.Email, req.Password, strings.TrimSpace(req.Name), model.RoleUser)
	if errors.Is(err, errEmailTaken) {
		fail(c, http.StatusBadRequest, "Email already exists")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}
	c.JSON(http.StatusOK, authResponse(s.issueToken(u), u))
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		s.mu.Lock()
		sess, known := s.tokens[token]
		if known && !s.now().Before(sess.expires) {
			delete(s.tokens, token)
			known = false
		}
		u := s.users[sess.email]
		s.mu.Unlock()

		if !known || u == nil {
			fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

func requireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).role != role {
			fail(c, http.StatusForbidden, "Access denied")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *user {
	u, _ := c.MustGet(ctxUser).(*user)
	return u
}
