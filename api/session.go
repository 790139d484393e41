/*
session.go - Cookie sessions and role-based access

PURPOSE:
  In-memory session registry plus the login/logout/password endpoints and
  the middleware that gates the /api/admin and /api/me route groups.

MODEL:
  Two roles share one login endpoint:
  - admin:    username + password, bcrypt-verified against the stored hash
  - employee: employee id only, must exist and be Active

  A successful login mints a random token (UUID v4), stores the identity
  in the registry and sets an HttpOnly cookie. Sessions live until logout
  or process restart; there is no expiry and no persistence, matching the
  single-site deployment this serves.

SEE ALSO:
  - server.go: wires requireRole onto the route groups
  - handlers.go: reads the request identity via identityFrom
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/warp/payroll-engine/payroll"
)

// SessionCookie is the name of the auth cookie.
const SessionCookie = "payroll_session"

// Role separates the admin back office from the employee portal.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Identity is the authenticated principal attached to a request.
type Identity struct {
	Role       Role
	Username   string // admin role only
	EmployeeID string // employee role only
}

// SessionManager maps opaque tokens to identities.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]Identity
}

// NewSessionManager creates an empty registry.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]Identity)}
}

// Create mints a token for the identity.
func (m *SessionManager) Create(id Identity) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = id
	m.mu.Unlock()
	return token
}

// Get resolves a token to its identity.
func (m *SessionManager) Get(token string) (Identity, bool) {
	m.mu.RLock()
	id, ok := m.sessions[token]
	m.mu.RUnlock()
	return id, ok
}

// Delete invalidates a token. Unknown tokens are a no-op.
func (m *SessionManager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// =============================================================================
// REQUEST IDENTITY
// =============================================================================

type ctxKey int

const identityKey ctxKey = iota

// identityFrom returns the identity the middleware attached to the request.
func identityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// requireRole authenticates the session cookie and enforces the role.
// Missing/unknown sessions get 401, wrong role gets 403.
func (h *Handler) requireRole(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Not logged in", nil)
				return
			}
			id, ok := h.Sessions.Get(cookie.Value)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Session expired", nil)
				return
			}
			if id.Role != role {
				writeError(w, http.StatusForbidden, "Insufficient role", nil)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireSession authenticates the cookie without enforcing a role.
func (h *Handler) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Not logged in", nil)
				return
			}
			id, ok := h.Sessions.Get(cookie.Value)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Session expired", nil)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login authenticates either role and sets the session cookie.
// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	switch Role(req.Role) {
	case RoleAdmin:
		h.loginAdmin(w, r, req)
	case RoleEmployee:
		h.loginEmployee(w, r, req)
	default:
		writeError(w, http.StatusBadRequest, "Unknown role", nil)
	}
}

func (h *Handler) loginAdmin(w http.ResponseWriter, r *http.Request, req LoginRequest) {
	hash, err := h.Store.GetAdminHash(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to verify credentials", err)
		return
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	h.setSession(w, Identity{Role: RoleAdmin, Username: req.Username})
	writeJSON(w, http.StatusOK, LoginResponse{Role: string(RoleAdmin), Username: req.Username})
}

func (h *Handler) loginEmployee(w http.ResponseWriter, r *http.Request, req LoginRequest) {
	emp, err := h.Store.GetEmployee(r.Context(), req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up employee", err)
		return
	}
	if emp == nil || !emp.IsActive() {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	h.setSession(w, Identity{Role: RoleEmployee, EmployeeID: emp.EmployeeID})
	writeJSON(w, http.StatusOK, LoginResponse{
		Role:       string(RoleEmployee),
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
	})
}

func (h *Handler) setSession(w http.ResponseWriter, id Identity) {
	token := h.Sessions.Create(id)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Logout invalidates the session and clears the cookie.
// POST /api/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.Sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ChangePassword rotates the admin password after re-verifying the current one.
// PUT /api/admin/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.NewPassword) < 4 {
		writeError(w, http.StatusBadRequest, "New password too short", nil)
		return
	}

	ctx := r.Context()
	hash, err := h.Store.GetAdminHash(ctx, id.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to verify credentials", err)
		return
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", payroll.ErrInvalidCredentials)
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
		return
	}
	if err := h.Store.SetAdminHash(ctx, id.Username, string(newHash)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update password", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}
