package auth

import (
	"encoding/json"
	"net/http"

	"github.com/talentbase/hiring-pipeline/internal/account"
	"github.com/talentbase/hiring-pipeline/internal/transport"
	"github.com/talentbase/hiring-pipeline/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

// Register handles self-service registration. Admin-created accounts go
// through the same service path with the actor resolved from context.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// nil actor for the public endpoint; the admin route runs behind the
	// auth middleware and carries the actor in context
	actor, _ := account.FromContext(r.Context())

	acc, err := h.Service.Register(r.Context(), actor, dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, acc)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "email", dto.Email)
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout only validates the presented token; there is no server-side session
// to destroy, discarding the token is the client's job.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	acc, ok := account.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	h.WriteJSON(w, http.StatusOK, acc)
}

// Middleware authenticates every request on the protected subtree: bearer
// token, then directory liveness, then account into context.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		acc, err := h.Service.AuthorizeRequest(r.Context(), token)
		if err != nil {
			h.WriteDomainError(w, err)
			return
		}

		ctx := account.NewContext(r.Context(), acc)
		ctx = logger.With(ctx, "account_id", acc.ID, "role", acc.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a subtree on the role set. Runs after Middleware, so
// the account is already live; ADMIN passes any check.
func (h *Handler) RequireRoles(roles ...account.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acc, ok := account.FromContext(r.Context())
			if !ok {
				h.WriteError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if err := Authorize(acc, roles...); err != nil {
				h.Logger.Warn("access denied",
					"account_id", acc.ID,
					"role", acc.Role,
					"path", r.URL.Path)
				h.WriteDomainError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
