package transport

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/model"
	"github.com/ShopVerse1/NJ-Digital-Boutique/pkg/domain/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.Register(req.Name, req.Email, req.Phone, req.Password)
	switch {
	case err == nil:
		token, issueErr := h.tokens.Issue(user.ID)
		if issueErr != nil {
			respondInternal(w, issueErr, "Failed to register")
			return
		}
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"token":   token,
			"user":    toUserResponse(user),
		})
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondInternal(w, err, "Failed to register")
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	switch {
	case err == nil:
		token, issueErr := h.tokens.Issue(user.ID)
		if issueErr != nil {
			respondInternal(w, issueErr, "Failed to log in")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"token":   token,
			"user":    toUserResponse(user),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		respondInternal(w, err, "Failed to log in")
	}
}

type authedHandler func(w http.ResponseWriter, r *http.Request, user *model.User)

// requireUser resolves the bearer token into an account before letting the
// wrapped handler run.
func (h *Handler) requireUser(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		userID, err := h.tokens.Verify(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := h.users.UserByID(userID)
		if errors.Is(err, model.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if err != nil {
			respondInternal(w, err, "Failed to authenticate")
			return
		}

		next(w, r, user)
	}
}
