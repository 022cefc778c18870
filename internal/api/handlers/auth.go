package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/baharkarakas/learnhub-backend/internal/api/httpx"
	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/middleware"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/services"
)

type AuthHandler struct {
	svc    *services.AccountService
	log    *slog.Logger
	expose bool
}

func NewAuthHandler(svc *services.AccountService, log *slog.Logger, exposeInternal bool) *AuthHandler {
	return &AuthHandler{svc: svc, log: log, expose: exposeInternal}
}

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	Account   models.AccountView `json:"account"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		fail(w, r, h.log, err, h.expose)
		return
	}
	res, err := h.svc.Register(r.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		fail(w, r, h.log, err, h.expose)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, authResp{Token: res.Token, ExpiresAt: res.ExpiresAt, Account: res.Account.View()})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		fail(w, r, h.log, err, h.expose)
		return
	}
	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, r, h.log, err, h.expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authResp{Token: res.Token, ExpiresAt: res.ExpiresAt, Account: res.Account.View()})
}

// Me returns the account the gate resolved.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	acc, ok := middleware.AccountFrom(r.Context())
	if !ok {
		fail(w, r, h.log, apperr.New(apperr.KindNoToken), h.expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]models.AccountView{"account": acc.View()})
}

// fail logs server-side faults with the request id, then renders err.
func fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, expose bool) {
	if apperr.KindOf(err) == apperr.KindInternal {
		log.ErrorContext(r.Context(), "request failed",
			"err", err,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
		)
	}
	httpx.WriteAppError(w, err, expose)
}
