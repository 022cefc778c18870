package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/learnhub-backend/internal/api/httpx"
	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/middleware"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/services"
)

type ProfileHandler struct {
	svc    *services.ProfileService
	log    *slog.Logger
	expose bool
}

func NewProfileHandler(svc *services.ProfileService, log *slog.Logger, exposeInternal bool) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: log, expose: exposeInternal}
}

type profileReq struct {
	EducationLevel  string   `json:"educationLevel"`
	Standard        string   `json:"standard"`
	CodingLevel     string   `json:"codingLevel"`
	StrongLanguages []string `json:"strongLanguages"`
}

type profileResp struct {
	Profile models.EducationProfile `json:"profile"`
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.AccountFrom(r.Context())
	if !ok {
		fail(w, r, h.log, apperr.New(apperr.KindNoToken), h.expose)
		return
	}
	var req profileReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		fail(w, r, h.log, err, h.expose)
		return
	}
	p, err := h.svc.Create(r.Context(), owner, services.ProfileInput{
		EducationLevel:  req.EducationLevel,
		Standard:        req.Standard,
		CodingLevel:     req.CodingLevel,
		StrongLanguages: req.StrongLanguages,
	})
	if err != nil {
		fail(w, r, h.log, err, h.expose)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, profileResp{Profile: p})
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.AccountFrom(r.Context())
	if !ok {
		fail(w, r, h.log, apperr.New(apperr.KindNoToken), h.expose)
		return
	}
	p, err := h.svc.Get(r.Context(), owner)
	if err != nil {
		fail(w, r, h.log, err, h.expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResp{Profile: p})
}
