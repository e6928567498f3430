package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/brityrelay/smtp-relay/service"
	"github.com/brityrelay/smtp-relay/service/registry"
	"github.com/brityrelay/smtp-relay/service/sink"
	"github.com/go-chi/chi/v5"
	"log/slog"
	"net/http"
)

// Handler serves the administrative surface: account management, the active
// set toggles and relay-by-payload.
type Handler struct {
	svc service.Service
	reg registry.Service
	log *slog.Logger
}

func NewHandler(svc service.Service, reg registry.Service, log *slog.Logger) *Handler {
	return &Handler{
		svc: svc,
		reg: reg,
		log: log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.logRequests)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.listAccounts)
			r.Post("/", h.createAccount)
			r.Get("/{id}", h.getAccount)
			r.Put("/{id}", h.updateAccount)
			r.Delete("/{id}", h.deleteAccount)
			r.Post("/{id}/select", h.selectAccount)
			r.Post("/{id}/deselect", h.deselectAccount)
		})
		r.Post("/relay", h.relay)
	})
	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.log.Debug(fmt.Sprintf("http: %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

type accountSummary struct {
	Id          string `json:"account_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsSelected  bool   `json:"is_selected"`
}

type accountList struct {
	Total    int              `json:"total"`
	Selected int              `json:"selected"`
	Accounts []accountSummary `json:"accounts"`
}

type accountDetails struct {
	accountSummary
	HasCookies bool `json:"has_cookies"`
	HasHeaders bool `json:"has_headers"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accts := h.reg.List()
	out := accountList{
		Total:    len(accts),
		Accounts: make([]accountSummary, 0, len(accts)),
	}
	for _, acct := range accts {
		selected := h.reg.IsActive(acct.Id)
		if selected {
			out.Selected++
		}
		out.Accounts = append(out.Accounts, accountSummary{
			Id:          acct.Id,
			Email:       acct.Email,
			DisplayName: acct.DisplayName,
			IsSelected:  selected,
		})
	}
	writeJson(w, http.StatusOK, out)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	acct, err := h.reg.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, accountDetails{
		accountSummary: accountSummary{
			Id:          acct.Id,
			Email:       acct.Email,
			DisplayName: acct.DisplayName,
			IsSelected:  h.reg.IsActive(acct.Id),
		},
		HasCookies: len(acct.Cookies) > 0,
		HasHeaders: len(acct.Headers) > 0,
	})
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var acct registry.Account
	if err := json.NewDecoder(r.Body).Decode(&acct); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, err)
		return
	}
	if acct.Id == "" {
		writeErrorStatus(w, http.StatusBadRequest, errors.New("account_id is required"))
		return
	}
	if err := h.reg.Create(acct); err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]string{
		"message":    "account created",
		"account_id": acct.Id,
	})
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var acct registry.Account
	if err := json.NewDecoder(r.Body).Decode(&acct); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, err)
		return
	}
	if acct.Id == "" {
		writeErrorStatus(w, http.StatusBadRequest, errors.New("account_id is required"))
		return
	}
	if err := h.reg.Update(id, acct); err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]string{
		"message":    "account updated",
		"account_id": acct.Id,
	})
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.reg.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]string{
		"message":    "account deleted",
		"account_id": id,
	})
}

func (h *Handler) selectAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.reg.Activate(id); err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]string{
		"message":    "account selected",
		"account_id": id,
	})
}

func (h *Handler) deselectAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.reg.Deactivate(id); err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]string{
		"message":    "account deselected",
		"account_id": id,
	})
}

func (h *Handler) relay(w http.ResponseWriter, r *http.Request) {
	var req service.RelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, err)
		return
	}
	resp, err := h.svc.Relay(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp)
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, registry.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, registry.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, registry.ErrNoAccount):
		status = http.StatusBadRequest
	case errors.Is(err, sink.ErrVendor), errors.Is(err, sink.ErrSend):
		status = http.StatusBadGateway
	}
	writeErrorStatus(w, status, err)
}

func writeErrorStatus(w http.ResponseWriter, status int, err error) {
	writeJson(w, status, map[string]string{
		"error": err.Error(),
	})
}
