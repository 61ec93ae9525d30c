package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"promptforge/internal/auth"
	"promptforge/internal/domain"
	"promptforge/internal/service"
)

type ResolveHandler struct {
	resolveService *service.ResolveService
	logger         *zap.Logger
}

type renderRequest struct {
	Data map[string]string `json:"data"`
}

type renderResponse struct {
	Prompt    string          `json:"prompt"`
	Variables []string        `json:"variables"`
	Version   *domain.Version `json:"version"`
}

func NewResolveHandler(resolveService *service.ResolveService, logger *zap.Logger) *ResolveHandler {
	return &ResolveHandler{
		resolveService: resolveService,
		logger:         logger,
	}
}

// resolveScope проверяет вызывающего и адрес промпта из URL. Чужой username
// неотличим от несуществующего.
func (h *ResolveHandler) resolveScope(w http.ResponseWriter, r *http.Request) (userID, packageName, templateName string, ok bool) {
	user, err := auth.CurrentUser(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", "", "", false
	}

	if user.Username != chi.URLParam(r, "username") {
		http.Error(w, "Not found", http.StatusNotFound)
		return "", "", "", false
	}

	return user.ID, chi.URLParam(r, "packageName"), chi.URLParam(r, "templateName"), true
}

// ResolvePrompt находит версию по адресу пакет/шаблон и метке версии либо окружению
func (h *ResolveHandler) ResolvePrompt(w http.ResponseWriter, r *http.Request) {
	userID, packageName, templateName, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	versionLabel := r.URL.Query().Get("version")
	environment := r.URL.Query().Get("environment")

	version, err := h.resolveService.Resolve(r.Context(), userID, packageName, templateName, versionLabel, environment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, version)
}

// RenderPrompt резолвит версию и подставляет переданные переменные в текст промпта
func (h *ResolveHandler) RenderPrompt(w http.ResponseWriter, r *http.Request) {
	userID, packageName, templateName, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	versionLabel := r.URL.Query().Get("version")
	environment := r.URL.Query().Get("environment")

	version, err := h.resolveService.Resolve(r.Context(), userID, packageName, templateName, versionLabel, environment)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		Prompt:    domain.RenderPrompt(version.Template, req.Data),
		Variables: domain.PromptVariables(version.Template),
		Version:   version,
	})
}
