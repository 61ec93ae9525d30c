package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"promptforge/internal/auth"
	"promptforge/internal/domain"
	"promptforge/internal/service"
)

type VersionHandler struct {
	versionService *service.VersionService
	logger         *zap.Logger
}

type createVersionRequest struct {
	Version      string     `json:"version"`
	ModelType    string     `json:"model_type"`
	ForkedFromID *uuid.UUID `json:"forked_from_id,omitempty"`
}

// llmConfigRequest проверяет структуру конфигурации модели на границе
type llmConfigRequest struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxLength       *int     `json:"maxLength,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	FreqPenalty     *float64 `json:"freqPenalty,omitempty"`
	PresencePenalty *float64 `json:"presencePenalty,omitempty"`
	LogitBias       *string  `json:"logitBias,omitempty"`
	StopSequences   *string  `json:"stopSequences,omitempty"`
	MaxTokens       *int     `json:"maxTokens,omitempty"`
}

type updateVersionRequest struct {
	Template    string           `json:"template"`
	LLMProvider string           `json:"llm_provider"`
	LLMModel    string           `json:"llm_model"`
	LLMConfig   llmConfigRequest `json:"llm_config"`
}

func NewVersionHandler(versionService *service.VersionService, logger *zap.Logger) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		logger:         logger,
	}
}

func parseVersionScope(r *http.Request) (packageID, templateID uuid.UUID, err error) {
	packageID, err = uuid.Parse(chi.URLParam(r, "packageID"))
	if err != nil {
		return
	}
	templateID, err = uuid.Parse(chi.URLParam(r, "templateID"))
	return
}

func (h *VersionHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	packageID, templateID, err := parseVersionScope(r)
	if err != nil {
		http.Error(w, "Invalid package or template ID", http.StatusBadRequest)
		return
	}

	var req createVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Version == "" {
		http.Error(w, "Version label is required", http.StatusBadRequest)
		return
	}

	modelType := domain.ModelType(req.ModelType)
	if !modelType.Valid() {
		http.Error(w, "Invalid model type", http.StatusBadRequest)
		return
	}

	version, err := h.versionService.Create(r.Context(), userID, packageID, templateID, req.Version, modelType, req.ForkedFromID)
	if err != nil {
		h.logger.Error("failed to create version", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, version)
}

func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	packageID, templateID, err := parseVersionScope(r)
	if err != nil {
		http.Error(w, "Invalid package or template ID", http.StatusBadRequest)
		return
	}

	versions, err := h.versionService.List(r.Context(), packageID, templateID, userID)
	if err != nil {
		h.logger.Error("failed to list versions", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, versions)
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	versionID, err := uuid.Parse(chi.URLParam(r, "versionID"))
	if err != nil {
		http.Error(w, "Invalid version ID", http.StatusBadRequest)
		return
	}

	version, err := h.versionService.Get(r.Context(), versionID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, version)
}

func (h *VersionHandler) UpdateVersion(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	packageID, templateID, err := parseVersionScope(r)
	if err != nil {
		http.Error(w, "Invalid package or template ID", http.StatusBadRequest)
		return
	}

	versionID, err := uuid.Parse(chi.URLParam(r, "versionID"))
	if err != nil {
		http.Error(w, "Invalid version ID", http.StatusBadRequest)
		return
	}

	var req updateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Template == "" {
		http.Error(w, "Template text is required", http.StatusBadRequest)
		return
	}

	llmConfig, err := json.Marshal(req.LLMConfig)
	if err != nil {
		http.Error(w, "Invalid llm config", http.StatusBadRequest)
		return
	}

	content := &domain.VersionContent{
		Template:    req.Template,
		LLMProvider: req.LLMProvider,
		LLMModel:    req.LLMModel,
		LLMConfig:   types.JSONText(llmConfig),
	}

	version, err := h.versionService.UpdateContent(r.Context(), versionID, userID, packageID, templateID, content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, version)
}

func (h *VersionHandler) DeleteVersion(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	versionID, err := uuid.Parse(chi.URLParam(r, "versionID"))
	if err != nil {
		http.Error(w, "Invalid version ID", http.StatusBadRequest)
		return
	}

	if err := h.versionService.Delete(r.Context(), versionID, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
