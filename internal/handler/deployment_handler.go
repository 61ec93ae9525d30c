package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptforge/internal/auth"
	"promptforge/internal/domain"
	"promptforge/internal/service"
)

type DeploymentHandler struct {
	deploymentService *service.DeploymentService
	logger            *zap.Logger
}

type deployRequest struct {
	VersionID   uuid.UUID `json:"version_id"`
	Environment string    `json:"environment"`
	Changelog   string    `json:"changelog"`
}

type deployResponse struct {
	Version  *domain.Version  `json:"version"`
	Template *domain.Template `json:"template"`
}

func NewDeploymentHandler(deploymentService *service.DeploymentService, logger *zap.Logger) *DeploymentHandler {
	return &DeploymentHandler{
		deploymentService: deploymentService,
		logger:            logger,
	}
}

// Deploy публикует версию в окружение шаблона
func (h *DeploymentHandler) Deploy(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	packageID, err := uuid.Parse(chi.URLParam(r, "packageID"))
	if err != nil {
		http.Error(w, "Invalid package ID", http.StatusBadRequest)
		return
	}

	templateID, err := uuid.Parse(chi.URLParam(r, "templateID"))
	if err != nil {
		http.Error(w, "Invalid template ID", http.StatusBadRequest)
		return
	}

	var req deployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.VersionID == uuid.Nil {
		http.Error(w, "Version ID is required", http.StatusBadRequest)
		return
	}

	environment, err := domain.ParseEnvironment(req.Environment)
	if err != nil {
		http.Error(w, "Invalid environment", http.StatusBadRequest)
		return
	}

	version, template, err := h.deploymentService.Deploy(r.Context(), userID, packageID, templateID, req.VersionID, environment, req.Changelog)
	if err != nil {
		h.logger.Error("deployment failed",
			zap.String("version_id", req.VersionID.String()),
			zap.String("environment", string(environment)),
			zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deployResponse{
		Version:  version,
		Template: template,
	})
}
