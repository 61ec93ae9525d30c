package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"promptforge/internal/auth"
	"promptforge/internal/service"
)

type PackageHandler struct {
	packageService *service.PackageService
	logger         *zap.Logger
}

type createPackageRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewPackageHandler(packageService *service.PackageService, logger *zap.Logger) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
		logger:         logger,
	}
}

func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	pkg, err := h.packageService.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		h.logger.Error("failed to create package", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	packages, err := h.packageService.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list packages", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, packages)
}

func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
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

	pkg, err := h.packageService.Get(r.Context(), packageID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
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

	if err := h.packageService.Delete(r.Context(), packageID, userID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
