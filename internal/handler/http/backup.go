package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/presenz/presenz-backend-go/internal/domain/backup"
	"github.com/presenz/presenz-backend-go/internal/handler/http/response"
)

// Dumps carry every collection, so the limit is generous.
const maxBackupBodyBytes = 64 << 20

type BackupHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type backupHandlerImpl struct {
	backupService backup.BackupService
}

func NewBackupHandler(backupService backup.BackupService) BackupHandler {
	return &backupHandlerImpl{
		backupService: backupService,
	}
}

// Export implements BackupHandler.
func (h *backupHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	dump, err := h.backupService.Export(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="presenz_backup_%s.json"`, time.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dump); err != nil {
		slog.Error("failed to write backup", "error", err)
	}
}

// Import implements BackupHandler.
func (h *backupHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req backup.ImportRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.backupService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backup imported successfully", result)
}

// Stats implements BackupHandler.
func (h *backupHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.backupService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
