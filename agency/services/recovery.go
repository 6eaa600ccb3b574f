package services

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"agency_platform/agency/backup"
	"agency_platform/utils"
)

// RecoveryService triggers the external dump/restore tools. Both operations
// are gated on the shared operator secret and block the request until the
// subprocess exits.
type RecoveryService struct {
	superuserPassword string
	backupDir         string
	tools             backup.Tools
}

type backupRequest struct {
	Path              string `json:"path"`
	SuperuserPassword string `json:"superuser_password"`
}

func (s *RecoveryService) confirmSuperuser(w http.ResponseWriter, password string) bool {
	if password != s.superuserPassword {
		http.Error(w, "Invalid superuser password", http.StatusForbidden)
		return false
	}
	return true
}

func (s *RecoveryService) Backup(w http.ResponseWriter, r *http.Request) {
	var params backupRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if !s.confirmSuperuser(w, params.SuperuserPassword) {
		return
	}

	path := params.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.backupDir, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		slog.Error("error creating backup directory", "path", path, "error", err)
		http.Error(w, fmt.Sprintf("error creating backup directory: %v", err), http.StatusInternalServerError)
		return
	}

	if err := s.tools.Dump(path); err != nil {
		slog.Error("database backup failed", "path", path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("database backup completed", "path", path)
	utils.WriteJsonResponse(w, statusResponse{Message: "Backup completed", Path: path})
}

func (s *RecoveryService) Restore(w http.ResponseWriter, r *http.Request) {
	var params backupRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if !s.confirmSuperuser(w, params.SuperuserPassword) {
		return
	}

	if _, err := os.Stat(params.Path); err != nil {
		http.Error(w, "Backup file not found", http.StatusNotFound)
		return
	}

	if err := s.tools.Restore(params.Path); err != nil {
		slog.Error("database restore failed", "path", params.Path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("database restore completed", "path", params.Path)
	utils.WriteJsonResponse(w, statusResponse{Message: "Restore completed", Path: params.Path})
}

// ListBackups reports the files under the backup directory, the desktop
// restore form uses this to offer choices.
func (s *RecoveryService) ListBackups(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			utils.WriteJsonResponse(w, []string{})
			return
		}
		slog.Error("error listing backups", "dir", s.backupDir, "error", err)
		http.Error(w, fmt.Sprintf("error listing backups: %v", err), http.StatusInternalServerError)
		return
	}

	backups := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			backups = append(backups, entry.Name())
		}
	}

	utils.WriteJsonResponse(w, backups)
}
