package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"agency_platform/agency/registry"

	"gorm.io/gorm"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(err error, code int) error {
	return &codedError{err: err, code: code}
}

func GetResponseCode(err error) int {
	var cerr *codedError
	if errors.As(err, &cerr) {
		return cerr.code
	}
	slog.Error("non coded error passed to GetResponseCode", "error", err)
	return http.StatusInternalServerError
}

type statusResponse struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

func notFoundError(table string, id int64) error {
	return CodedError(fmt.Errorf("%v with id=%v not found", table, id), http.StatusNotFound)
}

func checkRecordExists(txn *gorm.DB, cfg *registry.TableConfig, id int64) error {
	if _, err := cfg.Get(txn, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(cfg.Name, id)
		}
		slog.Error("sql error checking record existence", "table", cfg.Name, "id", id, "error", err)
		return CodedError(err, http.StatusInternalServerError)
	}
	return nil
}
