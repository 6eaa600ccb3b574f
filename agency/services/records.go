package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"agency_platform/agency/querycache"
	"agency_platform/agency/registry"
	"agency_platform/agency/schema"
	"agency_platform/utils"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// RecordService exposes the uniform list/get/create/update/delete routes for
// every table in the registry, plus the substring filter. Successful reads
// refresh the query result cache and return the entry's token in the
// X-Query-Id header so a later CSV export can name the exact result set.
type RecordService struct {
	db     *gorm.DB
	tables registry.Registry
	cache  *querycache.Cache
}

func (s *RecordService) RegisterCrudRoutes(r chi.Router) {
	for name, cfg := range s.tables {
		r.Get("/"+name, s.List(cfg))
		r.Post("/"+name, s.Create(cfg))
		r.Get("/"+name+"/{item_id}", s.Get(cfg))
		r.Put("/"+name+"/{item_id}", s.Update(cfg))
		r.Delete("/"+name+"/{item_id}", s.Delete(cfg))
	}
}

func (s *RecordService) cacheResult(w http.ResponseWriter, columns []string, records []schema.Record) {
	rows, err := registry.Rows(records)
	if err != nil {
		slog.Error("error caching query result", "error", err)
		return
	}
	token := s.cache.Put(querycache.Result{Columns: columns, Rows: rows})
	w.Header().Set("X-Query-Id", token.String())
}

func (s *RecordService) List(cfg *registry.TableConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := cfg.Find(s.db)
		if err != nil {
			slog.Error("sql error listing records", "table", cfg.Name, "error", err)
			http.Error(w, fmt.Sprintf("error listing %v records: %v", cfg.Name, err), http.StatusInternalServerError)
			return
		}

		s.cacheResult(w, cfg.Columns, records)
		utils.WriteJsonResponse(w, records)
	}
}

func (s *RecordService) Get(cfg *registry.TableConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.URLParamInt(r, "item_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		record, err := cfg.Get(s.db, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				http.Error(w, fmt.Sprintf("%v with id=%v not found", cfg.Name, id), http.StatusNotFound)
				return
			}
			slog.Error("sql error fetching record", "table", cfg.Name, "id", id, "error", err)
			http.Error(w, fmt.Sprintf("error fetching %v record: %v", cfg.Name, err), http.StatusInternalServerError)
			return
		}

		s.cacheResult(w, cfg.Columns, []schema.Record{record})
		utils.WriteJsonResponse(w, record)
	}
}

func (s *RecordService) Create(cfg *registry.TableConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := cfg.Blank()
		if !utils.ParseRequestBody(w, r, record) {
			return
		}
		record.SetPrimaryKey(0)

		if err := record.Validate(); err != nil {
			http.Error(w, fmt.Sprintf("invalid %v payload: %v", cfg.Name, err), http.StatusBadRequest)
			return
		}

		err := s.db.Transaction(func(txn *gorm.DB) error {
			if result := txn.Create(record); result.Error != nil {
				// Constraint diagnostics are surfaced verbatim, the db
				// message is the most precise description of the failure.
				return CodedError(result.Error, http.StatusBadRequest)
			}
			return nil
		})

		if err != nil {
			http.Error(w, err.Error(), GetResponseCode(err))
			return
		}

		slog.Info("created record", "table", cfg.Name, "id", record.PrimaryKey())
		utils.WriteJsonResponse(w, record)
	}
}

func (s *RecordService) Update(cfg *registry.TableConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.URLParamInt(r, "item_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		record := cfg.Blank()
		if !utils.ParseRequestBody(w, r, record) {
			return
		}

		if err := record.Validate(); err != nil {
			http.Error(w, fmt.Sprintf("invalid %v payload: %v", cfg.Name, err), http.StatusBadRequest)
			return
		}
		record.SetPrimaryKey(id)

		err = s.db.Transaction(func(txn *gorm.DB) error {
			if err := checkRecordExists(txn, cfg, id); err != nil {
				return err
			}

			// Save writes every column, fields omitted from the payload are
			// cleared rather than left at their prior values.
			if result := txn.Save(record); result.Error != nil {
				return CodedError(result.Error, http.StatusBadRequest)
			}
			return nil
		})

		if err != nil {
			http.Error(w, err.Error(), GetResponseCode(err))
			return
		}

		slog.Info("updated record", "table", cfg.Name, "id", id)
		utils.WriteJsonResponse(w, record)
	}
}

func (s *RecordService) Delete(cfg *registry.TableConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.URLParamInt(r, "item_id")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err = s.db.Transaction(func(txn *gorm.DB) error {
			if err := checkRecordExists(txn, cfg, id); err != nil {
				return err
			}

			record := cfg.Blank()
			record.SetPrimaryKey(id)
			if result := txn.Delete(record); result.Error != nil {
				slog.Error("sql error deleting record", "table", cfg.Name, "id", id, "error", result.Error)
				return CodedError(result.Error, http.StatusInternalServerError)
			}
			return nil
		})

		if err != nil {
			http.Error(w, err.Error(), GetResponseCode(err))
			return
		}

		slog.Info("deleted record", "table", cfg.Name, "id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// Filter handles GET /db/filter/{table}?column=...&query=... with a
// case-insensitive substring match on the stringified column value. The
// column name is checked against the registry before any sql is built.
func (s *RecordService) Filter(w http.ResponseWriter, r *http.Request) {
	table, err := utils.URLParam(r, "table")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, ok := s.tables[table]
	if !ok {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}

	column := r.URL.Query().Get("column")
	query := r.URL.Query().Get("query")
	if column == "" {
		http.Error(w, "missing 'column' query parameter", http.StatusBadRequest)
		return
	}

	if !cfg.HasColumn(column) {
		http.Error(w, "Unknown column for selected table", http.StatusBadRequest)
		return
	}

	condition := fmt.Sprintf("LOWER(CAST(%v AS TEXT)) LIKE ?", column)
	records, err := cfg.Find(s.db.Where(condition, "%"+strings.ToLower(query)+"%"))
	if err != nil {
		slog.Error("sql error filtering records", "table", table, "column", column, "error", err)
		http.Error(w, fmt.Sprintf("error filtering %v records: %v", table, err), http.StatusInternalServerError)
		return
	}

	s.cacheResult(w, cfg.Columns, records)
	utils.WriteJsonResponse(w, records)
}
