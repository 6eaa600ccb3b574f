package services

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"agency_platform/agency/querycache"
	"agency_platform/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DatabaseService covers the operator escape hatches: raw sql execution and
// CSV export of a cached query result. The query endpoint performs no input
// sanitization whatsoever, it exists for trusted operators and must be gated
// at the deployment layer.
type DatabaseService struct {
	db     *gorm.DB
	cache  *querycache.Cache
	csvDir string
}

type sqlQueryRequest struct {
	Query string `json:"query"`
}

// returnsRows classifies a statement by its leading keyword. database/sql
// has no equivalent of a returns_rows flag, so a CTE that wraps a mutation
// is misclassified; acceptable for an operator-only endpoint.
func returnsRows(query string) bool {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "select", "with", "show", "explain", "values", "pragma":
		return true
	}
	return false
}

func scanRows(rows *sql.Rows) ([]string, []map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	data := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			value := values[i]
			if raw, ok := value.([]byte); ok {
				value = string(raw)
			}
			row[col] = value
		}
		data = append(data, row)
	}

	return columns, data, rows.Err()
}

func (s *DatabaseService) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	var params sqlQueryRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if !returnsRows(params.Query) {
		result := s.db.Exec(params.Query)
		if result.Error != nil {
			http.Error(w, result.Error.Error(), http.StatusBadRequest)
			return
		}

		s.cache.Clear()
		slog.Info("executed raw statement", "rowcount", result.RowsAffected)
		utils.WriteJsonResponse(w, map[string]interface{}{"rowcount": result.RowsAffected})
		return
	}

	rows, err := s.db.Raw(params.Query).Rows()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer rows.Close()

	columns, data, err := scanRows(rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token := s.cache.Put(querycache.Result{Columns: columns, Rows: data})
	w.Header().Set("X-Query-Id", token.String())

	slog.Info("executed raw query", "rows", len(data))
	utils.WriteJsonResponse(w, map[string]interface{}{"rows": data})
}

type csvRequest struct {
	Filename string `json:"filename"`
	QueryId  string `json:"query_id"`
}

func (s *DatabaseService) lookupResult(params csvRequest) (querycache.Result, error) {
	if params.QueryId != "" {
		token, err := uuid.Parse(params.QueryId)
		if err != nil {
			return querycache.Result{}, CodedError(fmt.Errorf("invalid query_id '%v'", params.QueryId), http.StatusBadRequest)
		}
		res, ok := s.cache.Get(token)
		if !ok {
			return querycache.Result{}, CodedError(errors.New("unknown or expired query_id"), http.StatusBadRequest)
		}
		return res, nil
	}

	res, ok := s.cache.Latest()
	if !ok {
		return querycache.Result{}, CodedError(errors.New("No query executed or result is empty"), http.StatusBadRequest)
	}
	return res, nil
}

func formatCsvValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (s *DatabaseService) ExportCsv(w http.ResponseWriter, r *http.Request) {
	// The request body is optional, an empty body exports the most recent
	// result under the default filename.
	var params csvRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("error parsing request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := s.lookupResult(params)
	if err != nil {
		http.Error(w, err.Error(), GetResponseCode(err))
		return
	}
	if len(result.Rows) == 0 {
		http.Error(w, "No query executed or result is empty", http.StatusBadRequest)
		return
	}

	filename := params.Filename
	if filename == "" {
		filename = "last_query.csv"
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		http.Error(w, "Filename cannot be empty", http.StatusBadRequest)
		return
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	if err := os.MkdirAll(s.csvDir, 0755); err != nil {
		slog.Error("error creating csv export directory", "dir", s.csvDir, "error", err)
		http.Error(w, fmt.Sprintf("error creating export directory: %v", err), http.StatusInternalServerError)
		return
	}

	target := filepath.Join(s.csvDir, filename)
	file, err := os.Create(target)
	if err != nil {
		slog.Error("error creating csv file", "path", target, "error", err)
		http.Error(w, fmt.Sprintf("error creating csv file: %v", err), http.StatusInternalServerError)
		return
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(result.Columns); err != nil {
		http.Error(w, fmt.Sprintf("error writing csv header: %v", err), http.StatusInternalServerError)
		return
	}
	for _, row := range result.Rows {
		line := make([]string, 0, len(result.Columns))
		for _, col := range result.Columns {
			line = append(line, formatCsvValue(row[col]))
		}
		if err := writer.Write(line); err != nil {
			http.Error(w, fmt.Sprintf("error writing csv row: %v", err), http.StatusInternalServerError)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, fmt.Sprintf("error writing csv file: %v", err), http.StatusInternalServerError)
		return
	}

	slog.Info("saved query result to csv", "path", target, "rows", len(result.Rows))
	utils.WriteJsonResponse(w, statusResponse{Message: "CSV saved", Path: target})
}
