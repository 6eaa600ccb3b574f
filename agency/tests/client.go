package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrServer     = errors.New("server error")
)

func statusError(status int, content string) error {
	var sentinel error
	switch status {
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusInternalServerError:
		sentinel = ErrServer
	default:
		return fmt.Errorf("unexpected status %d, content '%v'", status, content)
	}
	return fmt.Errorf("%w: %v", sentinel, content)
}

type httpTestRequest struct {
	api http.Handler

	method   string
	endpoint string
	query    map[string]string
	json     interface{}
	body     io.Reader

	captureHeader string
	capturedInto  *string
}

func newHttpTestRequest(api http.Handler, method, endpoint string) *httpTestRequest {
	return &httpTestRequest{api: api, method: method, endpoint: endpoint}
}

func (r *httpTestRequest) Json(data interface{}) *httpTestRequest {
	r.json = data
	return r
}

func (r *httpTestRequest) Param(key, value string) *httpTestRequest {
	if r.query == nil {
		r.query = make(map[string]string)
	}
	r.query[key] = value
	return r
}

func (r *httpTestRequest) ResponseHeader(key string, dest *string) *httpTestRequest {
	r.captureHeader = key
	r.capturedInto = dest
	return r
}

// response body will be parsed into result, passing nil indicates that no
// result is expected.
func (r *httpTestRequest) Do(result interface{}) error {
	if r.json != nil {
		body := new(bytes.Buffer)
		err := json.NewEncoder(body).Encode(r.json)
		if err != nil {
			return fmt.Errorf("error encoding json body for endpoint %v: %w", r.endpoint, err)
		}
		r.body = body
	}

	req := httptest.NewRequest(r.method, r.endpoint, r.body)
	if r.query != nil {
		q := req.URL.Query()
		for k, v := range r.query {
			q.Add(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	w := httptest.NewRecorder()

	r.api.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return statusError(res.StatusCode, w.Body.String())
	}

	if r.capturedInto != nil {
		*r.capturedInto = res.Header.Get(r.captureHeader)
	}

	if result != nil {
		err := json.NewDecoder(res.Body).Decode(result)
		if err != nil {
			return fmt.Errorf("error parsing %v response from endpoint %v: %w", r.method, r.endpoint, err)
		}
	}

	return nil
}

type client struct {
	api http.Handler

	lastQueryId string
}

func (c *client) Get(endpoint string) *httpTestRequest {
	return newHttpTestRequest(c.api, "GET", endpoint)
}

func (c *client) Post(endpoint string) *httpTestRequest {
	return newHttpTestRequest(c.api, "POST", endpoint)
}

func (c *client) Put(endpoint string) *httpTestRequest {
	return newHttpTestRequest(c.api, "PUT", endpoint)
}

func (c *client) Delete(endpoint string) *httpTestRequest {
	return newHttpTestRequest(c.api, "DELETE", endpoint)
}

type record = map[string]interface{}

func recordId(rec record) int64 {
	id, ok := rec["id"].(float64)
	if !ok {
		return -1
	}
	return int64(id)
}

func (c *client) createRecord(table string, fields record) (record, error) {
	var created record
	err := c.Post("/api/"+table).Json(fields).Do(&created)
	return created, err
}

func (c *client) getRecord(table string, id int64) (record, error) {
	var rec record
	err := c.Get(fmt.Sprintf("/api/%v/%d", table, id)).
		ResponseHeader("X-Query-Id", &c.lastQueryId).
		Do(&rec)
	return rec, err
}

func (c *client) listRecords(table string) ([]record, error) {
	var records []record
	err := c.Get("/api/"+table).
		ResponseHeader("X-Query-Id", &c.lastQueryId).
		Do(&records)
	return records, err
}

func (c *client) updateRecord(table string, id int64, fields record) (record, error) {
	var updated record
	err := c.Put(fmt.Sprintf("/api/%v/%d", table, id)).Json(fields).Do(&updated)
	return updated, err
}

func (c *client) deleteRecord(table string, id int64) error {
	return c.Delete(fmt.Sprintf("/api/%v/%d", table, id)).Do(nil)
}

func (c *client) filterRecords(table, column, query string) ([]record, error) {
	var records []record
	err := c.Get("/api/db/filter/"+table).
		Param("column", column).
		Param("query", query).
		ResponseHeader("X-Query-Id", &c.lastQueryId).
		Do(&records)
	return records, err
}

func (c *client) execQuery(query string) (record, error) {
	var result record
	err := c.Post("/api/db/query").
		Json(record{"query": query}).
		ResponseHeader("X-Query-Id", &c.lastQueryId).
		Do(&result)
	return result, err
}

type exportStatus struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

func (c *client) exportCsv(body record) (exportStatus, error) {
	var status exportStatus
	req := c.Post("/api/db/csv")
	if body != nil {
		req = req.Json(body)
	}
	err := req.Do(&status)
	return status, err
}

func (c *client) backup(path, password string) (exportStatus, error) {
	var status exportStatus
	err := c.Post("/api/db/backup").
		Json(record{"path": path, "superuser_password": password}).
		Do(&status)
	return status, err
}

func (c *client) restore(path, password string) (exportStatus, error) {
	var status exportStatus
	err := c.Post("/api/db/restore").
		Json(record{"path": path, "superuser_password": password}).
		Do(&status)
	return status, err
}

func (c *client) link(left string, leftId int64, right string, rightId int64) error {
	return c.Post(fmt.Sprintf("/api/%v/%d/%v/%d/add", left, leftId, right, rightId)).Do(nil)
}

func (c *client) unlink(left string, leftId int64, right string, rightId int64) error {
	return c.Post(fmt.Sprintf("/api/%v/%d/%v/%d/remove", left, leftId, right, rightId)).Do(nil)
}
