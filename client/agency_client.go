// Package client is a Go façade over the agency platform http api, intended
// for desktop tooling. Every failure is reported as a single *ApiError.
package client

import "fmt"

// Record is a table row in serialized form.
type Record map[string]interface{}

type AgencyClient struct {
	baseUrl string

	// lastQueryId tracks the X-Query-Id header of the most recent read, the
	// csv export uses it so an export names the result the caller just saw.
	lastQueryId string
}

func New(baseUrl string) *AgencyClient {
	return &AgencyClient{baseUrl: baseUrl}
}

func (c *AgencyClient) get(endpoint string) *httpRequest {
	return newHttpRequest("GET", c.baseUrl, endpoint)
}

func (c *AgencyClient) post(endpoint string) *httpRequest {
	return newHttpRequest("POST", c.baseUrl, endpoint)
}

func (c *AgencyClient) put(endpoint string) *httpRequest {
	return newHttpRequest("PUT", c.baseUrl, endpoint)
}

func (c *AgencyClient) delete(endpoint string) *httpRequest {
	return newHttpRequest("DELETE", c.baseUrl, endpoint)
}

func (c *AgencyClient) Health() error {
	return c.get("/api/health").Do(nil)
}

func (c *AgencyClient) List(table string) ([]Record, error) {
	var records []Record
	err := c.get("/api/"+table).ResponseHeader("X-Query-Id", &c.lastQueryId).Do(&records)
	return records, err
}

func (c *AgencyClient) Get(table string, id int64) (Record, error) {
	var record Record
	err := c.get(fmt.Sprintf("/api/%v/%d", table, id)).ResponseHeader("X-Query-Id", &c.lastQueryId).Do(&record)
	return record, err
}

func (c *AgencyClient) Create(table string, fields Record) (Record, error) {
	var record Record
	err := c.post("/api/"+table).Json(fields).Do(&record)
	return record, err
}

func (c *AgencyClient) Update(table string, id int64, fields Record) (Record, error) {
	var record Record
	err := c.put(fmt.Sprintf("/api/%v/%d", table, id)).Json(fields).Do(&record)
	return record, err
}

func (c *AgencyClient) Delete(table string, id int64) error {
	return c.delete(fmt.Sprintf("/api/%v/%d", table, id)).Do(nil)
}

func (c *AgencyClient) Filter(table, column, query string) ([]Record, error) {
	var records []Record
	err := c.get("/api/db/filter/"+table).
		Param("column", column).
		Param("query", query).
		ResponseHeader("X-Query-Id", &c.lastQueryId).
		Do(&records)
	return records, err
}

type QueryResult struct {
	Rows     []Record `json:"rows"`
	Rowcount int64    `json:"rowcount"`
}

func (c *AgencyClient) Query(query string) (QueryResult, error) {
	var result QueryResult
	err := c.post("/api/db/query").
		Json(map[string]string{"query": query}).
		ResponseHeader("X-Query-Id", &c.lastQueryId).
		Do(&result)
	return result, err
}

// ExportCsv exports the most recent read performed through this client. The
// returned path is the file location on the server.
func (c *AgencyClient) ExportCsv(filename string) (string, error) {
	body := map[string]string{"filename": filename}
	if c.lastQueryId != "" {
		body["query_id"] = c.lastQueryId
	}

	var status struct {
		Message string `json:"message"`
		Path    string `json:"path"`
	}
	err := c.post("/api/db/csv").Json(body).Do(&status)
	return status.Path, err
}

func (c *AgencyClient) Backup(path, superuserPassword string) (string, error) {
	var status struct {
		Message string `json:"message"`
		Path    string `json:"path"`
	}
	err := c.post("/api/db/backup").
		Json(map[string]string{"path": path, "superuser_password": superuserPassword}).
		Do(&status)
	return status.Path, err
}

func (c *AgencyClient) Restore(path, superuserPassword string) error {
	return c.post("/api/db/restore").
		Json(map[string]string{"path": path, "superuser_password": superuserPassword}).
		Do(nil)
}

func (c *AgencyClient) ListBackups() ([]string, error) {
	var backups []string
	err := c.get("/api/db/backups").Do(&backups)
	return backups, err
}

func (c *AgencyClient) Link(leftTable string, leftId int64, rightTable string, rightId int64) error {
	return c.post(fmt.Sprintf("/api/%v/%d/%v/%d/add", leftTable, leftId, rightTable, rightId)).Do(nil)
}

func (c *AgencyClient) Unlink(leftTable string, leftId int64, rightTable string, rightId int64) error {
	return c.post(fmt.Sprintf("/api/%v/%d/%v/%d/remove", leftTable, leftId, rightTable, rightId)).Do(nil)
}
