package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ApiError is the single error type every façade call reduces to. Status is
// the http status code, or 0 when the request never reached the server.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("status %d: %v", e.Status, e.Message)
}

func apiErrorf(format string, args ...interface{}) *ApiError {
	return &ApiError{Message: fmt.Sprintf(format, args...)}
}

type httpRequest struct {
	method      string
	baseUrl     string
	endpoint    string
	queryParams map[string]string
	json        interface{}
	body        io.Reader

	captureHeader string
	capturedInto  *string
}

func newHttpRequest(method, baseUrl, endpoint string) *httpRequest {
	return &httpRequest{
		method:   method,
		baseUrl:  baseUrl,
		endpoint: endpoint,
	}
}

func (r *httpRequest) Json(data interface{}) *httpRequest {
	r.json = data
	return r
}

func (r *httpRequest) Param(key, value string) *httpRequest {
	if r.queryParams == nil {
		r.queryParams = make(map[string]string)
	}
	r.queryParams[key] = value
	return r
}

// ResponseHeader copies the named response header into dest after a
// successful request.
func (r *httpRequest) ResponseHeader(key string, dest *string) *httpRequest {
	r.captureHeader = key
	r.capturedInto = dest
	return r
}

// Do sends the request and parses the response body into result, passing
// nil indicates that no result is expected. Any failure is an *ApiError.
func (r *httpRequest) Do(result interface{}) error {
	fullEndpoint, err := url.JoinPath(r.baseUrl, r.endpoint)
	if err != nil {
		return apiErrorf("error formatting url for endpoint %v: %v", r.endpoint, err)
	}

	if r.json != nil {
		body := new(bytes.Buffer)
		err := json.NewEncoder(body).Encode(r.json)
		if err != nil {
			return apiErrorf("error encoding json body for endpoint %v: %v", r.endpoint, err)
		}
		r.body = body
	}

	req, err := http.NewRequest(r.method, fullEndpoint, r.body)
	if err != nil {
		return apiErrorf("error creating %v request for endpoint %v: %v", r.method, r.endpoint, err)
	}

	if r.queryParams != nil {
		query := req.URL.Query()
		for k, v := range r.queryParams {
			query.Add(k, v)
		}
		req.URL.RawQuery = query.Encode()
	}

	start := time.Now()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return apiErrorf("error sending %v request to endpoint %v: %v", r.method, r.endpoint, err)
	}
	defer res.Body.Close()

	slog.Debug("agency client", "method", r.method, "endpoint", r.endpoint, "status", res.StatusCode, "duration", time.Since(start).String())

	if res.StatusCode < 200 || res.StatusCode > 299 {
		content, err := io.ReadAll(res.Body)
		if err != nil {
			return &ApiError{Status: res.StatusCode, Message: fmt.Sprintf("%v request to endpoint %v failed", r.method, r.endpoint)}
		}
		return &ApiError{Status: res.StatusCode, Message: string(bytes.TrimSpace(content))}
	}

	if r.capturedInto != nil {
		*r.capturedInto = res.Header.Get(r.captureHeader)
	}

	if result != nil {
		err := json.NewDecoder(res.Body).Decode(result)
		if err != nil {
			return apiErrorf("error parsing %v response from endpoint %v: %v", r.method, r.endpoint, err)
		}
	}

	return nil
}
