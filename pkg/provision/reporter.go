package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// callbackBody is the wire format of the custom resource callback the
// orchestrator consumes.
type callbackBody struct {
	Status             Status            `json:"Status"`
	Reason             string            `json:"Reason"`
	PhysicalResourceID string            `json:"PhysicalResourceId"`
	StackID            string            `json:"StackId"`
	RequestID          string            `json:"RequestId"`
	LogicalResourceID  string            `json:"LogicalResourceId"`
	Data               map[string]string `json:"Data,omitempty"`
}

// HTTPReporter delivers the outcome callback by PUTting it to the
// pre-signed response URL carried in the event.
type HTTPReporter struct {
	client *http.Client
}

// ReporterOption configures the HTTPReporter.
type ReporterOption func(*HTTPReporter)

// WithHTTPClient sets the HTTP client used for the callback.
func WithHTTPClient(client *http.Client) ReporterOption {
	return func(r *HTTPReporter) {
		r.client = client
	}
}

// NewHTTPReporter creates a reporter with a bounded-timeout client.
func NewHTTPReporter(opts ...ReporterOption) *HTTPReporter {
	r := &HTTPReporter{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report implements Reporter.
func (r *HTTPReporter) Report(ctx context.Context, event Event, result Result) error {
	body, err := json.Marshal(callbackBody{
		Status:             result.Status,
		Reason:             result.Reason,
		PhysicalResourceID: event.physicalID(),
		StackID:            event.StackID,
		RequestID:          event.RequestID,
		LogicalResourceID:  event.LogicalResourceID,
		Data:               result.Data,
	})
	if err != nil {
		return ErrInternal("failed to marshal callback body").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, event.ResponseURL, bytes.NewReader(body))
	if err != nil {
		return ErrInternal("failed to build callback request").WithCause(err)
	}
	// The pre-signed URL is signed with an empty content type; setting one
	// makes the store reject the upload.
	req.Header.Set("Content-Type", "")
	req.ContentLength = int64(len(body))

	resp, err := r.client.Do(req)
	if err != nil {
		return ErrTransient("callback delivery failed").WithCause(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ErrTransient(fmt.Sprintf("callback rejected with status %d", resp.StatusCode))
	}
	return nil
}
