package middleware

import (
	"bytes"         // Buffer for restoring the request body
	"encoding/json" // JSON encoding of audit records
	"io"            // Reading the raw request body
	"net/http"      // Header types
	"net/url"       // Query parameter types
	"os"            // Append-only log file
	"strings"       // Separator line construction
	"sync"          // Serializing writes to the log file
	"time"          // ISO-8601 timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request identifiers
	"github.com/sirupsen/logrus" // Logging library
)

// auditRecord is one appended entry in the request audit log
type auditRecord struct {
	RequestID   string         `json:"request_id"`   // Unique id of this request
	Method      string         `json:"method"`       // HTTP method
	URI         string         `json:"uri"`          // Request URI including query string
	FullURL     string         `json:"full_url"`     // Scheme, host and URI combined
	IP          string         `json:"ip"`           // Client IP address
	UserAgent   string         `json:"user_agent"`   // Client user agent
	Headers     http.Header    `json:"headers"`      // All request headers
	QueryParams url.Values     `json:"query_params"` // Parsed query parameters
	Body        string         `json:"body"`         // Raw request body
	FormData    map[string]any `json:"form_data"`    // Parsed body fields merged with query params
	Time        string         `json:"time"`         // ISO-8601 timestamp
}

// Auditor appends one record per inbound request to an append-only log
// file. Records are never overwritten or rotated here.
type Auditor struct {
	mu  sync.Mutex // Serializes appends so records never interleave
	out *os.File   // The append-only log file
}

// NewAuditor opens (or creates) the audit log file in append mode
func NewAuditor(path string) (*Auditor, error) {
	// Open the file append-only so existing records are never clobbered
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err // Propagate the open failure to the caller
	}
	return &Auditor{out: f}, nil // Return the auditor instance
}

// Close releases the underlying log file
func (a *Auditor) Close() error {
	return a.out.Close() // Close the file handle
}

// Middleware records every request before handing it to the next handler.
// The request body is consumed for the record and restored for downstream
// handlers.
func (a *Auditor) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)                 // Capture the raw body
		c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))  // Restore it for the handler
		formData := make(map[string]any)                     // Parsed fields for the record
		_ = json.Unmarshal(raw, &formData)                   // Best effort: bodies here are JSON
		// Merge query parameters in, mirroring how form data is reported
		for k, v := range c.Request.URL.Query() {
			if len(v) == 1 {
				formData[k] = v[0] // Single value parameters stay scalar
			} else {
				formData[k] = v // Repeated parameters keep the slice
			}
		}
		// Derive the scheme for the full URL
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		// Assemble the audit record
		record := auditRecord{
			RequestID:   uuid.NewString(),                            // Unique request id
			Method:      c.Request.Method,                            // HTTP method
			URI:         c.Request.RequestURI,                        // Request URI
			FullURL:     scheme + "://" + c.Request.Host + c.Request.RequestURI, // Full URL
			IP:          c.ClientIP(),                                // Client IP
			UserAgent:   c.Request.UserAgent(),                       // User agent
			Headers:     c.Request.Header,                            // All headers
			QueryParams: c.Request.URL.Query(),                       // Query parameters
			Body:        string(raw),                                 // Raw body
			FormData:    formData,                                    // Parsed fields
			Time:        time.Now().Format(time.RFC3339),             // ISO-8601 timestamp
		}
		c.Set("requestID", record.RequestID) // Expose the request id downstream
		// Append the record; an audit write failure must not fail the request
		if err := a.append(record); err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": record.RequestID, // Request id of the lost record
				"error":      err.Error(),      // Error message
			}).Error("Failed to append audit record") // Log the append failure
		}
		c.Next() // Proceed to the next handler
	}
}

// append writes one pretty-printed record plus a separator line
func (a *Auditor) append(record auditRecord) error {
	b, err := json.MarshalIndent(record, "", "    ") // Pretty-print the record
	if err != nil {
		return err // Return error if marshaling fails
	}
	entry := append(b, []byte("\n"+strings.Repeat("-", 80)+"\n")...) // Record plus separator
	a.mu.Lock()                                                      // One record at a time
	defer a.mu.Unlock()                                              // Release after the write
	_, err = a.out.Write(entry)                                      // Single write per record
	return err
}
