package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// maxReasonLength caps the body excerpt used when no error reason is found.
const maxReasonLength = 200

// StatusError is a non-success HTTP response from the engine.
type StatusError struct {
	StatusCode int
	Reason     string
	kind       error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: %d %s", e.kind, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns the domain error for the status class.
func (e *StatusError) Unwrap() error {
	return e.kind
}

// NewStatusError classifies a non-success status code.
// 401 and 403 mean the credentials were rejected.
func NewStatusError(statusCode int, body []byte) *StatusError {
	kind := domain.ErrUnexpectedStatus
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		kind = domain.ErrAuthInvalid
	}
	return &StatusError{
		StatusCode: statusCode,
		Reason:     errorReason(body),
		kind:       kind,
	}
}

// DecodeInfo turns an info response into ServerInfo or a classified error.
func DecodeInfo(statusCode int, body io.Reader) (*domain.ServerInfo, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrMalformedResponse, err)
	}

	if statusCode < 200 || statusCode > 299 {
		return nil, NewStatusError(statusCode, data)
	}

	return domain.ParseServerInfo(data)
}

// errorBody is the error envelope shared by Elasticsearch and OpenSearch.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// errorReason extracts error.reason, falling back to a trimmed body excerpt.
func errorReason(body []byte) string {
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var detail errorDetail
		if err := json.Unmarshal(envelope.Error, &detail); err == nil && detail.Reason != "" {
			return detail.Reason
		}
		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil && plain != "" {
			return plain
		}
	}

	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > maxReasonLength {
		excerpt = excerpt[:maxReasonLength] + "..."
	}
	return excerpt
}
