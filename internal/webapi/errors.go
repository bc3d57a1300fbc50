package webapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RequestFailed describes a non-2xx response from the RDFMap web API. The
// message is the raw response body when the server sent one, otherwise a
// generic "HTTP {status}" marker.
type RequestFailed struct {
	Status int
	Body   string
}

func (e *RequestFailed) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// IsNotFound reports whether err is a RequestFailed with status 404.
func IsNotFound(err error) bool {
	var reqErr *RequestFailed
	return errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound
}
