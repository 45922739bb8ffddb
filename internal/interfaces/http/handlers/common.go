package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/turtacn/Resilience-Insights/internal/interfaces/http/middleware"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      errors.ErrorCode `json:"code"`
	Message   string           `json:"message"`
	Detail    string           `json:"detail,omitempty"`
	RequestID string           `json:"requestId,omitempty"`
}

// writeAppError maps err to a status via its code. Errors without a code are
// reported as internal. Detail is only exposed when debug is set.
func writeAppError(c *gin.Context, err error, debug bool) {
	resp := ErrorResponse{RequestID: middleware.ContextGetRequestID(c.Request.Context())}

	var ae *errors.AppError
	if errors.As(err, &ae) {
		resp.Code = ae.Code
		resp.Message = ae.Message
		if debug {
			resp.Detail = ae.Detail
		}
	} else {
		resp.Code = errors.ErrCodeInternal
		resp.Message = errors.DefaultMessageForCode(errors.ErrCodeInternal)
		if debug {
			resp.Detail = err.Error()
		}
	}

	_ = c.Error(err)
	c.JSON(errors.HTTPStatusForCode(resp.Code), resp)
}

// decodeBody reads at most maxBytes of JSON into dest. An empty body leaves
// dest untouched. Unknown fields are rejected.
func decodeBody(c *gin.Context, dest any, maxBytes int64) error {
	body := c.Request.Body
	if body == nil {
		return nil
	}
	if maxBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, maxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errors.InvalidParam("request body too large")
		}
		return errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read request body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return errors.InvalidParam("malformed request body").WithDetail(err.Error())
	}
	return nil
}

//Personal.AI order the ending
