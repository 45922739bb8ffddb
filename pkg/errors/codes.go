package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeMessageQueue       ErrorCode = "COMMON_015"
)

// Short aliases.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeRateLimit    = ErrCodeTooManyRequests
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Insights Module Error Codes
const (
	ErrCodeInputInvalid         ErrorCode = "INS_001"
	ErrCodeExtractionFailed     ErrorCode = "INS_002"
	ErrCodeClusteringDegraded   ErrorCode = "INS_003"
	ErrCodeUpstreamTimeout      ErrorCode = "INS_004"
	ErrCodeStageFailed          ErrorCode = "INS_005"
	ErrCodeAnalysisTypeInvalid  ErrorCode = "INS_006"
	ErrCodeCaseStudyNotFound    ErrorCode = "INS_007"
	ErrCodeGraphExportFailed    ErrorCode = "INS_008"
	ErrCodeContentStoreFailed   ErrorCode = "INS_009"
	ErrCodeContentStoreDecoding ErrorCode = "INS_010"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeMessageQueue:       http.StatusInternalServerError,

	ErrCodeInputInvalid:         http.StatusBadRequest,
	ErrCodeExtractionFailed:     http.StatusUnprocessableEntity,
	ErrCodeClusteringDegraded:   http.StatusOK,
	ErrCodeUpstreamTimeout:      http.StatusGatewayTimeout,
	ErrCodeStageFailed:          http.StatusInternalServerError,
	ErrCodeAnalysisTypeInvalid:  http.StatusBadRequest,
	ErrCodeCaseStudyNotFound:    http.StatusNotFound,
	ErrCodeGraphExportFailed:    http.StatusBadGateway,
	ErrCodeContentStoreFailed:   http.StatusBadGateway,
	ErrCodeContentStoreDecoding: http.StatusBadGateway,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeMessageQueue:       "message queue error",

	ErrCodeInputInvalid:         "invalid or empty corpus",
	ErrCodeExtractionFailed:     "outcome extraction failed",
	ErrCodeClusteringDegraded:   "clustering degraded",
	ErrCodeUpstreamTimeout:      "content store timed out",
	ErrCodeStageFailed:          "analysis stage failed",
	ErrCodeAnalysisTypeInvalid:  "unsupported analysis type",
	ErrCodeCaseStudyNotFound:    "case study not found",
	ErrCodeGraphExportFailed:    "knowledge graph export failed",
	ErrCodeContentStoreFailed:   "content store request failed",
	ErrCodeContentStoreDecoding: "failed to decode content store response",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
