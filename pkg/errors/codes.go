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

// Common error codes shared by every layer.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTimeout            ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeCacheError         ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeNotImplemented     ErrorCode = "COMMON_009"
)

// Graph model error codes.  These cover construction-time invariant
// violations; once a Graph or Pattern has been built it can no longer
// produce any of them.
const (
	ErrCodeGraphDanglingEdge  ErrorCode = "GRAPH_001"
	ErrCodeGraphDuplicateEdge ErrorCode = "GRAPH_002"
	ErrCodeGraphSelfLoop      ErrorCode = "GRAPH_003"
	ErrCodeGraphEmpty         ErrorCode = "GRAPH_004"
	ErrCodeGraphTooLarge      ErrorCode = "GRAPH_005"
)

// Matching and common-subgraph search error codes.
const (
	ErrCodeMatchInvalidInput   ErrorCode = "MATCH_001"
	ErrCodeMCSIncompatibleKind ErrorCode = "MCS_001"
	ErrCodeMCSInvalidBudget    ErrorCode = "MCS_002"
)

// Boundary adapter error codes (parsers, identifier hashing, property
// calculation, rendering).
const (
	ErrCodeSMILESInvalid  ErrorCode = "ADP_001"
	ErrCodeSMARTSInvalid  ErrorCode = "ADP_002"
	ErrCodeSDFInvalid     ErrorCode = "ADP_003"
	ErrCodeFormatUnknown  ErrorCode = "ADP_004"
	ErrCodeRenderFailed   ErrorCode = "ADP_005"
	ErrCodeElementUnknown ErrorCode = "ADP_006"
)

// Aliases kept short for the most frequently used codes.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes for the HTTP layer.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeGraphDanglingEdge:  http.StatusBadRequest,
	ErrCodeGraphDuplicateEdge: http.StatusBadRequest,
	ErrCodeGraphSelfLoop:      http.StatusBadRequest,
	ErrCodeGraphEmpty:         http.StatusBadRequest,
	ErrCodeGraphTooLarge:      http.StatusRequestEntityTooLarge,

	ErrCodeMatchInvalidInput:   http.StatusBadRequest,
	ErrCodeMCSIncompatibleKind: http.StatusBadRequest,
	ErrCodeMCSInvalidBudget:    http.StatusBadRequest,

	ErrCodeSMILESInvalid:  http.StatusBadRequest,
	ErrCodeSMARTSInvalid:  http.StatusBadRequest,
	ErrCodeSDFInvalid:     http.StatusBadRequest,
	ErrCodeFormatUnknown:  http.StatusBadRequest,
	ErrCodeRenderFailed:   http.StatusInternalServerError,
	ErrCodeElementUnknown: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTimeout:            "operation timed out",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeGraphDanglingEdge:  "edge references an out-of-range vertex index",
	ErrCodeGraphDuplicateEdge: "duplicate edge between the same vertex pair",
	ErrCodeGraphSelfLoop:      "self-loop edges are not allowed",
	ErrCodeGraphEmpty:         "graph has no vertices",
	ErrCodeGraphTooLarge:      "graph exceeds the configured size limit",

	ErrCodeMatchInvalidInput:   "invalid matcher input",
	ErrCodeMCSIncompatibleKind: "unsupported common-subgraph kind",
	ErrCodeMCSInvalidBudget:    "invalid search budget",

	ErrCodeSMILESInvalid:  "invalid SMILES string",
	ErrCodeSMARTSInvalid:  "invalid SMARTS pattern",
	ErrCodeSDFInvalid:     "invalid SDF/MOL record",
	ErrCodeFormatUnknown:  "unknown molecule format",
	ErrCodeRenderFailed:   "structure rendering failed",
	ErrCodeElementUnknown: "unknown element symbol",
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

// ModuleForCode returns the module prefix of an ErrorCode ("GRAPH", "MCS", ...).
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
