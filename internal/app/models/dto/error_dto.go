package dto

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_002"
	ErrorCodeForbidden          ErrorCode = "AUTH_003"
	ErrorCodeTokenExpired       ErrorCode = "AUTH_004"
	ErrorCodeTokenInvalid       ErrorCode = "AUTH_005"

	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeResourceExists   ErrorCode = "RES_002"
	ErrorCodeConflict         ErrorCode = "RES_003"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeDatabaseError  ErrorCode = "SRV_002"
)

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
