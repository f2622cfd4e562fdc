package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidFill          ErrorCode = 102
	ErrCodeInvalidDate          ErrorCode = 103
	ErrCodeInvalidTime          ErrorCode = 104
	ErrCodeInvalidGroupMode     ErrorCode = 105
	ErrCodeMissingParameter     ErrorCode = 106

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound  ErrorCode = 200
	ErrCodeQueryFailed   ErrorCode = 201
	ErrCodeTradeNotFound ErrorCode = 202

	// Parse errors (300-399)
	ErrCodeParseFailed    ErrorCode = 300
	ErrCodeMissingHeader  ErrorCode = 301
	ErrCodeUnknownSide    ErrorCode = 302
	ErrCodeMalformedRow   ErrorCode = 303
	ErrCodeReportNotFound ErrorCode = 304

	// Reconstruction errors (400-499)
	ErrCodeReconstructFailed ErrorCode = 400
	ErrCodeEmptyDay          ErrorCode = 401

	// Storage errors (500-599)
	ErrCodeStoreUnavailable ErrorCode = 500
	ErrCodeStoreInitFailed  ErrorCode = 501
	ErrCodeUpsertFailed     ErrorCode = 502

	// Reconciliation errors (600-699)
	ErrCodeReconcileFailed ErrorCode = 600
)
