package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Account lifecycle
	ErrCodeDuplicateUser       ErrorCode = "DUPLICATE_USER"
	ErrCodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	ErrCodePendingApproval     ErrorCode = "PENDING_APPROVAL"
	ErrCodeRejectedAccount     ErrorCode = "REJECTED_ACCOUNT"
	ErrCodeRegistrationPending ErrorCode = "REGISTRATION_PENDING"

	// Media
	ErrCodeInvalidFileType ErrorCode = "INVALID_FILE_TYPE"
	ErrCodeFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
	ErrCodeUploadFailed    ErrorCode = "UPLOAD_FAILED"

	// Storage
	ErrCodeStorageQuotaExceeded ErrorCode = "STORAGE_QUOTA_EXCEEDED"
	ErrCodeInfrastructure       ErrorCode = "INFRASTRUCTURE_FAILURE"
)

// AppError is a typed application error carried across layers.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsBusiness reports whether the error is a business-rule outcome. Business
// errors are surfaced to the caller verbatim and never trigger the fallback
// to the secondary store.
func (e *AppError) IsBusiness() bool {
	switch e.Code {
	case ErrCodeDuplicateUser, ErrCodeInvalidCredentials, ErrCodePendingApproval,
		ErrCodeRejectedAccount, ErrCodeRegistrationPending, ErrCodeValidation,
		ErrCodeNotFound, ErrCodeUnauthorized, ErrCodeForbidden,
		ErrCodeInvalidFileType, ErrCodeFileTooLarge, ErrCodeStorageQuotaExceeded:
		return true
	}
	return false
}

func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound
}

func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeInfrastructure
}

// WithDetail attaches structured detail to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// AsAppError extracts an *AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NewDuplicateUser(mobile string) *AppError {
	return New(ErrCodeDuplicateUser, "User with this mobile number already exists").
		WithDetail("mobile", mobile)
}

func NewInvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, "Invalid mobile number or password")
}

func NewProfileTypeMismatch(actual string) *AppError {
	return New(ErrCodeInvalidCredentials,
		fmt.Sprintf("This account is registered as a %s. Please select the correct option.", actual)).
		WithDetail("registered_as", actual)
}

func NewPendingApproval() *AppError {
	return New(ErrCodePendingApproval, "Your account is pending approval. Please wait for admin approval.")
}

func NewRejectedAccount() *AppError {
	return New(ErrCodeRejectedAccount, "Your account has been rejected. Please contact admin.")
}

func NewRegistrationPending() *AppError {
	return New(ErrCodeRegistrationPending, "Registration received. Your account requires admin approval before login.")
}

func NewValidationError(field, message string) *AppError {
	return New(ErrCodeValidation, message).WithDetail("field", field)
}

func NewNotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func NewInvalidFileType(contentType string) *AppError {
	return New(ErrCodeInvalidFileType, "Please select a valid image file").
		WithDetail("content_type", contentType)
}

func NewFileTooLarge(sizeBytes int64, maxMB int) *AppError {
	return New(ErrCodeFileTooLarge,
		fmt.Sprintf("Image size must be less than %dMB. Current size: %.2fMB. The image will be compressed before upload.",
			maxMB, float64(sizeBytes)/1024/1024)).
		WithDetail("size_bytes", sizeBytes).
		WithDetail("max_mb", maxMB)
}

func NewUploadFailed(err error) *AppError {
	return Wrap(err, ErrCodeUploadFailed, "Failed to upload image")
}

func NewQuotaExceeded(sizeBytes int) *AppError {
	return New(ErrCodeStorageQuotaExceeded,
		fmt.Sprintf("Data too large to store (%.2fMB). Please reduce image size.",
			float64(sizeBytes)/1024/1024)).
		WithDetail("size_bytes", sizeBytes)
}

func NewInfrastructure(op string, err error) *AppError {
	return Wrap(err, ErrCodeInfrastructure, fmt.Sprintf("storage operation failed: %s", op)).
		WithDetail("operation", op)
}
