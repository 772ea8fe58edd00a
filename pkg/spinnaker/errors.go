package spinnaker

import (
	"errors"
	"fmt"
)

// ErrorCode is a spinError value returned by the C API.
type ErrorCode int32

// Error codes from SpinnakerDefsC.h.
const (
	ErrCodeSuccess            ErrorCode = 0
	ErrCodeError              ErrorCode = -1001
	ErrCodeNotInitialized     ErrorCode = -1002
	ErrCodeNotImplemented     ErrorCode = -1003
	ErrCodeResourceInUse      ErrorCode = -1004
	ErrCodeAccessDenied       ErrorCode = -1005
	ErrCodeInvalidHandle      ErrorCode = -1006
	ErrCodeInvalidID          ErrorCode = -1007
	ErrCodeNoData             ErrorCode = -1008
	ErrCodeInvalidParameter   ErrorCode = -1009
	ErrCodeIO                 ErrorCode = -1010
	ErrCodeTimeout            ErrorCode = -1011
	ErrCodeAbort              ErrorCode = -1012
	ErrCodeInvalidBuffer      ErrorCode = -1013
	ErrCodeNotAvailable       ErrorCode = -1014
	ErrCodeInvalidAddress     ErrorCode = -1015
	ErrCodeBufferTooSmall     ErrorCode = -1016
	ErrCodeInvalidIndex       ErrorCode = -1017
	ErrCodeParsingChunkData   ErrorCode = -1018
	ErrCodeInvalidValue       ErrorCode = -1019
	ErrCodeResourceExhausted  ErrorCode = -1020
	ErrCodeOutOfMemory        ErrorCode = -1021
	ErrCodeBusy               ErrorCode = -1022
	ErrCodeGenICamInvalidArg  ErrorCode = -2001
	ErrCodeGenICamOutOfRange  ErrorCode = -2002
	ErrCodeGenICamProperty    ErrorCode = -2003
	ErrCodeGenICamRunTime     ErrorCode = -2004
	ErrCodeGenICamLogical     ErrorCode = -2005
	ErrCodeGenICamAccess      ErrorCode = -2006
	ErrCodeGenICamTimeout     ErrorCode = -2007
	ErrCodeGenICamDynamicCast ErrorCode = -2008
	ErrCodeGenICamGeneric     ErrorCode = -2009
	ErrCodeGenICamBadAlloc    ErrorCode = -2010
)

var errorCodeNames = map[ErrorCode]string{
	ErrCodeSuccess:            "SPINNAKER_ERR_SUCCESS",
	ErrCodeError:              "SPINNAKER_ERR_ERROR",
	ErrCodeNotInitialized:     "SPINNAKER_ERR_NOT_INITIALIZED",
	ErrCodeNotImplemented:     "SPINNAKER_ERR_NOT_IMPLEMENTED",
	ErrCodeResourceInUse:      "SPINNAKER_ERR_RESOURCE_IN_USE",
	ErrCodeAccessDenied:       "SPINNAKER_ERR_ACCESS_DENIED",
	ErrCodeInvalidHandle:      "SPINNAKER_ERR_INVALID_HANDLE",
	ErrCodeInvalidID:          "SPINNAKER_ERR_INVALID_ID",
	ErrCodeNoData:             "SPINNAKER_ERR_NO_DATA",
	ErrCodeInvalidParameter:   "SPINNAKER_ERR_INVALID_PARAMETER",
	ErrCodeIO:                 "SPINNAKER_ERR_IO",
	ErrCodeTimeout:            "SPINNAKER_ERR_TIMEOUT",
	ErrCodeAbort:              "SPINNAKER_ERR_ABORT",
	ErrCodeInvalidBuffer:      "SPINNAKER_ERR_INVALID_BUFFER",
	ErrCodeNotAvailable:       "SPINNAKER_ERR_NOT_AVAILABLE",
	ErrCodeInvalidAddress:     "SPINNAKER_ERR_INVALID_ADDRESS",
	ErrCodeBufferTooSmall:     "SPINNAKER_ERR_BUFFER_TOO_SMALL",
	ErrCodeInvalidIndex:       "SPINNAKER_ERR_INVALID_INDEX",
	ErrCodeParsingChunkData:   "SPINNAKER_ERR_PARSING_CHUNK_DATA",
	ErrCodeInvalidValue:       "SPINNAKER_ERR_INVALID_VALUE",
	ErrCodeResourceExhausted:  "SPINNAKER_ERR_RESOURCE_EXHAUSTED",
	ErrCodeOutOfMemory:        "SPINNAKER_ERR_OUT_OF_MEMORY",
	ErrCodeBusy:               "SPINNAKER_ERR_BUSY",
	ErrCodeGenICamInvalidArg:  "GENICAM_ERR_INVALID_ARGUMENT",
	ErrCodeGenICamOutOfRange:  "GENICAM_ERR_OUT_OF_RANGE",
	ErrCodeGenICamProperty:    "GENICAM_ERR_PROPERTY",
	ErrCodeGenICamRunTime:     "GENICAM_ERR_RUN_TIME",
	ErrCodeGenICamLogical:     "GENICAM_ERR_LOGICAL",
	ErrCodeGenICamAccess:      "GENICAM_ERR_ACCESS",
	ErrCodeGenICamTimeout:     "GENICAM_ERR_TIMEOUT",
	ErrCodeGenICamDynamicCast: "GENICAM_ERR_DYNAMIC_CAST",
	ErrCodeGenICamGeneric:     "GENICAM_ERR_GENERIC",
	ErrCodeGenICamBadAlloc:    "GENICAM_ERR_BAD_ALLOCATION",
}

// String returns the C constant name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("spinError(%d)", int32(c))
}

// Error is a failed Spinnaker C API call.
type Error struct {
	Func    string    // C function that failed
	Code    ErrorCode // Status returned by the call
	Message string    // Last error message reported by the library
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Code)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Func, e.Message, e.Code)
}

// IsTimeout reports whether err is a Spinnaker acquisition timeout.
func IsTimeout(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == ErrCodeTimeout || e.Code == ErrCodeGenICamTimeout
}

// check converts a spinError return value into an error.
func check(fn string, code int32) error {
	if code == int32(ErrCodeSuccess) {
		return nil
	}
	return &Error{
		Func:    fn,
		Code:    ErrorCode(code),
		Message: lastErrorMessage(),
	}
}
