package core

// # Error Codes Reference
//
// User-facing error messages carry a code that can be quoted to support.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File missing: Catalog source file was not found
//	          Action: Upload the spreadsheet or check the data directory
//	FILE002 - Unreadable file: The spreadsheet could not be read
//	          Action: Save the file as .xlsx and upload it again
//	FILE003 - File too large: File exceeds the upload size limit
//	          Action: Remove unused sheets or split the catalog
//	FILE004 - No file: No file was provided
//	          Action: Attach a spreadsheet in the "file" form field
//
// # Catalog Errors (CAT001-CAT099)
//
//	CAT001 - Unknown catalog: The catalog key is not configured
//	CAT002 - Not loaded: The catalog is configured but has no data yet
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Invalid paging: page and page_size must be positive integers
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many uploads in progress
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logs for the technical error.
//
// Sentinel errors are matched first with errors.Is. Errors that only exist as
// text (from net/http or excelize) fall through to the pattern table, matched
// case-insensitively with strings.Contains; the first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgFileMissing = UserMessage{
		Message: "Catalog source file was not found",
		Action:  "Upload the spreadsheet or check the data directory",
		Code:    "FILE001",
	}
	msgLoadFailure = UserMessage{
		Message: "The spreadsheet could not be read",
		Action:  "Save the file as .xlsx and upload it again",
		Code:    "FILE002",
	}
	msgUnknownCatalog = UserMessage{
		Message: "Unknown catalog",
		Action:  "Check the catalog name in the URL",
		Code:    "CAT001",
	}
	msgNotLoaded = UserMessage{
		Message: "Catalog is not loaded",
		Action:  "Refresh the catalog once its file is in place",
		Code:    "CAT002",
	}
	msgInvalidPage = UserMessage{
		Message: "Invalid paging parameters",
		Action:  "Use positive whole numbers for page and page_size",
		Code:    "REQ001",
	}
	msgBusy = UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
)

type sentinelMessage struct {
	err error
	msg UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrFileMissing, msgFileMissing},
	{ErrLoadFailure, msgLoadFailure},
	{ErrUnknownCatalog, msgUnknownCatalog},
	{ErrCatalogNotLoaded, msgNotLoaded},
	{ErrInvalidPage, msgInvalidPage},
	{ErrTooManyUploads, msgBusy},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the upload size limit",
			Action:  "Remove unused sheets or split the catalog",
			Code:    "FILE003",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the upload size limit",
			Action:  "Remove unused sheets or split the catalog",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was provided",
			Action:  `Attach a spreadsheet in the "file" form field`,
			Code:    "FILE004",
		},
	},
	{
		pattern: "zip: not a valid zip file",
		msg:     msgLoadFailure,
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
//	msg := MapError(fmt.Errorf("refresh engines: %w", ErrFileMissing))
//	// msg.Code == "FILE001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
