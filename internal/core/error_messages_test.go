package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "wrapped missing file",
			err:         fmt.Errorf("load engines: %w: data/engines.xlsx", ErrFileMissing),
			wantCode:    "FILE001",
			wantMessage: "Catalog source file was not found",
		},
		{
			name:        "wrapped load failure",
			err:         fmt.Errorf("load engines: %w: bad sheet", ErrLoadFailure),
			wantCode:    "FILE002",
			wantMessage: "The spreadsheet could not be read",
		},
		{
			name:        "unknown catalog",
			err:         fmt.Errorf("%w: pistons", ErrUnknownCatalog),
			wantCode:    "CAT001",
			wantMessage: "Unknown catalog",
		},
		{
			name:        "not loaded",
			err:         fmt.Errorf("%w: filters", ErrCatalogNotLoaded),
			wantCode:    "CAT002",
			wantMessage: "Catalog is not loaded",
		},
		{
			name:        "invalid page",
			err:         fmt.Errorf("%w: page=0", ErrInvalidPage),
			wantCode:    "REQ001",
			wantMessage: "Invalid paging parameters",
		},
		{
			name:        "too many uploads",
			err:         ErrTooManyUploads,
			wantCode:    "UPL002",
			wantMessage: "System is busy processing other uploads",
		},
		{
			name:        "body too large",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE003",
			wantMessage: "File exceeds the upload size limit",
		},
		{
			name:        "no file",
			err:         errors.New("no file provided"),
			wantCode:    "FILE004",
			wantMessage: "No file was provided",
		},
		{
			name:        "zip error from workbook parser",
			err:         errors.New("zip: not a valid zip file"),
			wantCode:    "FILE002",
			wantMessage: "The spreadsheet could not be read",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("RATE LIMIT hit"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(fmt.Errorf("refresh: %w", ErrFileMissing))

	expected := "Catalog source file was not found (Code: FILE001). Upload the spreadsheet or check the data directory"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}
