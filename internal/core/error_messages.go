// Package core provides the catalog curation logic for transiting exoplanets.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// The CLI prints the mapped message and the HTTP API returns it in the error body.
//
// Error codes are grouped by category:
//
// # Source Errors (SRC001-SRC099)
//
// Errors related to obtaining and parsing the archive snapshot:
//
//	SRC001 - Source unavailable: No archive snapshot could be obtained
//	         Action: Check ARCHIVE_URL and network access, or place a snapshot at ARCHIVE_CACHE_PATH
//	         Patterns: "source unavailable"
//
//	SRC002 - Empty snapshot: The archive snapshot has no header row
//	         Action: Delete the cached snapshot and run exopop fetch
//	         Patterns: "empty file"
//
//	SRC003 - Unreadable snapshot: The archive snapshot is not a bar-delimited table
//	         Action: Delete the cached snapshot and run exopop fetch
//	         Patterns: "invalid table header", "invalid table row"
//
// # Schema Errors (SCH001-SCH099)
//
//	SCH001 - Missing column: A required archive column is absent
//	         Action: Check that the archive query requests every required column
//	         Patterns: "missing required column"
//
//	SCH002 - Unknown column: The requested column does not exist
//	         Action: Use one of the canonical numeric column names
//	         Patterns: "unknown column"
//
// # Subset Errors (SUB001-SUB099)
//
//	SUB001 - Unknown subset: No subset is registered under this key
//	         Action: Run exopop subsets to list the available keys
//	         Patterns: "unknown subset"
//
//	SUB002 - Survey labels: The survey label file could not be used
//	         Action: Check CATALOG_SURVEYS_FILE
//	         Patterns: "survey labels"
//
// # Cache Errors (CACHE001)
//
//	CACHE001 - Cache failure: The standard-table cache could not be used
//	           Action: Check CATALOG_CACHE_DIR or rebuild with --refresh
//	           Patterns: "parquet cache"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Not configured: No database is configured for publishing
//	        Action: Set DATABASE_URL
//	        Patterns: "database not configured"
//
//	DB002 - Connection refused: Unable to connect to database
//	        Action: Please try again in a few moments
//	        Patterns: "connection refused"
//
//	DB003 - Duplicate snapshot: This snapshot was already published
//	        Action: Rebuild with --refresh to publish a new snapshot
//	        Patterns: "duplicate key", "violates unique"
//
//	DB004 - Timeout: Operation timed out
//	        Action: Please try again later
//	        Patterns: "timeout", "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Check the logs for the underlying error
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones. Multiple patterns can map to the same code
// (e.g., SRC003 matches both "invalid table header" and "invalid table row").
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters:
//   - Source errors come first because they wrap network causes
//   - Multiple patterns can map to the same error code
var errorPatterns = []errorPattern{
	// =========================================================================
	// Source Errors (SRC001-SRC003)
	// =========================================================================
	{
		pattern: "source unavailable",
		msg: UserMessage{
			Message: "No archive snapshot could be obtained",
			Action:  "Check ARCHIVE_URL and network access, or place a snapshot at ARCHIVE_CACHE_PATH",
			Code:    "SRC001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The archive snapshot is empty",
			Action:  "Delete the cached snapshot and run exopop fetch",
			Code:    "SRC002",
		},
	},
	{
		pattern: "invalid table header",
		msg: UserMessage{
			Message: "The archive snapshot is not a bar-delimited table",
			Action:  "Delete the cached snapshot and run exopop fetch",
			Code:    "SRC003",
		},
	},
	{
		pattern: "invalid table row",
		msg: UserMessage{
			Message: "The archive snapshot is not a bar-delimited table",
			Action:  "Delete the cached snapshot and run exopop fetch",
			Code:    "SRC003",
		},
	},

	// =========================================================================
	// Schema Errors (SCH001-SCH002)
	// =========================================================================
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required archive column is absent",
			Action:  "Check that the archive query requests every required column",
			Code:    "SCH001",
		},
	},
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "The requested column does not exist",
			Action:  "Use one of the canonical numeric column names",
			Code:    "SCH002",
		},
	},

	// =========================================================================
	// Subset Errors (SUB001-SUB002)
	// =========================================================================
	{
		pattern: "unknown subset",
		msg: UserMessage{
			Message: "No subset is registered under this key",
			Action:  "Run exopop subsets to list the available keys",
			Code:    "SUB001",
		},
	},
	{
		pattern: "survey labels",
		msg: UserMessage{
			Message: "The survey label file could not be used",
			Action:  "Check CATALOG_SURVEYS_FILE",
			Code:    "SUB002",
		},
	},

	// =========================================================================
	// Cache Errors (CACHE001)
	// =========================================================================
	{
		pattern: "parquet cache",
		msg: UserMessage{
			Message: "The standard-table cache could not be used",
			Action:  "Check CATALOG_CACHE_DIR or rebuild with --refresh",
			Code:    "CACHE001",
		},
	},

	// =========================================================================
	// Database Errors (DB001-DB004)
	// =========================================================================
	{
		pattern: "database not configured",
		msg: UserMessage{
			Message: "No database is configured for publishing",
			Action:  "Set DATABASE_URL",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB002",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "This snapshot was already published",
			Action:  "Rebuild with --refresh to publish a new snapshot",
			Code:    "DB003",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "This snapshot was already published",
			Action:  "Rebuild with --refresh to publish a new snapshot",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB004",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// This is the fallback for unexpected errors. Support staff should check
// application logs for the original technical error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for the underlying error",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	err := fmt.Errorf("select tess: %w", ErrUnknownSubset)
//	msg := MapError(err)
//	// msg.Code == "SUB001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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
//
// Example output: "No subset is registered under this key (Code: SUB001). Run exopop subsets to list the available keys"
//
// This is the primary function for displaying errors to end users.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
// Use this to decide whether to show the raw error or the mapped user message.
//
// Example:
//
//	if IsUserFacing(err) {
//	    showToUser(FormatUserError(err))
//	} else {
//	    log.Error(err) // Log technical error
//	    showToUser("An unexpected error occurred.")
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging while providing a clean message for users.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// The returned UserError preserves the original technical error for logging via Unwrap(),
// while providing a clean user message via Error().
//
// Returns nil if err is nil.
//
// Example:
//
//	ue := NewUserError(err)
//	log.Error(ue.Technical)          // Log original error
//	fmt.Println(ue.Error())           // Show "No subset is registered under this key"
//	fmt.Println(ue.User.Code)         // Show "SUB001"
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
