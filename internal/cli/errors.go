// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, display and exit codes for sysview commands.
//
// Handlers always return errors and never exit. main decides how an
// error is displayed and which exit code it maps to.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/sysview/internal/config"
	"github.com/jeranaias/sysview/internal/theme"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file, setting or theme error
	ExitConfigError = 3
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "render", "doctor")
	Action  string // Action being performed (e.g., "flush", "encode")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// ReportedError is an error whose details were already written to
// stdout, for example a doctor run in JSON mode. It is not displayed
// again but still decides the exit code.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to stderr, or a JSON error envelope to stdout
// in JSON mode.
func DisplayError(err error, jsonMode bool) {
	displayError(os.Stderr, os.Stdout, err, jsonMode)
}

func displayError(stderr, stdout io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	var reported *ReportedError
	if errors.As(err, &reported) {
		return
	}

	if jsonMode {
		displayErrorJSON(stdout, err)
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("Error:"), err.Error())
}

// displayErrorJSON writes the error envelope with structured details when
// the error carries them.
func displayErrorJSON(w io.Writer, err error) {
	output := map[string]any{
		"success": false,
		"error":   err.Error(),
	}

	var (
		cmdErr   *CommandError
		valErr   *ValidationError
		cfgErrs  config.ValidateErrors
		themeErr *theme.ConfigError
	)
	switch {
	case errors.As(err, &valErr):
		output["error_type"] = "validation_error"
		output["field"] = valErr.Field
		output["value"] = valErr.Value
		output["reason"] = valErr.Reason
		if valErr.Example != "" {
			output["example"] = valErr.Example
		}
	case errors.As(err, &cfgErrs):
		output["error_type"] = "config_error"
		fields := make([]map[string]string, 0, len(cfgErrs))
		for _, e := range cfgErrs {
			fields = append(fields, map[string]string{"field": e.Field, "message": e.Message})
		}
		output["fields"] = fields
	case errors.As(err, &themeErr):
		output["error_type"] = "theme_error"
		output["theme"] = themeErr.Theme
		output["field"] = themeErr.Field
		output["reason"] = themeErr.Reason
	case errors.As(err, &cmdErr):
		output["error_type"] = "command_error"
		output["command"] = cmdErr.Command
		output["action"] = cmdErr.Action
		output["reason"] = cmdErr.Reason
		if cmdErr.Err != nil {
			output["underlying_error"] = cmdErr.Err.Error()
		}
	default:
		output["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output)
}

// HandleErrorAndExit displays an error and exits with an appropriate exit code.
func HandleErrorAndExit(err error, jsonMode bool) {
	if err == nil {
		return
	}

	DisplayError(err, jsonMode)
	os.Exit(GetExitCode(err))
}

// GetExitCode determines the exit code for an error:
//   - ExitUsageError (2): ValidationError
//   - ExitConfigError (3): config validation, theme and config file errors
//   - ExitGeneralError (1): everything else, including grid.ErrNothingDrawn
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var (
		cfgErrs  config.ValidateErrors
		cfgErr   config.ValidationError
		themeErr *theme.ConfigError
		parseErr toml.ParseError
		cmdErr   *CommandError
	)
	if errors.As(err, &cfgErrs) || errors.As(err, &cfgErr) ||
		errors.As(err, &themeErr) || errors.As(err, &parseErr) ||
		errors.Is(err, theme.ErrThemeNotFound) {
		return ExitConfigError
	}
	if errors.As(err, &cmdErr) && cmdErr.Command == "config" && cmdErr.Action == "load" {
		return ExitConfigError
	}

	return ExitGeneralError
}
