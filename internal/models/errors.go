package models

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user declines the confirmation
// prompt. It maps to exit code 0, not a failure.
var ErrCancelled = errors.New("installation cancelled")

/**
 * PreflightError - a required external tool is missing or too old
 * @property {string} Tool - Tool kind ("node", "docker", "docker daemon", "compose")
 * @property {string} Found - Version actually found (empty when the tool is absent)
 * @property {string} Required - Constraint that was not met
 */
type PreflightError struct {
	Tool     string
	Found    string
	Required string
}

func (e *PreflightError) Error() string {
	if e.Found == "" {
		if e.Required != "" {
			return fmt.Sprintf("%s is required but was not found (need %s)", e.Tool, e.Required)
		}
		return fmt.Sprintf("%s is required but was not found", e.Tool)
	}
	return fmt.Sprintf("%s version %s does not satisfy %s", e.Tool, e.Found, e.Required)
}

// ValidationError - a required prompt was left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// ReleaseResolutionError - the releases API response carried no usable tag.
type ReleaseResolutionError struct {
	Repository string
	Err        error
}

func (e *ReleaseResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not resolve latest release of %s: %v", e.Repository, e.Err)
	}
	return fmt.Sprintf("could not resolve latest release of %s: no tag_name in response", e.Repository)
}

func (e *ReleaseResolutionError) Unwrap() error { return e.Err }

/**
 * DownloadError - the artifact fetch failed
 * @property {string} URL - Full download URL, kept so the user can retry by hand
 * @property {int} Status - HTTP status code (0 on transport errors)
 */
type DownloadError struct {
	URL    string
	Status int
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download of %s failed with status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("download of %s failed: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ExtractionError - the downloaded archive could not be unpacked.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction of %s failed: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

/**
 * ProvisionError - a provisioning step after download failed
 * @property {string} Step - Pipeline step name ("store migration", "compose up", ...)
 * @property {string} Output - Tail of the failing command's captured output
 */
type ProvisionError struct {
	Step   string
	Output string
	Err    error
}

func (e *ProvisionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed: %v\n%s", e.Step, e.Err, e.Output)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }
