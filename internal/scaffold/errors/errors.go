package errors

import (
	stdErrors "errors"
	"fmt"
)

// Operation identifies the scaffolding stage producing a contextual error.
type Operation string

const (
	// OperationInputGather denotes project input collection and validation.
	OperationInputGather Operation = "scaffold.input.gather"
	// OperationPrecondition denotes the template and destination checks performed before any mutation.
	OperationPrecondition Operation = "scaffold.precondition"
	// OperationTemplateCopy denotes the filtered template copy.
	OperationTemplateCopy Operation = "scaffold.template.copy"
	// OperationContentSubstitute denotes placeholder substitution across file contents.
	OperationContentSubstitute Operation = "scaffold.content.substitute"
	// OperationPathRename denotes placeholder renaming of files and directories.
	OperationPathRename Operation = "scaffold.path.rename"
	// OperationPackageRestructure denotes package directory restructuring.
	OperationPackageRestructure Operation = "scaffold.package.restructure"
	// OperationPlatformCleanup denotes removal of unselected platform subtrees.
	OperationPlatformCleanup Operation = "scaffold.platform.cleanup"
	// OperationManifestLoad denotes template manifest loading.
	OperationManifestLoad Operation = "scaffold.manifest.load"
	// OperationTailwindSetup denotes the optional Tailwind configuration stage.
	OperationTailwindSetup Operation = "scaffold.tailwind.setup"
)

// Sentinel describes a stable error code shared across scaffolding stages.
type Sentinel string

// Error returns the sentinel code string.
func (sentinel Sentinel) Error() string {
	return string(sentinel)
}

// Code exposes the sentinel code string.
func (sentinel Sentinel) Code() string {
	return string(sentinel)
}

// OperationError annotates an error with the stage and subject path that produced it.
type OperationError struct {
	operation Operation
	subject   string
	err       error
	message   string
}

// Error implements the error interface.
func (operationError OperationError) Error() string {
	if len(operationError.message) > 0 {
		return operationError.message
	}
	if len(operationError.subject) == 0 {
		return fmt.Sprintf("%s: %v", operationError.operation, operationError.err)
	}
	return fmt.Sprintf("%s[%s]: %v", operationError.operation, operationError.subject, operationError.err)
}

// Unwrap exposes the underlying error chain.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the originating operation identifier.
func (operationError OperationError) Operation() Operation {
	return operationError.operation
}

// Subject returns the path related to the error.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code surfaces the sentinel code of the wrapped error when present.
func (operationError OperationError) Code() string {
	if coder, found := findSentinel(operationError.err); found {
		return coder.Code()
	}
	return ""
}

// Message exposes the user-facing message when provided via WrapMessage.
func (operationError OperationError) Message() string {
	return operationError.message
}

// Wrap constructs an OperationError combining the provided metadata with the base sentinel.
func Wrap(operation Operation, subject string, sentinel Sentinel, detail error) error {
	if len(sentinel) == 0 {
		return OperationError{operation: operation, subject: subject, err: detail}
	}
	baseError := error(sentinel)
	if detail != nil {
		baseError = fmt.Errorf("%w: %w", sentinel, detail)
	}
	return OperationError{operation: operation, subject: subject, err: baseError}
}

// WrapMessage constructs an OperationError whose Error text is the provided user-facing message.
func WrapMessage(operation Operation, subject string, sentinel Sentinel, message string) error {
	if len(message) == 0 {
		return Wrap(operation, subject, sentinel, nil)
	}
	return OperationError{operation: operation, subject: subject, err: fmt.Errorf("%w: %s", sentinel, message), message: message}
}

// IsCancellation reports whether the error chain carries the cancellation sentinel.
func IsCancellation(err error) bool {
	return stdErrors.Is(err, ErrInputCancelled)
}

func findSentinel(err error) (Sentinel, bool) {
	if err == nil {
		return "", false
	}
	var sentinel Sentinel
	if stdErrors.As(err, &sentinel) {
		return sentinel, true
	}
	return "", false
}

var (
	// ErrTemplateMissing indicates the template directory does not exist.
	ErrTemplateMissing Sentinel = "template_missing"
	// ErrDestinationExists indicates the destination directory already exists.
	ErrDestinationExists Sentinel = "destination_exists"
	// ErrInputCancelled indicates the user aborted input gathering.
	ErrInputCancelled Sentinel = "input_cancelled"
	// ErrProjectNameInvalid indicates the project name failed validation.
	ErrProjectNameInvalid Sentinel = "project_name_invalid"
	// ErrPlatformsMissing indicates no platform was selected.
	ErrPlatformsMissing Sentinel = "platforms_missing"
	// ErrPlatformUnknown indicates an unsupported platform tag.
	ErrPlatformUnknown Sentinel = "platform_unknown"
	// ErrCopyFailed indicates the template copy failed.
	ErrCopyFailed Sentinel = "copy_failed"
	// ErrSubstitutionFailed indicates writing substituted content failed.
	ErrSubstitutionFailed Sentinel = "substitution_failed"
	// ErrRenameFailed indicates a filesystem rename failed.
	ErrRenameFailed Sentinel = "rename_failed"
	// ErrRestructureFailed indicates a package directory move failed.
	ErrRestructureFailed Sentinel = "restructure_failed"
	// ErrCleanupFailed indicates removing a platform subtree failed.
	ErrCleanupFailed Sentinel = "cleanup_failed"
	// ErrManifestInvalid indicates the template manifest could not be parsed.
	ErrManifestInvalid Sentinel = "manifest_invalid"
	// ErrTailwindSetupFailed indicates the Tailwind configuration stage failed.
	ErrTailwindSetupFailed Sentinel = "tailwind_setup_failed"
	// ErrFilesystemUnavailable indicates a missing filesystem dependency.
	ErrFilesystemUnavailable Sentinel = "filesystem_unavailable"
)
