package project

import (
	perrors "github.com/textloom/loom/internal/project/errors"
)

// Standard errors returned by the project package. These re-export the
// shared vocabulary from internal/project/errors so that Workspace and its
// callers can compare against package-level names directly.
var (
	ErrNotOpen              = perrors.ErrNotOpen
	ErrAlreadyOpen          = perrors.ErrAlreadyOpen
	ErrNotFound             = perrors.ErrNotFound
	ErrNotInWorkspace       = perrors.ErrNotInWorkspace
	ErrIsDirectory          = perrors.ErrIsDirectory
	ErrNotDirectory         = perrors.ErrNotDirectory
	ErrAlreadyExists        = perrors.ErrAlreadyExists
	ErrReadOnly             = perrors.ErrReadOnly
	ErrFileTooLarge         = perrors.ErrFileTooLarge
	ErrBinaryFile           = perrors.ErrBinaryFile
	ErrDocumentNotOpen      = perrors.ErrDocumentNotOpen
	ErrDocumentDirty        = perrors.ErrDocumentDirty
	ErrIndexing             = perrors.ErrIndexing
	ErrWatcherFailed        = perrors.ErrWatcherFailed
	ErrEncodingUnsupported  = perrors.ErrEncodingUnsupported
)

// PathError represents an error associated with a file path.
type PathError = perrors.PathError

// NewPathError creates a new PathError.
func NewPathError(op, path string, err error) *PathError {
	return perrors.NewPathError(op, path, err)
}

// WorkspaceError represents an error related to workspace operations.
type WorkspaceError = perrors.WorkspaceError

// IndexError represents an error during indexing.
type IndexError = perrors.IndexError

// IsNotFound returns true if the error indicates a file was not found.
func IsNotFound(err error) bool { return perrors.IsNotFound(err) }

// IsNotInWorkspace returns true if the error indicates path is outside workspace.
func IsNotInWorkspace(err error) bool { return perrors.IsNotInWorkspace(err) }

// IsDirty returns true if the error indicates document has unsaved changes.
func IsDirty(err error) bool { return perrors.IsDirty(err) }
