// Package app provides the main application structure and coordination.
package app

import (
	"context"
	"path/filepath"
	"time"
)

// SaveDocument saves the active document to disk.
func (app *Application) SaveDocument() error {
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}

	if doc.IsScratch() {
		return ErrNoFilePath
	}

	if doc.ReadOnly {
		return ErrReadOnly
	}

	// Get document content
	content := doc.Content()

	// Write to file
	if err := app.documents.fs.WriteFile(doc.Path, []byte(content), 0644); err != nil {
		return &FileError{Op: "save", Path: doc.Path, Err: err}
	}

	// Clear modified flag
	doc.SetModified(false)

	return nil
}

// SaveDocumentAs saves the active document to a new path.
func (app *Application) SaveDocumentAs(path string) error {
	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}

	// Get document content
	content := doc.Content()

	// Write to file
	if err := app.documents.fs.WriteFile(path, []byte(content), 0644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}

	// Update document path and name
	doc.Path = path
	doc.Name = pathBase(path)
	doc.SetModified(false)

	return nil
}

// CloseDocument closes the specified document.
// Returns ErrUnsavedChanges if document has unsaved changes and force is false.
func (app *Application) CloseDocument(doc *Document, force bool) error {
	if doc == nil {
		return ErrNoActiveDocument
	}

	if doc.IsModified() && !force {
		return ErrUnsavedChanges
	}

	// Close LSP document if needed
	if doc.IsLSPOpened() && app.lsp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		app.lsp.CloseDocument(ctx, doc.Path)
	}

	// Remove from document manager
	var key string
	if doc.IsScratch() {
		// Find scratch key
		for k, d := range app.documents.documents {
			if d == doc {
				key = k
				break
			}
		}
	} else {
		key = doc.Path
	}

	if key != "" {
		return app.documents.Close(key)
	}

	return nil
}

// CloseActiveDocument closes the active document.
func (app *Application) CloseActiveDocument(force bool) error {
	return app.CloseDocument(app.documents.Active(), force)
}

// OpenFile opens a file and creates a document for it.
func (app *Application) OpenFile(path string) (*Document, error) {
	// Use document manager to open
	doc, err := app.documents.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}

	// Notify LSP if available
	if app.lsp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		// OpenDocument takes (ctx, path, content) - languageID is detected internally
		if err := app.lsp.OpenDocument(ctx, doc.Path, doc.Content()); err != nil {
			// Non-fatal, continue without LSP
			_ = err
		} else {
			doc.SetLSPOpened(true)
		}
	}

	return doc, nil
}

// Quit initiates application shutdown.
// Returns ErrUnsavedChanges if there are unsaved changes and force is false.
func (app *Application) Quit(force bool) error {
	if !force && app.documents.HasDirty() {
		return ErrUnsavedChanges
	}

	app.Shutdown()
	return nil
}

// ForceQuit forces immediate shutdown, discarding unsaved changes.
func (app *Application) ForceQuit() {
	app.Shutdown()
}

// ConfirmQuit checks if quit is safe (no unsaved changes).
func (app *Application) ConfirmQuit() bool {
	return !app.documents.HasDirty()
}

// pathBase returns the base name of a path.
func pathBase(path string) string {
	return filepath.Base(path)
}

// FileError represents a file operation error.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return e.Op + " " + e.Path
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ErrNoFilePath indicates the document has no file path.
var ErrNoFilePath = &FileError{Op: "save", Err: errNoPath}

var errNoPath = constError("no file path")

// ErrReadOnly indicates the document is read-only.
var ErrReadOnly = constError("document is read-only")

// constError is a simple constant error type.
type constError string

func (e constError) Error() string { return string(e) }

