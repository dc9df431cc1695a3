package project

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/textloom/loom/internal/project/filestore"
	"github.com/textloom/loom/internal/project/vfs"
	"github.com/textloom/loom/internal/project/watcher"
)

// Workspace is the file read/write boundary for an open editor workspace.
// It wires a VFS, a FileStore for open-document lifecycle, and an optional
// watcher for externally-made changes together behind a single root path.
type Workspace struct {
	mu sync.RWMutex

	vfs       vfs.VFS
	fileStore *filestore.FileStore
	watcher   watcher.Watcher

	root   string
	open   bool
	config Config

	fileChangeHandlers []func(FileChangeEvent)
}

// Config holds workspace configuration.
type Config struct {
	// MaxFileSize is the maximum file size to open (bytes).
	MaxFileSize int64

	// WatchDebounceDelay is the delay for debouncing file watch events.
	WatchDebounceDelay time.Duration

	// ExcludePatterns are glob patterns to exclude from watching.
	ExcludePatterns []string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxFileSize:        10 * 1024 * 1024, // 10MB
		WatchDebounceDelay: 100 * time.Millisecond,
		ExcludePatterns: []string{
			"**/.git/**",
			"**/node_modules/**",
			"**/vendor/**",
		},
	}
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithConfig sets the workspace configuration.
func WithConfig(cfg Config) Option {
	return func(w *Workspace) {
		w.config = cfg
	}
}

// WithVFS sets a custom VFS implementation.
func WithVFS(v vfs.VFS) Option {
	return func(w *Workspace) {
		w.vfs = v
	}
}

// WithWatcher sets a custom watcher implementation.
func WithWatcher(wtc watcher.Watcher) Option {
	return func(w *Workspace) {
		w.watcher = wtc
	}
}

// New creates a new Workspace with the given options.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.vfs == nil {
		w.vfs = vfs.NewOSFS()
	}

	return w
}

// Open opens a workspace rooted at the given path.
func (w *Workspace) Open(ctx context.Context, root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open {
		return ErrAlreadyOpen
	}

	absRoot, err := w.vfs.Abs(root)
	if err != nil {
		return &WorkspaceError{Root: root, Err: err}
	}
	if !w.vfs.IsDir(absRoot) {
		return &WorkspaceError{Root: root, Err: ErrNotDirectory}
	}

	w.fileStore = filestore.NewFileStoreWithOptions(w.vfs, filestore.WithMaxFileSize(w.config.MaxFileSize))
	w.root = absRoot

	if w.watcher == nil {
		fsWatcher, err := watcher.NewFSNotifyWatcher()
		if err == nil {
			w.watcher = watcher.NewDebouncedWatcher(fsWatcher, w.config.WatchDebounceDelay)
		}
	}

	if w.watcher != nil {
		if err := w.watcher.WatchRecursive(w.root); err == nil {
			go w.processWatcherEvents(ctx)
		}
	}

	w.open = true
	return nil
}

// Close closes the workspace, stopping the watcher and flushing open
// documents that were not explicitly saved.
func (w *Workspace) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.open {
		return ErrNotOpen
	}

	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
	}

	if w.fileStore != nil {
		_ = w.fileStore.CloseAll(ctx, true)
	}

	w.root = ""
	w.open = false
	return nil
}

// IsOpen returns true if the workspace is open.
func (w *Workspace) IsOpen() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.open
}

// Root returns the workspace root path.
func (w *Workspace) Root() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.root
}

// IsInWorkspace returns true if the path is within the workspace root.
func (w *Workspace) IsInWorkspace(path string) bool {
	w.mu.RLock()
	root := w.root
	w.mu.RUnlock()

	if root == "" {
		return false
	}
	abs, err := w.vfs.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// FileStore returns the underlying document store.
func (w *Workspace) FileStore() *filestore.FileStore {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fileStore
}

// OpenFile opens a file and returns its Document.
func (w *Workspace) OpenFile(ctx context.Context, path string) (*filestore.Document, error) {
	store, err := w.store()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, path)
}

// SaveFile saves an open document to disk.
func (w *Workspace) SaveFile(ctx context.Context, path string) error {
	store, err := w.store()
	if err != nil {
		return err
	}
	return store.Save(ctx, path)
}

// SaveFileAs saves a document to a new path.
func (w *Workspace) SaveFileAs(ctx context.Context, oldPath, newPath string) error {
	store, err := w.store()
	if err != nil {
		return err
	}
	return store.SaveAs(ctx, oldPath, newPath)
}

// CloseFile closes an open document without saving.
func (w *Workspace) CloseFile(ctx context.Context, path string) error {
	store, err := w.store()
	if err != nil {
		return err
	}
	return store.Close(ctx, path, false)
}

// ReloadFile reloads a file from disk, discarding in-memory edits.
func (w *Workspace) ReloadFile(ctx context.Context, path string) error {
	store, err := w.store()
	if err != nil {
		return err
	}
	return store.Reload(ctx, path, false)
}

// CreateFile creates a new file with the given content.
func (w *Workspace) CreateFile(ctx context.Context, path string, content []byte) error {
	store, err := w.store()
	if err != nil {
		return err
	}
	_, err = store.CreateFile(ctx, path, content)
	return err
}

// DeleteFile deletes a file, closing it first if open.
func (w *Workspace) DeleteFile(ctx context.Context, path string) error {
	store, err := w.store()
	if err != nil {
		return err
	}
	return store.DeleteFile(ctx, path, true)
}

// RenameFile renames a file, closing it first if open.
func (w *Workspace) RenameFile(ctx context.Context, oldPath, newPath string) error {
	store, err := w.store()
	if err != nil {
		return err
	}
	return store.RenameFile(ctx, oldPath, newPath)
}

// CreateDirectory creates a directory, including any missing parents.
func (w *Workspace) CreateDirectory(ctx context.Context, path string) error {
	fs, err := w.fs()
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(path, 0755); err != nil {
		return NewPathError("mkdir", path, err)
	}
	return nil
}

// DeleteDirectory deletes a directory, recursively if requested.
func (w *Workspace) DeleteDirectory(ctx context.Context, path string, recursive bool) error {
	fs, err := w.fs()
	if err != nil {
		return err
	}
	var opErr error
	if recursive {
		opErr = fs.RemoveAll(path)
	} else {
		opErr = fs.Remove(path)
	}
	if opErr != nil {
		return NewPathError("rmdir", path, opErr)
	}
	return nil
}

// ListDirectory lists the entries of a directory.
func (w *Workspace) ListDirectory(ctx context.Context, path string) ([]vfs.FileInfo, error) {
	fs, err := w.fs()
	if err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(path)
	if err != nil {
		return nil, NewPathError("readdir", path, err)
	}
	return entries, nil
}

// OpenDocuments returns all currently open documents.
func (w *Workspace) OpenDocuments() []*filestore.Document {
	w.mu.RLock()
	store := w.fileStore
	w.mu.RUnlock()
	if store == nil {
		return nil
	}
	return store.OpenDocuments()
}

// GetDocument returns an open document by path.
func (w *Workspace) GetDocument(path string) (*filestore.Document, bool) {
	w.mu.RLock()
	store := w.fileStore
	w.mu.RUnlock()
	if store == nil {
		return nil, false
	}
	return store.Get(path)
}

// IsDirty returns true if the document has unsaved changes.
func (w *Workspace) IsDirty(path string) bool {
	w.mu.RLock()
	store := w.fileStore
	w.mu.RUnlock()
	if store == nil {
		return false
	}
	return store.IsDirty(path)
}

// DirtyDocuments returns all documents with unsaved changes.
func (w *Workspace) DirtyDocuments() []*filestore.Document {
	w.mu.RLock()
	store := w.fileStore
	w.mu.RUnlock()
	if store == nil {
		return nil
	}
	return store.DirtyDocuments()
}

// OnFileChange registers a handler invoked when the watcher observes an
// external file system change under the workspace root.
func (w *Workspace) OnFileChange(handler func(FileChangeEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fileChangeHandlers = append(w.fileChangeHandlers, handler)
}

// WatcherStatus returns the current watcher status.
func (w *Workspace) WatcherStatus() WatcherStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.watcher == nil {
		return WatcherStatus{}
	}

	stats := w.watcher.Stats()
	return WatcherStatus{
		WatchedPaths:  stats.WatchedPaths,
		PendingEvents: stats.PendingEvents,
		TotalEvents:   stats.TotalEvents,
		Errors:        stats.Errors,
		LastError:     stats.LastError,
		StartTime:     stats.StartTime,
	}
}

// store returns the open workspace's file store, or ErrNotOpen.
func (w *Workspace) store() (*filestore.FileStore, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.open {
		return nil, ErrNotOpen
	}
	return w.fileStore, nil
}

// fs returns the open workspace's VFS, or ErrNotOpen.
func (w *Workspace) fs() (vfs.VFS, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.open {
		return nil, ErrNotOpen
	}
	return w.vfs, nil
}

// processWatcherEvents processes file system events from the watcher.
func (w *Workspace) processWatcherEvents(ctx context.Context) {
	w.mu.RLock()
	wtc := w.watcher
	w.mu.RUnlock()
	if wtc == nil {
		return
	}

	events := wtc.Events()
	errs := wtc.Errors()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.handleWatchEvent(event)
		case _, ok := <-errs:
			if !ok {
				return
			}
		}
	}
}

// handleWatchEvent dispatches a single watcher event to registered handlers.
func (w *Workspace) handleWatchEvent(event watcher.Event) {
	var changeType FileChangeType
	switch {
	case event.Op.Has(watcher.OpCreate):
		changeType = FileChangeCreated
	case event.Op.Has(watcher.OpWrite):
		changeType = FileChangeModified
	case event.Op.Has(watcher.OpRemove):
		changeType = FileChangeDeleted
	case event.Op.Has(watcher.OpRename):
		changeType = FileChangeRenamed
	default:
		return
	}

	changeEvent := FileChangeEvent{
		Type:      changeType,
		Path:      event.Path,
		Timestamp: event.Timestamp,
	}

	w.mu.RLock()
	handlers := make([]func(FileChangeEvent), len(w.fileChangeHandlers))
	copy(handlers, w.fileChangeHandlers)
	w.mu.RUnlock()

	for _, h := range handlers {
		h(changeEvent)
	}
}

// FileChangeEvent represents a file system change observed by the watcher.
type FileChangeEvent struct {
	Type      FileChangeType
	Path      string
	OldPath   string // For renames
	Timestamp time.Time
}

// FileChangeType indicates the type of file change.
type FileChangeType int

const (
	FileChangeCreated FileChangeType = iota
	FileChangeModified
	FileChangeDeleted
	FileChangeRenamed
)

// WatcherStatus provides watcher status information.
type WatcherStatus struct {
	WatchedPaths  int
	PendingEvents int
	TotalEvents   int64
	Errors        int64
	LastError     error
	StartTime     time.Time
}
