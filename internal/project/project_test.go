package project

import (
	"context"
	"testing"
	"time"

	"github.com/textloom/loom/internal/project/vfs"
	"github.com/textloom/loom/internal/project/watcher"
)

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.IsOpen() {
		t.Error("new workspace should not be open")
	}
}

func TestNewWithConfig(t *testing.T) {
	cfg := Config{MaxFileSize: 1024}
	w := New(WithConfig(cfg))
	if w.config.MaxFileSize != 1024 {
		t.Errorf("expected MaxFileSize 1024, got %d", w.config.MaxFileSize)
	}
}

func TestNewWithVFS(t *testing.T) {
	memfs := vfs.NewMemFS()
	w := New(WithVFS(memfs))
	if w.vfs != memfs {
		t.Error("expected custom VFS to be used")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxFileSize <= 0 {
		t.Error("expected positive MaxFileSize")
	}
	if cfg.WatchDebounceDelay <= 0 {
		t.Error("expected positive WatchDebounceDelay")
	}
}

func TestWorkspace_OpenClose(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.MkdirAll("/workspace", 0755)

	w := New(WithVFS(memfs))
	ctx := context.Background()

	if err := w.Open(ctx, "/workspace"); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !w.IsOpen() {
		t.Error("expected workspace to be open")
	}
	if w.Root() != "/workspace" {
		t.Errorf("expected root '/workspace', got %q", w.Root())
	}

	if err := w.Open(ctx, "/workspace"); err != ErrAlreadyOpen {
		t.Errorf("expected ErrAlreadyOpen, got %v", err)
	}

	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if w.IsOpen() {
		t.Error("expected workspace to be closed")
	}

	if err := w.Close(ctx); err != ErrNotOpen {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
}

func TestWorkspace_OpenMissingRoot(t *testing.T) {
	memfs := vfs.NewMemFS()
	w := New(WithVFS(memfs))

	if err := w.Open(context.Background(), "/does-not-exist"); err == nil {
		t.Error("expected error opening a missing root")
	}
}

func TestWorkspace_IsInWorkspace(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.MkdirAll("/workspace", 0755)

	w := New(WithVFS(memfs))
	if err := w.Open(context.Background(), "/workspace"); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if !w.IsInWorkspace("/workspace/main.go") {
		t.Error("expected path inside workspace")
	}
	if w.IsInWorkspace("/other/main.go") {
		t.Error("expected path outside workspace")
	}
}

func TestWorkspace_FileOperations(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.MkdirAll("/workspace", 0755)
	memfs.WriteFile("/workspace/main.go", []byte("package main"), 0644)

	w := New(WithVFS(memfs))
	ctx := context.Background()
	if err := w.Open(ctx, "/workspace"); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer w.Close(ctx)

	doc, err := w.OpenFile(ctx, "/workspace/main.go")
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	if doc == nil {
		t.Fatal("expected document")
	}

	docs := w.OpenDocuments()
	if len(docs) != 1 {
		t.Errorf("expected 1 open document, got %d", len(docs))
	}

	if err := w.CloseFile(ctx, "/workspace/main.go"); err != nil {
		t.Fatalf("CloseFile() failed: %v", err)
	}
	if len(w.OpenDocuments()) != 0 {
		t.Error("expected no open documents after close")
	}
}

func TestWorkspace_CreateDeleteFile(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.MkdirAll("/workspace", 0755)

	w := New(WithVFS(memfs))
	ctx := context.Background()
	if err := w.Open(ctx, "/workspace"); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer w.Close(ctx)

	if err := w.CreateFile(ctx, "/workspace/new.go", []byte("package new")); err != nil {
		t.Fatalf("CreateFile() failed: %v", err)
	}
	if !memfs.Exists("/workspace/new.go") {
		t.Error("expected file to exist after CreateFile")
	}

	if err := w.DeleteFile(ctx, "/workspace/new.go"); err != nil {
		t.Fatalf("DeleteFile() failed: %v", err)
	}
	if memfs.Exists("/workspace/new.go") {
		t.Error("expected file to be removed after DeleteFile")
	}
}

func TestWorkspace_RenameFile(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.MkdirAll("/workspace", 0755)
	memfs.WriteFile("/workspace/old.go", []byte("package old"), 0644)

	w := New(WithVFS(memfs))
	ctx := context.Background()
	if err := w.Open(ctx, "/workspace"); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer w.Close(ctx)

	if err := w.RenameFile(ctx, "/workspace/old.go", "/workspace/renamed.go"); err != nil {
		t.Fatalf("RenameFile() failed: %v", err)
	}
	if memfs.Exists("/workspace/old.go") {
		t.Error("expected old path to be gone")
	}
	if !memfs.Exists("/workspace/renamed.go") {
		t.Error("expected renamed path to exist")
	}
}

func TestWorkspace_DirectoryOperations(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.MkdirAll("/workspace", 0755)

	w := New(WithVFS(memfs))
	ctx := context.Background()
	if err := w.Open(ctx, "/workspace"); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer w.Close(ctx)

	if err := w.CreateDirectory(ctx, "/workspace/sub"); err != nil {
		t.Fatalf("CreateDirectory() failed: %v", err)
	}
	if err := w.CreateFile(ctx, "/workspace/sub/a.go", []byte("package sub")); err != nil {
		t.Fatalf("CreateFile() failed: %v", err)
	}

	entries, err := w.ListDirectory(ctx, "/workspace/sub")
	if err != nil {
		t.Fatalf("ListDirectory() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}

	if err := w.DeleteDirectory(ctx, "/workspace/sub", true); err != nil {
		t.Fatalf("DeleteDirectory() failed: %v", err)
	}
	if memfs.Exists("/workspace/sub") {
		t.Error("expected directory to be removed")
	}
}

func TestWorkspace_NotOpenErrors(t *testing.T) {
	w := New(WithVFS(vfs.NewMemFS()))
	ctx := context.Background()

	if _, err := w.OpenFile(ctx, "/a.go"); err != ErrNotOpen {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
	if err := w.SaveFile(ctx, "/a.go"); err != ErrNotOpen {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
	if err := w.CreateDirectory(ctx, "/dir"); err != ErrNotOpen {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
}

func TestWorkspace_WatcherStatus(t *testing.T) {
	w := New(WithVFS(vfs.NewMemFS()))
	status := w.WatcherStatus()
	if status.WatchedPaths != 0 {
		t.Errorf("expected no watched paths before Open, got %d", status.WatchedPaths)
	}
}

func TestWorkspace_EventHandlers(t *testing.T) {
	w := New(WithVFS(vfs.NewMemFS()))

	var received []FileChangeEvent
	w.OnFileChange(func(ev FileChangeEvent) {
		received = append(received, ev)
	})

	w.handleWatchEvent(watcher.Event{
		Op:        watcher.OpWrite,
		Path:      "/workspace/main.go",
		Timestamp: time.Now(),
	})
	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Type != FileChangeModified {
		t.Errorf("expected FileChangeModified, got %v", received[0].Type)
	}
}

func TestFileChangeType(t *testing.T) {
	types := []FileChangeType{FileChangeCreated, FileChangeModified, FileChangeDeleted, FileChangeRenamed}
	for _, tp := range types {
		if tp < 0 {
			t.Errorf("unexpected negative FileChangeType %d", tp)
		}
	}
}

func TestWatcherStatus_Fields(t *testing.T) {
	status := WatcherStatus{
		WatchedPaths:  3,
		PendingEvents: 1,
		TotalEvents:   10,
		Errors:        0,
		StartTime:     time.Now(),
	}
	if status.WatchedPaths != 3 {
		t.Errorf("expected WatchedPaths 3, got %d", status.WatchedPaths)
	}
}

func TestFileChangeEvent_Fields(t *testing.T) {
	ev := FileChangeEvent{
		Type:      FileChangeModified,
		Path:      "/a.go",
		Timestamp: time.Now(),
	}
	if ev.Type != FileChangeModified {
		t.Error("expected FileChangeModified")
	}
	if ev.Path != "/a.go" {
		t.Errorf("expected path '/a.go', got %q", ev.Path)
	}
}
