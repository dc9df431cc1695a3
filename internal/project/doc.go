// Package project provides the file read/write boundary for an open
// workspace: a virtual file system, a document store for open-file
// lifecycle, and a debounced watcher for externally-made changes.
//
// # Architecture
//
// The package is organized around these core components:
//
//   - Workspace: root path plus the wiring between VFS, FileStore, and Watcher
//   - vfs.VFS: virtual file system abstraction for file I/O
//   - filestore.FileStore: open-document lifecycle (open, save, dirty tracking)
//   - watcher.Watcher: debounced file system change detection
//
// # Quick Start
//
// Open a workspace and work with files:
//
//	ws := project.New()
//	if err := ws.Open(ctx, "/path/to/workspace"); err != nil {
//	    log.Fatal(err)
//	}
//	defer ws.Close(ctx)
//
//	doc, err := ws.OpenFile(ctx, "/path/to/workspace/main.go")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Virtual File System
//
// The VFS abstraction allows swapping the underlying file system:
//
//	osfs := vfs.NewOSFS()
//	memfs := vfs.NewMemFS() // for testing
//
// # File Watching
//
// The watcher detects external file changes:
//
//	ws.OnFileChange(func(event project.FileChangeEvent) {
//	    switch event.Type {
//	    case project.FileChangeModified:
//	        // Handle external modification
//	    case project.FileChangeDeleted:
//	        // Handle deletion
//	    }
//	})
//
// # Integration Points
//
// The project package integrates with:
//   - Dispatcher: file/project actions (open, save, create, rename)
//   - LSP: workspace root for language servers
//   - Event Bus: file change notifications
//
// # Thread Safety
//
// Workspace and its components are safe for concurrent use. Individual
// VFS implementations document their own concurrency guarantees.
package project
