// Package project provides the handler for dispatcher integration.
package project

import (
	"context"
	"strings"

	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	"github.com/textloom/loom/internal/input"
)

// Handler provides workspace and file operations as dispatcher actions.
// It implements the NamespaceHandler interface to handle all "project.*" actions.
type Handler struct {
	workspace *Workspace
	actions   map[string]func(action input.Action, ctx *execctx.ExecutionContext) handler.Result
	priority  int
}

// NewHandler creates a new project handler.
func NewHandler(ws *Workspace) *Handler {
	h := &Handler{
		workspace: ws,
		actions:   make(map[string]func(action input.Action, ctx *execctx.ExecutionContext) handler.Result),
		priority:  100, // Plugin-level priority
	}
	h.registerActions()
	return h
}

// Namespace returns the namespace prefix for this handler.
func (h *Handler) Namespace() string {
	return "project"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	name := actionName
	if strings.HasPrefix(actionName, "project.") {
		name = strings.TrimPrefix(actionName, "project.")
	}
	_, ok := h.actions[name]
	return ok
}

// HandleAction handles an action within the project namespace.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	name := action.Name
	if strings.HasPrefix(action.Name, "project.") {
		name = strings.TrimPrefix(action.Name, "project.")
	}

	fn, ok := h.actions[name]
	if !ok {
		return handler.Errorf("unknown project action: %s", action.Name)
	}
	return fn(action, ctx)
}

// Priority returns the handler priority.
func (h *Handler) Priority() int {
	return h.priority
}

// registerActions registers all project action handlers.
func (h *Handler) registerActions() {
	// File operations
	h.actions["openFile"] = h.handleOpenFile
	h.actions["saveFile"] = h.handleSaveFile
	h.actions["saveFileAs"] = h.handleSaveFileAs
	h.actions["closeFile"] = h.handleCloseFile
	h.actions["reloadFile"] = h.handleReloadFile
	h.actions["createFile"] = h.handleCreateFile
	h.actions["deleteFile"] = h.handleDeleteFile
	h.actions["renameFile"] = h.handleRenameFile

	// Directory operations
	h.actions["createDirectory"] = h.handleCreateDirectory
	h.actions["deleteDirectory"] = h.handleDeleteDirectory
	h.actions["listDirectory"] = h.handleListDirectory

	// Workspace operations
	h.actions["open"] = h.handleOpen
	h.actions["close"] = h.handleClose

	// Status operations
	h.actions["watcherStatus"] = h.handleWatcherStatus

	// Document operations
	h.actions["openDocuments"] = h.handleOpenDocuments
	h.actions["dirtyDocuments"] = h.handleDirtyDocuments
}

// getStringArg gets a string argument from action args.Extra.
func getStringArg(action input.Action, key string) string {
	return action.Args.GetString(key)
}

// getBytesArg gets a []byte argument from action args.Extra.
func getBytesArg(action input.Action, key string) []byte {
	if v, ok := action.Args.Get(key); ok {
		switch val := v.(type) {
		case []byte:
			return val
		case string:
			return []byte(val)
		}
	}
	return nil
}

// getBoolArg gets a bool argument from action args.Extra.
func getBoolArg(action input.Action, key string, defaultVal bool) bool {
	if v, ok := action.Args.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// File operation handlers

func (h *Handler) handleOpenFile(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("openFile: path is required")
	}

	doc, err := h.workspace.OpenFile(context.Background(), path)
	if err != nil {
		return handler.Errorf("openFile: %v", err)
	}

	return handler.SuccessWithData("document", doc).WithMessage("File opened: " + path)
}

func (h *Handler) handleSaveFile(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("saveFile: path is required")
	}

	if err := h.workspace.SaveFile(context.Background(), path); err != nil {
		return handler.Errorf("saveFile: %v", err)
	}

	return handler.SuccessWithMessage("File saved: " + path)
}

func (h *Handler) handleSaveFileAs(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	oldPath := getStringArg(action, "oldPath")
	newPath := getStringArg(action, "newPath")
	if oldPath == "" || newPath == "" {
		return handler.Errorf("saveFileAs: oldPath and newPath are required")
	}

	if err := h.workspace.SaveFileAs(context.Background(), oldPath, newPath); err != nil {
		return handler.Errorf("saveFileAs: %v", err)
	}

	return handler.SuccessWithMessage("File saved as: " + newPath)
}

func (h *Handler) handleCloseFile(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("closeFile: path is required")
	}

	if err := h.workspace.CloseFile(context.Background(), path); err != nil {
		return handler.Errorf("closeFile: %v", err)
	}

	return handler.SuccessWithMessage("File closed: " + path)
}

func (h *Handler) handleReloadFile(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("reloadFile: path is required")
	}

	if err := h.workspace.ReloadFile(context.Background(), path); err != nil {
		return handler.Errorf("reloadFile: %v", err)
	}

	return handler.SuccessWithMessage("File reloaded: " + path)
}

func (h *Handler) handleCreateFile(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("createFile: path is required")
	}

	content := getBytesArg(action, "content")

	if err := h.workspace.CreateFile(context.Background(), path, content); err != nil {
		return handler.Errorf("createFile: %v", err)
	}

	return handler.SuccessWithMessage("File created: " + path)
}

func (h *Handler) handleDeleteFile(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("deleteFile: path is required")
	}

	if err := h.workspace.DeleteFile(context.Background(), path); err != nil {
		return handler.Errorf("deleteFile: %v", err)
	}

	return handler.SuccessWithMessage("File deleted: " + path)
}

func (h *Handler) handleRenameFile(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	oldPath := getStringArg(action, "oldPath")
	newPath := getStringArg(action, "newPath")
	if oldPath == "" || newPath == "" {
		return handler.Errorf("renameFile: oldPath and newPath are required")
	}

	if err := h.workspace.RenameFile(context.Background(), oldPath, newPath); err != nil {
		return handler.Errorf("renameFile: %v", err)
	}

	return handler.SuccessWithMessage("File renamed: " + oldPath + " -> " + newPath)
}

// Directory operation handlers

func (h *Handler) handleCreateDirectory(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("createDirectory: path is required")
	}

	if err := h.workspace.CreateDirectory(context.Background(), path); err != nil {
		return handler.Errorf("createDirectory: %v", err)
	}

	return handler.SuccessWithMessage("Directory created: " + path)
}

func (h *Handler) handleDeleteDirectory(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("deleteDirectory: path is required")
	}

	recursive := getBoolArg(action, "recursive", false)

	if err := h.workspace.DeleteDirectory(context.Background(), path, recursive); err != nil {
		return handler.Errorf("deleteDirectory: %v", err)
	}

	return handler.SuccessWithMessage("Directory deleted: " + path)
}

func (h *Handler) handleListDirectory(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	path := getStringArg(action, "path")
	if path == "" {
		return handler.Errorf("listDirectory: path is required")
	}

	entries, err := h.workspace.ListDirectory(context.Background(), path)
	if err != nil {
		return handler.Errorf("listDirectory: %v", err)
	}

	return handler.SuccessWithData("entries", entries).WithMessage("Listed directory: " + path)
}

// Workspace operation handlers

func (h *Handler) handleOpen(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	root := getStringArg(action, "root")
	if root == "" {
		return handler.Errorf("open: root is required")
	}

	if err := h.workspace.Open(context.Background(), root); err != nil {
		return handler.Errorf("open: %v", err)
	}

	return handler.SuccessWithMessage("Project opened")
}

func (h *Handler) handleClose(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := h.workspace.Close(context.Background()); err != nil {
		return handler.Errorf("close: %v", err)
	}

	return handler.SuccessWithMessage("Project closed")
}

// Status operation handlers

func (h *Handler) handleWatcherStatus(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	status := h.workspace.WatcherStatus()
	return handler.SuccessWithData("status", status).WithMessage("Watcher status retrieved")
}

// Document operation handlers

func (h *Handler) handleOpenDocuments(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	docs := h.workspace.OpenDocuments()
	return handler.SuccessWithData("documents", docs).WithMessage("Open documents retrieved")
}

func (h *Handler) handleDirtyDocuments(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	docs := h.workspace.DirtyDocuments()
	return handler.SuccessWithData("documents", docs).WithMessage("Dirty documents retrieved")
}

// Action names for external use
const (
	ActionOpenFile       = "project.openFile"
	ActionSaveFile       = "project.saveFile"
	ActionSaveFileAs     = "project.saveFileAs"
	ActionCloseFile      = "project.closeFile"
	ActionReloadFile     = "project.reloadFile"
	ActionCreateFile     = "project.createFile"
	ActionDeleteFile     = "project.deleteFile"
	ActionRenameFile     = "project.renameFile"
	ActionCreateDir      = "project.createDirectory"
	ActionDeleteDir      = "project.deleteDirectory"
	ActionListDir        = "project.listDirectory"
	ActionOpen           = "project.open"
	ActionClose          = "project.close"
	ActionWatcherStatus  = "project.watcherStatus"
	ActionOpenDocuments  = "project.openDocuments"
	ActionDirtyDocuments = "project.dirtyDocuments"
)
