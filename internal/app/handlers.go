// Package app provides handler registration for the dispatcher.
package app

import (
	"github.com/textloom/loom/internal/dispatcher"
	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	cursorhandler "github.com/textloom/loom/internal/dispatcher/handlers/cursor"
	editorhandler "github.com/textloom/loom/internal/dispatcher/handlers/editor"
	filehandler "github.com/textloom/loom/internal/dispatcher/handlers/file"
	viewhandler "github.com/textloom/loom/internal/dispatcher/handlers/view"
	"github.com/textloom/loom/internal/input"
)

// RegisterHandlers registers all standard handlers with the dispatcher.
// This should be called during application bootstrap after the dispatcher is created.
func RegisterHandlers(d *dispatcher.Dispatcher) {
	// Core cursor and motion handlers
	d.RegisterNamespace("cursor", cursorhandler.NewHandler())
	d.RegisterNamespace("motion", cursorhandler.NewMotionHandler())

	// Editor handler: insert is the primary handler for the "editor" namespace;
	// delete/yank/indent actions are registered individually below.
	insertHandler := editorhandler.NewInsertHandler()
	d.RegisterNamespace("editor", insertHandler)
	registerEditorActions(d)

	// Navigation and file handlers
	d.RegisterNamespace("view", viewhandler.NewHandler())
	d.RegisterNamespace("file", filehandler.NewHandler())
}

// registerEditorActions registers the delete/yank/indent handlers, which
// share the "editor" namespace with insert but dispatch by action name.
func registerEditorActions(d *dispatcher.Dispatcher) {
	registry := d.Registry()

	deleteHandler := editorhandler.NewDeleteHandler()
	for _, action := range []string{
		editorhandler.ActionDeleteChar, editorhandler.ActionDeleteCharBack, editorhandler.ActionDeleteLine,
		editorhandler.ActionDeleteToEnd, editorhandler.ActionDeleteSelection, editorhandler.ActionDeleteWord,
		editorhandler.ActionDeleteWordBack,
	} {
		registry.Register(action, handler.NewNamespaceAdapter(deleteHandler))
	}

	yankHandler := editorhandler.NewYankHandler()
	for _, action := range []string{
		editorhandler.ActionYankSelection, editorhandler.ActionYankLine, editorhandler.ActionYankToEnd,
		editorhandler.ActionYankWord, editorhandler.ActionPasteAfter, editorhandler.ActionPasteBefore,
	} {
		registry.Register(action, handler.NewNamespaceAdapter(yankHandler))
	}

	indentHandler := editorhandler.NewIndentHandler()
	for _, action := range []string{
		editorhandler.ActionIndent, editorhandler.ActionOutdent, editorhandler.ActionAutoIndent,
	} {
		registry.Register(action, handler.NewNamespaceAdapter(indentHandler))
	}
}

// BuildExecutionContext creates an execctx.ExecutionContext from the application state.
// This bridges the app layer with the dispatcher's handler system.
func (app *Application) BuildExecutionContext() *execctx.ExecutionContext {
	doc := app.documents.Active()
	if doc == nil {
		return execctx.New()
	}

	ctx := execctx.New()

	if doc.Engine != nil {
		ctx = ctx.WithEngine(doc.Engine)
	}

	if app.modeManager != nil {
		ctx.ModeManager = NewModeExecAdapter(app.modeManager)
	}

	ctx.FilePath = doc.Path
	ctx.FileType = doc.LanguageID

	return ctx
}

// ExecuteAction dispatches an action with the current execution context.
// Returns the handler result.
func (app *Application) ExecuteAction(actionName string, count int) error {
	if app.dispatcher == nil {
		return ErrComponentNotAvailable
	}

	doc := app.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}

	// Wire up the dispatcher with current document's state
	app.wireDispatcherContext(doc)

	// Build the action
	action := input.Action{
		Name:  actionName,
		Count: count,
	}

	// Dispatch the action
	result := app.dispatcher.Dispatch(action)
	if result.Error != nil {
		return result.Error
	}

	// Mark document as modified if the action made changes (edits were applied)
	if len(result.Edits) > 0 {
		doc.SetModified(true)
	}

	return nil
}

// wireDispatcherContext sets up the dispatcher with the current document's state.
func (app *Application) wireDispatcherContext(doc *Document) {
	if doc == nil || doc.Engine == nil {
		return
	}

	// SetEngine also adopts the engine's cursor set and undo history.
	app.dispatcher.SetEngine(doc.Engine)

	if app.modeManager != nil {
		app.dispatcher.SetModeManager(NewModeExecAdapter(app.modeManager))
	}
}

// HandlerInfo provides information about a registered handler.
type HandlerInfo struct {
	Namespace string
}

// ListHandlers returns information about all registered namespaces.
func (app *Application) ListHandlers() []HandlerInfo {
	if app.dispatcher == nil {
		return nil
	}

	router := app.dispatcher.Router()
	if router == nil {
		return nil
	}

	// Get handler namespaces from router
	namespaces := router.Namespaces()
	infos := make([]HandlerInfo, 0, len(namespaces))

	for _, ns := range namespaces {
		infos = append(infos, HandlerInfo{Namespace: ns})
	}

	return infos
}
