package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"bhindi/internal/bootstrap"
	"bhindi/internal/events"
	"bhindi/internal/models"
)

// App struct
type App struct {
	ctx context.Context
	rt  *bootstrap.Runtime
}

// NewApp creates a new App application struct
func NewApp(rt *bootstrap.Runtime) *App {
	return &App{rt: rt}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter()

	if err := a.rt.Services.Startup(ctx); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to start services: %v", err))
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.rt == nil {
		return
	}
	if err := a.rt.Close(); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
	} else {
		runtime.LogInfo(ctx, "database closed")
	}
	a.rt = nil
}

// ImportFiles opens a native picker and registers the chosen files with
// the file manager.
func (a *App) ImportFiles() ([]models.FileItem, error) {
	paths, err := runtime.OpenMultipleFilesDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Upload Files",
	})
	if err != nil {
		return nil, err
	}
	var out []models.FileItem
	for _, p := range paths {
		items, err := a.rt.Services.Files.ImportGlob(p)
		if err != nil {
			return out, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// ExportData asks where to save the backup and writes it there. An empty
// path means the dialog was cancelled.
func (a *App) ExportData() (string, error) {
	name, data, err := a.rt.Services.Data.ExportJSON()
	if err != nil {
		return "", err
	}
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export Data",
		DefaultFilename: name,
		Filters:         []runtime.FileFilter{{DisplayName: "JSON", Pattern: "*.json"}},
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// ConfirmClearData shows a native confirmation before wiping local data.
func (a *App) ConfirmClearData() (bool, error) {
	choice, err := runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:          runtime.QuestionDialog,
		Title:         "Clear All Data",
		Message:       "Are you sure you want to clear all data? This action cannot be undone.",
		Buttons:       []string{"Yes", "No"},
		DefaultButton: "No",
	})
	if err != nil {
		return false, err
	}
	if choice != "Yes" {
		return false, nil
	}
	if a.rt == nil {
		return false, errors.New("app is shutting down")
	}
	return true, a.rt.Services.Data.ClearAll()
}
