package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"

	"bhindi/internal/bootstrap"
	"bhindi/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	rt, err := bootstrap.Open(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening database:", err)
		os.Exit(1)
	}

	app := NewApp(rt)
	svc := rt.Services

	err = wails.Run(&options.App{
		Title:     "Bhindi AI",
		Width:     1200,
		Height:    800,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Bhindi",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			svc.Chat,
			svc.Schedules,
			svc.Files,
			svc.Integrations,
			svc.Settings,
			svc.Models,
			svc.Data,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
