// Package ui provides the system tray presence for the studio service.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/vibegen/vibegen-studio/internal/generator"
	"github.com/vibegen/vibegen-studio/internal/studio"
)

type Tray struct {
	studioSvc studio.StudioService
	generator *generator.Service
	logger    *slog.Logger

	statusItem   *systray.MenuItem
	projectsItem *systray.MenuItem

	mu sync.Mutex

	onQuit func()
}

type TrayConfig struct {
	Studio    studio.StudioService
	Generator *generator.Service
	Logger    *slog.Logger
	OnQuit    func()
}

func NewTray(cfg TrayConfig) *Tray {
	return &Tray{
		studioSvc: cfg.Studio,
		generator: cfg.Generator,
		logger:    cfg.Logger,
		onQuit:    cfg.OnQuit,
	}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("VibeGen")
	systray.SetTooltip("VibeGen Studio")

	t.statusItem = systray.AddMenuItem("Status: Idle", "Current generation status")
	t.statusItem.Disable()

	t.projectsItem = systray.AddMenuItem("Projects: 0", "Generated projects")
	t.projectsItem.Disable()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit VibeGen Studio")

	go func() {
		for range quitItem.ClickedCh {
			t.logger.Info("quit requested from tray")
			if t.onQuit != nil {
				t.onQuit()
			}
			systray.Quit()
			return
		}
	}()

	t.refreshProjectsCount()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			t.UpdateStatus()
			t.refreshProjectsCount()
		}
	}()

	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

// UpdateStatus reflects the generator state in the menu.
func (t *Tray) UpdateStatus() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.statusItem == nil {
		return
	}

	if t.generator != nil && t.generator.InFlight() {
		t.statusItem.SetTitle("Status: Generating...")
	} else {
		t.statusItem.SetTitle("Status: Idle")
	}
}

func (t *Tray) refreshProjectsCount() {
	count, err := t.studioSvc.CountProjects(context.Background())
	if err != nil {
		t.logger.Warn("failed to count projects for tray", "error", err)
		return
	}
	t.UpdateProjectsCount(count)
}

func (t *Tray) UpdateProjectsCount(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.projectsItem == nil {
		return
	}
	t.projectsItem.SetTitle(fmt.Sprintf("Projects: %d", count))
}

func (t *Tray) Quit() {
	systray.Quit()
}
