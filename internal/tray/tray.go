// Package tray provides the system tray menu: open the observer page,
// pause/resume mapping, exit.
package tray

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// PauseFunc is called when "Pause mapping" is toggled
type PauseFunc func(paused bool)

// Tray manages the system tray icon and menu
type Tray struct {
	shutdownFunc ShutdownFunc
	pauseFunc    PauseFunc
	listenAddr   string
	once         sync.Once
	shuttingDown atomic.Bool
	paused       bool
	menuOpen     *systray.MenuItem
	menuPause    *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a new Tray instance
func New(listenAddr string, pauseFn PauseFunc, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		shutdownFunc: shutdownFn,
		pauseFunc:    pauseFn,
		listenAddr:   listenAddr,
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle("padmapper")
	systray.SetTooltip("padmapper - controller to keyboard mapping")

	t.menuOpen = systray.AddMenuItem("Open Key Viewer", "Open the key state page")
	t.menuPause = systray.AddMenuItem("Pause Mapping", "Stop mapping and release held keys")
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	if t.listenAddr == "" {
		t.menuOpen.Disable()
	}

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	log.Println("System tray initialized")
}

// handleMenuClicks processes menu item clicks without blocking
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuPause.ClickedCh:
			if t.shuttingDown.Load() {
				continue
			}
			t.paused = !t.paused
			if t.paused {
				t.menuPause.SetTitle("Resume Mapping")
			} else {
				t.menuPause.SetTitle("Pause Mapping")
			}
			t.pauseFunc(t.paused)
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

// onExit is called when the tray is exiting
func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	log.Println("System tray exiting")
}

// openBrowser opens the default web browser
func (t *Tray) openBrowser() {
	if t.shuttingDown.Load() {
		return
	}

	url := fmt.Sprintf("http://localhost%s", t.listenAddr)
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
