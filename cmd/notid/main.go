// Command notid is the notification daemon: it serves
// org.freedesktop.Notifications on the session bus and renders banners as
// Wayland layer-shell surfaces.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"notid/internal/busserver"
	"notid/internal/config"
	"notid/internal/logging"
	"notid/internal/renderer"
	"notid/internal/wm"
)

// Version is set at build time via ldflags.
var Version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <command>

Commands:
  run    start the notification daemon

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	logging.Init()

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", config.DefaultPath(), "path to config.toml")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("notid %s\n", Version)
		return
	}

	args := flag.Args()
	if len(args) != 1 || args[0] != "run" {
		usage()
		os.Exit(2)
	}

	if err := run(*configPath); err != nil {
		logging.Fatalf("%v", err)
	}
}

// run wires the two halves together and supervises them: the bus server on
// this goroutine's runtime, the renderer on its own locked OS thread,
// bridged by the two unbounded queues.
func run(configPath string) error {
	rend, toRenderer, fromRenderer, err := renderer.New(configPath)
	if err != nil {
		return err
	}
	defer rend.Close()

	actions := renderer.NewQueue[busserver.Action]()
	srv, err := busserver.Init(actions, "notid", Version)
	if err != nil {
		return err
	}
	defer srv.Close()

	rendererDone := make(chan error, 1)
	go func() {
		// The Wayland connection must live and die on one thread.
		runtime.LockOSThread()
		rendererDone <- rend.Run()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case sig := <-interrupt:
			logging.Infof("received %v, shutting down", sig)
			toRenderer.Close()
			return nil
		case err := <-rendererDone:
			toRenderer.Close()
			if err != nil {
				return fmt.Errorf("renderer thread: %w", err)
			}
			return fmt.Errorf("renderer thread exited unexpectedly")
		case <-ticker.C:
			if err := pump(actions, toRenderer, fromRenderer, srv); err != nil {
				return err
			}
		}
	}
}

// pump forwards one tick's worth of traffic in both directions.
func pump(actions *renderer.Queue[busserver.Action], toRenderer *renderer.Queue[wm.ServerMessage], fromRenderer *renderer.Queue[wm.BackendMessage], srv *busserver.Server) error {
	for {
		action, ok, err := actions.TryRecv()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch action.Kind {
		case busserver.ActionShow:
			if err := toRenderer.Send(wm.ShowNotification(*action.Notification)); err != nil {
				return err
			}
		case busserver.ActionClose:
			if action.ID == nil {
				logging.Warnf("Close with no id has no agreed behaviour yet; ignoring")
				continue
			}
			if err := toRenderer.Send(wm.CloseNotification(*action.ID)); err != nil {
				return err
			}
		case busserver.ActionShowLast, busserver.ActionCloseAll:
			logging.Warnf("%v has no agreed behaviour yet; ignoring", action.Kind)
		}
	}

	for {
		msg, ok, err := fromRenderer.TryRecv()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if msg.ActionKey != "" {
			if err := srv.EmitActionInvoked(msg.ID, msg.ActionKey); err != nil {
				return err
			}
			continue
		}
		// CloseNotification already emitted its signal from the handler.
		if msg.Reason == wm.ReasonCallCloseNotification {
			continue
		}
		if err := srv.EmitClosed(msg.ID, msg.Reason); err != nil {
			return err
		}
	}
}
