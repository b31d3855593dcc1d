// Command aiworker drives the pathfinding bridge standalone, outside any
// game process: it loads a level's drone graph and tile cache, ticks the
// bridge for a fixed number of frames while logging whatever callbacks
// fire, and optionally plays an audio-reverb preview tone. It exists as a
// smoke-test harness for the worker/bridge pair, not as the game itself.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ai-pathfinder/audiofield"
	"github.com/lixenwraith/ai-pathfinder/bridge"
	"github.com/lixenwraith/ai-pathfinder/config"
	"github.com/lixenwraith/ai-pathfinder/geom"
	"github.com/lixenwraith/ai-pathfinder/navgraph"
)

const (
	logDir      = "logs"
	logFileName = "aiworker.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging configures log output based on the debug flag. If debug is
// false, logging is disabled entirely. Returns the log file handle (or
// nil) that should be closed when done.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create logs directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)

	if info, err := os.Stat(logPath); err == nil {
		if info.Size() > maxLogSize {
			timestamp := time.Now().Format("2006-01-02-15-04-05")
			rotatedName := filepath.Join(logDir, fmt.Sprintf("aiworker-%s.log", timestamp))
			if err := os.Rename(logPath, rotatedName); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to rotate log file: %v\n", err)
			}
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Printf("=== aiworker started ===")
	return logFile
}

func main() {
	var (
		levelPath    string
		recordPath   string
		debug        bool
		previewAudio bool
		ticks        int
	)

	root := &cobra.Command{
		Use:   "aiworker",
		Short: "Drive the pathfinding bridge against a level's drone graph and tile cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile := setupLogging(debug)
			if logFile != nil {
				defer logFile.Close()
			}

			if levelPath == "" {
				return fmt.Errorf("--level is required")
			}

			cfg := config.Default()
			b := bridge.New(cfg)
			b.Init()
			defer b.Quit()

			b.Load(1, levelPath, recordPath)

			state := navgraph.GameState{}
			const dt = float32(1.0 / 60.0)
			for i := 0; i < ticks; i++ {
				for _, r := range b.Update(dt, state) {
					log.Printf("callback kind=%d target=%v payload=%+v", r.Kind, r.Target, r.Payload)
				}
				time.Sleep(time.Second / 60)
			}

			if previewAudio {
				length := b.AudioPathfindSync(geom.Vec3{}, geom.Vec3{X: 20})
				wet := audiofield.ReverbMix(length, 20, cfg.MaxShotDistance)
				log.Printf("audio preview: path length=%.2f wet=%.2f", length, wet)
				if err := audiofield.PreviewTone(440, wet, time.Second); err != nil {
					log.Printf("audio preview tone failed: %v", err)
				}
			}

			return nil
		},
	}

	root.Flags().StringVar(&levelPath, "level", "", "base path of the level (without .dronegraph/.tilecache suffix)")
	root.Flags().StringVar(&recordPath, "records", "", "path to the life-telemetry record file (empty disables recording)")
	root.Flags().BoolVar(&debug, "debug", false, "enable debug logging to file")
	root.Flags().BoolVar(&previewAudio, "preview-audio", false, "play a reverb preview tone after loading")
	root.Flags().IntVar(&ticks, "ticks", 60, "number of 1/60s update ticks to run before quitting")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
