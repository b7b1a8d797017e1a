// sundial - day/night ray traced diorama
// Explore a small log cabin scene in the terminal, or render it to a PNG.
//
// Viewer controls:
//
//	W/S          - Tilt the camera up/down
//	A/D, ←/→     - Orbit around the scene
//	↑/↓          - Zoom out/in
//	+/-, wheel   - Zoom in/out
//	Q/E          - Raise/lower the camera
//	1/2/3        - Low/medium/high quality
//	P            - Toggle automatic quality
//	T            - Toggle threaded rendering
//	N            - Advance the time of day
//	R            - Reset the camera
//	?            - Toggle HUD
//	Esc          - Quit
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	loadEnv()
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &sceneConfig{}
	root := &cobra.Command{
		Use:   "sundial",
		Short: "A day/night ray traced diorama for the terminal",
		Long: `sundial ray traces a log cabin diorama with a moving sun, a moon,
reflective water and glass, lit by lanterns at night.

Use "sundial view" to fly around it in the terminal and
"sundial snapshot" to render a PNG.`,
		SilenceUsage: true,
	}
	cfg.bindFlags(root.PersistentFlags())
	root.AddCommand(newViewCmd(cfg), newSnapshotCmd(cfg))
	return root
}
