package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/fenestra/app"
	"github.com/sarchlab/fenestra/window"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted multi-window lifecycle scenario.",
	Long: "`demo` spawns one focused primary window plus a number of " +
		"secondary windows whose renderers release their surfaces after a " +
		"few passes, requests all the secondary closes up front, and " +
		"finally closes the primary window with a scripted escape press.",
	Run: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Int("windows", 3, "Number of secondary windows")
	demoCmd.Flags().Uint64("max-passes", 100, "Stop after this many passes")
	demoCmd.Flags().Uint64("escape-at", 10,
		"Pass on which the escape key is pressed")
	demoCmd.Flags().Bool("monitor", false, "Start the monitoring server")
	demoCmd.Flags().Int("monitor-port", 0, "Monitoring server port")
	demoCmd.Flags().Bool("trace", false, "Record a SQLite lifecycle trace")
}

func runDemo(cmd *cobra.Command, _ []string) {
	numWindows, _ := cmd.Flags().GetInt("windows")
	maxPasses, _ := cmd.Flags().GetUint64("max-passes")
	escapeAt, _ := cmd.Flags().GetUint64("escape-at")
	monitorOn, _ := cmd.Flags().GetBool("monitor")
	monitorPort, _ := cmd.Flags().GetInt("monitor-port")
	traceOn, _ := cmd.Flags().GetBool("trace")

	keyboard := &scriptedKeyboard{
		presses: map[uint64]window.Key{escapeAt: window.KeyEscape},
	}

	builder := app.MakeBuilder().WithKeyboard(keyboard)
	if monitorOn {
		builder = builder.WithMonitoring()
		if monitorPort > 0 {
			builder = builder.WithMonitorPort(monitorPort)
		}
	}
	if traceOn {
		builder = builder.WithTracing()
	}

	a := builder.Build()
	keyboard.passSource = a.Scheduler.Pass

	a.SpawnWindow("primary", true, true)

	for i := 0; i < numWindows; i++ {
		e := a.SpawnWindow(fmt.Sprintf("secondary-%d", i), false, false)
		a.Tokens.Set(e, &timedToken{
			passSource: a.Scheduler.Pass,
			releaseAt:  uint64(i+1) * 2,
		})
		a.RequestClose(e)
	}

	a.Run(maxPasses)

	fmt.Printf("demo finished after %d passes, %d windows remaining\n",
		a.Scheduler.Pass(), a.Windows.Len())

	atexit.Exit(0)
}

// timedToken reports the surface released once a given pass is reached,
// standing in for a renderer that cleans up asynchronously.
type timedToken struct {
	passSource func() uint64
	releaseAt  uint64
}

func (t *timedToken) SafeToCloseWindow() bool {
	return t.passSource() >= t.releaseAt
}

// scriptedKeyboard fires each scripted key on exactly one pass, which keeps
// the just-pressed queries edge-triggered.
type scriptedKeyboard struct {
	passSource func() uint64
	presses    map[uint64]window.Key
}

func (k *scriptedKeyboard) JustPressed(key window.Key) bool {
	if k.passSource == nil {
		return false
	}

	return k.presses[k.passSource()] == key
}
