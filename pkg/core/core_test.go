package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/germanamz/fabricator/pkg/command"
	"github.com/germanamz/fabricator/pkg/component"
	"github.com/germanamz/fabricator/pkg/config"
	"github.com/germanamz/fabricator/pkg/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// --- test helpers ---

type tickCounter struct {
	component.Lifecycle

	name    string
	fail    bool
	panics  bool
	updates int
}

func (t *tickCounter) Initialize() bool { return t.Start(func() bool { return !t.fail }) }
func (t *tickCounter) Name() string { return t.name }
func (t *tickCounter) Update() { t.updates++ }

func (t *tickCounter) Shutdown() {
	if t.panics {
		panic("wedged")
	}
	t.Lifecycle.Shutdown()
}

func newCore(t *testing.T, input string, opts ...func(*Options)) (*Core, *display.Recorder) {
	t.Helper()

	rec := display.NewRecorder()
	o := Options{Display: rec, Input: strings.NewReader(input)}
	for _, fn := range opts {
		fn(&o)
	}

	return New(o), rec
}

func startCore(t *testing.T, input string, opts ...func(*Options)) (*Core, *display.Recorder) {
	t.Helper()

	c, rec := newCore(t, input, opts...)
	require.NoError(t, c.Initialize())
	rec.Reset()

	return c, rec
}

var networkReport = []string{
	"[NETWORK] Scanning interfaces...",
	"[NETWORK] eth0: 192.168.1.100",
	"[NETWORK] wlan0: 10.0.0.5",
	"[NETWORK] Status: Connected",
}

// --- construction & initialization ---

func TestNewRegistersStandardComponents(t *testing.T) {
	c, _ := newCore(t, "")

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, []string{"LOGGER", "NETWORK", "SCREEN", "IOSTREAM"}, c.Components())
	assert.Equal(t, "Fabricator 1.0.0f201 Pre-release", c.Version())
}

func TestNewDisabledComponents(t *testing.T) {
	c, _ := newCore(t, "", func(o *Options) { o.Disabled = []string{"NETWORK", "MISSING"} })

	assert.Equal(t, []string{"LOGGER", "SCREEN", "IOSTREAM"}, c.Components())
}

func TestInitialize(t *testing.T) {
	prepared := 0
	c, rec := newCore(t, "", func(o *Options) {
		o.Prepare = func() error {
			prepared++
			return nil
		}
	})

	require.NoError(t, c.Initialize())

	assert.Equal(t, Running, c.State())
	assert.Equal(t, 1, prepared)
	assert.Equal(t, []string{
		"[Fabricator] Initializing...",
		"LOGGER",
		"NETWORK",
		"SCREEN",
		"IOSTREAM",
	}, rec.Lines())

	for _, name := range c.Components() {
		comp, ok := c.Component(name)
		require.True(t, ok)
		assert.Equal(t, component.Ready, comp.Status(), name)
	}
}

func TestInitializeToleratesPrepareError(t *testing.T) {
	c, _ := newCore(t, "", func(o *Options) {
		o.Prepare = func() error { return errors.New("no console") }
	})

	require.NoError(t, c.Initialize())
	assert.Equal(t, Running, c.State())
}

func TestInitializeLenientKeepsGoing(t *testing.T) {
	c, rec := newCore(t, "")
	broken := &tickCounter{name: "SENSOR", fail: true}
	c.Register(broken)
	c.Logger().SetFailStart(true)

	require.NoError(t, c.Initialize())

	assert.Equal(t, Running, c.State())
	assert.Equal(t, component.Failed, c.Logger().Status())
	assert.Equal(t, component.Failed, broken.Status())
	assert.Equal(t, []string{
		"[Fabricator] Initializing...",
		"[ERROR] Component LOGGER failed to initialize",
		"NETWORK",
		"SCREEN",
		"IOSTREAM",
		"[ERROR] Component SENSOR failed to initialize",
	}, rec.Lines())
}

func TestInitializeStrictAborts(t *testing.T) {
	c, rec := newCore(t, "help\n", func(o *Options) { o.Policy = config.Strict })
	c.Register(&tickCounter{name: "SENSOR", fail: true})

	err := c.Initialize()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStartup)
	assert.Contains(t, err.Error(), "SENSOR")
	assert.Equal(t, ShuttingDown, c.State())
	assert.Equal(t, component.Disabled, c.Logger().Status())

	rec.Reset()
	require.NoError(t, c.Run(context.Background()))
	assert.Empty(t, rec.Lines())
}

func TestInitializeAfterShutdown(t *testing.T) {
	c, _ := startCore(t, "")
	require.NoError(t, c.Shutdown())

	err := c.Initialize()

	assert.ErrorIs(t, err, ErrShutDown)
	assert.Equal(t, ShuttingDown, c.State())
}

// --- run loop ---

func TestRunRequiresInitialize(t *testing.T) {
	c, rec := newCore(t, "help\n")

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, Idle, c.State())
	assert.Empty(t, rec.Events())
}

func TestRunHelpThenExit(t *testing.T) {
	c, rec := startCore(t, "help\nexit\n")

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, ShuttingDown, c.State())
	assert.Equal(t, []string{
		"[Fabricator] Fabricator 1.0.0f201 Pre-release",
		"",
		"Available commands: help, clear, exit, info, network",
		"",
		"[Fabricator] Shutting down...",
	}, rec.Lines())
	assert.Equal(t, 2, strings.Count(rec.Output(), "<fabricatorguest>> "))
}

func TestRunNetworkStatus(t *testing.T) {
	c, rec := startCore(t, "net\nexit\n")

	require.NoError(t, c.Run(context.Background()))

	lines := rec.Lines()
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, networkReport, lines[2:6])
}

func TestRunUnknownCommandKeepsRunning(t *testing.T) {
	c, rec := startCore(t, "")

	c.Execute("banana")

	assert.Equal(t, []string{"Unknown command: banana"}, rec.Lines())
	assert.Equal(t, Running, c.State())
}

func TestRunUnknownPreservesCase(t *testing.T) {
	c, rec := startCore(t, "BaNaNa\nexit\n")

	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, rec.Lines(), "Unknown command: BaNaNa")
}

func TestRunEndOfInputShutsDown(t *testing.T) {
	c, rec := startCore(t, "info")

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, ShuttingDown, c.State())
	assert.Contains(t, rec.Lines(), "Components: 4 loaded")
	assert.Equal(t, "[Fabricator] Shutting down...", rec.Lines()[len(rec.Lines())-1])
}

func TestRunTicksOncePerIteration(t *testing.T) {
	c, _ := newCore(t, "\nhelp\n   \nexit\nhelp\n")
	counter := &tickCounter{name: "COUNTER"}
	c.Register(counter)
	require.NoError(t, c.Initialize())

	require.NoError(t, c.Run(context.Background()))

	// Every iteration ticks, including the one that handles exit.
	assert.Equal(t, 4, counter.updates)
}

func TestRunWaitsBetweenIterations(t *testing.T) {
	c, _ := startCore(t, "help\nhelp\nexit\n", func(o *Options) { o.Tick = 10 * time.Millisecond })

	start := time.Now()
	require.NoError(t, c.Run(context.Background()))

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestRunCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	c, rec := startCore(t, "", func(o *Options) { o.Input = pr })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, c.Run(ctx))

	assert.Equal(t, ShuttingDown, c.State())
	assert.Contains(t, rec.Lines(), "[Fabricator] Shutting down...")
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("tty lost") }

func TestRunReadError(t *testing.T) {
	c, _ := startCore(t, "", func(o *Options) { o.Input = brokenReader{} })

	err := c.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty lost")
	assert.Equal(t, ShuttingDown, c.State())
}

// --- dispatch ---

func TestExecute(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"help", []string{"Available commands: help, clear, exit, info, network"}},
		{"?", []string{"Available commands: help, clear, exit, info, network"}},
		{"INFO", []string{"Fabricator ver. 1.0.0f201", "Components: 4 loaded"}},
		{"system", []string{"Fabricator ver. 1.0.0f201", "Components: 4 loaded"}},
		{"network", networkReport},
		{"Net", networkReport},
		{"foo", []string{"Unknown command: foo"}},
		{" help", []string{"Unknown command:  help"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, rec := startCore(t, "")

			c.Execute(tt.input)

			assert.Equal(t, tt.want, rec.Lines())
			assert.Equal(t, Running, c.State())
		})
	}
}

func TestExecuteBlankLineDoesNothing(t *testing.T) {
	c, rec := startCore(t, "")

	c.Execute("")
	c.Execute("  \t ")

	assert.Empty(t, rec.Events())
}

func TestExecuteClear(t *testing.T) {
	c, rec := startCore(t, "")

	c.Execute("cls")

	assert.Equal(t, 1, rec.Clears())
	assert.Equal(t, []string{"[Fabricator] Fabricator 1.0.0f201 Pre-release", ""}, rec.Lines())
	assert.Equal(t, display.EventClear, rec.Events()[0].Kind)
}

func TestExecuteExit(t *testing.T) {
	c, _ := startCore(t, "")

	c.Execute("QUIT")

	assert.Equal(t, ShuttingDown, c.State())
}

func TestInfoCountsRegisteredComponents(t *testing.T) {
	c, rec := startCore(t, "")
	c.Unregister("NETWORK")
	c.Register(&tickCounter{name: "A"})
	c.Register(&tickCounter{name: "B"})

	c.Execute("info")

	assert.Contains(t, rec.Lines(), "Components: 5 loaded")
}

// --- shutdown ---

func TestShutdownIdempotent(t *testing.T) {
	c, rec := startCore(t, "")

	require.NoError(t, c.Shutdown())
	first := rec.Lines()
	require.NoError(t, c.Shutdown())

	assert.Equal(t, ShuttingDown, c.State())
	assert.Equal(t, []string{"", "[Fabricator] Shutting down..."}, first)
	assert.Equal(t, first, rec.Lines())

	for _, name := range c.Components() {
		comp, _ := c.Component(name)
		assert.Equal(t, component.Disabled, comp.Status(), name)
	}
}

func TestShutdownBeforeInitialize(t *testing.T) {
	c, _ := newCore(t, "")

	require.NoError(t, c.Shutdown())

	assert.Equal(t, ShuttingDown, c.State())
	assert.Equal(t, component.Disabled, c.Logger().Status())
}

func TestShutdownContinuesPastPanickingComponent(t *testing.T) {
	c, rec := startCore(t, "")
	c.Unregister("IOSTREAM")
	c.Register(&tickCounter{name: "WEDGED", panics: true})
	tail := &tickCounter{name: "TAIL"}
	c.Register(tail)

	err := c.Shutdown()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEDGED")
	assert.Equal(t, component.Disabled, tail.Status())
	assert.Contains(t, rec.Lines(), "[Fabricator] Shutting down...")
}

// --- registry through the core ---

func TestUnregisterStopsTicks(t *testing.T) {
	c, _ := newCore(t, "help\nexit\n")
	for _, name := range []string{"NETWORK", "SCREEN", "IOSTREAM"} {
		c.Unregister(name)
	}
	first := &tickCounter{name: "NETWORK"}
	c.Register(first)
	require.Equal(t, []string{"LOGGER", "NETWORK"}, c.Components())

	assert.Equal(t, 1, c.Unregister("NETWORK"))
	require.NoError(t, c.Initialize())
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []string{"LOGGER"}, c.Components())
	assert.Equal(t, 0, first.updates)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "shutting-down", ShuttingDown.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestHelpLineNamesEveryCommand(t *testing.T) {
	c, rec := startCore(t, "")

	c.Execute("help")

	for _, name := range command.Names() {
		assert.Contains(t, rec.Lines()[0], name)
	}
}

func TestRunExitStopsReader(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	for range 5 {
		c, rec := startCore(t, "exit\nhelp\n")

		require.NoError(t, c.Run(context.Background()))

		assert.Equal(t, ShuttingDown, c.State())
		assert.NotContains(t, rec.Lines(), command.HelpLine())
	}
}

func TestRunExitStopsReaderWhenIOStreamDisabled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c, _ := startCore(t, "exit\nhelp\n", func(o *Options) { o.Disabled = []string{"IOSTREAM"} })

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, ShuttingDown, c.State())
}

func TestBannerStyle(t *testing.T) {
	c, rec := startCore(t, "", func(o *Options) { o.BannerStyle = display.Magenta })

	c.PrintBanner()

	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, display.Magenta, events[0].Style)
	assert.Equal(t, display.Default, events[1].Style)
}

func TestExecuteLogsCommandDescription(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, _ := startCore(t, "", func(o *Options) { o.Log = log })

	c.Execute("net")
	c.Execute("banana")

	assert.Contains(t, buf.String(), "command=network")
	assert.Contains(t, buf.String(), `description="Show simulated network status"`)
	assert.Contains(t, buf.String(), "input=banana")
}
