package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/germanamz/fabricator/pkg/command"
	"github.com/germanamz/fabricator/pkg/component"
	"github.com/germanamz/fabricator/pkg/components/iostream"
	"github.com/germanamz/fabricator/pkg/components/logger"
	"github.com/germanamz/fabricator/pkg/components/network"
	"github.com/germanamz/fabricator/pkg/components/screen"
	"github.com/germanamz/fabricator/pkg/config"
	"github.com/germanamz/fabricator/pkg/display"
	"github.com/germanamz/fabricator/pkg/registry"
)

const (
	// Version is the full version string shown in the banner.
	Version = "Fabricator 1.0.0f201 Pre-release"

	infoVersion = "Fabricator ver. 1.0.0f201"
	tag         = "[Fabricator]"
)

// ErrStartup is returned by Initialize when a component fails under the
// strict startup policy.
var ErrStartup = errors.New("core: startup failed")

// ErrShutDown is returned by Initialize once the core has been shut down.
var ErrShutDown = errors.New("core: already shut down")

// Options configures a Core.
type Options struct {
	Display display.Surface // Required.
	Input   io.Reader       // Defaults to an empty reader.
	Log     *slog.Logger    // Diagnostic log; nil discards.

	// Prompt drawn before each input line. Empty uses the screen default.
	Prompt string

	// Tick is the idle wait after each loop iteration. Zero disables it.
	Tick time.Duration

	// Policy decides whether a failed component aborts Initialize. The
	// zero value behaves as config.Lenient.
	Policy config.StartupPolicy

	// BannerStyle colours the version banner.
	BannerStyle display.Style

	// Disabled lists standard components that are not registered.
	Disabled []string

	// Prepare runs once at the start of Initialize to set up the console.
	Prepare func() error
}

// Core hosts the components and runs the shell loop.
type Core struct {
	reg *registry.Registry
	out display.Surface
	log *slog.Logger

	logger  *logger.Logger
	network *network.Network
	screen  *screen.Screen
	io      *iostream.IOStream

	state   State
	running bool

	tick        time.Duration
	policy      config.StartupPolicy
	bannerStyle display.Style
	prepare     func() error
}

// New creates a Core in the Idle state with the standard components
// registered in the order LOGGER, NETWORK, SCREEN, IOSTREAM.
func New(opts Options) *Core {
	in := opts.Input
	if in == nil {
		in = strings.NewReader("")
	}

	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	policy := opts.Policy
	if policy == "" {
		policy = config.Lenient
	}

	c := &Core{
		reg:     registry.New(),
		out:     opts.Display,
		log:     log,
		logger:  logger.New(opts.Display, log),
		network: network.New(opts.Display),
		screen:  screen.New(opts.Display, opts.Prompt),
		io:      iostream.New(in),
		state:   Idle,
		tick:    opts.Tick,
		policy:  policy,
		prepare: opts.Prepare,

		bannerStyle: opts.BannerStyle,
	}

	c.reg.Add(c.logger)
	c.reg.Add(c.network)
	c.reg.Add(c.screen)
	c.reg.Add(c.io)

	for _, name := range opts.Disabled {
		c.Unregister(name)
	}

	return c
}

// Register adds a component. It is initialized by the next Initialize and
// ticked by every loop iteration from then on.
func (c *Core) Register(comp component.Component) {
	c.reg.Add(comp)
	c.log.Debug("component registered", "component", comp.Name())
}

// Unregister removes every component named name and reports how many were
// removed.
func (c *Core) Unregister(name string) int {
	n := c.reg.RemoveByName(name)
	c.log.Debug("component unregistered", "component", name, "removed", n)

	return n
}

// Components returns the names of the registered components in order.
func (c *Core) Components() []string { return c.reg.Names() }

// Component returns the first registered component named name.
func (c *Core) Component(name string) (component.Component, bool) { return c.reg.Get(name) }

// Logger returns the LOGGER component.
func (c *Core) Logger() *logger.Logger { return c.logger }

// State returns the current lifecycle state.
func (c *Core) State() State { return c.state }

// Version returns the full version string.
func (c *Core) Version() string { return Version }

// PrintBanner prints the version banner followed by a blank line.
func (c *Core) PrintBanner() {
	c.out.SetStyle(c.bannerStyle)
	c.out.Println(tag + " " + Version)
	c.out.ResetStyle()
	c.out.Println("")
}

// Initialize prepares the console, initializes every registered component
// and moves the core to Running.
//
// Under the lenient policy a failing component is reported and skipped. Under
// the strict policy the failure is reported, the components are shut down
// and an error wrapping ErrStartup is returned.
func (c *Core) Initialize() error {
	if c.state == ShuttingDown {
		return ErrShutDown
	}

	c.state = Initializing

	if c.prepare != nil {
		if err := c.prepare(); err != nil {
			c.log.Warn("console setup failed", "error", err)
		}
	}

	c.out.Println(tag + " Initializing...")

	failed := c.initializeComponents()

	if len(failed) > 0 && c.policy == config.Strict {
		names := make([]string, len(failed))
		for i, f := range failed {
			names[i] = f.Name()
		}

		err := fmt.Errorf("%w: %s", ErrStartup, strings.Join(names, ", "))
		c.log.Error("startup aborted", "error", err)

		return errors.Join(err, c.Shutdown())
	}

	c.state = Running
	c.running = true

	c.log.Info("core initialized", "components", c.reg.Len(), "failed", len(failed), "policy", string(c.policy))

	return nil
}

func (c *Core) initializeComponents() []component.Component {
	failed := c.reg.InitializeAll()

	for _, comp := range c.reg.Components() {
		if !slices.Contains(failed, comp) {
			c.out.Println(comp.Name())
			continue
		}

		c.logger.Log(fmt.Sprintf("Component %s failed to initialize", comp.Name()), logger.Error)
		c.log.Warn("component failed to initialize", "component", comp.Name())
	}

	return failed
}

// Run prints the banner and loops until an exit command, end of input or
// cancellation of ctx. Each iteration draws the prompt, reads a line,
// dispatches it, ticks every component and waits for the tick interval; the
// iteration that handles exit completes before the loop ends. Run does
// nothing unless the core is Running.
func (c *Core) Run(ctx context.Context) error {
	if !c.running || c.state != Running {
		return nil
	}

	c.PrintBanner()

	for c.running && c.state == Running {
		c.screen.DrawPrompt()

		line, err := c.io.ReadLine(ctx)
		if err != nil {
			return c.stopOnRead(ctx, err)
		}

		c.Execute(line)
		c.reg.UpdateAll()

		if c.tick > 0 {
			time.Sleep(c.tick)
		}
	}

	return nil
}

func (c *Core) stopOnRead(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		c.log.Info("input closed")
		return c.Shutdown()
	case ctx.Err() != nil:
		c.log.Info("run cancelled", "cause", context.Cause(ctx))
		return c.Shutdown()
	default:
		return errors.Join(fmt.Errorf("core: read input: %w", err), c.Shutdown())
	}
}

// Execute dispatches one input line. Blank lines are ignored.
func (c *Core) Execute(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	cmd := command.Parse(line)
	if spec, ok := command.Lookup(cmd); ok {
		c.log.Debug("dispatch", "command", spec.Name, "description", spec.Description)
	} else {
		c.log.Debug("dispatch", "command", cmd.String(), "input", line)
	}

	switch cmd {
	case command.Exit:
		if err := c.Shutdown(); err != nil {
			c.log.Error("shutdown", "error", err)
		}
	case command.Clear:
		c.screen.Clear()
		c.PrintBanner()
	case command.Help:
		c.out.Println(command.HelpLine())
	case command.SystemInfo:
		c.out.Println(infoVersion)
		c.out.Println(fmt.Sprintf("Components: %d loaded", c.reg.Len()))
	case command.NetworkStatus:
		c.network.SimulateActivity()
	default:
		c.out.Println("Unknown command: " + line)
	}
}

// Shutdown stops the loop and shuts every component down. It is safe to
// call more than once; only the first call has any effect. Components that
// fail to shut down are reported in the returned error after all others
// have been shut down.
func (c *Core) Shutdown() error {
	if c.state == ShuttingDown {
		return nil
	}

	c.state = ShuttingDown
	c.running = false

	err := c.reg.ShutdownAll()
	// The reader is stopped even when IOSTREAM is not registered.
	c.io.Shutdown()
	if err != nil {
		c.log.Error("component shutdown", "error", err)
	}

	c.out.Println("")
	c.out.Println(tag + " Shutting down...")
	c.log.Info("core shut down")

	return err
}
