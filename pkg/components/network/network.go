// Package network implements the NETWORK component. It performs no real I/O;
// its status report is a fixed simulation.
package network

import (
	"github.com/germanamz/fabricator/pkg/component"
	"github.com/germanamz/fabricator/pkg/display"
)

// Name is the registry name of the network component.
const Name = "NETWORK"

// Tag prefixes every line of the simulated report.
const Tag = "[NETWORK]"

var report = []string{
	Tag + " Scanning interfaces...",
	Tag + " eth0: 192.168.1.100",
	Tag + " wlan0: 10.0.0.5",
	Tag + " Status: Connected",
}

// Network is the network stub.
type Network struct {
	component.Lifecycle

	out display.Surface
}

// New creates a Network reporting to out.
func New(out display.Surface) *Network {
	return &Network{out: out}
}

func (n *Network) Initialize() bool { return n.Start(nil) }

func (n *Network) Name() string { return Name }

func (n *Network) Update() {}

// SimulateActivity prints the fixed four-line interface report.
func (n *Network) SimulateActivity() {
	n.out.SetStyle(display.Cyan)
	for _, line := range report {
		n.out.Println(line)
	}
	n.out.ResetStyle()
}
