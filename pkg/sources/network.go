package sources

import (
	"context"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
)

// Network renders the active NetworkManager connection: an icon for the
// link kind, the connection name, and a connectivity marker.
type Network struct {
	interval       time.Duration
	connectedColor string
	offlineColor   string
	run            runner
}

// NewNetwork creates the network source from config.
func NewNetwork(cfg config.NetworkConfig) *Network {
	return &Network{
		interval:       cfg.Interval.Duration,
		connectedColor: cfg.ConnectedColor,
		offlineColor:   cfg.OfflineColor,
		run:            runCommand,
	}
}

func (n *Network) Name() string            { return "network" }
func (n *Network) Interval() time.Duration { return n.interval }

func (n *Network) Poll(ctx context.Context) (bar.Segment, error) {
	connection, err := n.run(ctx, "nmcli", "--terse", "connection", "show", "--active")
	if err != nil {
		return bar.Segment{}, err
	}
	// The connectivity check can fail independently (e.g. checking
	// disabled); an unknown state renders as "?" rather than an error.
	connectivity, _ := n.run(ctx, "nmcli", "networking", "connectivity", "check")

	return n.render(connection, connectivity), nil
}

// render turns raw nmcli output into a segment. The first active
// connection wins; terse output is colon-separated NAME:UUID:TYPE:DEVICE.
func (n *Network) render(connection, connectivity string) bar.Segment {
	line, _, _ := strings.Cut(strings.TrimSpace(connection), "\n")
	fields := strings.Split(line, ":")

	name := fields[0]
	kind := ""
	if len(fields) > 2 {
		kind = fields[2]
	}

	icon := "﹖"
	switch kind {
	case "802-3-ethernet":
		icon = ""
	case "802-11-wireless":
		icon = ""
	}

	status := connectivityMark(strings.TrimSpace(connectivity))

	if name == "" {
		return bar.Text(icon + " Disconnected").WithColor(n.offlineColor)
	}
	return bar.Text(icon + " " + name + status).WithColor(n.connectedColor)
}

// connectivityMark annotates degraded connectivity states: "!" for a
// captive portal or missing internet access, "?" when the state is
// unknown.
func connectivityMark(state string) string {
	switch state {
	case "full":
		return ""
	case "portal", "limited", "none":
		return "!"
	default:
		return "?"
	}
}
