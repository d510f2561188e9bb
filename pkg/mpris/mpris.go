// Package mpris is a minimal MPRIS D-Bus client: just enough of the
// org.mpris.MediaPlayer2 interface to render a now-playing segment and
// drive play-pause/previous/next from click actions.
package mpris

import (
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	busPrefix   = "org.mpris.MediaPlayer2."
	objectPath  = "/org/mpris/MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"
)

// ErrNoPlayer is returned when no MPRIS-capable player owns a bus name.
// Callers treat it as "nothing playing", not as a probe failure.
var ErrNoPlayer = errors.New("no media player running")

// NowPlaying is one snapshot of the active player's state.
type NowPlaying struct {
	// Playing is true for PlaybackStatus "Playing", false for "Paused".
	Playing bool
	Artist  string
	Title   string
}

// Player talks to the first MPRIS player on the session bus. The player is
// re-discovered on every call, so a restarted or replaced player is picked
// up without reconnecting.
type Player struct {
	conn *dbus.Conn
}

// Connect opens the session bus.
func Connect() (*Player, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &Player{conn: conn}, nil
}

// find returns the bus object of the first media player, or ErrNoPlayer.
func (p *Player) find() (dbus.BusObject, error) {
	var names []string
	if err := p.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list bus names: %w", err)
	}
	name, ok := firstPlayerName(names)
	if !ok {
		return nil, ErrNoPlayer
	}
	return p.conn.Object(name, objectPath), nil
}

// firstPlayerName picks the first MPRIS bus name from a name list.
func firstPlayerName(names []string) (string, bool) {
	for _, n := range names {
		if strings.HasPrefix(n, busPrefix) {
			return n, true
		}
	}
	return "", false
}

// NowPlaying reads the active player's playback status and current track.
// A stopped player reports ErrNoPlayer, same as an absent one.
func (p *Player) NowPlaying() (NowPlaying, error) {
	obj, err := p.find()
	if err != nil {
		return NowPlaying{}, err
	}

	statusVar, err := obj.GetProperty(playerIface + ".PlaybackStatus")
	if err != nil {
		return NowPlaying{}, fmt.Errorf("read playback status: %w", err)
	}
	status, _ := statusVar.Value().(string)
	if status != "Playing" && status != "Paused" {
		return NowPlaying{}, ErrNoPlayer
	}

	np := NowPlaying{Playing: status == "Playing"}

	metaVar, err := obj.GetProperty(playerIface + ".Metadata")
	if err != nil {
		return NowPlaying{}, fmt.Errorf("read metadata: %w", err)
	}
	if md, ok := metaVar.Value().(map[string]dbus.Variant); ok {
		np.Artist, np.Title = trackFromMetadata(md)
	}
	return np, nil
}

// trackFromMetadata extracts artist and title from MPRIS metadata. The
// xesam:artist entry is a string list; the first artist wins.
func trackFromMetadata(md map[string]dbus.Variant) (artist, title string) {
	if v, ok := md["xesam:artist"]; ok {
		if artists, ok := v.Value().([]string); ok && len(artists) > 0 {
			artist = artists[0]
		}
	}
	if v, ok := md["xesam:title"]; ok {
		title, _ = v.Value().(string)
	}
	return artist, title
}

func (p *Player) call(method string) error {
	obj, err := p.find()
	if err != nil {
		return err
	}
	if call := obj.Call(playerIface+"."+method, 0); call.Err != nil {
		return fmt.Errorf("%s: %w", method, call.Err)
	}
	return nil
}

// PlayPause toggles playback on the active player.
func (p *Player) PlayPause() error { return p.call("PlayPause") }

// Previous skips to the previous track.
func (p *Player) Previous() error { return p.call("Previous") }

// Next skips to the next track.
func (p *Player) Next() error { return p.call("Next") }
