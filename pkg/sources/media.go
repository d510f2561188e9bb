package sources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/pulsebar/pkg/bar"
	"gitlab.com/tinyland/lab/pulsebar/pkg/config"
	"gitlab.com/tinyland/lab/pulsebar/pkg/mpris"
)

// mediaPlayer is the slice of mpris.Player the segment needs.
type mediaPlayer interface {
	NowPlaying() (mpris.NowPlaying, error)
}

// Media renders the current MPRIS track with playback controls bound to
// clicks: left for previous, middle for play/pause, right for next.
type Media struct {
	interval time.Duration
	color    string
	player   mediaPlayer
}

// NewMedia creates the media source around an MPRIS player handle.
func NewMedia(cfg config.MediaConfig, player mediaPlayer) *Media {
	return &Media{
		interval: cfg.Interval.Duration,
		color:    cfg.Color,
		player:   player,
	}
}

func (m *Media) Name() string            { return "media" }
func (m *Media) Interval() time.Duration { return m.interval }

func (m *Media) Poll(ctx context.Context) (bar.Segment, error) {
	np, err := m.player.NowPlaying()
	if errors.Is(err, mpris.ErrNoPlayer) {
		return bar.Segment{}, nil
	}
	if err != nil {
		return bar.Segment{}, err
	}

	icon := ""
	if !np.Playing {
		icon = ""
	}
	return bar.Text(fmt.Sprintf("%s  %s - %s", icon, np.Artist, np.Title)).
		WithColor(m.color).
		WithClick(bar.ButtonLeft, "mus_prev").
		WithClick(bar.ButtonMiddle, "mus_toggle").
		WithClick(bar.ButtonRight, "mus_next"), nil
}
