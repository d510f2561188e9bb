package config

import "time"

// Config is the root configuration for pulsebar.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Audio   AudioConfig   `toml:"audio"`
	Sources SourcesConfig `toml:"sources"`
}

// LogConfig controls diagnostic logging. Logs go to stderr so they never
// corrupt the protocol stream on stdout; File, when set, mirrors them to a
// file as well.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// AudioConfig configures the mixer and device-picker subsystem.
type AudioConfig struct {
	// Control is the mixer simple control adjusted by the volume actions.
	Control string `toml:"control"`

	// Picker is the interactive list-selection command spawned by the
	// device menu action. It receives alternating name and description
	// lines on stdin and must print the selected name on stdout.
	Picker []string `toml:"picker"`
}

// SourcesConfig holds one block per status segment, in no particular order;
// render order is fixed by the bar, not the config.
type SourcesConfig struct {
	Media       MediaConfig       `toml:"media"`
	Volume      VolumeConfig      `toml:"volume"`
	Keyboard    KeyboardConfig    `toml:"keyboard"`
	Disk        DiskConfig        `toml:"disk"`
	Network     NetworkConfig     `toml:"network"`
	LoadAvg     LoadAvgConfig     `toml:"loadavg"`
	Memory      MemoryConfig      `toml:"memory"`
	Temperature TemperatureConfig `toml:"temperature"`
	Battery     BatteryConfig     `toml:"battery"`
	Backlight   BacklightConfig   `toml:"backlight"`
	Clock       ClockConfig       `toml:"clock"`
	Text        TextConfig        `toml:"text"`
}

// MediaConfig configures the MPRIS media player segment.
type MediaConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Color    string   `toml:"color"`
}

// VolumeConfig configures the mixer volume segment.
type VolumeConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Color    string   `toml:"color"`
}

// KeyboardConfig configures the ibus keyboard layout segment.
type KeyboardConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// DiskConfig configures the free disk space segment.
type DiskConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Color    string   `toml:"color"`
	Mount    string   `toml:"mount"`
}

// NetworkConfig configures the active connection segment.
type NetworkConfig struct {
	Enabled        bool     `toml:"enabled"`
	Interval       Duration `toml:"interval"`
	ConnectedColor string   `toml:"connected_color"`
	OfflineColor   string   `toml:"offline_color"`
}

// LoadAvgConfig configures the load average segment.
type LoadAvgConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Color    string   `toml:"color"`
}

// MemoryConfig configures the free memory segment.
type MemoryConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Color    string   `toml:"color"`
}

// TemperatureConfig configures the CPU temperature segment.
type TemperatureConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Color    string   `toml:"color"`
	// Sensor restricts the reading to sensor keys containing this
	// substring. Empty means "hottest sensor wins".
	Sensor string `toml:"sensor"`
}

// BatteryConfig configures the battery segment and its low-charge alert.
type BatteryConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	// WarnPercent is the capacity at or below which, while discharging,
	// a single critical notification fires per discharge period.
	WarnPercent int `toml:"warn_percent"`
}

// BacklightConfig configures the screen brightness segment.
type BacklightConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Color    string   `toml:"color"`
	// Device is the name under /sys/class/backlight. Empty picks the
	// first device found.
	Device string `toml:"device"`
}

// ClockConfig configures the date/time segment.
type ClockConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	// Format is a Go reference-time layout.
	Format string `toml:"format"`
}

// TextConfig configures the static flair segment.
type TextConfig struct {
	Enabled bool   `toml:"enabled"`
	Content string `toml:"content"`
}

// Default returns the built-in configuration: every segment enabled at the
// cadence and palette the bar shipped with.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			Control: "Master",
			Picker: []string{
				"zenity", "--list",
				"--text=Choose an audio device",
				"--column=device-id", "--column=Device name",
				"--hide-column=1",
				"--width=450", "--height=250",
			},
		},
		Sources: SourcesConfig{
			Media: MediaConfig{
				Enabled:  true,
				Interval: Duration{1 * time.Second},
				Color:    "#9090ff",
			},
			Volume: VolumeConfig{
				Enabled:  true,
				Interval: Duration{1 * time.Second},
				Color:    "#9090ff",
			},
			Keyboard: KeyboardConfig{
				Enabled:  true,
				Interval: Duration{1 * time.Second},
			},
			Disk: DiskConfig{
				Enabled:  true,
				Interval: Duration{2 * time.Second},
				Color:    "#cccccc",
				Mount:    "/",
			},
			Network: NetworkConfig{
				Enabled:        true,
				Interval:       Duration{1 * time.Second},
				ConnectedColor: "#99ee99",
				OfflineColor:   "#bb5555",
			},
			LoadAvg: LoadAvgConfig{
				Enabled:  true,
				Interval: Duration{1 * time.Second},
				Color:    "#cc9999",
			},
			Memory: MemoryConfig{
				Enabled:  true,
				Interval: Duration{2 * time.Second},
				Color:    "#ffc300",
			},
			Temperature: TemperatureConfig{
				Enabled:  true,
				Interval: Duration{2 * time.Second},
				Color:    "#10ff10",
			},
			Battery: BatteryConfig{
				Enabled:     true,
				Interval:    Duration{1 * time.Second},
				WarnPercent: 10,
			},
			Backlight: BacklightConfig{
				Enabled:  true,
				Interval: Duration{2 * time.Second},
				Color:    "#ffff55",
			},
			Clock: ClockConfig{
				Enabled:  true,
				Interval: Duration{1 * time.Second},
				Format:   " 02/01 15:04",
			},
			Text: TextConfig{
				Enabled: true,
				Content: "(◕ᴗ◕✿)",
			},
		},
	}
}
