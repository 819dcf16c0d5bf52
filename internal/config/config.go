package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"stackgrid/internal/domain"
	"stackgrid/internal/eventbus"
	"stackgrid/internal/geometry"
	"stackgrid/internal/stacking"
)

// FileName is the default config file name
const FileName = "stackgrid.toml"

// Animator names accepted by drag.animator
const (
	AnimatorDefault = "default"
	AnimatorStack   = "stack"
)

// ErrInvalidConfig is wrapped by every validation error
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Drag    DragSettings   `toml:"drag"`
	Grid    GridSettings   `toml:"grid"`
	UI      UISettings     `toml:"ui"`
	Board   []domain.Stack `toml:"board"`
}

// DragSettings mirrors stacking.Config; durations are Go duration strings
type DragSettings struct {
	TriggerInsets      EdgeInsets `toml:"trigger_insets"`
	MaxScrollSpeed     float64    `toml:"max_scroll_speed"`
	StackZone          float64    `toml:"stack_zone"`
	LongPress          string     `toml:"long_press"`
	MaxTriggerVelocity float64    `toml:"max_trigger_velocity"`
	TriggerRadius      float64    `toml:"trigger_radius"`
	ScrollTick         string     `toml:"scroll_tick"`
	Animator           string     `toml:"animator"` // AnimatorDefault or AnimatorStack
}

// EdgeInsets sets the auto-scroll trigger depth of each viewport edge, in
// content points
type EdgeInsets struct {
	Top    float64 `toml:"top"`
	Left   float64 `toml:"left"`
	Bottom float64 `toml:"bottom"`
	Right  float64 `toml:"right"`
}

// GridSettings describes the host's grid, in terminal cells
type GridSettings struct {
	Columns    int `toml:"columns"`
	CellWidth  int `toml:"cell_width"`
	CellHeight int `toml:"cell_height"`
	Gap        int `toml:"gap"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowStatus     bool `toml:"show_status"`
	AutosaveOnExit bool `toml:"autosave_on_exit"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns stackgrid.toml inside the user config directory
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "stackgrid", FileName)
}

// NewConfigService creates a config service for path. An empty path uses
// DefaultPath; bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the default configuration.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigLoadedEvent{Path: cs.filePath, Stacks: len(cfg.Board)})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	d := stacking.DefaultConfig()
	return &Config{
		Version: 1,
		Drag: DragSettings{
			TriggerInsets: EdgeInsets{
				Top:    d.TriggerInsets.Top,
				Left:   d.TriggerInsets.Left,
				Bottom: d.TriggerInsets.Bottom,
				Right:  d.TriggerInsets.Right,
			},
			MaxScrollSpeed:     d.MaxScrollSpeed,
			StackZone:          d.StackZone,
			LongPress:          d.LongPressDuration.String(),
			MaxTriggerVelocity: d.MaxTriggerVelocity,
			TriggerRadius:      d.TriggerRadius,
			ScrollTick:         d.ScrollTick.String(),
			Animator:           AnimatorStack,
		},
		Grid: GridSettings{
			Columns:    4,
			CellWidth:  16,
			CellHeight: 5,
			Gap:        1,
		},
		UI: UISettings{
			ShowStatus:     true,
			AutosaveOnExit: true,
		},
		Board: DefaultBoard(),
	}
}

// DefaultBoard returns the sample board shown on first run
func DefaultBoard() []domain.Stack {
	names := []string{
		"Aurora", "Basalt", "Cinder", "Delta", "Ember", "Fjord",
		"Glacier", "Harbor", "Island", "Juniper", "Kelp", "Lagoon",
		"Meadow", "Nebula", "Orchard", "Prairie", "Quartz", "Ridge",
		"Savanna", "Tundra", "Umber", "Valley", "Willow", "Yarrow",
	}
	board := make([]domain.Stack, len(names))
	for i, n := range names {
		board[i] = domain.NewStack(domain.Item{ID: fmt.Sprintf("item-%02d", i+1), Name: n})
	}
	return board
}

// Validate rejects out-of-range values
func (c *Config) Validate() error {
	d := c.Drag
	switch {
	case d.StackZone < 0 || d.StackZone > 1:
		return fmt.Errorf("%w: drag.stack_zone %v outside [0, 1]", ErrInvalidConfig, d.StackZone)
	case d.TriggerInsets.Top < 0 || d.TriggerInsets.Left < 0 || d.TriggerInsets.Bottom < 0 || d.TriggerInsets.Right < 0:
		return fmt.Errorf("%w: drag.trigger_insets must not be negative", ErrInvalidConfig)
	case d.MaxScrollSpeed < 0:
		return fmt.Errorf("%w: drag.max_scroll_speed must not be negative", ErrInvalidConfig)
	case d.MaxTriggerVelocity < 0:
		return fmt.Errorf("%w: drag.max_trigger_velocity must not be negative", ErrInvalidConfig)
	case d.TriggerRadius < 0:
		return fmt.Errorf("%w: drag.trigger_radius must not be negative", ErrInvalidConfig)
	case d.Animator != "" && d.Animator != AnimatorDefault && d.Animator != AnimatorStack:
		return fmt.Errorf("%w: drag.animator %q is not one of default, stack", ErrInvalidConfig, d.Animator)
	}
	if _, err := parseDuration("drag.long_press", d.LongPress); err != nil {
		return err
	}
	if _, err := parseDuration("drag.scroll_tick", d.ScrollTick); err != nil {
		return err
	}

	g := c.Grid
	switch {
	case g.Columns <= 0:
		return fmt.Errorf("%w: grid.columns must be positive", ErrInvalidConfig)
	case g.CellWidth <= 0 || g.CellHeight <= 0:
		return fmt.Errorf("%w: grid cell size must be positive", ErrInvalidConfig)
	case g.Gap < 0:
		return fmt.Errorf("%w: grid.gap must not be negative", ErrInvalidConfig)
	}

	for i, s := range c.Board {
		if s.Len() == 0 {
			return fmt.Errorf("%w: board[%d] has no items", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Layout converts the drag settings into an engine configuration
func (d DragSettings) Layout() (stacking.Config, error) {
	longPress, err := parseDuration("drag.long_press", d.LongPress)
	if err != nil {
		return stacking.Config{}, err
	}
	tick, err := parseDuration("drag.scroll_tick", d.ScrollTick)
	if err != nil {
		return stacking.Config{}, err
	}
	return stacking.Config{
		TriggerInsets: geometry.Insets{
			Top:    d.TriggerInsets.Top,
			Left:   d.TriggerInsets.Left,
			Bottom: d.TriggerInsets.Bottom,
			Right:  d.TriggerInsets.Right,
		},
		MaxScrollSpeed:     d.MaxScrollSpeed,
		StackZone:          d.StackZone,
		LongPressDuration:  longPress,
		MaxTriggerVelocity: d.MaxTriggerVelocity,
		TriggerRadius:      d.TriggerRadius,
		ScrollTick:         tick,
	}, nil
}

func parseDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, key)
	}
	return d, nil
}
