// Package config handles controller and simulation configuration.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Movement   MovementConfig   `yaml:"movement"`
	Navigation NavigationConfig `yaml:"navigation"`
	Animation  AnimationConfig  `yaml:"animation"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// MovementConfig holds the click-to-move controller tunables.
type MovementConfig struct {
	InputHoldDelay         time.Duration `yaml:"input_hold_delay"`         // Hold before input is re-checked after an interaction
	TurnSpeedThreshold     float32       `yaml:"turn_speed_threshold"`     // Minimum speed before turning toward travel direction
	SpeedDampTime          time.Duration `yaml:"speed_damp_time"`          // Smoothing time of the animator speed parameter
	SlowingSpeed           float32       `yaml:"slowing_speed"`            // Units/second inside the stopping radius
	TurnSmoothing          float32       `yaml:"turn_smoothing"`           // Higher turns faster
	StopDistanceProportion float32       `yaml:"stop_distance_proportion"` // Inner radius as a fraction of the stopping distance
	NavMeshSampleDistance  float32       `yaml:"nav_mesh_sample_distance"` // How far a click may be from walkable ground
	InteractionTimeout     time.Duration `yaml:"interaction_timeout"`      // 0 waits for locomotion forever
}

// NavigationConfig holds grid navigation agent settings.
type NavigationConfig struct {
	CellSize         float32 `yaml:"cell_size"`
	Speed            float32 `yaml:"speed"`
	StoppingDistance float32 `yaml:"stopping_distance"`
	ArriveEpsilon    float32 `yaml:"arrive_epsilon"`
}

// AnimationConfig holds animator settings.
type AnimationConfig struct {
	LocomotionTag   string  `yaml:"locomotion_tag"`
	RootMotionScale float32 `yaml:"root_motion_scale"`
}

// SimulationConfig holds headless runner settings.
type SimulationConfig struct {
	FPS      int           `yaml:"fps"`
	Duration time.Duration `yaml:"duration"`
	Scenario string        `yaml:"scenario"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Movement: MovementConfig{
			InputHoldDelay:         500 * time.Millisecond,
			TurnSpeedThreshold:     0.5,
			SpeedDampTime:          100 * time.Millisecond,
			SlowingSpeed:           0.175,
			TurnSmoothing:          15,
			StopDistanceProportion: 0.1,
			NavMeshSampleDistance:  4,
			InteractionTimeout:     0,
		},
		Navigation: NavigationConfig{
			CellSize:         1,
			Speed:            3.5,
			StoppingDistance: 0.5,
			ArriveEpsilon:    0.01,
		},
		Animation: AnimationConfig{
			LocomotionTag:   "Locomotion",
			RootMotionScale: 1,
		},
		Simulation: SimulationConfig{
			FPS:      60,
			Duration: 20 * time.Second,
			Scenario: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges.
func (c *Config) Validate() error {
	m := c.Movement
	switch {
	case m.InputHoldDelay < 0:
		return fmt.Errorf("%w: movement.input_hold_delay must not be negative", ErrInvalidConfig)
	case m.SpeedDampTime < 0:
		return fmt.Errorf("%w: movement.speed_damp_time must not be negative", ErrInvalidConfig)
	case m.InteractionTimeout < 0:
		return fmt.Errorf("%w: movement.interaction_timeout must not be negative", ErrInvalidConfig)
	case m.StopDistanceProportion <= 0 || m.StopDistanceProportion > 1:
		return fmt.Errorf("%w: movement.stop_distance_proportion must be in (0, 1], got %v", ErrInvalidConfig, m.StopDistanceProportion)
	case m.SlowingSpeed < 0:
		return fmt.Errorf("%w: movement.slowing_speed must not be negative", ErrInvalidConfig)
	case m.NavMeshSampleDistance < 0:
		return fmt.Errorf("%w: movement.nav_mesh_sample_distance must not be negative", ErrInvalidConfig)
	}
	if c.Navigation.CellSize <= 0 {
		return fmt.Errorf("%w: navigation.cell_size must be positive", ErrInvalidConfig)
	}
	if c.Navigation.StoppingDistance < 0 {
		return fmt.Errorf("%w: navigation.stopping_distance must not be negative", ErrInvalidConfig)
	}
	if c.Animation.LocomotionTag == "" {
		return fmt.Errorf("%w: animation.locomotion_tag must be set", ErrInvalidConfig)
	}
	if c.Simulation.FPS <= 0 {
		return fmt.Errorf("%w: simulation.fps must be positive, got %d", ErrInvalidConfig, c.Simulation.FPS)
	}
	return nil
}
