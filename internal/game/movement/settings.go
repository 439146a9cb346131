package movement

import (
	"github.com/Faultbox/midgard-nav/internal/config"
)

// Settings are the controller tunables. Times are in seconds.
type Settings struct {
	InputHoldDelay         float32
	TurnSpeedThreshold     float32
	SpeedDampTime          float32
	SlowingSpeed           float32
	TurnSmoothing          float32
	StopDistanceProportion float32
	NavMeshSampleDistance  float32
	// InteractionTimeout bounds the wait for the locomotion tag after an
	// interaction. Zero waits forever.
	InteractionTimeout float32
	LocomotionTag      string
}

// DefaultSettings returns the settings of config.Default().
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

// SettingsFromConfig converts loaded configuration to controller settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	m := cfg.Movement
	return Settings{
		InputHoldDelay:         float32(m.InputHoldDelay.Seconds()),
		TurnSpeedThreshold:     m.TurnSpeedThreshold,
		SpeedDampTime:          float32(m.SpeedDampTime.Seconds()),
		SlowingSpeed:           m.SlowingSpeed,
		TurnSmoothing:          m.TurnSmoothing,
		StopDistanceProportion: m.StopDistanceProportion,
		NavMeshSampleDistance:  m.NavMeshSampleDistance,
		InteractionTimeout:     float32(m.InteractionTimeout.Seconds()),
		LocomotionTag:          cfg.Animation.LocomotionTag,
	}
}
