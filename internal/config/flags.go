package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagScenario = flag.String("scenario", "", "Path to scenario file")
	flagFPS      = flag.Int("fps", 0, "Simulation frames per second")
	flagDuration = flag.Duration("duration", 0, "Simulated time to run")
	flagTimeout  = flag.Duration("interaction-timeout", -1, "Bound on the wait for locomotion after an interaction (0 = forever)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScenario != "" {
		cfg.Simulation.Scenario = *flagScenario
	}
	if *flagFPS > 0 {
		cfg.Simulation.FPS = *flagFPS
	}
	if *flagDuration > 0 {
		cfg.Simulation.Duration = *flagDuration
	}
	if *flagTimeout >= 0 {
		cfg.Movement.InteractionTimeout = *flagTimeout
	}
}
