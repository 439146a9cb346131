package main

import (
	"testing"

	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/internal/game/world"
)

func TestDefaultScenarioBuilds(t *testing.T) {
	sc, err := loadScenario("")
	if err != nil {
		t.Fatalf("built-in scenario invalid: %v", err)
	}
	if _, err := world.NewScene(sc, config.Default(), nil); err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
}
