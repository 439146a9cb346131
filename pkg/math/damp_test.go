package math

import "testing"

func TestSmoothDampConverges(t *testing.T) {
	var vel float32
	value := float32(0)
	prev := value

	for i := 0; i < 120; i++ {
		value = SmoothDamp(value, 3, &vel, 0.1, 1.0/60)
		if value < prev {
			t.Fatalf("frame %d: value decreased %v -> %v", i, prev, value)
		}
		if value > 3 {
			t.Fatalf("frame %d: overshot target with %v", i, value)
		}
		prev = value
	}

	if 3-value > 0.01 {
		t.Errorf("expected convergence to 3 after 2s, got %v", value)
	}
}

func TestSmoothDampIsNotInstant(t *testing.T) {
	var vel float32
	got := SmoothDamp(0, 5, &vel, 0.1, 1.0/60)
	if got <= 0 || got >= 5 {
		t.Errorf("one damped step should land strictly between 0 and 5, got %v", got)
	}
}

func TestSmoothDampZeroDt(t *testing.T) {
	var vel float32
	if got := SmoothDamp(1, 5, &vel, 0.1, 0); got != 1 {
		t.Errorf("zero dt should not move, got %v", got)
	}
}

func TestSmoothDampDownward(t *testing.T) {
	var vel float32
	value := float32(4)
	for i := 0; i < 240; i++ {
		value = SmoothDamp(value, 0, &vel, 0.1, 1.0/60)
		if value < 0 {
			t.Fatalf("overshot below target: %v", value)
		}
	}
	if value > 0.001 {
		t.Errorf("expected convergence to 0, got %v", value)
	}
}
