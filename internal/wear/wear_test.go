package wear

import (
	"testing"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
)

func testConstants() *content.Constants {
	return &content.Constants{
		WearBandDegradedThreshold:  0.5,
		WearBandCriticalThreshold:  0.8,
		WearBandDegradedEfficiency: 0.75,
		WearBandCriticalEfficiency: 0.5,
	}
}

func TestEfficiencyNominalBelowDegradedThreshold(t *testing.T) {
	c := testConstants()
	if got := Efficiency(0.3, c); got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestEfficiencyDegradedAtThreshold(t *testing.T) {
	c := testConstants()
	if got := Efficiency(0.5, c); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestEfficiencyCriticalAtThreshold(t *testing.T) {
	c := testConstants()
	if got := Efficiency(0.8, c); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := Efficiency(1.0, c); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}
