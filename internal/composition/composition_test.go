package composition

import "testing"

func approxEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

func TestWeightedSingleLotReturnsSameFractions(t *testing.T) {
	c := Composition{"Fe": 0.7, "Si": 0.3}
	result := Weighted([]WeightedPair{{Composition: c, Kg: 100.0}})

	if !approxEqual(result["Fe"], 0.7) || !approxEqual(result["Si"], 0.3) {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestWeightedTwoLotsAveragesByMass(t *testing.T) {
	a := Composition{"Fe": 0.8, "Si": 0.2}
	b := Composition{"Fe": 0.4, "Si": 0.6}

	result := Weighted([]WeightedPair{{Composition: a, Kg: 100.0}, {Composition: b, Kg: 300.0}})

	if !approxEqual(result["Fe"], 0.5) || !approxEqual(result["Si"], 0.5) {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestWeightedZeroTotalKgReturnsEmpty(t *testing.T) {
	result := Weighted([]WeightedPair{{Composition: Composition{}, Kg: 0.0}})
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestBlendSlagWeightedByMass(t *testing.T) {
	existing := Composition{"Si": 1.0}
	fresh := Composition{"Si": 0.5, "Al": 0.5}

	blended := BlendSlag(existing, 100.0, fresh, 100.0)

	if !approxEqual(blended["Si"], 0.75) || !approxEqual(blended["Al"], 0.25) {
		t.Fatalf("unexpected blend: %+v", blended)
	}
}
