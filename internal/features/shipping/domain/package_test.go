package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightToKg(t *testing.T) {
	tests := []struct {
		name     string
		measure  *Measure
		expected float64
	}{
		{name: "Kilograms", measure: &Measure{Value: 2, Unit: "kg"}, expected: 2},
		{name: "Grams", measure: &Measure{Value: 500, Unit: "g"}, expected: 0.5},
		{name: "Milligrams", measure: &Measure{Value: 250000, Unit: "mg"}, expected: 0.25},
		{name: "UnknownUnit", measure: &Measure{Value: 3, Unit: "lb"}, expected: 0},
		{name: "NoUnit", measure: &Measure{Value: 3}, expected: 0},
		{name: "Nil", measure: nil, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, WeightToKg(tt.measure), 1e-9)
		})
	}
}

func TestLengthToCm(t *testing.T) {
	assert.Equal(t, 150.0, LengthToCm(Measure{Value: 1.5, Unit: "m"}))
	assert.Equal(t, 12.0, LengthToCm(Measure{Value: 120, Unit: "mm"}))
	assert.Equal(t, 30.0, LengthToCm(Measure{Value: 30, Unit: "cm"}))
	assert.Equal(t, 30.0, LengthToCm(Measure{Value: 30, Unit: "in"}))
}

func TestComputePackage(t *testing.T) {
	t.Run("PhysicalWeight", func(t *testing.T) {
		pkg := ComputePackage([]Item{
			{Price: 100, Quantity: 1, Weight: &Measure{Value: 2, Unit: "kg"}},
		})
		assert.Equal(t, 2.0, pkg.WeightKg)
		assert.Equal(t, 0.0, pkg.VolumeCm3)
		assert.Equal(t, StandardBoxes()[0], pkg.Dimensions)
	})

	t.Run("CubicWeightWins", func(t *testing.T) {
		// 60 x 50 x 40 cm = 120000 cm³ -> 20 kg cubic
		pkg := ComputePackage([]Item{{
			Quantity: 2,
			Weight:   &Measure{Value: 1, Unit: "kg"},
			Dimensions: map[string]Measure{
				"width":  {Value: 60, Unit: "cm"},
				"height": {Value: 0.5, Unit: "m"},
				"length": {Value: 400, Unit: "mm"},
			},
		}})
		assert.InDelta(t, 40.0, pkg.WeightKg, 1e-9)
		assert.InDelta(t, 240000.0, pkg.VolumeCm3, 1e-6)
		assert.Equal(t, Box{Height: 36, Width: 70, Length: 36}, pkg.Dimensions)
	})

	t.Run("MinimumWeight", func(t *testing.T) {
		pkg := ComputePackage([]Item{{Quantity: 1, Weight: &Measure{Value: 5, Unit: "g"}}})
		assert.Equal(t, MinWeightKg, pkg.WeightKg)

		pkg = ComputePackage(nil)
		assert.Equal(t, MinWeightKg, pkg.WeightKg)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		pkg := ComputePackage([]Item{{
			Quantity:   0,
			Weight:     &Measure{Value: 10, Unit: "kg"},
			Dimensions: map[string]Measure{"width": {Value: 10}, "height": {Value: 10}, "length": {Value: 10}},
		}})
		assert.Equal(t, MinWeightKg, pkg.WeightKg)
		assert.Equal(t, 0.0, pkg.VolumeCm3)
	})

	t.Run("Content", func(t *testing.T) {
		assert.Equal(t, "Camiseta", ComputePackage([]Item{{Name: "Camiseta", Quantity: 1}}).Content)
		assert.Equal(t, "Pedido", ComputePackage([]Item{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 1}}).Content)
		assert.Equal(t, "Pedido", ComputePackage([]Item{{Quantity: 1}}).Content)
	})
}

func TestStandardBoxes_Sorted(t *testing.T) {
	boxes := StandardBoxes()
	for i := 1; i < len(boxes); i++ {
		assert.LessOrEqual(t, boxes[i-1].Volume(), boxes[i].Volume())
	}
}

func TestBestBox(t *testing.T) {
	boxes := StandardBoxes()

	for _, v := range []float64{0, 1, 1536, 1537, 2187, 5000, 26244, 90000, 90720, 1e9} {
		box := BestBox(v)
		if v > boxes[len(boxes)-1].Volume() {
			assert.Equal(t, boxes[len(boxes)-1], box, "volume %v", v)
			continue
		}
		assert.GreaterOrEqual(t, box.Volume(), v, "volume %v", v)
		for _, smaller := range boxes {
			if smaller.Volume() >= v {
				assert.LessOrEqual(t, box.Volume(), smaller.Volume(), "volume %v", v)
			}
		}
	}

	assert.Equal(t, Box{Height: 9, Width: 18, Length: 13.5}, BestBox(2000))
}

func TestBestBox_Monotonic(t *testing.T) {
	prev := 0.0
	for v := 0.0; v <= 100000; v += 250 {
		vol := BestBox(v).Volume()
		assert.GreaterOrEqual(t, vol, prev)
		prev = vol
	}
}

func TestDeclaredValue(t *testing.T) {
	items := []Item{{Price: 10, Quantity: 2}, {Price: 5.5, Quantity: 1}}
	assert.Equal(t, 25.5, DeclaredValue(items, 0))
	assert.Equal(t, 99.9, DeclaredValue(items, 99.9))
	assert.Equal(t, 0.0, DeclaredValue(nil, 0))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "01000000", DigitsOnly("01000-000"))
	assert.Equal(t, "", DigitsOnly("abc"))
}
