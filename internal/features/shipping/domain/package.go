package domain

import "sort"

const (
	// CubicDivisor converts a volume in cm³ to its volumetric weight in kg.
	CubicDivisor = 6000
	// MinWeightKg is the minimum billable shipment weight.
	MinWeightKg = 0.1
)

// Box is a standard package size in centimeters.
type Box struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

// Volume returns the box volume in cm³.
func (b Box) Volume() float64 {
	return b.Height * b.Width * b.Length
}

// standardBoxes is sorted ascending by volume in init.
var standardBoxes = []Box{
	{Height: 4, Width: 16, Length: 24},
	{Height: 4, Width: 36, Length: 28},
	{Height: 9, Width: 27, Length: 18},
	{Height: 9, Width: 18, Length: 13.5},
	{Height: 13.5, Width: 27, Length: 22.5},
	{Height: 18, Width: 36, Length: 27},
	{Height: 27, Width: 36, Length: 27},
	{Height: 27, Width: 54, Length: 36},
	{Height: 36, Width: 70, Length: 36},
}

func init() {
	sort.SliceStable(standardBoxes, func(i, j int) bool {
		return standardBoxes[i].Volume() < standardBoxes[j].Volume()
	})
}

// StandardBoxes returns a copy of the box table, smallest first.
func StandardBoxes() []Box {
	out := make([]Box, len(standardBoxes))
	copy(out, standardBoxes)
	return out
}

// PackageSpec is the sizing result for a cart.
type PackageSpec struct {
	// WeightKg is the billable weight, never below MinWeightKg.
	WeightKg float64
	// VolumeCm3 is the summed packaging volume of all items.
	VolumeCm3 float64
	// Dimensions is the box chosen for VolumeCm3.
	Dimensions Box
	// DeclaredValue is the insured value of the shipment.
	DeclaredValue float64
	// Content describes what is being shipped.
	Content string
}

// WeightToKg converts a declared weight. Unknown units yield 0.
func WeightToKg(m *Measure) float64 {
	if m == nil || m.Value == 0 {
		return 0
	}
	switch m.Unit {
	case "kg":
		return m.Value
	case "g":
		return m.Value / 1000
	case "mg":
		return m.Value / 1000000
	default:
		return 0
	}
}

// LengthToCm converts a declared side length. Unknown units are taken as cm.
func LengthToCm(m Measure) float64 {
	switch m.Unit {
	case "m":
		return m.Value * 100
	case "mm":
		return m.Value / 10
	default:
		return m.Value
	}
}

// ItemVolume multiplies every declared side of the item, in cm³.
// Items without sides have a volume of 1.
func ItemVolume(item Item) float64 {
	volume := 1.0
	for _, side := range item.Dimensions {
		if cm := LengthToCm(side); cm > 0 {
			volume *= cm
		}
	}
	return volume
}

// ComputePackage sums physical and cubic weight across items and picks the best box.
func ComputePackage(items []Item) PackageSpec {
	var weight, volume float64

	for _, item := range items {
		physical := WeightToKg(item.Weight)

		var cubic float64
		if cm3 := ItemVolume(item); cm3 > 1 {
			cubic = cm3 / CubicDivisor
			volume += item.Quantity * cm3
		}

		weight += item.Quantity * max(physical, cubic)
	}

	if weight < MinWeightKg {
		weight = MinWeightKg
	}

	return PackageSpec{
		WeightKg:   weight,
		VolumeCm3:  volume,
		Dimensions: BestBox(volume),
		Content:    packageContent(items),
	}
}

// BestBox returns the smallest standard box that holds volume, or the largest box.
func BestBox(volume float64) Box {
	for _, box := range standardBoxes {
		if box.Volume() >= volume {
			return box
		}
	}
	return standardBoxes[len(standardBoxes)-1]
}

// DeclaredValue is subtotal when set, else the sum of price times quantity.
func DeclaredValue(items []Item, subtotal float64) float64 {
	if subtotal > 0 {
		return subtotal
	}
	var total float64
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

func packageContent(items []Item) string {
	if len(items) == 1 && items[0].Name != "" {
		return items[0].Name
	}
	return "Pedido"
}
