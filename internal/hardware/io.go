package hardware

// Color is an RGB triple for a tri-color indicator
type Color struct {
	R, G, B uint8
}

// Button reports the instantaneous state of a physical push button.
// Implementations handle electrical inversion (active-low wiring) so true
// always means pressed. Debouncing happens upstream in internal/input.
type Button interface {
	Pressed() (bool, error)
}

// RGB drives one tri-color indicator
type RGB interface {
	Set(c Color) error
}
