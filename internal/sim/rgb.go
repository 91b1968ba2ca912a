package sim

import (
	"sync"

	"github.com/lox/blackjackmachine/internal/hardware"
)

// RGB is an indicator that remembers the last color it was set to
type RGB struct {
	mu    sync.Mutex
	color hardware.Color
}

// NewRGB creates an indicator that starts dark
func NewRGB() *RGB {
	return &RGB{}
}

// Set records the color
func (r *RGB) Set(c hardware.Color) error {
	r.mu.Lock()
	r.color = c
	r.mu.Unlock()
	return nil
}

// Color returns the last color set
func (r *RGB) Color() hardware.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.color
}
