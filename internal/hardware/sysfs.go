package hardware

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const gpioRoot = "/sys/class/gpio"

// gpioLine is one exported sysfs GPIO line with its value file held open
// for repeated reads or writes.
type gpioLine struct {
	pin   int
	value *os.File
}

func exportGPIO(pin int, direction string) (*gpioLine, error) {
	pinDir := filepath.Join(gpioRoot, fmt.Sprintf("gpio%d", pin))
	if _, err := os.Stat(pinDir); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(filepath.Join(gpioRoot, "export"), []byte(strconv.Itoa(pin)), 0o644); err != nil {
			return nil, fmt.Errorf("export gpio %d: %w", pin, err)
		}
	}
	if err := os.WriteFile(filepath.Join(pinDir, "direction"), []byte(direction), 0o644); err != nil {
		return nil, fmt.Errorf("set gpio %d direction %s: %w", pin, direction, err)
	}
	flag := os.O_RDONLY
	if direction == "out" {
		flag = os.O_WRONLY
	}
	value, err := os.OpenFile(filepath.Join(pinDir, "value"), flag, 0)
	if err != nil {
		return nil, fmt.Errorf("open gpio %d value: %w", pin, err)
	}
	return &gpioLine{pin: pin, value: value}, nil
}

func (l *gpioLine) read() (bool, error) {
	var buf [1]byte
	if _, err := l.value.ReadAt(buf[:], 0); err != nil {
		return false, fmt.Errorf("read gpio %d: %w", l.pin, err)
	}
	return buf[0] == '1', nil
}

func (l *gpioLine) write(high bool) error {
	b := []byte("0")
	if high {
		b[0] = '1'
	}
	if _, err := l.value.WriteAt(b, 0); err != nil {
		return fmt.Errorf("write gpio %d: %w", l.pin, err)
	}
	return nil
}

func (l *gpioLine) close() error {
	return l.value.Close()
}

// GPIOButton reads a push button wired active-low with a pull-up, so a low
// line means pressed.
type GPIOButton struct {
	line *gpioLine
}

// NewGPIOButton exports the pin as an input and returns the button
func NewGPIOButton(pin int) (*GPIOButton, error) {
	line, err := exportGPIO(pin, "in")
	if err != nil {
		return nil, err
	}
	return &GPIOButton{line: line}, nil
}

// Pressed returns true while the button is held down
func (b *GPIOButton) Pressed() (bool, error) {
	high, err := b.line.read()
	if err != nil {
		return false, err
	}
	return !high, nil
}

// Close releases the GPIO line
func (b *GPIOButton) Close() error {
	return b.line.close()
}

// GPIORGB drives a common-cathode tri-color LED on three GPIO lines. Any
// nonzero channel level lights that leg; mixed legs give the composite
// colors (red+green reads as yellow).
type GPIORGB struct {
	r, g, b *gpioLine
}

// NewGPIORGB exports the three pins as outputs and returns the indicator
func NewGPIORGB(rPin, gPin, bPin int) (*GPIORGB, error) {
	r, err := exportGPIO(rPin, "out")
	if err != nil {
		return nil, err
	}
	g, err := exportGPIO(gPin, "out")
	if err != nil {
		r.close()
		return nil, err
	}
	b, err := exportGPIO(bPin, "out")
	if err != nil {
		r.close()
		g.close()
		return nil, err
	}
	return &GPIORGB{r: r, g: g, b: b}, nil
}

// Set applies a color to the indicator
func (l *GPIORGB) Set(c Color) error {
	if err := l.r.write(c.R > 0); err != nil {
		return err
	}
	if err := l.g.write(c.G > 0); err != nil {
		return err
	}
	return l.b.write(c.B > 0)
}

// Close releases the three GPIO lines
func (l *GPIORGB) Close() error {
	err := l.r.close()
	if e := l.g.close(); err == nil {
		err = e
	}
	if e := l.b.close(); err == nil {
		err = e
	}
	return err
}
