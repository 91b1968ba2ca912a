package hardware

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// I2C_SLAVE from linux/i2c-dev.h
const i2cSlave = 0x0703

// I2CDev is a Bus backed by a Linux /dev/i2c-* character device. The slave
// address is bound with an ioctl before each write and cached so repeated
// writes to the same device skip the syscall.
type I2CDev struct {
	mu   sync.Mutex
	f    *os.File
	path string
	addr int
}

// OpenI2C opens a Linux I2C adapter device (e.g., /dev/i2c-1)
func OpenI2C(path string) (*I2CDev, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open i2c adapter %s: %w", path, err)
	}
	return &I2CDev{f: f, path: path, addr: -1}, nil
}

// Write transfers p to the device at addr
func (d *I2CDev) Write(addr uint8, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if int(addr) != d.addr {
		if err := unix.IoctlSetInt(int(d.f.Fd()), i2cSlave, int(addr)); err != nil {
			return fmt.Errorf("bind i2c address 0x%02x on %s: %w", addr, d.path, err)
		}
		d.addr = int(addr)
	}
	if _, err := d.f.Write(p); err != nil {
		d.addr = -1
		return fmt.Errorf("i2c write to 0x%02x on %s: %w", addr, d.path, err)
	}
	return nil
}

// Close releases the adapter device
func (d *I2CDev) Close() error {
	return d.f.Close()
}
