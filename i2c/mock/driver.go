package mock

import "backpack/i2c"

const driverName = "mock"

type Driver struct{}

// Open returns a fresh mock bus. The name is ignored; there is nothing
// to locate.
func (d *Driver) Open(name string) (i2c.Bus, error) {
	return New(), nil
}

func init() {
	i2c.Register(driverName, &Driver{})
}
