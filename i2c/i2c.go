// Package i2c provides a transport abstraction for I2C-attached
// devices: a synchronous Bus interface, an asynchronous command Queue
// over it, and a registry of named bus drivers. Real transports
// (kernel devfs, serial bridges, remote buses) and the mock register
// here interchangeably.
package i2c

import (
	"fmt"
	"sort"
	"sync"
)

type Driver interface {
	// Open connects to the bus identified by name. The format of name
	// is driver-specific: a device path, a serial port, or a URL.
	Open(name string) (Bus, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a bus driver available by the provided name.
// If Register is called twice with the same name or if driver is nil,
// it panics.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("i2c: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("i2c: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

func unregisterAllDrivers() {
	driversMu.Lock()
	defer driversMu.Unlock()
	// For tests.
	drivers = make(map[string]Driver)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func Open(driverName, busName string) (Bus, error) {
	driversMu.RLock()
	driveri, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("i2c: unknown driver %q (forgotten import?)", driverName)
	}

	return driveri.Open(busName)
}
