// Package devfs drives an I2C bus through the Linux kernel's
// /dev/i2c-N character devices. It registers as the "devfs" driver and
// is only available on linux.
package devfs
