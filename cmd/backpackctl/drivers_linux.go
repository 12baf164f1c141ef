//go:build linux

package main

import _ "backpack/i2c/devfs"
