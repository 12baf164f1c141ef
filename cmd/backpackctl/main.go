// backpackctl pokes at an HT16K33 LED backpack through any registered
// bus driver: it writes a byte pattern into display RAM, reads it back
// and hex dumps the result. With -bench it measures write/read round
// trips instead and prints a latency histogram.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/golang/glog"

	"backpack/ht16k33"
	"backpack/i2c"
	_ "backpack/i2c/mock"
	_ "backpack/i2c/uartbridge"
	_ "backpack/i2c/wsremote"
)

var (
	driver  = flag.String("driver", "mock", "bus driver to use; see -list")
	busName = flag.String("bus", "", "bus name: device path, serial port or URL, driver-specific")
	addr    = flag.Uint("addr", uint(ht16k33.DefaultAddr), "7-bit device address")
	offset  = flag.Uint("offset", 0, "starting display RAM row")
	pattern = flag.String("pattern", "a55a", "hex bytes to write to display RAM")
	count   = flag.Uint("count", ht16k33.RowsSize, "bytes to read back")
	bench   = flag.Uint("bench", 0, "measure N write/read transactions and print a latency histogram")
	list    = flag.Bool("list", false, "list registered drivers and exit")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if *list {
		for _, name := range i2c.Drivers() {
			fmt.Println(name)
		}
		return
	}

	data, err := hex.DecodeString(*pattern)
	if err != nil {
		glog.Fatalln("Bad -pattern: ", err)
	}

	bus, err := i2c.Open(*driver, *busName)
	if err != nil {
		glog.Fatalln("Failed to open bus: ", err)
	}
	defer bus.Close()

	a := uint16(*addr)

	if *bench > 0 {
		runBench(bus, a, data, int(*bench))
		return
	}

	// address-pointer byte plus payload:
	wbuf := append([]byte{ht16k33.DispRAMAddr(byte(*offset))}, data...)
	if err = i2c.WriteBytes(bus, a, wbuf); err != nil {
		glog.Fatalln("Write failed: ", err)
	}
	glog.Infof("wrote %d bytes at row %d", len(data), *offset)

	rbuf := make([]byte, *count)
	if err = i2c.WriteRead(bus, a, []byte{ht16k33.DispRAMAddr(byte(*offset))}, rbuf); err != nil {
		glog.Fatalln("Read failed: ", err)
	}

	fmt.Print(hex.Dump(rbuf))
}

// runBench times n write+read round trips against row 0 and prints the
// latency distribution in microseconds.
func runBench(bus i2c.Bus, addr uint16, data []byte, n int) {
	wbuf := append([]byte{ht16k33.DispRAMAddr(0)}, data...)
	rbuf := make([]byte, len(data))

	lat := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		if err := i2c.WriteBytes(bus, addr, wbuf); err != nil {
			glog.Fatalln("Write failed: ", err)
		}
		if err := i2c.WriteRead(bus, addr, []byte{ht16k33.DispRAMAddr(0)}, rbuf); err != nil {
			glog.Fatalln("Read failed: ", err)
		}
		lat = append(lat, float64(time.Since(start).Microseconds()))
	}

	hist := histogram.Hist(9, lat)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		glog.Fatalln("Failed to print histogram: ", err)
	}
}
