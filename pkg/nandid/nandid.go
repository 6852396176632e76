package nandid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// DefaultPaths lists the standard locations for an ID file.
var DefaultPaths = []string{
	"/etc/softnand/nand.ids",
	"/usr/share/softnand/nand.ids",
}

// JEP106 bank 1 codes of NAND makers.
var builtinMakers = map[byte]string{
	0x01: "Spansion",
	0x04: "Fujitsu",
	0x07: "Renesas",
	0x20: "STMicroelectronics",
	0x2C: "Micron",
	0x45: "SanDisk",
	0x89: "Intel",
	0x98: "Toshiba",
	0xAD: "Hynix",
	0xC2: "Macronix",
	0xC8: "GigaDevice",
	0xEC: "Samsung",
	0xEF: "Winbond",
}

var builtinDevices = map[uint16]string{
	0x2CF1: "MT29F1G08 (1 Gbit, x8)",
	0x2CDA: "MT29F2G08 (2 Gbit, x8)",
	0x2CDC: "MT29F4G08 (4 Gbit, x8)",
	0x98F1: "TC58NVG0S3 (1 Gbit, x8)",
	0xADF1: "H27U1G8F2B (1 Gbit, x8)",
	0xECF1: "K9F1G08U0 (1 Gbit, x8)",
	0xECDA: "K9F2G08U0 (2 Gbit, x8)",
	0xECDC: "K9F4G08U0 (4 Gbit, x8)",
}

// Database caches maker and device names.
type Database struct {
	makers  map[byte]string   // maker code -> name
	devices map[uint16]string // maker<<8 | device -> name
	loaded  bool
	mu      sync.RWMutex
	paths   []string
}

// New creates a database holding the built-in table that searches the
// default paths on Load.
func New() *Database {
	return NewWithPaths(DefaultPaths)
}

// NewWithPaths creates a database holding the built-in table that searches
// paths on Load.
func NewWithPaths(paths []string) *Database {
	db := &Database{
		makers:  make(map[byte]string, len(builtinMakers)),
		devices: make(map[uint16]string, len(builtinDevices)),
		paths:   paths,
	}
	for k, v := range builtinMakers {
		db.makers[k] = v
	}
	for k, v := range builtinDevices {
		db.devices[k] = v
	}
	return db
}

// Load merges the first ID file found into the database. Later calls do
// nothing. Returns false if no file was found.
func (db *Database) Load() bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.loaded {
		return true
	}
	// Mark as loaded even if no file is found to prevent repeated searches.
	db.loaded = true

	for _, path := range db.paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		db.parse(f)
		return true
	}
	return false
}

// Merge adds the entries read from r, replacing built-in names.
func (db *Database) Merge(r io.Reader) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.parse(r)
}

func (db *Database) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	maker, haveMaker := byte(0), false

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}

		device := line[0] == '\t'
		code, name, ok := splitEntry(strings.TrimLeft(line, "\t"))
		if !ok {
			if !device {
				haveMaker = false
			}
			continue
		}
		if device {
			if haveMaker {
				db.devices[uint16(maker)<<8|uint16(code)] = name
			}
			continue
		}
		maker, haveMaker = code, true
		db.makers[code] = name
	}
	return scanner.Err()
}

// splitEntry parses "xx  Name".
func splitEntry(s string) (byte, string, bool) {
	if len(s) < 4 || s[2] != ' ' {
		return 0, "", false
	}
	code, err := strconv.ParseUint(s[:2], 16, 8)
	if err != nil {
		return 0, "", false
	}
	name := strings.TrimSpace(s[3:])
	if name == "" {
		return 0, "", false
	}
	return byte(code), name, true
}

// Maker returns the name of a maker code, or "" if unknown.
func (db *Database) Maker(code byte) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.makers[code]
}

// Device returns the name of a device code, or "" if unknown.
func (db *Database) Device(maker, device byte) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.devices[uint16(maker)<<8|uint16(device)]
}

// Describe names the part behind the first two Read ID bytes.
func (db *Database) Describe(id []byte) string {
	if len(id) < 2 {
		return "unknown"
	}
	maker := db.Maker(id[0])
	if maker == "" {
		maker = fmt.Sprintf("maker %#02x", id[0])
	}
	device := db.Device(id[0], id[1])
	if device == "" {
		device = fmt.Sprintf("device %#02x", id[1])
	}
	return maker + " " + device
}

// IsLoaded reports whether Load has run.
func (db *Database) IsLoaded() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.loaded
}

// MakerCount returns the number of known makers.
func (db *Database) MakerCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.makers)
}

// DeviceCount returns the number of known devices.
func (db *Database) DeviceCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.devices)
}
