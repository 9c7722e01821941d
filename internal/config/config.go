// Package config holds the TOML configuration shared by compilation units and
// the revc driver.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"

	"github.com/naoina/toml"

	"github.com/revision-lang/revision/internal/diag"
)

// Unit configures a single compilation unit.
type Unit struct {
	// ArenaBlockSize is the size in bytes of each raw arena block.
	// Zero selects the arena default.
	ArenaBlockSize int `toml:",omitempty"`
}

// Diag configures diagnostic output.
type Diag struct {
	Color    string // "auto", "always" or "never"
	Snippets bool   // print source snippets under each diagnostic
}

// Driver configures the revc command.
type Driver struct {
	Jobs      int // files tokenized in parallel
	Verbosity int // log level, 0=silent .. 5=trace
}

// Config is the top-level configuration file layout.
type Config struct {
	Unit   Unit
	Diag   Diag
	Driver Driver
}

// Defaults is the configuration used when no file is given.
var Defaults = Config{
	Unit: Unit{},
	Diag: Diag{
		Color:    "auto",
		Snippets: true,
	},
	Driver: Driver{
		Jobs:      runtime.GOMAXPROCS(0),
		Verbosity: 3,
	},
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Load decodes the TOML file at path into cfg. Fields absent from the file
// keep their current values, so cfg is normally initialized from Defaults.
// The result is not validated.
func Load(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Decode(bufio.NewReader(f), cfg); err != nil {
		// Add file name to errors that have a line number.
		if _, ok := err.(*toml.LineError); ok {
			return errors.New(path + ", " + err.Error())
		}
		return err
	}
	return nil
}

// Decode reads TOML from r into cfg. Call Validate once every override has
// been applied.
func Decode(r io.Reader, cfg *Config) error {
	return tomlSettings.NewDecoder(r).Decode(cfg)
}

// Dump writes cfg to w as TOML.
func Dump(w io.Writer, cfg Config) error {
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	if c.Unit.ArenaBlockSize < 0 {
		return fmt.Errorf("Unit.ArenaBlockSize must not be negative, got %d", c.Unit.ArenaBlockSize)
	}
	if _, err := diag.ParseColorMode(c.Diag.Color); err != nil {
		return fmt.Errorf("Diag.Color: %v", err)
	}
	if c.Driver.Jobs < 1 {
		return fmt.Errorf("Driver.Jobs must be at least 1, got %d", c.Driver.Jobs)
	}
	if c.Driver.Verbosity < 0 || c.Driver.Verbosity > 5 {
		return fmt.Errorf("Driver.Verbosity must be in 0..5, got %d", c.Driver.Verbosity)
	}
	return nil
}

// ColorMode returns the parsed Diag.Color setting. Call Validate first.
func (c *Config) ColorMode() diag.ColorMode {
	mode, err := diag.ParseColorMode(c.Diag.Color)
	if err != nil {
		return diag.ColorAuto
	}
	return mode
}
