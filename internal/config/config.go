// Package config holds the viewer's settings. A Config is built once at
// startup and passed by value; nothing reads the environment afterwards.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultPort       = 3001
	DefaultDisasmFile = "disasm.txt"
	DefaultLogFile    = "emu.log"
)

// Config represents configuration for the viewer.
type Config struct {
	DisasmPath string `json:"disasmPath" jsonschema:"title=Disassembly Path,description=Disassembly listing read by /api/disasm (env DISASM_PATH)"`
	LogPath    string `json:"logPath" jsonschema:"title=Log Path,description=Emulator execution log read by /api/logs (env LOG_PATH)"`
	Host       string `json:"host,omitempty" jsonschema:"title=Host,description=Interface to listen on; empty means all (env HOST)"`
	Port       int    `json:"port" jsonschema:"title=Port,description=HTTP port (env PORT),minimum=1,maximum=65535,default=3001"`
	PublicDir  string `json:"publicDir,omitempty" jsonschema:"title=Public Directory,description=Serve the front-end from this directory instead of the embedded copy"`
	Cache      bool   `json:"cache,omitempty" jsonschema:"title=Cache,description=Reuse file contents until their size or modification time changes"`
	Debug      bool   `json:"debug,omitempty" jsonschema:"title=Debug,description=Enable debug logging"`
}

// Default returns the built-in settings, with both files resolved against dir.
func Default(dir string) Config {
	return Config{
		DisasmPath: filepath.Join(dir, DefaultDisasmFile),
		LogPath:    filepath.Join(dir, DefaultLogFile),
		Port:       DefaultPort,
	}
}

// FromEnv overlays DISASM_PATH, LOG_PATH, HOST and PORT on c.
func (c Config) FromEnv(getenv func(string) string) (Config, error) {
	if v := getenv("DISASM_PATH"); v != "" {
		c.DisasmPath = v
	}
	if v := getenv("LOG_PATH"); v != "" {
		c.LogPath = v
	}
	if v := getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	return c, nil
}

// Load returns the defaults for the working directory overlaid with the
// process environment.
func Load() (Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("failed to get current working directory: %w", err)
	}
	return Default(cwd).FromEnv(os.Getenv)
}

// Validate checks that c can be served.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.DisasmPath == "" {
		return fmt.Errorf("disassembly path is empty")
	}
	if c.LogPath == "" {
		return fmt.Errorf("log path is empty")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
