package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultDataDir        = "data"
	DefaultLogName        = "todo.log"
	DefaultStorageKey     = "todoData"
	DefaultBackend        = "sqlite"
	DefaultLogLevel       = "info"

	envConfigPath = "TODO_CONFIG"
	appDirName    = "todo"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Add     string `toml:"add"`
	Up      string `toml:"up"`
	Down    string `toml:"down"`
	Toggle  string `toml:"toggle"`
	Delete  string `toml:"delete"`
	Edit    string `toml:"edit"`
	Clear   string `toml:"clear"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Storage struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Key     string `toml:"key"`
}

type Log struct {
	Path   string `toml:"path"`
	Level  string `toml:"level"`
	Stderr bool   `toml:"stderr"`
}

type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	Keys    Keymap  `toml:"keys"`
}

// ResolveConfigPath picks $TODO_CONFIG, then the user config dir, then the
// working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Relative storage and log paths are resolved against path's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return cfg, err
	}
	cfg = loaded
	cfg.fillDefaults()
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		c.Storage.Key = d.Storage.Key
	}
	if c.Log.Path == "" {
		c.Log.Path = d.Log.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	k, dk := &c.Keys, d.Keys
	orDefault(&k.Quit, dk.Quit)
	orDefault(&k.Add, dk.Add)
	orDefault(&k.Up, dk.Up)
	orDefault(&k.Down, dk.Down)
	orDefault(&k.Toggle, dk.Toggle)
	orDefault(&k.Delete, dk.Delete)
	orDefault(&k.Edit, dk.Edit)
	orDefault(&k.Clear, dk.Clear)
	orDefault(&k.Confirm, dk.Confirm)
	orDefault(&k.Cancel, dk.Cancel)
}

func orDefault(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func (c Config) resolve(base string) Config {
	if c.Storage.Path != "" && !filepath.IsAbs(c.Storage.Path) {
		c.Storage.Path = filepath.Join(base, c.Storage.Path)
	}
	if c.Log.Path != "" && !filepath.IsAbs(c.Log.Path) {
		c.Log.Path = filepath.Join(base, c.Log.Path)
	}
	return c
}

func defaultStoragePath(backend string) string {
	if backend == "file" {
		return DefaultDataDir
	}
	return DefaultDBName
}

// Default is the configuration written on first launch.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: DefaultBackend,
			Path:    DefaultDBName,
			Key:     DefaultStorageKey,
		},
		Log: Log{
			Path:  DefaultLogName,
			Level: DefaultLogLevel,
		},
		Keys: Keymap{
			Quit:    "q",
			Add:     "a",
			Up:      "k",
			Down:    "j",
			Toggle:  " ",
			Delete:  "d",
			Edit:    "e",
			Clear:   "C",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
