package conf

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	Path string
	Port int
	Env  Environment

	global *Config
)

func G() *Config {
	if global == nil {
		panic("configuration not loaded")
	}

	return global
}

func ReplaceGlobals(cfg *Config) {
	global = cfg
}

func LoadEnv(cli *cli.Context) error {
	path := cli.String("path")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		path = homeDir + "/.technozen"
	}

	env, err := ParseEnvironment(cli.String("env"))
	if err != nil {
		return err
	}

	Path = path
	Port = cli.Int("port")
	Env = env
	return nil
}

func LoadConfig() (*Config, error) {
	f, err := os.Open(Path + "/config.yaml")
	if err != nil {
		f, err = os.Open(Path + "/config.example.yaml")
		if err != nil {
			return nil, err
		}
	}
	defer f.Close()

	r, err := NewEnvExpandedReader(f)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

type Config struct {
	Name          string        `yaml:"name"`
	BaseURL       string        `yaml:"baseUrl"`
	Site          Site          `yaml:"site"`
	Security      Security      `yaml:"security"`
	Persistence   Persistence   `yaml:"persistence"`
	Log           Log           `yaml:"log"`
	Notifications Notifications `yaml:"notifications"`
}

type Environment int

const (
	Development Environment = iota
	Production
)

func ParseEnvironment(env string) (Environment, error) {
	switch env {
	case "", "development":
		return Development, nil
	case "production":
		return Production, nil
	default:
		return -1, errors.New("environment not supported")
	}
}

func (env Environment) String() string {
	switch env {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}

type Site struct {
	Name      string `yaml:"name"`
	Templates string `yaml:"templates"`
	Static    string `yaml:"static"`
}

type Security struct {
	CSRF                  CSRF      `yaml:"csrf"`
	RateLimit             RateLimit `yaml:"rateLimit"`
	ContentSecurityPolicy string    `yaml:"contentSecurityPolicy"`

	// TrustedProxies lists the proxy addresses or CIDRs whose
	// X-Forwarded-For is honoured. Empty means the socket address.
	TrustedProxies []string `yaml:"trustedProxies"`
}

type CSRF struct {
	Secret []byte
	TTL    time.Duration
}

func (cfg *CSRF) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Secret != "" {
		secret, err := base64.StdEncoding.DecodeString(raw.Secret)
		if err != nil {
			return err
		}

		if len(secret) < 32 {
			return errors.New("csrf secret must be at least 32 bytes")
		}

		cfg.Secret = secret
	}

	if raw.TTL == "" {
		cfg.TTL = 1 * time.Hour
	} else {
		ttl, err := time.ParseDuration(raw.TTL)
		if err != nil {
			return err
		}

		cfg.TTL = ttl
	}

	return nil
}

type RateLimit struct {
	Window time.Duration
	Max    int
}

func (cfg *RateLimit) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Window string `yaml:"window"`
		Max    int    `yaml:"max"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Window == "" {
		cfg.Window = 15 * time.Minute
	} else {
		window, err := time.ParseDuration(raw.Window)
		if err != nil {
			return err
		}

		cfg.Window = window
	}

	cfg.Max = raw.Max
	if raw.Max <= 0 {
		cfg.Max = 100
	}

	return nil
}

type PersistenceDriver int

const (
	JSON PersistenceDriver = iota
	SQLite
	BadgerDB
	InMem
)

func ParsePersistenceDriver(driver string) (PersistenceDriver, error) {
	switch driver {
	case "", "json":
		return JSON, nil
	case "sqlite":
		return SQLite, nil
	case "badger":
		return BadgerDB, nil
	case "inmem":
		return InMem, nil
	default:
		return -1, errors.New("driver not supported")
	}
}

func (driver PersistenceDriver) String() string {
	switch driver {
	case JSON:
		return "json"
	case SQLite:
		return "sqlite"
	case BadgerDB:
		return "badger"
	case InMem:
		return "inmem"
	default:
		return "unknwon"
	}
}

type Persistence struct {
	Driver PersistenceDriver
	Name   string
	Host   string
	InMem  bool
}

func (p *Persistence) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Driver string `yaml:"driver"`
		Name   string `yaml:"name"`
		Host   string `yaml:"host"`
		InMem  bool   `yaml:"inmem"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	driver, err := ParsePersistenceDriver(raw.Driver)
	if err != nil {
		return err
	}

	p.Driver = driver
	p.Name = raw.Name

	p.Host = raw.Host
	if raw.Host == "" {
		p.Host = filepath.Join(Path, "data")
	}

	p.InMem = raw.InMem

	return nil
}

type Log struct {
	Level    string `yaml:"level"`
	Requests string `yaml:"requests"`
	Errors   string `yaml:"errors"`
}

type Notifications struct {
	Mail     Mail     `yaml:"mail"`
	SMS      SMS      `yaml:"sms"`
	EventBus EventBus `yaml:"eventBus"`
}

type Mail struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type SMS struct {
	Enabled    bool   `yaml:"enabled"`
	AccountSID string `yaml:"accountSid"`
	AuthToken  string `yaml:"authToken"`
	From       string `yaml:"from"`
}

type TransportProvider int

const NATS TransportProvider = iota

func ParseTransportProvider(provider string) (TransportProvider, error) {
	switch provider {
	case "", "nats":
		return NATS, nil
	default:
		return -1, errors.New("provider not supported")
	}
}

func (p TransportProvider) String() string {
	switch p {
	case NATS:
		return "nats"
	default:
		return ""
	}
}

type EventBus struct {
	Enabled  bool
	Provider TransportProvider
	URL      string
	Subject  string
}

func (e *EventBus) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enabled  bool   `yaml:"enabled"`
		Provider string `yaml:"provider"`
		URL      string `yaml:"url"`
		Subject  string `yaml:"subject"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	provider, err := ParseTransportProvider(raw.Provider)
	if err != nil {
		return err
	}

	e.Enabled = raw.Enabled
	e.Provider = provider
	e.URL = raw.URL

	e.Subject = raw.Subject
	if raw.Subject == "" {
		e.Subject = "technozen"
	}

	return nil
}
