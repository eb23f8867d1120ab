package web420

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Settings contains all configuration settings for running the API
// service.
type Settings struct {
	Database     DBSettings   `yaml:"database" json:"database"`
	Api          APIConfig    `yaml:"api" json:"api"`
	LogPath      string       `yaml:"log_path" json:"log_path"`
	LoggerConfig LoggerConfig `yaml:"logger" json:"logger"`

	// ShutdownWaitSeconds bounds how long the web service drains
	// in-flight requests after a termination signal.
	ShutdownWaitSeconds int `yaml:"shutdown_wait_seconds" json:"shutdown_wait_seconds"`
}

// DBSettings locates the document store.
type DBSettings struct {
	Url              string `yaml:"url" json:"url"`
	DB               string `yaml:"db" json:"db"`
	QueryTimeoutSecs int    `yaml:"query_timeout_secs" json:"query_timeout_secs"`
	ConnectAttempts  int    `yaml:"connect_attempts" json:"connect_attempts"`
}

// QueryTimeout is the deadline applied to each store operation.
func (s DBSettings) QueryTimeout() time.Duration {
	return time.Duration(s.QueryTimeoutSecs) * time.Second
}

// APIConfig holds relevant settings for the API server.
type APIConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type LoggerConfig struct {
	DefaultLevel   string `yaml:"default_level" json:"default_level"`
	ThresholdLevel string `yaml:"threshold_level" json:"threshold_level"`
}

func (c LoggerConfig) Info() send.LevelInfo {
	return send.LevelInfo{
		Default:   level.FromString(c.DefaultLevel),
		Threshold: level.FromString(c.ThresholdLevel),
	}
}

// NewSettings builds an in-memory representation of the given settings file.
func NewSettings(filename string) (*Settings, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening settings file '%s'", filename)
	}
	defer file.Close()

	return ReadSettings(file)
}

// ReadSettings parses YAML settings, applies defaults and environment
// overrides.
func ReadSettings(r io.Reader) (*Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading settings")
	}

	settings := &Settings{}
	if err = yaml.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrap(err, "unmarshalling settings")
	}

	settings.ApplyDefaults()
	if err = settings.ApplyEnvOverrides(); err != nil {
		return nil, errors.WithStack(err)
	}

	return settings, nil
}

// DefaultSettings returns the configuration used when no settings file
// is given.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.ApplyDefaults()
	return settings
}

// ApplyDefaults fills in zero values.
func (s *Settings) ApplyDefaults() {
	if s.Database.Url == "" {
		s.Database.Url = DefaultDatabaseURL
	}
	if s.Database.DB == "" {
		s.Database.DB = DefaultDatabaseName
	}
	if s.Database.QueryTimeoutSecs == 0 {
		s.Database.QueryTimeoutSecs = DefaultQueryTimeout
	}
	if s.Database.ConnectAttempts == 0 {
		s.Database.ConnectAttempts = DefaultConnectAttempts
	}
	if s.Api.Port == 0 {
		s.Api.Port = DefaultAPIPort
	}
	if s.LogPath == "" {
		s.LogPath = LocalLoggingOverride
	}
	if s.LoggerConfig.DefaultLevel == "" {
		s.LoggerConfig.DefaultLevel = "info"
	}
	if s.LoggerConfig.ThresholdLevel == "" {
		s.LoggerConfig.ThresholdLevel = "debug"
	}
	if s.ShutdownWaitSeconds == 0 {
		s.ShutdownWaitSeconds = DefaultShutdownSeconds
	}
}

// ApplyEnvOverrides lets the process environment win over the file.
func (s *Settings) ApplyEnvOverrides() error {
	if port := os.Getenv(PortEnvVar); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.Wrapf(err, "parsing %s value '%s'", PortEnvVar, port)
		}
		s.Api.Port = p
	}
	if url := os.Getenv(MongoURLEnvVar); url != "" {
		s.Database.Url = url
	}
	if name := os.Getenv(MongoDBEnvVar); name != "" {
		s.Database.DB = name
	}
	return nil
}

// Validate checks the settings and returns all problems found.
func (s *Settings) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(s.Database.Url == "", "database URL must not be empty")
	catcher.NewWhen(s.Database.DB == "", "database name must not be empty")
	catcher.ErrorfWhen(s.Database.QueryTimeoutSecs < 0, "query timeout %d must not be negative", s.Database.QueryTimeoutSecs)
	catcher.ErrorfWhen(s.Database.ConnectAttempts < 1, "connect attempts %d must be at least 1", s.Database.ConnectAttempts)
	catcher.ErrorfWhen(s.Api.Port < 1 || s.Api.Port > 65535, "invalid port number: %d (must be between 1 and 65535)", s.Api.Port)
	catcher.ErrorfWhen(s.ShutdownWaitSeconds < 0, "shutdown wait %d must not be negative", s.ShutdownWaitSeconds)
	return catcher.Resolve()
}

// GetSender builds the process log sender from the logging settings.
func (s *Settings) GetSender() (send.Sender, error) {
	var (
		sender  send.Sender
		senders []send.Sender
		err     error
	)

	levelInfo := s.LoggerConfig.Info()

	if s.LogPath == LocalLoggingOverride {
		sender = send.MakeNative()
	} else {
		sender, err = send.MakeFileLogger(s.LogPath)
		if err != nil {
			return nil, errors.Wrap(err, "configuring file logger")
		}
	}
	if err = sender.SetLevel(levelInfo); err != nil {
		return nil, errors.Wrap(err, "setting log level")
	}
	senders = append(senders, sender)

	// file logging still surfaces errors on standard error
	if s.LogPath != LocalLoggingOverride {
		errSender := send.MakeErrorLogger()
		if err = errSender.SetLevel(send.LevelInfo{Default: level.Error, Threshold: level.Error}); err != nil {
			return nil, errors.Wrap(err, "setting error log level")
		}
		senders = append(senders, errSender)
	}

	return send.NewConfiguredMultiSender(senders...), nil
}
