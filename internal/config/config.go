package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const SOCKET_MODE = "socket"
const GOPLUGIN_MODE = "goplugin"

const FILE_BACKEND = "file"
const BADGER_BACKEND = "badger"

// Set at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

type DaemonConf struct {
	Socket       string   `yaml:"socket"`
	Mode         string   `yaml:"mode"`
	StateDir     string   `yaml:"state_dir"`
	StateBackend string   `yaml:"state_backend"`
	Http         HTTPConf `yaml:"http"`
	LogLevel     string   `yaml:"log_level"`
	slogLevel    slog.Level
}

type HTTPConf struct {
	ListenPort    int    `yaml:"listen_port"`
	ListenAddress string `yaml:"listen_address"`
}

func ParseDaemonConfig(path string) (conf DaemonConf) {
	file, err := os.ReadFile(path)
	if err != nil {
		panic("Cannot read daemon config file!")
	}

	conf = DaemonConf{}
	err = yaml.Unmarshal(file, &conf)
	if err != nil {
		panic("Cannot parse daemon config!")
	}

	conf.setMode()
	conf.setBackend()
	conf.setSocket()
	conf.setStateDir()
	conf.setPort()
	conf.setLogLevel()

	return
}

func (dc *DaemonConf) setLogLevel() {
	switch dc.LogLevel {
	case "DEBUG":
		dc.slogLevel = slog.LevelDebug
	case "INFO":
		dc.slogLevel = slog.LevelInfo
	case "WARN":
		dc.slogLevel = slog.LevelWarn
	case "ERROR":
		dc.slogLevel = slog.LevelError
	default:
		dc.slogLevel = slog.LevelInfo
	}
}

func (dc *DaemonConf) GetLogLevel() slog.Level {
	return dc.slogLevel
}

func (dc *DaemonConf) setMode() {
	switch dc.Mode {
	case SOCKET_MODE:
		dc.Mode = SOCKET_MODE
	case GOPLUGIN_MODE:
		dc.Mode = GOPLUGIN_MODE
	default:
		dc.Mode = SOCKET_MODE
	}
}

func (dc *DaemonConf) setBackend() {
	switch dc.StateBackend {
	case FILE_BACKEND:
		dc.StateBackend = FILE_BACKEND
	case BADGER_BACKEND:
		dc.StateBackend = BADGER_BACKEND
	default:
		dc.StateBackend = FILE_BACKEND
	}
}

func (dc *DaemonConf) setSocket() {
	if dc.Socket == "" {
		dc.Socket = "/run/protod/unity.sock"
	}
}

func (dc *DaemonConf) setStateDir() {
	if dc.StateDir == "" {
		dc.StateDir = "/var/lib/protod/state"
	}
}

func (dc *DaemonConf) setPort() {
	if dc.Http.ListenPort == 0 {
		dc.Http.ListenPort = 2021
	}
}
