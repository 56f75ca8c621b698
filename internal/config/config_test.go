package config

import (
	"log/slog"
	"testing"
)

func TestSetMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Valid Mode - SOCKET_MODE", SOCKET_MODE, SOCKET_MODE},
		{"Valid Mode - GOPLUGIN_MODE", GOPLUGIN_MODE, GOPLUGIN_MODE},
		{"Empty Mode", "", SOCKET_MODE},
		{"Random Mode", "FNORD", SOCKET_MODE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DaemonConf{Mode: tt.input}
			config.setMode()
			result := config.Mode
			if result != tt.expected {
				t.Errorf("setMode() with Mode=%s = %s; want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSetBackend(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Valid Backend - FILE_BACKEND", FILE_BACKEND, FILE_BACKEND},
		{"Valid Backend - BADGER_BACKEND", BADGER_BACKEND, BADGER_BACKEND},
		{"Empty Backend", "", FILE_BACKEND},
		{"Random Backend", "sqlite", FILE_BACKEND},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DaemonConf{StateBackend: tt.input}
			config.setBackend()
			result := config.StateBackend
			if result != tt.expected {
				t.Errorf("setBackend() with StateBackend=%s = %s; want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSetSocket(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty Socket", "", "/run/protod/unity.sock"},
		{"Custom Socket", "/tmp/unity.sock", "/tmp/unity.sock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DaemonConf{Socket: tt.input}
			config.setSocket()
			result := config.Socket
			if result != tt.expected {
				t.Errorf("setSocket() with Socket=%s = %s; want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSetPort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"Zero Port", 0, 2021},
		{"Non-Zero Port", 8080, 8080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DaemonConf{Http: HTTPConf{ListenPort: tt.input}}
			config.setPort()
			result := config.Http.ListenPort
			if result != tt.expected {
				t.Errorf("setPort() with ListenPort=%d = %d; want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"Debug", "DEBUG", slog.LevelDebug},
		{"Info", "INFO", slog.LevelInfo},
		{"Warn", "WARN", slog.LevelWarn},
		{"Error", "ERROR", slog.LevelError},
		{"Unset", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DaemonConf{LogLevel: tt.input}
			config.setLogLevel()
			if config.GetLogLevel() != tt.expected {
				t.Errorf("setLogLevel() with LogLevel=%s = %v; want %v", tt.input, config.GetLogLevel(), tt.expected)
			}
		})
	}
}
