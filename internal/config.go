package internal

import "time"

type Config struct {
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath   string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=info"`
	BusBufferSize   int           `env:"BUS_BUFFER_SIZE,default=64"`
	MessageCap      *int          `env:"MESSAGE_CAP"`
	MonitorInterval time.Duration `env:"MONITOR_INTERVAL,default=30s"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`

	// Comma-separated word list; empty disables masking.
	ModerationWords      string `env:"MODERATION_WORDS"`
	ModerationMaskedChar string `env:"MODERATION_MASKED_CHARACTER,default=*"`

	SessionSecret   string        `env:"SESSION_SECRET,required=true"`
	SessionDuration time.Duration `env:"SESSION_DURATION,default=24h"`
}
