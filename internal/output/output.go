package output

import (
	"io"

	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
)

// Format is the format the outputer is running in, eg. plain or json
type Format string

// FormatName constants are tokens representing supported output formats.
const (
	PlainFormatName Format = "plain" // human readable
	JSONFormatName  Format = "json"  // plain json
)

// Outputer is the initialized formatter
type Outputer interface {
	Print(value interface{})
	Error(value interface{})
	Notice(value interface{})
	Type() Format
	Config() *Config
}

// New constructs a new Outputer according to the given format name
func New(formatName string, config *Config) (Outputer, error) {
	logging.Debug("Requested outputer for %s", formatName)

	format := Format(formatName)
	switch format {
	case "", PlainFormatName:
		plain, err := NewPlain(config)
		if err != nil {
			return nil, err
		}
		return &Mediator{&plain, PlainFormatName}, nil
	case JSONFormatName:
		json, err := NewJSON(config)
		if err != nil {
			return nil, err
		}
		return &Mediator{&json, JSONFormatName}, nil
	}

	return nil, locale.NewInputError("err_unknown_format", "", string(formatName))
}

// Config is the thing we pass to Outputer constructors
type Config struct {
	OutWriter   io.Writer
	ErrWriter   io.Writer
	Colored     bool
	Interactive bool
}
