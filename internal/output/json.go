package output

import (
	"encoding/json"

	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
)

// JSON is our JSON outputer, it emits unstyled JSON suitable for editor tooling
type JSON struct {
	cfg *Config
}

// NewJSON constructs a new JSON struct
func NewJSON(config *Config) (JSON, error) {
	return JSON{config}, nil
}

// Type tells callers what type of outputer we are
func (f *JSON) Type() Format {
	return JSONFormatName
}

// Print will marshal and print the given value to the output writer
func (f *JSON) Print(value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		logging.Error("Could not marshal value, error: %v", err)
		f.Error(locale.T("err_could_not_marshal_print"))
		return
	}
	f.cfg.OutWriter.Write(b)
	f.cfg.OutWriter.Write([]byte("\n"))
}

// Error will marshal and print the given value to the error writer
func (f *JSON) Error(value interface{}) {
	errStruct := struct {
		Error interface{} `json:"error"`
	}{sprint(value)}
	b, err := json.Marshal(errStruct)
	if err != nil {
		logging.Error("Could not marshal value, error: %v", err)
		b = []byte(locale.T("err_could_not_marshal_print"))
	}
	f.cfg.ErrWriter.Write(b)
	f.cfg.ErrWriter.Write([]byte("\n"))
}

// Notice is ignored by the JSON outputer so notices never pollute parseable output
func (f *JSON) Notice(value interface{}) {
	logging.Debug("JSON outputer ignored notice: %v", value)
}

// Config returns the Config struct for this outputer
func (f *JSON) Config() *Config {
	return f.cfg
}
