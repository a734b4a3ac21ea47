package outputhelper

import (
	"bytes"
	"fmt"

	"github.com/devshell-sh/cli/internal/output"
)

type catcher struct {
	Outputer  *output.Plain
	outWriter *bytes.Buffer
	errWriter *bytes.Buffer
}

func NewCatcher() *catcher {
	catch := &catcher{}

	catch.outWriter = &bytes.Buffer{}
	catch.errWriter = &bytes.Buffer{}

	outputer, err := output.NewPlain(&output.Config{
		OutWriter:   catch.outWriter,
		ErrWriter:   catch.errWriter,
		Colored:     false,
		Interactive: false,
	})

	if err != nil {
		panic(fmt.Sprintf("Could not create plain outputer: %s", err.Error()))
	}

	catch.Outputer = &outputer

	return catch
}

func (c *catcher) Output() string {
	return c.outWriter.String()
}

func (c *catcher) ErrorOutput() string {
	return c.errWriter.String()
}

func (c *catcher) CombinedOutput() string {
	return c.Output() + "\n" + c.ErrorOutput()
}

// TypedCatcher records printed values without formatting them
type TypedCatcher struct {
	Prints  []interface{}
	Errors  []interface{}
	Notices []interface{}
}

func (t *TypedCatcher) Print(value interface{}) {
	t.Prints = append(t.Prints, value)
}

func (t *TypedCatcher) Error(value interface{}) {
	t.Errors = append(t.Errors, value)
}

func (t *TypedCatcher) Notice(value interface{}) {
	t.Notices = append(t.Notices, value)
}

func (t *TypedCatcher) Type() output.Format {
	return output.PlainFormatName
}

func (t *TypedCatcher) Config() *output.Config {
	return &output.Config{}
}
