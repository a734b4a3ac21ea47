package captain

import (
	"fmt"
	"strings"

	"github.com/devshell-sh/cli/internal/locale"
)

// ChannelFlag represents a flag that addresses a base environment channel, the
// following formats are supported:
// - name
// - name@pin
type ChannelFlag struct {
	name string
	pin  string
}

var _ FlagMarshaler = &ChannelFlag{}

func (c *ChannelFlag) Set(arg string) error {
	namePin := strings.Split(arg, "@")
	c.name = namePin[0]
	if len(namePin) == 2 {
		c.pin = namePin[1]
	}
	if len(namePin) > 2 || c.name == "" {
		return locale.NewInputError("err_channel_flag_format", "Invalid channel format: Should be <name> or <name@pin>")
	}
	return nil
}

func (c *ChannelFlag) String() string {
	if c.pin == "" {
		return c.name
	}
	return fmt.Sprintf("%s@%s", c.name, c.pin)
}

func (c *ChannelFlag) Name() string {
	return c.name
}

func (c *ChannelFlag) Pin() string {
	return c.pin
}

func (c *ChannelFlag) Type() string {
	return "channel"
}
