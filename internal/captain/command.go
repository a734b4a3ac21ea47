package captain

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
	"github.com/devshell-sh/cli/internal/logging"
	"github.com/devshell-sh/cli/internal/output"
	"github.com/devshell-sh/cli/internal/primer"
)

type Executor func(cmd *Command, args []string) error

type Command struct {
	cobra *cobra.Command

	title string

	flags     []*Flag
	arguments []*Argument

	execute Executor

	out output.Outputer
}

func NewCommand(name, title, description string, prime *primer.Values, flags []*Flag, args []*Argument, executor Executor) *Command {
	validateArgs(args)

	cmd := &Command{
		title:     title,
		execute:   executor,
		arguments: args,
		out:       prime.Output(),
	}

	short := description
	if idx := strings.IndexByte(description, '.'); idx > 0 {
		short = description[0:idx]
	}

	cmd.cobra = &cobra.Command{
		Use:              name,
		Short:            short,
		Long:             description,
		PersistentPreRun: cmd.persistRunner,
		RunE:             cmd.runner,

		// Silence errors and usage, we handle that ourselves
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	if err := cmd.setFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

func (c *Command) Usage() error {
	return c.cobra.Usage()
}

func (c *Command) UsageText() string {
	return c.cobra.UsageString()
}

func (c *Command) Help() string {
	return fmt.Sprintf("%s\n\n%s", c.cobra.Short, c.UsageText())
}

func (c *Command) Execute(args []string) error {
	c.cobra.SetArgs(args)
	err := c.cobra.Execute()
	c.cobra.SetArgs(nil)
	return setupSensibleErrors(err)
}

func (c *Command) Name() string {
	return c.cobra.Name()
}

func (c *Command) Title() string {
	return c.title
}

func (c *Command) SetAliases(aliases ...string) {
	c.cobra.Aliases = aliases
}

func (c *Command) SetHidden(value bool) {
	c.cobra.Hidden = value
}

func (c *Command) SetDescription(description string) {
	c.cobra.Short = description
}

func (c *Command) SetDisableFlagParsing(b bool) {
	c.cobra.DisableFlagParsing = b
}

func (c *Command) Arguments() []*Argument {
	return c.arguments
}

func (c *Command) AddChildren(children ...*Command) {
	for _, child := range children {
		c.cobra.AddCommand(child.cobra)
	}
}

func (c *Command) flagByName(name string, persistOnly bool) *Flag {
	for _, flag := range c.flags {
		if flag.Name == name && (!persistOnly || flag.Persist) {
			return flag
		}
	}
	return nil
}

func (c *Command) persistRunner(cobraCmd *cobra.Command, args []string) {
	// Run OnUse functions for persistent flags
	c.runFlags(true)
}

// returns a slice of the names of the sub-commands called
func (c *Command) subcommandNames() []string {
	var commands []string
	cmd := c.cobra
	root := cmd.Root()
	for {
		if cmd == nil || cmd == root {
			break
		}
		commands = append(commands, cmd.Name())
		cmd = cmd.Parent()
	}

	// reverse commands
	for i, j := 0, len(commands)-1; i < j; i, j = i+1, j-1 {
		commands[i], commands[j] = commands[j], commands[i]
	}

	return commands
}

func (c *Command) runner(cobraCmd *cobra.Command, args []string) error {
	logging.Debug("Running command: %s", strings.Join(c.subcommandNames(), " "))

	if c.title != "" && c.out != nil && c.out.Type() != output.JSONFormatName {
		c.out.Notice(fmt.Sprintf("[NOTICE]%s[/RESET]", c.title))
	}

	// Run OnUse functions for non-persistent flags
	c.runFlags(false)

	for idx, arg := range c.arguments {
		if arg.Required && idx > len(args)-1 {
			return locale.NewInputError("err_arg_required", "", arg.Name, arg.Description)
		}

		if idx >= len(args) {
			break
		}

		switch v := arg.Value.(type) {
		case *string:
			*v = args[idx]
		case ArgMarshaler:
			if err := v.Set(args[idx]); err != nil {
				return err
			}
		default:
			return errs.New("arg: %s must be *string, or ArgMarshaler", arg.Name)
		}
	}

	return c.execute(c, args)
}

func (c *Command) runFlags(persistOnly bool) {
	if c.cobra.DisableFlagParsing {
		return
	}

	c.cobra.Flags().VisitAll(func(cobraFlag *pflag.Flag) {
		if !cobraFlag.Changed {
			return
		}

		flag := c.flagByName(cobraFlag.Name, persistOnly)
		if flag == nil || flag.OnUse == nil {
			return
		}

		flag.OnUse()
	})
}

// setupSensibleErrors inspects an error value for certain errors and returns a
// wrapped error that can be checked and that is localized.
func setupSensibleErrors(err error) error {
	if err == nil {
		return nil
	}

	errMsg := err.Error()

	// pflag: flag.go: output being parsed:
	// fmt.Errorf("invalid argument %q for %q flag: %v", value, flagName, err)
	invalidArg := "invalid argument "
	if strings.Contains(errMsg, invalidArg) {
		segments := strings.SplitN(errMsg, ": ", 2)

		flagText := "{unknown flag}"
		msg := "unknown error"

		if len(segments) > 0 {
			subsegs := strings.SplitN(segments[0], "for ", 2)
			if len(subsegs) > 1 {
				flagText = strings.TrimSuffix(subsegs[1], " flag")
			}
		}

		if len(segments) > 1 {
			msg = segments[1]
		}

		return locale.NewInputError("command_flag_invalid_value", "", flagText, msg)
	}

	// pflag: flag.go: output being parsed:
	// fmt.Errorf("no such flag -%v", name)
	noSuch := "no such flag "
	if strings.Contains(errMsg, noSuch) {
		flagText := strings.TrimPrefix(errMsg, noSuch)
		return locale.NewInputError("command_flag_no_such_flag", "", flagText)
	}

	// cobra: command.go: output being parsed:
	// fmt.Errorf("unknown command %q for %q%s", ...)
	unknownCmd := "unknown command "
	if strings.Contains(errMsg, unknownCmd) {
		return locale.WrapInputError(err, "command_unknown", "", errMsg)
	}

	return err
}
