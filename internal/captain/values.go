package captain

import (
	"fmt"

	"github.com/devshell-sh/cli/internal/errs"
)

// FlagMarshaler is implemented by flag values that parse themselves from the raw flag string.
type FlagMarshaler interface {
	String() string
	Set(string) error
	Type() string
}

// ArgMarshaler is implemented by argument values that parse themselves from the raw argument.
type ArgMarshaler interface {
	Set(string) error
}

// Flag is used to define flags in our Command struct
type Flag struct {
	Name        string
	Shorthand   string
	Description string
	Persist     bool
	Value       interface{}
	Hidden      bool

	OnUse func()
}

func (c *Command) setFlags(flags []*Flag) error {
	c.flags = flags
	for _, flag := range flags {
		flagSetter := c.cobra.Flags
		if flag.Persist {
			flagSetter = c.cobra.PersistentFlags
		}

		switch v := flag.Value.(type) {
		case nil:
			return errs.New("flag value must not be nil (%v)", flag)
		case *string:
			flagSetter().StringVarP(
				v, flag.Name, flag.Shorthand, *v, flag.Description,
			)
		case *int:
			flagSetter().IntVarP(
				v, flag.Name, flag.Shorthand, *v, flag.Description,
			)
		case *bool:
			flagSetter().BoolVarP(
				v, flag.Name, flag.Shorthand, *v, flag.Description,
			)
		case FlagMarshaler:
			flagSetter().VarP(
				v, flag.Name, flag.Shorthand, flag.Description,
			)
		default:
			return errs.New(
				"unknown type for flag %s: %T (must be *string, *int, *bool or FlagMarshaler)",
				flag.Name, v,
			)
		}

		if flag.Hidden {
			if err := flagSetter().MarkHidden(flag.Name); err != nil {
				return errs.Wrap(err, "Could not mark flag as hidden: %s", flag.Name)
			}
		}
	}

	return nil
}

// Argument is used to define arguments in our Command struct
type Argument struct {
	Name        string
	Description string
	Required    bool
	Value       interface{}
}

func validateArgs(args []*Argument) {
	for idx, arg := range args {
		if idx > 0 && arg.Required && !args[idx-1].Required {
			msg := fmt.Sprintf(
				"Cannot have a non-required argument followed by a required argument.\n\n%v\n\n%v",
				arg, args[len(args)-1],
			)
			panic(msg)
		}
	}
}
