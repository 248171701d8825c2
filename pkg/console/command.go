package console

import (
	"sort"
	"strings"

	"cmdwire/pkg/invoke"
)

// Command is a registered command: its definition, the handler it calls and
// the texts shown by help and list.
type Command struct {
	name        string
	aliases     []string
	description string
	help        string
	hidden      bool
	definition  *Definition
	handler     invoke.Handler
}

// Name returns the command name, namespace included.
func (c *Command) Name() string {
	return c.name
}

// Namespace returns the part of the name before the last ':'.
func (c *Command) Namespace() string {
	i := strings.LastIndex(c.name, ":")
	if i < 0 {
		return ""
	}
	return c.name[:i]
}

// Definition returns the arguments and options of the command.
func (c *Command) Definition() *Definition {
	return c.definition
}

// Handler returns the handler called when the command runs.
func (c *Command) Handler() invoke.Handler {
	return c.handler
}

// Description returns the one-line description.
func (c *Command) Description() string {
	return c.description
}

// Aliases returns the alternative names of the command.
func (c *Command) Aliases() []string {
	return append([]string(nil), c.aliases...)
}

// SetAliases sets alternative names the command can be run with.
func (c *Command) SetAliases(aliases ...string) *Command {
	c.aliases = append([]string(nil), aliases...)
	return c
}

// Help returns the long help text.
func (c *Command) Help() string {
	return c.help
}

// SetHelp sets the long help text shown by --help.
func (c *Command) SetHelp(help string) *Command {
	c.help = help
	return c
}

// Hidden reports whether list leaves the command out.
func (c *Command) Hidden() bool {
	return c.hidden
}

// SetHidden hides the command from list.
func (c *Command) SetHidden(hidden bool) *Command {
	c.hidden = hidden
	return c
}

// Descriptions sets the command description and the descriptions of its
// arguments and options. Keys prefixed with "--" address options.
func (c *Command) Descriptions(description string, targets map[string]string) error {
	c.description = description
	for _, key := range sortedKeys(targets) {
		if err := c.definition.SetDescription(key, targets[key]); err != nil {
			return err
		}
	}
	return nil
}

// Defaults sets default values of arguments and options. Keys prefixed with
// "--" address options. An unknown key fails with UnknownDefaultTargetError
// and no default is changed.
func (c *Command) Defaults(defaults map[string]any) error {
	return c.definition.SetDefaults(defaults)
}

func (c *Command) answersTo(name string) bool {
	if c.name == name {
		return true
	}
	for _, alias := range c.aliases {
		if alias == name {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
