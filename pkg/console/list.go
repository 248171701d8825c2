package console

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"cmdwire/pkg/invoke"
	"cmdwire/pkg/output"
)

// NamespaceNotFoundError is returned by list for a namespace without commands.
type NamespaceNotFoundError struct {
	Namespace string
}

func (e *NamespaceNotFoundError) Error() string {
	return fmt.Sprintf("There are no commands defined in the %q namespace.", e.Namespace)
}

// ApplicationDescription is the machine readable form of the command list.
type ApplicationDescription struct {
	Name     string               `json:"name" yaml:"name"`
	Version  string               `json:"version" yaml:"version"`
	Commands []CommandDescription `json:"commands" yaml:"commands"`
}

// CommandDescription describes one command.
type CommandDescription struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Usage       string      `json:"usage" yaml:"usage"`
	Aliases     []string    `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Arguments   []*Argument `json:"arguments" yaml:"arguments"`
	Options     []*Option   `json:"options" yaml:"options"`
}

// Describe returns the visible commands, limited to namespace when it is not
// empty.
func (a *Application) Describe(namespace string) (ApplicationDescription, error) {
	desc := ApplicationDescription{Name: a.name, Version: a.version}
	for _, cmd := range a.All() {
		if cmd.hidden || (namespace != "" && !inNamespace(cmd, namespace)) {
			continue
		}
		desc.Commands = append(desc.Commands, CommandDescription{
			Name:        cmd.name,
			Description: cmd.description,
			Usage:       cmd.definition.Synopsis(),
			Aliases:     cmd.Aliases(),
			Arguments:   cmd.definition.Arguments(),
			Options:     cmd.definition.Options(),
		})
	}
	// Commands without namespace come first.
	sort.SliceStable(desc.Commands, func(i, j int) bool {
		return !strings.Contains(desc.Commands[i].Name, ":") && strings.Contains(desc.Commands[j].Name, ":")
	})
	if namespace != "" && len(desc.Commands) == 0 {
		return desc, &NamespaceNotFoundError{Namespace: namespace}
	}
	return desc, nil
}

func inNamespace(cmd *Command, namespace string) bool {
	ns := cmd.Namespace()
	return ns == namespace || strings.HasPrefix(ns, namespace+":")
}

func (a *Application) registerListCommand() {
	cmd := a.MustCommand(listCommandName+" [namespace] [--format=]", a.listCommands,
		invoke.Name("out"), invoke.Name("namespace"), invoke.Default("format", "txt"))
	_ = cmd.Descriptions("List commands", map[string]string{
		"namespace": "The namespace name",
		"--format":  "The output format (txt, json, yaml or md)",
	})
}

func (a *Application) listCommands(out *output.Printer, namespace, format string) error {
	desc, err := a.Describe(namespace)
	if err != nil {
		return err
	}

	switch format {
	case "txt":
		a.writeText(out, desc, namespace)
		return nil
	case "json":
		data, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding command list: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(desc)
		if err != nil {
			return fmt.Errorf("encoding command list: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "md":
		return out.Markdown(markdownOf(desc))
	}
	return fmt.Errorf("unsupported format %q, expected txt, json, yaml or md", format)
}

func (a *Application) writeText(out *output.Printer, desc ApplicationDescription, namespace string) {
	width := 0
	for _, cmd := range desc.Commands {
		width = max(width, len(cmd.Name))
	}

	fmt.Fprintf(out, "%s %s\n\n", a.name, out.Render(output.SemanticHighlight, desc.Version))
	fmt.Fprintln(out, out.Render(output.SemanticKeyword, "Usage:"))
	fmt.Fprintln(out, "  command [options] [arguments]")
	fmt.Fprintln(out)

	if namespace != "" {
		fmt.Fprintln(out, out.Render(output.SemanticKeyword, fmt.Sprintf("Available commands for the %q namespace:", namespace)))
	} else {
		fmt.Fprintln(out, out.Render(output.SemanticKeyword, "Available commands:"))
	}

	current := ""
	for _, cmd := range desc.Commands {
		ns := ""
		if i := strings.LastIndex(cmd.Name, ":"); i >= 0 {
			ns = cmd.Name[:i]
		}
		if ns != current && namespace == "" {
			current = ns
			fmt.Fprintln(out, " "+out.Render(output.SemanticKeyword, ns))
		}
		padding := strings.Repeat(" ", width-len(cmd.Name)+2)
		fmt.Fprintf(out, "  %s%s%s\n", out.Render(output.SemanticCommand, cmd.Name), padding, cmd.Description)
	}
}

// markdownOf renders the description as a markdown document with one section
// per command.
func markdownOf(desc ApplicationDescription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", desc.Name, desc.Version)
	for _, cmd := range desc.Commands {
		fmt.Fprintf(&b, "* [`%s`](#%s)\n", cmd.Name, strings.ReplaceAll(cmd.Name, ":", ""))
	}

	for _, cmd := range desc.Commands {
		fmt.Fprintf(&b, "\n## `%s`\n\n", cmd.Name)
		if cmd.Description != "" {
			b.WriteString(cmd.Description + "\n\n")
		}
		b.WriteString("### Usage\n\n")
		fmt.Fprintf(&b, "* `%s`\n", cmd.Usage)
		for _, alias := range cmd.Aliases {
			fmt.Fprintf(&b, "* `%s`\n", alias)
		}

		if len(cmd.Arguments) > 0 {
			b.WriteString("\n### Arguments\n")
			for _, arg := range cmd.Arguments {
				writeMarkdownEntry(&b, arg.Name, arg.Description, arg.Mode.String(), arg.HasDefault, arg.Default)
			}
		}
		if len(cmd.Options) > 0 {
			b.WriteString("\n### Options\n")
			for _, opt := range cmd.Options {
				name := "--" + opt.Name
				if opt.Shortcut != "" {
					name += "|-" + opt.Shortcut
				}
				writeMarkdownEntry(&b, name, opt.Description, opt.Mode.String(), opt.HasDefault, opt.Default)
			}
		}
	}
	return b.String()
}

func writeMarkdownEntry(b *strings.Builder, name, description, mode string, hasDefault bool, def any) {
	fmt.Fprintf(b, "\n#### `%s`\n\n", name)
	if description != "" {
		b.WriteString(description + "\n\n")
	}
	fmt.Fprintf(b, "* Mode: %s\n", mode)
	if hasDefault {
		fmt.Fprintf(b, "* Default: `%v`\n", def)
	}
}
