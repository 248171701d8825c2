package main

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"cmdwire/internal/version"
	"cmdwire/pkg/console"
	"cmdwire/pkg/container"
	"cmdwire/pkg/invoke"
	"cmdwire/pkg/output"
)

// farewells is a service whose Say method is registered through its type;
// the receiver comes from the service map.
type farewells struct {
	sign string
}

func (f *farewells) Say(out *output.Printer, farewell, name string) {
	out.Println(fmt.Sprintf("%s, %s%s", farewell, name, f.sign))
}

// newApplication registers the greeter commands. Services are injected by
// type from the service map; configuration keys are injected by parameter
// name, so a "greeting" parameter reads the greeting setting.
func newApplication(v *viper.Viper) *console.Application {
	services := container.NewMap().
		Provide(&farewells{sign: "!"}).
		Set("command.about", invoke.Func(about,
			invoke.Name("out"), invoke.Name("app"), invoke.Default("format", "txt")))

	app := console.New("greeter", version.Version)
	app.UseContainer(container.Chain{services, container.NewViper(v)}, true, true)

	greetCmd := app.MustCommand("greet [name] [-y|--yell]", greet, invoke.Names("out", "greeting", "name", "yell")...)
	greetCmd.SetAliases("hi")
	_ = greetCmd.Descriptions("Greet someone", map[string]string{
		"name":   "Who do you want to greet?",
		"--yell": "Yell in uppercase letters",
	})

	_ = app.MustCommand("greet:many names* [-t|--times=]", greetMany,
		invoke.Name("ctx"), invoke.Name("app"), invoke.Name("out"), invoke.Name("names"), invoke.Default("times", 1)).
		Descriptions("Greet several people by running greet for each", map[string]string{
			"names":   "Who do you want to greet?",
			"--times": "How many rounds of greetings",
		})

	_ = app.MustCommand("bye name", invoke.TypeMethod(reflect.TypeFor[*farewells](), "Say",
		invoke.Names("out", "farewell", "name")...)).
		Descriptions("Say goodbye", map[string]string{"name": "Who is leaving?"})

	_ = app.MustCommand("about [--format=]", "command.about").
		Descriptions("Show build information", map[string]string{"--format": "The output format (txt or yaml)"})

	_ = app.MustCommand("shell", runShell).Descriptions("Start an interactive session", nil)

	app.MustCommand("fail [code]", fail, invoke.Default("code", 2)).
		SetHidden(true).
		SetHelp("Exits with the given code, for scripting tests.")

	return app
}

func greet(out *output.Printer, greeting, name string, yell bool) {
	text := greeting
	if name != "" {
		text = fmt.Sprintf("%s, %s", greeting, name)
	}
	if yell {
		text = strings.ToUpper(text)
	}
	out.Println(text)
}

func greetMany(ctx context.Context, app *console.Application, out *output.Printer, names []string, times int) error {
	for range times {
		for _, name := range names {
			if _, err := app.RunCommand(ctx, shellquote.Join("greet", name), out); err != nil {
				return err
			}
		}
	}
	return nil
}

func about(out *output.Printer, app *console.Application, format string) error {
	build, err := version.Current()
	if err != nil {
		return err
	}

	switch format {
	case "txt":
		out.Println(version.Format(app.Name(), app.Version()))
		out.Println("built with " + build.String())
		return nil
	case "yaml":
		data, err := yaml.Marshal(map[string]any{"application": app.Name(), "version": app.Version(), "cmdwire": build})
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return fmt.Errorf("unsupported format %q, expected txt or yaml", format)
}

func fail(code int) error {
	return console.Exit(code, fmt.Errorf("failed with exit code %d", code))
}
