// Package main provides the greeter demo application built with cmdwire.
// It shows commands declared from expressions, handlers injected from a
// service map and from configuration, namespaces and sub-command dispatch.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cmdwire/internal/logger"
	"cmdwire/pkg/output"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run parses the global flags, which must precede the command name, then
// hands the remaining arguments to the application.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	flags := pflag.NewFlagSet("greeter", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(stderr)
	flags.String("config", "", "Config file [default: ./greeter.yaml]")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	showHelp := flags.BoolP("help", "h", false, "Show help")
	showVersion := flags.BoolP("version", "v", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	v, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	logs, err := logger.Configure(v.GetString("log-level"), v.GetString("log-file"))
	if err != nil {
		fmt.Fprintf(stderr, "Error configuring logger: %v\n", err)
		return 1
	}
	defer logs.Close()

	rest := flags.Args()
	switch {
	case *showVersion:
		rest = append([]string{"--version"}, rest...)
	case *showHelp:
		rest = append([]string{"--help"}, rest...)
	}

	app := newApplication(v)
	logger.Debug("Starting greeter", "version", app.Version(), "config", v.ConfigFileUsed())

	code, err := app.Run(ctx, rest, stdout)
	if err != nil {
		output.ForWriter(stderr).Error(err.Error())
	}
	return code
}

// newConfig returns the configuration with its defaults. Values come from
// GREETER_* environment variables once loadConfig enables them.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("greeting", "Hello")
	v.SetDefault("farewell", "Goodbye")
	return v
}

func loadConfig(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := newConfig()
	v.SetEnvPrefix("GREETER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"log-level", "log-file"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding %s flag: %w", name, err)
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("greeter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}
