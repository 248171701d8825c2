package main

import (
	"context"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/kballard/go-shellquote"

	"cmdwire/internal/version"
	"cmdwire/pkg/console"
	"cmdwire/pkg/output"
)

// runShell starts an interactive session that dispatches every line to the
// application until the user types exit.
func runShell(ctx context.Context, app *console.Application, out *output.Printer) {
	sh := ishell.New()
	sh.SetPrompt(app.Name() + "> ")

	// help is handled by the application.
	sh.DeleteCmd("help")

	sh.Println(version.Format(app.Name(), app.Version()))
	sh.Println("Type 'list' for the available commands or 'exit' to quit.")

	sh.NotFound(func(c *ishell.Context) {
		dispatchLine(ctx, app, out, c.RawArgs)
	})
	sh.Run()
}

// dispatchLine runs the words of one shell line as a command and reports
// failures on out. Lines starting with '#' are comments.
func dispatchLine(ctx context.Context, app *console.Application, out *output.Printer, words []string) int {
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return 0
	}
	if words[0] == "shell" {
		out.Warning("Already in an interactive session")
		return 1
	}

	code, err := app.RunCommand(ctx, shellquote.Join(words...), out)
	if err != nil {
		out.Error(err.Error())
	}
	return code
}
