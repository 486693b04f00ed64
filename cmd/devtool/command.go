package main

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// errUsage means the arguments did not name a known command
var errUsage = errors.New("usage")

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, out *Printer, args []string) error
}

// Registry dispatches subcommands by name
type Registry struct {
	commands map[string]Command
}

func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		r.commands[cmd.Name()] = cmd
	}
	return r
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands ordered by name
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return cmds
}

// Dispatch runs the command named by args[0] with the remaining args
func (r *Registry) Dispatch(ctx context.Context, out *Printer, args []string) error {
	if len(args) == 0 {
		r.usage(out)
		return errUsage
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		out.Error("Unknown command: %s", args[0])
		r.usage(out)
		return errUsage
	}
	return cmd.Run(ctx, out, args[1:])
}

func (r *Registry) usage(out *Printer) {
	out.Plain("Usage: devtool <command> [args...]")
	out.Plain("")
	out.Plain("Available Commands:")

	cmds := r.List()
	width := 0
	for _, cmd := range cmds {
		width = max(width, len(cmd.Name()))
	}
	for _, cmd := range cmds {
		out.Plain("  %-*s  %s", width, cmd.Name(), cmd.Description())
	}
}
