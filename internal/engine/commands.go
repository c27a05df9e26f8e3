package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
)

// command is one parsed input line.
type command struct {
	name  string
	row   int // 0-based, -1 when the command takes no row
	value string
}

// usage lists every command, shown by "help".
var usage = []struct{ syntax, summary string }{
	{"rate <n> [value]", "set option n's win rate in percent (blank clears)"},
	{"pool <n> [value]", "set the amount wagered on option n (blank clears)"},
	{"name <n> <text>", "rename option n"},
	{"add [name]", "add an option"},
	{"remove <n>", "remove option n (at least two must remain)"},
	{"bankroll [value]", "set your bankroll (blank clears)"},
	{"show", "re-render the board"},
	{"reset", "clear all rates, pools and the bankroll"},
	{"help", "show this help"},
	{"quit", "exit"},
}

// parseCommand splits a line into a command. Row numbers are 1-based on input.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, nil
	}

	cmd := command{name: strings.ToLower(fields[0]), row: -1}
	args := fields[1:]

	switch cmd.name {
	case "rate", "pool", "name", "remove":
		if len(args) == 0 {
			return cmd, fmt.Errorf("%w: %s <n> ...", errUsage, cmd.name)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return cmd, fmt.Errorf("%w: %s: option number %q must be an integer", errUsage, cmd.name, args[0])
		}
		cmd.row = n - 1
		cmd.value = strings.Join(args[1:], " ")
		if cmd.name == "name" && cmd.value == "" {
			return cmd, fmt.Errorf("%w: name <n> <text>", errUsage)
		}

	case "add", "bankroll":
		cmd.value = strings.Join(args, " ")

	case "show", "reset", "help":

	case "quit", "exit", "q":
		cmd.name = "quit"

	default:
		return cmd, fmt.Errorf("%w %q (try help)", errUnknownCommand, fields[0])
	}

	return cmd, nil
}
