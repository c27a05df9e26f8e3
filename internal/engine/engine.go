package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"parimutuel-advisor/internal/alerts"
	"parimutuel-advisor/internal/board"
	"parimutuel-advisor/internal/config"
	"parimutuel-advisor/internal/decision"
	"parimutuel-advisor/internal/display"
)

// Engine drives one interactive session: it applies each command to the
// board, re-evaluates the snapshot and renders the result.
type Engine struct {
	board     *board.Board
	notifier  *alerts.Notifier
	formatter *display.Formatter
	cfg       decision.Config
	out       io.Writer

	last decision.Result
}

// New creates a new Engine with all dependencies.
func New(
	b *board.Board,
	notifier *alerts.Notifier,
	formatter *display.Formatter,
	cfg decision.Config,
	out io.Writer,
) *Engine {
	return &Engine{
		board:     b,
		notifier:  notifier,
		formatter: formatter,
		cfg:       cfg,
		out:       out,
	}
}

// Run reads commands from r until quit, EOF or ctx is cancelled.
//
// Lines are read on a separate goroutine. Once Run returns, that goroutine
// drops any further lines and exits at its next read; a read that is still
// blocked (stdin, for instance) only ends when r is closed or the process
// exits. Callers that own r should close it after Run returns.
func (e *Engine) Run(ctx context.Context, r io.Reader) error {
	readCtx, stop := context.WithCancel(ctx)
	defer stop()

	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	cleanupTicker := time.NewTicker(config.DefaultCleanupInterval)
	defer cleanupTicker.Stop()

	e.Refresh()
	e.prompt()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Session stopped")
			return nil

		case <-cleanupTicker.C:
			e.notifier.CleanupOldAlerts()

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					if err != nil {
						return fmt.Errorf("reading input: %w", err)
					}
				default:
				}
				return nil
			}
			if !e.Execute(line) {
				return nil
			}
			e.prompt()
		}
	}
}

// Execute applies one command line and re-renders when the board changed.
// It returns false once the session should end.
func (e *Engine) Execute(line string) bool {
	cmd, err := parseCommand(line)
	if err != nil {
		fmt.Fprintf(e.out, "%v\n", err)
		return true
	}

	switch cmd.name {
	case "":
		return true

	case "quit":
		return false

	case "help":
		e.printHelp()
		return true

	case "show":
		e.Refresh()
		return true
	}

	if err := e.apply(cmd); err != nil {
		e.notifier.LogError(cmd.name, err)
		fmt.Fprintf(e.out, "error: %v\n", err)
		return true
	}

	e.Refresh()
	return true
}

func (e *Engine) apply(cmd command) error {
	switch cmd.name {
	case "rate":
		return e.board.SetWinRate(cmd.row, cmd.value)
	case "pool":
		return e.board.SetPool(cmd.row, cmd.value)
	case "name":
		return e.board.SetName(cmd.row, cmd.value)
	case "add":
		row := e.board.Add(cmd.value)
		slog.Debug("Option added", "name", row.Name, "color", row.Color, "id", row.ID)
		return nil
	case "remove":
		row, err := e.board.Remove(cmd.row)
		if err != nil {
			return err
		}
		slog.Debug("Option removed", "name", row.Name, "id", row.ID)
		return nil
	case "bankroll":
		e.board.SetBankroll(cmd.value)
		return nil
	case "reset":
		e.board.Reset()
		return nil
	}
	return fmt.Errorf("%w %q", errUnknownCommand, cmd.name)
}

// Refresh evaluates the current board and renders it.
func (e *Engine) Refresh() decision.Result {
	res := decision.Evaluate(e.board.Snapshot(), e.cfg)
	e.last = res

	fmt.Fprintln(e.out)
	e.formatter.RenderTable(e.out, e.board.Rows(), res)

	e.notifier.AlertDecision(res)
	if res.RateWarning && res.Verdict != decision.VerdictIdle {
		e.notifier.LogRateWarning(res.TotalRate)
	}
	return res
}

// Last returns the most recent evaluation.
func (e *Engine) Last() decision.Result {
	return e.last
}

func (e *Engine) prompt() {
	fmt.Fprint(e.out, "> ")
}

func (e *Engine) printHelp() {
	fmt.Fprintln(e.out, "Commands (options are numbered from 1):")
	for _, u := range usage {
		fmt.Fprintf(e.out, "  %-18s %s\n", u.syntax, u.summary)
	}
}
