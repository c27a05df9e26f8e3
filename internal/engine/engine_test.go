package engine

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parimutuel-advisor/internal/alerts"
	"parimutuel-advisor/internal/board"
	"parimutuel-advisor/internal/decision"
	"parimutuel-advisor/internal/display"
)

func newTestEngine(t *testing.T, autoComplement bool) (*Engine, *board.Board, *bytes.Buffer) {
	t.Helper()

	formatter, err := display.NewFormatter("en-US")
	require.NoError(t, err)

	b := board.New()
	b.AutoComplement = autoComplement

	var out bytes.Buffer
	e := New(b, alerts.NewNotifier(time.Minute), formatter, decision.DefaultConfig(), &out)
	return e, b, &out
}

func TestExecuteBetFlow(t *testing.T) {
	e, b, out := newTestEngine(t, true)

	for _, line := range []string{"rate 1 70", "pool 1 30", "pool 2 70", "bankroll 1000"} {
		require.True(t, e.Execute(line), line)
	}

	assert.Equal(t, "30.0", b.Rows()[1].WinRate)

	res := e.Last()
	assert.Equal(t, decision.VerdictBet, res.Verdict)
	assert.Equal(t, int64(571), res.SuggestedStake)
	assert.Contains(t, out.String(), "Bet Blue")
}

func TestExecuteIdleUntilPools(t *testing.T) {
	e, _, out := newTestEngine(t, false)

	e.Execute("rate 1 60")
	assert.Equal(t, decision.VerdictIdle, e.Last().Verdict)
	assert.Contains(t, out.String(), "Enter pool sizes")

	e.Execute("pool 1 50")
	e.Execute("rate 2 40")
	e.Execute("pool 2 50")
	assert.Equal(t, decision.VerdictBet, e.Last().Verdict)
}

func TestExecuteClearField(t *testing.T) {
	e, b, _ := newTestEngine(t, false)

	e.Execute("pool 1 100")
	e.Execute("pool 1")
	assert.Empty(t, b.Rows()[0].Pool)
	assert.Equal(t, decision.VerdictIdle, e.Last().Verdict)
}

func TestExecuteAddRemoveName(t *testing.T) {
	e, b, out := newTestEngine(t, false)

	e.Execute("add Green Team")
	require.Equal(t, 3, b.Len())
	assert.Equal(t, "Green Team", b.Rows()[2].Name)
	assert.Equal(t, "green", b.Rows()[2].Color)

	e.Execute("name 3 Draw")
	assert.Equal(t, "Draw", b.Rows()[2].Name)

	e.Execute("remove 1")
	require.Equal(t, 2, b.Len())
	assert.Equal(t, "Red", b.Rows()[0].Name)

	out.Reset()
	e.Execute("remove 1")
	assert.Equal(t, 2, b.Len())
	assert.Contains(t, out.String(), "error: at least two options are required")
}

func TestExecuteErrorsKeepSession(t *testing.T) {
	e, _, out := newTestEngine(t, false)

	assert.True(t, e.Execute("frobnicate"))
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)

	out.Reset()
	assert.True(t, e.Execute("rate 9 50"))
	assert.Contains(t, out.String(), "error: option 9: no such option")

	out.Reset()
	assert.True(t, e.Execute("pool x 50"))
	assert.Contains(t, out.String(), "must be an integer")
}

func TestExecuteQuit(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	assert.False(t, e.Execute("quit"))
	assert.False(t, e.Execute("EXIT"))
	assert.True(t, e.Execute(""))
}

func TestExecuteHelp(t *testing.T) {
	e, _, out := newTestEngine(t, false)

	e.Execute("help")
	for _, u := range usage {
		assert.Contains(t, out.String(), u.syntax)
	}
}

func TestExecuteReset(t *testing.T) {
	e, b, _ := newTestEngine(t, true)

	e.Execute("rate 1 70")
	e.Execute("pool 1 30")
	e.Execute("bankroll 500")
	e.Execute("reset")

	for _, r := range b.Rows() {
		assert.Empty(t, r.WinRate)
		assert.Empty(t, r.Pool)
	}
	assert.Empty(t, b.Bankroll())
	assert.Equal(t, decision.VerdictIdle, e.Last().Verdict)
}

func TestRunStopsAtQuit(t *testing.T) {
	e, _, out := newTestEngine(t, true)

	in := strings.NewReader("rate 1 70\npool 1 30\npool 2 70\nquit\npool 2 0\n")
	err := e.Run(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, decision.VerdictBet, e.Last().Verdict)
	assert.Contains(t, out.String(), "> ")
}

func TestRunDropsLinesAfterQuit(t *testing.T) {
	e, b, _ := newTestEngine(t, false)

	pr, pw := io.Pipe()
	written := make(chan error, 1)
	go func() {
		_, err := io.WriteString(pw, "quit\n")
		if err == nil {
			_, err = io.WriteString(pw, "pool 1 5\n")
		}
		written <- err
	}()

	require.NoError(t, e.Run(context.Background(), pr))

	select {
	case err := <-written:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reader stopped consuming input after quit")
	}
	require.NoError(t, pr.Close())

	assert.Empty(t, b.Rows()[0].Pool)
}

func TestRunStopsAtEOF(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	err := e.Run(context.Background(), strings.NewReader("pool 1 10\npool 2 10\n"))

	require.NoError(t, err)
	assert.Equal(t, 10.0, e.Last().Evaluations[0].Option.Pool)
}

func TestRunStopsOnCancel(t *testing.T) {
	e, _, _ := newTestEngine(t, false)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, pr) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    command
		wantErr error
	}{
		{name: "blank", line: "   ", want: command{}},
		{name: "rate", line: "rate 2 55.5", want: command{name: "rate", row: 1, value: "55.5"}},
		{name: "pool clear", line: "POOL 1", want: command{name: "pool", row: 0}},
		{name: "name with spaces", line: "name 1 Home Team", want: command{name: "name", row: 0, value: "Home Team"}},
		{name: "add without name", line: "add", want: command{name: "add", row: -1}},
		{name: "bankroll", line: "bankroll 1,000", want: command{name: "bankroll", row: -1, value: "1,000"}},
		{name: "quit alias", line: "q", want: command{name: "quit", row: -1}},
		{name: "missing row", line: "rate", wantErr: errUsage},
		{name: "bad row", line: "remove one", wantErr: errUsage},
		{name: "name without text", line: "name 1", wantErr: errUsage},
		{name: "unknown", line: "bet 1", wantErr: errUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
