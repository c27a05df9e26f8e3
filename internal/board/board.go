// Package board is the presentation layer's ordered list of option rows.
//
// The board owns the raw field values the user typed and is the only place
// rows are added or removed. It enforces the two-option minimum; the engine
// only ever sees a value copy produced by Snapshot.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"parimutuel-advisor/internal/decision"
	"parimutuel-advisor/internal/input"
)

// MinOptions is the fewest rows a board may hold.
const MinOptions = 2

var (
	ErrMinimumOptions = errors.New("at least two options are required")
	ErrNoSuchOption   = errors.New("no such option")
)

// Palette is the display colour cycle for rows, in assignment order.
var Palette = []string{"blue", "red", "green", "yellow", "purple", "orange", "cyan", "pink"}

// DefaultNames seed a fresh two-sided board.
var DefaultNames = []string{"Blue", "Red"}

// Row is one option's raw, user-editable fields.
type Row struct {
	ID      uuid.UUID
	Name    string
	Color   string
	WinRate string
	Pool    string
}

// Board is an ordered list of option rows plus the bankroll field.
// It is not safe for concurrent use; one session drives one board.
type Board struct {
	rows      []Row
	bankroll  string
	nextColor int

	// AutoComplement mirrors a rate edit onto the other row as 100 - x
	// while the board is two-sided.
	AutoComplement bool
}

// New creates a board seeded with the given names, topped up to two rows.
func New(names ...string) *Board {
	b := &Board{}
	for _, name := range names {
		b.Add(name)
	}
	for i := len(b.rows); i < MinOptions; i++ {
		b.Add(DefaultNames[i])
	}
	return b
}

// Add appends a row with the next palette colour. A blank name becomes
// "Option N".
func (b *Board) Add(name string) Row {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Option %d", len(b.rows)+1)
	}

	row := Row{
		ID:    uuid.New(),
		Name:  name,
		Color: Palette[b.nextColor%len(Palette)],
	}
	b.nextColor++
	b.rows = append(b.rows, row)
	return row
}

// Remove deletes the row at index. It refuses to go below MinOptions.
func (b *Board) Remove(index int) (Row, error) {
	if err := b.check(index); err != nil {
		return Row{}, err
	}
	if len(b.rows) <= MinOptions {
		return Row{}, ErrMinimumOptions
	}

	row := b.rows[index]
	b.rows = append(b.rows[:index], b.rows[index+1:]...)
	return row, nil
}

// RemoveID deletes the row with the given ID.
func (b *Board) RemoveID(id uuid.UUID) (Row, error) {
	for i, r := range b.rows {
		if r.ID == id {
			return b.Remove(i)
		}
	}
	return Row{}, fmt.Errorf("option %s: %w", id, ErrNoSuchOption)
}

// SetName renames the row at index.
func (b *Board) SetName(index int, name string) error {
	if err := b.check(index); err != nil {
		return err
	}
	b.rows[index].Name = strings.TrimSpace(name)
	return nil
}

// SetWinRate stores the raw win-rate text for the row at index.
func (b *Board) SetWinRate(index int, raw string) error {
	if err := b.check(index); err != nil {
		return err
	}
	b.rows[index].WinRate = strings.TrimSpace(raw)

	if b.AutoComplement && len(b.rows) == MinOptions {
		if v, ok := input.ParseNumber(raw); ok {
			b.rows[1-index].WinRate = strconv.FormatFloat(100-v, 'f', 1, 64)
		}
	}
	return nil
}

// SetPool stores the raw pool text for the row at index.
func (b *Board) SetPool(index int, raw string) error {
	if err := b.check(index); err != nil {
		return err
	}
	b.rows[index].Pool = strings.TrimSpace(raw)
	return nil
}

// SetBankroll stores the raw bankroll text.
func (b *Board) SetBankroll(raw string) {
	b.bankroll = strings.TrimSpace(raw)
}

// Bankroll returns the raw bankroll text.
func (b *Board) Bankroll() string {
	return b.bankroll
}

// Reset clears every rate, pool and the bankroll, keeping rows and names.
func (b *Board) Reset() {
	for i := range b.rows {
		b.rows[i].WinRate = ""
		b.rows[i].Pool = ""
	}
	b.bankroll = ""
}

// Len returns the number of rows.
func (b *Board) Len() int {
	return len(b.rows)
}

// Rows returns a copy of the rows in order.
func (b *Board) Rows() []Row {
	out := make([]Row, len(b.rows))
	copy(out, b.rows)
	return out
}

// Snapshot parses the current fields into an engine input.
func (b *Board) Snapshot() decision.Input {
	raw := make([]input.Row, len(b.rows))
	for i, r := range b.rows {
		raw[i] = input.Row{Name: r.Name, WinRate: r.WinRate, Pool: r.Pool}
	}
	return decision.Input{
		Options:  input.Options(raw),
		Bankroll: input.Field(b.bankroll),
	}
}

func (b *Board) check(index int) error {
	if index < 0 || index >= len(b.rows) {
		return fmt.Errorf("option %d: %w", index+1, ErrNoSuchOption)
	}
	return nil
}
