package tui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/addressbook/internal/contact"
)

// Browser presents a list of contacts to the user.
type Browser interface {
	Browse(contacts []contact.Contact) error
}

// BrowserOptions configures browser creation.
type BrowserOptions struct {
	Writer     io.Writer // Output destination (default: os.Stdout).
	Input      io.Reader // Key input for the TUI (default: os.Stdin).
	ForcePlain bool      // Force plain text even if TTY.
	Order      Order     // Initial list order.
}

// NewBrowser returns an interactive browser when the writer is a TTY, or a
// plain text lister otherwise. ForcePlain overrides TTY detection.
func NewBrowser(opts BrowserOptions) Browser {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	if opts.ForcePlain || !IsTTY(opts.Writer) {
		return &PlainBrowser{w: opts.Writer}
	}
	return &TUIBrowser{w: opts.Writer, in: opts.Input, order: opts.Order}
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainBrowser prints one contact per line.
type PlainBrowser struct {
	w io.Writer
}

// Browse writes each contact's line rendering, in the given order.
func (b *PlainBrowser) Browse(contacts []contact.Contact) error {
	for _, c := range contacts {
		if _, err := fmt.Fprintln(b.w, c); err != nil {
			return err
		}
	}
	return nil
}

// TUIBrowser runs the Bubble Tea contact browser.
type TUIBrowser struct {
	w     io.Writer
	in    io.Reader
	order Order
}

// Browse runs the browser until the user quits. If the program fails to
// start, the contacts are printed as plain text instead.
func (b *TUIBrowser) Browse(contacts []contact.Contact) error {
	p := tea.NewProgram(NewModel(contacts, b.order),
		tea.WithOutput(b.w),
		tea.WithInput(b.in),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		plain := &PlainBrowser{w: b.w}
		return plain.Browse(contacts)
	}
	return nil
}
