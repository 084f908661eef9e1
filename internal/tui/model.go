// Package tui provides an interactive terminal browser over an address book.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/addressbook"
	"github.com/smileynet/addressbook/internal/contact"
)

// Order is the list ordering shown by the browser.
type Order string

const (
	OrderInsertion Order = "insertion"
	OrderFirstName Order = "first"
	OrderLastName  Order = "last"
)

// Model is the Bubble Tea model for browsing contacts.
// It works on a private copy of the book, so sorting in the browser never
// reorders the caller's book.
type Model struct {
	book      *addressbook.Book
	rows      []contact.Contact // Current view: sorted, possibly filtered.
	cursor    int
	order     Order
	searching bool
	field     int // Index into addressbook.Fields.
	prevField int // Field in effect when the prompt opened; restored on cancel.
	query     string
	input     textinput.Model
	err       error
	keys      browseKeys
	search    searchKeys
	help      help.Model
	width     int
	height    int
}

// NewModel creates a Model over a snapshot of contacts shown in the given order.
func NewModel(contacts []contact.Contact, order Order) Model {
	ti := textinput.New()
	ti.Placeholder = "exact value"
	ti.CharLimit = 256

	m := Model{
		book:   addressbook.New(contacts...),
		order:  order,
		input:  ti,
		keys:   BrowseKeyMap(),
		search: SearchKeyMap(),
		help:   help.New(),
	}
	m.refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleBrowseKey(msg)
	}

	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.SortFirst):
		m.order = OrderFirstName
		m.refresh()
	case key.Matches(msg, m.keys.SortLast):
		m.order = OrderLastName
		m.refresh()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.prevField = m.field
		m.input.SetValue(m.query)
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		m.query = ""
		m.err = nil
		m.refresh()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.search.Cancel):
		m.searching = false
		m.field = m.prevField
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.search.Field):
		m.field = (m.field + 1) % len(addressbook.Fields)
		return m, nil
	case key.Matches(msg, m.search.Submit):
		m.searching = false
		m.input.Blur()
		m.query = strings.TrimSpace(m.input.Value())
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh rebuilds rows from the book using the current order and query.
func (m *Model) refresh() {
	switch m.order {
	case OrderFirstName:
		m.book.SortByFirstName()
	case OrderLastName:
		m.book.SortByLastName()
	}

	m.err = nil
	if m.query == "" {
		m.rows = m.book.Contacts()
	} else {
		rows, err := m.book.Search(m.Field(), m.query)
		m.rows, m.err = rows, err
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Field returns the field the search prompt matches against.
func (m Model) Field() addressbook.Field {
	return addressbook.Fields[m.field]
}

// Rows returns the contacts currently listed.
func (m Model) Rows() []contact.Contact {
	return m.rows
}

// Selected returns the contact under the cursor, if any.
func (m Model) Selected() (contact.Contact, bool) {
	if len(m.rows) == 0 {
		return contact.Contact{}, false
	}
	return m.rows[m.cursor], true
}

// View renders the list and detail panes with a status line and help bar.
func (m Model) View() string {
	listW, detailW := PaneWidths(m.width)
	if m.width == 0 {
		listW, detailW = MinListWidth, 48
	}

	list := paneStyle(!m.searching).Width(listW - 2).Render(m.viewList())
	detail := paneStyle(false).Width(detailW - 2).Render(m.viewDetail())

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Address book (%d)", m.book.ContactNumber())))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.help.View(m.search))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) viewList() string {
	if len(m.rows) == 0 {
		return dimStyle.Render("No contacts")
	}
	var b strings.Builder
	for i, c := range m.rows {
		if i > 0 {
			b.WriteString("\n")
		}
		name := DisplayName(c)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(CursorMarker + name))
		} else {
			b.WriteString("  " + name)
		}
	}
	return b.String()
}

func (m Model) viewDetail() string {
	c, ok := m.Selected()
	if !ok {
		return ""
	}
	labels := [...]string{"First", "Last", "Phone", "Address", "Email", "Note"}
	values := fieldValues(c)
	lines := make([]string, len(labels))
	for i, l := range labels {
		lines[i] = labelStyle.Render(l) + values[i]
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewStatus() string {
	if m.searching {
		return fmt.Sprintf("search %s: %s", m.Field(), m.input.View())
	}
	status := fmt.Sprintf("order: %s", m.order)
	if m.query != "" {
		status += fmt.Sprintf("  %s = %q (%d)", m.Field(), m.query, len(m.rows))
	}
	if m.err != nil {
		status += "  " + errorStyle.Render(m.err.Error())
	}
	return dimStyle.Render(status)
}

// DisplayName renders "First Last", or just the first name when the last is absent.
func DisplayName(c contact.Contact) string {
	if last, ok := c.LastName(); ok && last != "" {
		return c.FirstName() + " " + last
	}
	return c.FirstName()
}

func fieldValues(c contact.Contact) [6]string {
	show := func(v string, ok bool) string {
		if !ok {
			return dimStyle.Render("—")
		}
		return v
	}
	return [6]string{
		c.FirstName(),
		show(c.LastName()),
		show(c.PhoneNumber()),
		show(c.PostalAddress()),
		show(c.EmailAddress()),
		show(c.Note()),
	}
}
