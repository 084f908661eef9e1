package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/addressbook/internal/addressbook"
	"github.com/smileynet/addressbook/internal/contact"
)

func build(t *testing.T, b *contact.Builder) contact.Contact {
	t.Helper()
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return c
}

func sample(t *testing.T) []contact.Contact {
	return []contact.Contact{
		build(t, contact.NewBuilder("Shuaiyi").LastName("Bu").PhoneNumber("9175789012")),
		build(t, contact.NewBuilder("Michael").LastName("Schidlowsky").PhoneNumber("9175789012")),
		build(t, contact.NewBuilder("Kobe").LastName("Bryant").EmailAddress("kobeb@nba.com")),
	}
}

func names(rows []contact.Contact) []string {
	out := make([]string, len(rows))
	for i, c := range rows {
		out[i] = c.FirstName()
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestNewModel_InitialOrder(t *testing.T) {
	tests := []struct {
		order Order
		want  string
	}{
		{OrderInsertion, "Shuaiyi Michael Kobe"},
		{OrderFirstName, "Kobe Michael Shuaiyi"},
		{OrderLastName, "Kobe Shuaiyi Michael"},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			m := NewModel(sample(t), tt.order)
			if got := strings.Join(names(m.Rows()), " "); got != tt.want {
				t.Errorf("rows = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewModel_DoesNotReorderCaller(t *testing.T) {
	contacts := sample(t)
	b := addressbook.New(contacts...)

	_ = NewModel(b.Contacts(), OrderFirstName)

	if got := b.Contacts()[0].FirstName(); got != "Shuaiyi" {
		t.Errorf("caller's first contact = %q, want unchanged %q", got, "Shuaiyi")
	}
}

func TestModel_CursorNavigation(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)

	m = send(m, "down", "j")
	if sel, _ := m.Selected(); sel.FirstName() != "Kobe" {
		t.Errorf("selected = %q, want %q", sel.FirstName(), "Kobe")
	}

	// Cursor clamps at the end.
	m = send(m, "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	m = send(m, "up", "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestModel_SortKeys(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)

	m = send(m, "f")
	if got := strings.Join(names(m.Rows()), " "); got != "Kobe Michael Shuaiyi" {
		t.Errorf("after f rows = %q", got)
	}

	m = send(m, "l")
	if got := strings.Join(names(m.Rows()), " "); got != "Kobe Shuaiyi Michael" {
		t.Errorf("after l rows = %q", got)
	}
	if m.order != OrderLastName {
		t.Errorf("order = %q, want %q", m.order, OrderLastName)
	}
}

func TestModel_Search(t *testing.T) {
	// Given a model in insertion order
	m := NewModel(sample(t), OrderInsertion)

	// When the user searches the phone field for a shared number
	m = send(m, "/")
	if !m.searching {
		t.Fatal("/ should open the search prompt")
	}
	m = send(m, "tab", "tab")
	if m.Field() != addressbook.FieldPhoneNumber {
		t.Fatalf("field = %q, want %q", m.Field(), addressbook.FieldPhoneNumber)
	}
	m = typeText(m, "9175789012")
	m = send(m, "enter")

	// Then only the exact matches remain
	if m.searching {
		t.Error("enter should close the search prompt")
	}
	if got := strings.Join(names(m.Rows()), " "); got != "Shuaiyi Michael" {
		t.Errorf("rows = %q, want %q", got, "Shuaiyi Michael")
	}

	// When the filter is cleared
	m = send(m, "esc")

	// Then every contact is listed again
	if len(m.Rows()) != 3 {
		t.Errorf("rows after clear = %d, want 3", len(m.Rows()))
	}
}

func TestModel_SearchNoMatch(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)

	m = send(m, "/")
	m = typeText(m, "foo")
	m = send(m, "enter")

	if len(m.Rows()) != 0 {
		t.Errorf("rows = %v, want none", names(m.Rows()))
	}
	if _, ok := m.Selected(); ok {
		t.Error("Selected() ok with no rows")
	}
	if !strings.Contains(m.View(), "No contacts") {
		t.Error("view should show empty list placeholder")
	}
}

func TestModel_SearchCancelKeepsFilter(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)
	m = send(m, "/")
	m = typeText(m, "Kobe")
	m = send(m, "enter")

	m = send(m, "/", "esc")

	if m.searching {
		t.Error("esc should close the prompt")
	}
	if got := names(m.Rows()); len(got) != 1 || got[0] != "Kobe" {
		t.Errorf("rows = %v, want [Kobe]", got)
	}
}

func TestModel_SearchCancelRestoresField(t *testing.T) {
	// Given a first-name filter is applied
	m := NewModel(sample(t), OrderInsertion)
	m = send(m, "/")
	m = typeText(m, "Kobe")
	m = send(m, "enter")

	// When the prompt is reopened, the field cycled, and the prompt cancelled
	m = send(m, "/", "tab", "tab", "esc")

	// Then the field and status still describe the filter in effect
	if m.Field() != addressbook.FieldFirstName {
		t.Errorf("field = %q, want %q", m.Field(), addressbook.FieldFirstName)
	}
	if got := names(m.Rows()); len(got) != 1 || got[0] != "Kobe" {
		t.Errorf("rows = %v, want [Kobe]", got)
	}
	if !strings.Contains(m.View(), `first = "Kobe"`) {
		t.Errorf("status should name the first field:\n%s", m.View())
	}
}

func TestModel_QuitKeysWhileSearching(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)
	m = send(m, "/")

	// q is typed into the prompt, not treated as quit
	m = send(m, "q")
	if !m.searching {
		t.Error("q in search prompt should not close it")
	}
	if m.input.Value() != "q" {
		t.Errorf("input = %q, want %q", m.input.Value(), "q")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	view := m.View()

	for _, want := range []string{"Address book (3)", CursorMarker + "Shuaiyi Bu", "Michael Schidlowsky", "9175789012", "order: insertion"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)
	m = send(m, "?")
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
	if !strings.Contains(m.View(), "clear search") {
		t.Error("expanded help should list the clear binding")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(build(t, contact.NewBuilder("Kobe"))); got != "Kobe" {
		t.Errorf("DisplayName() = %q, want %q", got, "Kobe")
	}
	if got := DisplayName(build(t, contact.NewBuilder("Kobe").LastName("Bryant"))); got != "Kobe Bryant" {
		t.Errorf("DisplayName() = %q, want %q", got, "Kobe Bryant")
	}
}

func TestPaneWidths(t *testing.T) {
	tests := []struct {
		total, list, detail int
	}{
		{0, 0, 0},
		{30, MinListWidth, 30 - MinListWidth},
		{120, 40, 80},
	}
	for _, tt := range tests {
		l, d := PaneWidths(tt.total)
		if l != tt.list || d != tt.detail {
			t.Errorf("PaneWidths(%d) = (%d, %d), want (%d, %d)", tt.total, l, d, tt.list, tt.detail)
		}
	}
}

// TestModel_Teatest_BrowseAndQuit drives the model through a real program loop.
func TestModel_Teatest_BrowseAndQuit(t *testing.T) {
	m := NewModel(sample(t), OrderInsertion)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	tm.Send(keyMsg("l"))
	tm.Send(keyMsg("down"))
	tm.Send(keyMsg("q"))

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.order != OrderLastName {
		t.Errorf("order = %q, want %q", final.order, OrderLastName)
	}
	sel, ok := final.Selected()
	if !ok || sel.FirstName() != "Shuaiyi" {
		t.Errorf("selected = %v, want Shuaiyi", sel)
	}
}
