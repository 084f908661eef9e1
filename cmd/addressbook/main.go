package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/addressbook"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/logging"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	File    string           `help:"Address book file (overrides config)." short:"f" type:"path"`
	Config  string           `help:"Additional config file, applied last." type:"path"`
	Verbose bool             `help:"Log debug output to stderr." short:"v"`
}

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	List   ListCmd   `cmd:"" help:"Print all contacts."`
	Add    AddCmd    `cmd:"" help:"Add a contact."`
	Remove RemoveCmd `cmd:"" help:"Remove the first contact matching every given field."`
	Edit   EditCmd   `cmd:"" help:"Edit the first contact matching every given field."`
	Search SearchCmd `cmd:"" help:"Find contacts by exact first name, last name or phone number."`
	Sort   SortCmd   `cmd:"" help:"Sort the address book and save the new order."`
	Import ImportCmd `cmd:"" help:"Append contacts from another address book file."`
	Export ExportCmd `cmd:"" help:"Write the address book to another file."`
	Count  CountCmd  `cmd:"" help:"Print the number of contacts."`
	Browse BrowseCmd `cmd:"" help:"Browse contacts interactively."`
}

// env carries resolved configuration and logging into a command.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook/config.yaml",
	}
	if extra != "" {
		paths = append(paths, extra)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEnv resolves config and builds the logger for a command run.
func newEnv(g *Globals, stderr io.Writer) (*env, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	if g.File != "" {
		cfg.Book.Path = g.File
	}
	if g.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.New(stderr, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log}, nil
}

// open loads the configured book. A missing file is an empty book.
func (e *env) open() (*addressbook.Book, error) {
	path := e.cfg.Book.Path
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		e.log.Warn("book file does not exist yet, starting empty", zap.String("path", path))
	}
	b, err := addressbook.Open(path)
	if err != nil {
		return nil, err
	}
	e.log.Debug("loaded book", zap.String("path", path), zap.Int("contacts", b.ContactNumber()))
	return b, nil
}

// save writes b back to the configured book file.
func (e *env) save(b *addressbook.Book) error {
	path := e.cfg.Book.Path
	if err := b.SaveToFile(path); err != nil {
		return err
	}
	e.log.Debug("saved book", zap.String("path", path), zap.Int("contacts", b.ContactNumber()))
	return nil
}

// ContactFlags identify a contact by value. Empty optional flags mean the
// field is absent, so a key must name every field the stored record has.
type ContactFlags struct {
	FirstName string `arg:"" name:"first" help:"First name."`
	Last      string `help:"Last name."`
	Phone     string `help:"Phone number."`
	Address   string `help:"Postal address."`
	Email     string `help:"Email address."`
	Note      string `help:"Note."`
}

// Contact builds the contact the flags describe. Values the book file cannot
// store are rejected with addressbook.ErrInvalidArgument.
func (f ContactFlags) Contact() (contact.Contact, error) {
	values := []struct{ label, v string }{
		{"first", f.FirstName}, {"last", f.Last}, {"phone", f.Phone},
		{"address", f.Address}, {"email", f.Email}, {"note", f.Note},
	}
	for _, fv := range values {
		if err := addressbook.CheckValue(fv.label, fv.v); err != nil {
			return contact.Contact{}, err
		}
	}

	b := contact.NewBuilder(f.FirstName)
	if f.Last != "" {
		b.LastName(f.Last)
	}
	if f.Phone != "" {
		b.PhoneNumber(f.Phone)
	}
	if f.Address != "" {
		b.PostalAddress(f.Address)
	}
	if f.Email != "" {
		b.EmailAddress(f.Email)
	}
	if f.Note != "" {
		b.Note(f.Note)
	}
	return b.Build()
}

// ListCmd prints every contact.
type ListCmd struct {
	Sort string `help:"Order to print in (insertion, first, last); defaults to book.sort."`
}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *ListCmd) run(w io.Writer, e *env) error {
	order, err := pick(c.Sort, e.cfg.Book.Sort)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	contacts := ordered(b, order)
	return printContacts(w, contacts)
}

// AddCmd appends a new contact.
type AddCmd struct {
	ContactFlags `embed:""`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *AddCmd) run(w io.Writer, e *env) error {
	ct, err := c.Contact()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if _, err := b.AddContacts([]contact.Contact{ct}); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if err := e.save(b); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Added %s (%d contacts)\n", tui.DisplayName(ct), b.ContactNumber())
	return nil
}

// RemoveCmd deletes the first contact equal to the given fields.
type RemoveCmd struct {
	ContactFlags `embed:""`
}

// Run executes the remove command.
func (c *RemoveCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *RemoveCmd) run(w io.Writer, e *env) error {
	key, err := c.Contact()
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	before := b.ContactNumber()
	if _, err := b.RemoveContact(key); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	if b.ContactNumber() == before {
		return fmt.Errorf("remove: %w: %s", addressbook.ErrNotFound, key)
	}
	if err := e.save(b); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Removed %s (%d contacts)\n", tui.DisplayName(key), b.ContactNumber())
	return nil
}

// EditCmd changes fields of the first contact equal to the given fields.
type EditCmd struct {
	ContactFlags `embed:""`

	SetFirst   string `help:"New first name."`
	SetLast    string `help:"New last name."`
	SetPhone   string `help:"New phone number."`
	SetAddress string `help:"New postal address."`
	SetEmail   string `help:"New email address."`
	SetNote    string `help:"New note."`
}

// Run executes the edit command.
func (c *EditCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return c.run(os.Stdout, e)
}

// changes maps the --set-* flags to addressbook.Changes; unset flags stay nil.
func (c *EditCmd) changes() (addressbook.Changes, error) {
	var err error
	opt := func(label, s string) *string {
		if s == "" {
			return nil
		}
		if err == nil {
			err = addressbook.CheckValue(label, s)
		}
		return &s
	}
	ch := addressbook.Changes{
		FirstName:     opt("set-first", c.SetFirst),
		LastName:      opt("set-last", c.SetLast),
		PhoneNumber:   opt("set-phone", c.SetPhone),
		PostalAddress: opt("set-address", c.SetAddress),
		EmailAddress:  opt("set-email", c.SetEmail),
		Note:          opt("set-note", c.SetNote),
	}
	return ch, err
}

func (c *EditCmd) run(w io.Writer, e *env) error {
	key, err := c.Contact()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	ch, err := c.changes()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	edited, err := b.EditContact(key, ch)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	if err := e.save(b); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	_, _ = fmt.Fprintln(w, edited)
	return nil
}

// SearchCmd prints contacts whose field exactly equals a value.
type SearchCmd struct {
	Field string `arg:"" enum:"first,last,phone" help:"Field to match: first, last or phone."`
	Value string `arg:"" help:"Exact value to match."`
}

// Run executes the search command.
func (c *SearchCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *SearchCmd) run(w io.Writer, e *env) error {
	field, err := addressbook.ParseField(c.Field)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	matches, err := b.Search(field, c.Value)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	e.log.Debug("search", zap.String("field", string(field)), zap.Int("matches", len(matches)))
	return printContacts(w, matches)
}

// SortCmd reorders the stored book.
type SortCmd struct {
	By string `arg:"" enum:"first,last" help:"Sort key: first or last."`
}

// Run executes the sort command.
func (c *SortCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("sort: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *SortCmd) run(w io.Writer, e *env) error {
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("sort: %w", err)
	}
	contacts := ordered(b, c.By)
	if err := e.save(b); err != nil {
		return fmt.Errorf("sort: %w", err)
	}
	return printContacts(w, contacts)
}

// ImportCmd appends contacts read from another file.
type ImportCmd struct {
	Path string `arg:"" type:"existingfile" help:"File to read contacts from."`
}

// Run executes the import command.
func (c *ImportCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *ImportCmd) run(w io.Writer, e *env) error {
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	n, err := b.LoadFromFile(c.Path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := e.save(b); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Imported %d contacts from %s (%d contacts)\n", n, c.Path, b.ContactNumber())
	return nil
}

// ExportCmd writes the book to another file.
type ExportCmd struct {
	Path string `arg:"" type:"path" help:"File to write."`
	Sort string `help:"Order to write in (insertion, first, last); defaults to book.sort."`
}

// Run executes the export command.
func (c *ExportCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *ExportCmd) run(w io.Writer, e *env) error {
	order, err := pick(c.Sort, e.cfg.Book.Sort)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	ordered(b, order)
	if err := b.SaveToFile(c.Path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d contacts to %s\n", b.ContactNumber(), c.Path)
	return nil
}

// CountCmd prints the number of contacts.
type CountCmd struct{}

// Run executes the count command.
func (c *CountCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	return c.run(os.Stdout, e)
}

func (c *CountCmd) run(w io.Writer, e *env) error {
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	_, _ = fmt.Fprintln(w, b.ContactNumber())
	return nil
}

// BrowseCmd opens the interactive browser, or prints the list without a TTY.
type BrowseCmd struct {
	Plain bool `help:"Force plain text output even if stdout is a TTY."`
}

// Run executes the browse command.
func (c *BrowseCmd) Run(g *Globals) error {
	e, err := newEnv(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	browser := tui.NewBrowser(tui.BrowserOptions{
		Writer:     os.Stdout,
		ForcePlain: c.Plain || e.cfg.Display.Plain,
		Order:      tui.Order(e.cfg.Book.Sort),
	})
	return c.run(browser, e)
}

func (c *BrowseCmd) run(browser tui.Browser, e *env) error {
	b, err := e.open()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return browser.Browse(ordered(b, e.cfg.Book.Sort))
}

// pick returns the order named by flag, or fallback when flag is unset.
func pick(flag, fallback string) (string, error) {
	if flag == "" {
		return fallback, nil
	}
	switch flag {
	case config.SortInsertion, config.SortFirstName, config.SortLastName:
		return flag, nil
	}
	return "", fmt.Errorf("%w: unknown sort order %q (want insertion, first or last)", addressbook.ErrInvalidArgument, flag)
}

// ordered sorts b in place by order and returns its contacts.
// Insertion order leaves b untouched.
func ordered(b *addressbook.Book, order string) []contact.Contact {
	switch order {
	case config.SortFirstName:
		return b.SortByFirstName()
	case config.SortLastName:
		return b.SortByLastName()
	}
	return b.Contacts()
}

func printContacts(w io.Writer, contacts []contact.Contact) error {
	return tui.NewBrowser(tui.BrowserOptions{Writer: w, ForcePlain: true}).Browse(contacts)
}

// Exit codes.
const (
	exitSuccess = 0
	exitData    = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var pe *addressbook.ParseError
	if errors.As(err, &pe) || errors.Is(err, addressbook.ErrNotFound) {
		return exitData
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("Manage a plain-text address book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
