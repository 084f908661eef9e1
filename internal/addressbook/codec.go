package addressbook

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/smileynet/addressbook/internal/contact"
)

// ErrMalformedLine indicates a line that does not split into six labelled fields.
var ErrMalformedLine = errors.New("addressbook: malformed line")

// ParseError reports a line of an address book file that could not be turned
// into a contact.
type ParseError struct {
	Path string // File being read.
	Line int    // 1-based line number.
	Text string // Offending line.
	Err  error  // ErrMalformedLine or a contact validation error.
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("addressbook: parsing %s line %d: %s", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CheckValue reports whether v can be stored in a line field named label.
// Commas split fields and only the last whitespace-separated token of a field
// is read back, so values holding either are rejected with ErrInvalidArgument.
func CheckValue(label, v string) error {
	if strings.ContainsRune(v, ',') || strings.IndexFunc(v, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %s %q must not contain commas or whitespace", ErrInvalidArgument, label, v)
	}
	return nil
}

// checkStorable rejects a contact that FormatLine could not round-trip.
func checkStorable(c contact.Contact) error {
	if err := CheckValue(contact.FieldLabels[0], c.FirstName()); err != nil {
		return err
	}
	getters := []func() (string, bool){
		c.LastName, c.PhoneNumber, c.PostalAddress, c.EmailAddress, c.Note,
	}
	for i, get := range getters {
		if v, ok := get(); ok {
			if err := CheckValue(contact.FieldLabels[i+1], v); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatLine renders c as one file line, without the trailing newline.
func FormatLine(c contact.Contact) string {
	return c.String()
}

// ParseLine decodes one line written by FormatLine.
//
// The line is split on commas into exactly six fields in fixed order. Each
// field's value is its last whitespace-separated token, which drops the
// "label:" prefix; a field holding only its label decodes to the empty
// string. The token contact.Null marks an absent optional value. Values that
// themselves contain commas or whitespace do not survive a round trip.
func ParseLine(line string) (contact.Contact, error) {
	parts := strings.Split(line, ",")
	if len(parts) != len(contact.FieldLabels) {
		return contact.Contact{}, fmt.Errorf("%w: got %d fields, want %d",
			ErrMalformedLine, len(parts), len(contact.FieldLabels))
	}

	var vals [6]string
	for i, p := range parts {
		tokens := strings.Fields(p)
		if len(tokens) == 0 {
			return contact.Contact{}, fmt.Errorf("%w: field %d is empty", ErrMalformedLine, i+1)
		}
		v := tokens[len(tokens)-1]
		if len(tokens) == 1 && v == contact.FieldLabels[i]+":" {
			v = ""
		}
		vals[i] = v
	}

	b := contact.NewBuilder(vals[0])
	optional := []func(string) *contact.Builder{
		b.LastName, b.PhoneNumber, b.PostalAddress, b.EmailAddress, b.Note,
	}
	for i, set := range optional {
		if vals[i+1] != contact.Null {
			set(vals[i+1])
		}
	}
	return b.Build()
}
