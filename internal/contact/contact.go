// Package contact defines the Contact record held by an address book.
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidArgument indicates a missing required value or a malformed email address.
var ErrInvalidArgument = errors.New("contact: invalid argument")

// Null is the textual stand-in for an absent optional value. Builder setters
// and the on-disk line format both treat it as "no value".
const Null = "null"

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,6}$`)

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Contact is one person's record. The first name is always set; every other
// field is optional and may be absent, which is distinct from the empty string.
//
// Contacts compare structurally: two records with the same six fields are
// indistinguishable. Copying a Contact yields an independent record.
type Contact struct {
	firstName     string
	lastName      *string
	phoneNumber   *string
	postalAddress *string
	emailAddress  *string
	note          *string
}

// Builder assembles a Contact. The zero Builder is not usable; call NewBuilder.
type Builder struct {
	c Contact
}

// NewBuilder starts a Contact with the required first name.
func NewBuilder(firstName string) *Builder {
	return &Builder{c: Contact{firstName: firstName}}
}

// LastName sets the last name. Null leaves it absent.
func (b *Builder) LastName(v string) *Builder {
	b.c.lastName = optional(v)
	return b
}

// PhoneNumber sets the phone number. Null leaves it absent.
func (b *Builder) PhoneNumber(v string) *Builder {
	b.c.phoneNumber = optional(v)
	return b
}

// PostalAddress sets the postal address. Null leaves it absent.
func (b *Builder) PostalAddress(v string) *Builder {
	b.c.postalAddress = optional(v)
	return b
}

// EmailAddress sets the email address. Null leaves it absent.
// The shape is checked by Build.
func (b *Builder) EmailAddress(v string) *Builder {
	b.c.emailAddress = optional(v)
	return b
}

// Note sets the free-form note. Null leaves it absent.
func (b *Builder) Note(v string) *Builder {
	b.c.note = optional(v)
	return b
}

// Build returns the assembled Contact. It fails with ErrInvalidArgument when
// the first name is empty or a set email address is malformed.
func (b *Builder) Build() (Contact, error) {
	if b.c.firstName == "" {
		return Contact{}, fmt.Errorf("%w: first name is required", ErrInvalidArgument)
	}
	if b.c.emailAddress != nil && !ValidEmail(*b.c.emailAddress) {
		return Contact{}, fmt.Errorf("%w: email address %q", ErrInvalidArgument, *b.c.emailAddress)
	}
	return b.c, nil
}

func optional(v string) *string {
	if v == Null {
		return nil
	}
	return &v
}

// FirstName returns the first name.
func (c Contact) FirstName() string { return c.firstName }

// LastName returns the last name and whether it is set.
func (c Contact) LastName() (string, bool) { return get(c.lastName) }

// PhoneNumber returns the phone number and whether it is set.
func (c Contact) PhoneNumber() (string, bool) { return get(c.phoneNumber) }

// PostalAddress returns the postal address and whether it is set.
func (c Contact) PostalAddress() (string, bool) { return get(c.postalAddress) }

// EmailAddress returns the email address and whether it is set.
func (c Contact) EmailAddress() (string, bool) { return get(c.emailAddress) }

// Note returns the note and whether it is set.
func (c Contact) Note() (string, bool) { return get(c.note) }

func get(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

// IsZero reports whether c is the zero Contact, which no Builder produces.
func (c Contact) IsZero() bool {
	return c.firstName == "" && c.lastName == nil && c.phoneNumber == nil &&
		c.postalAddress == nil && c.emailAddress == nil && c.note == nil
}

// SetFirstName replaces the first name.
func (c *Contact) SetFirstName(v string) { c.firstName = v }

// SetLastName replaces the last name.
func (c *Contact) SetLastName(v string) { c.lastName = &v }

// SetPhoneNumber replaces the phone number.
func (c *Contact) SetPhoneNumber(v string) { c.phoneNumber = &v }

// SetPostalAddress replaces the postal address.
func (c *Contact) SetPostalAddress(v string) { c.postalAddress = &v }

// SetNote replaces the note.
func (c *Contact) SetNote(v string) { c.note = &v }

// SetEmailAddress replaces the email address after checking its shape.
// On failure the stored value is left untouched.
func (c *Contact) SetEmailAddress(v string) error {
	if !ValidEmail(v) {
		return fmt.Errorf("%w: email address %q", ErrInvalidArgument, v)
	}
	c.emailAddress = &v
	return nil
}

// Equal reports whether every field of c and other matches, absent matching absent.
func (c Contact) Equal(other Contact) bool {
	return c.firstName == other.firstName &&
		eqOpt(c.lastName, other.lastName) &&
		eqOpt(c.phoneNumber, other.phoneNumber) &&
		eqOpt(c.postalAddress, other.postalAddress) &&
		eqOpt(c.emailAddress, other.emailAddress) &&
		eqOpt(c.note, other.note)
}

func eqOpt(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// String renders c as a single labelled line in fixed field order:
//
//	firstName: Kobe,lastName: Bryant,phoneNumber: null,postalAddress: null,emailAddress: null,note: null
//
// Absent values are written as Null. The address book file stores exactly
// this rendering, one contact per line.
func (c Contact) String() string {
	var b strings.Builder
	for i, f := range c.fields() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(FieldLabels[i])
		b.WriteString(": ")
		if f == nil {
			b.WriteString(Null)
		} else {
			b.WriteString(*f)
		}
	}
	return b.String()
}

// FieldLabels names the six fields in rendering order.
var FieldLabels = [6]string{"firstName", "lastName", "phoneNumber", "postalAddress", "emailAddress", "note"}

func (c Contact) fields() [6]*string {
	first := c.firstName
	return [6]*string{&first, c.lastName, c.phoneNumber, c.postalAddress, c.emailAddress, c.note}
}
