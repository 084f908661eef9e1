// Package addressbook implements an ordered, in-memory collection of contacts
// with exact-match search, in-place editing and line-per-record file persistence.
//
// A Book is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
package addressbook

import (
	"errors"
	"fmt"
	"slices"

	"github.com/smileynet/addressbook/internal/contact"
)

// Sentinel errors for caller-checkable conditions.
var (
	// ErrInvalidArgument is contact.ErrInvalidArgument, so a bad email passed
	// through EditContact matches the same sentinel as a missing argument.
	ErrInvalidArgument = contact.ErrInvalidArgument
	ErrNotFound        = errors.New("addressbook: contact not found")
	ErrIO              = errors.New("addressbook: i/o failure")
)

// Book owns an ordered sequence of contacts plus a running count.
// Records are stored by value; callers never hold aliases into the store.
type Book struct {
	contacts []contact.Contact
	count    int
}

// New returns a Book seeded with a copy of initial, in order.
func New(initial ...contact.Contact) *Book {
	return &Book{
		contacts: slices.Clone(initial),
		count:    len(initial),
	}
}

// Contacts returns a copy of the stored sequence in its current order.
func (b *Book) Contacts() []contact.Contact {
	return slices.Clone(b.contacts)
}

// ContactNumber returns the running contact count.
func (b *Book) ContactNumber() int {
	return b.count
}

// AddContacts appends contacts to the end of the book in the given order and
// returns the updated sequence. An empty list is rejected.
func (b *Book) AddContacts(contacts []contact.Contact) ([]contact.Contact, error) {
	if len(contacts) == 0 {
		return nil, fmt.Errorf("%w: no contacts to add", ErrInvalidArgument)
	}
	for i, c := range contacts {
		if c.IsZero() {
			return nil, fmt.Errorf("%w: contact %d is empty", ErrInvalidArgument, i)
		}
	}
	b.contacts = append(b.contacts, contacts...)
	b.count += len(contacts)
	return b.Contacts(), nil
}

// RemoveContact deletes the first stored record structurally equal to c and
// returns the updated sequence. Removing an absent contact is a no-op, and the
// count is only decremented when a record was actually removed.
func (b *Book) RemoveContact(c contact.Contact) ([]contact.Contact, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("%w: no contact to remove", ErrInvalidArgument)
	}
	if i := b.indexOf(c); i >= 0 {
		b.contacts = slices.Delete(b.contacts, i, i+1)
		b.count--
	}
	return b.Contacts(), nil
}

// SortByFirstName stably sorts the book by contact.Compare and returns the result.
func (b *Book) SortByFirstName() []contact.Contact {
	slices.SortStableFunc(b.contacts, contact.Compare)
	return b.Contacts()
}

// SortByLastName stably sorts the book by contact.CompareByLastName and returns the result.
func (b *Book) SortByLastName() []contact.Contact {
	slices.SortStableFunc(b.contacts, contact.CompareByLastName)
	return b.Contacts()
}

// Changes carries the replacement values for EditContact.
// A nil field leaves the stored value unchanged.
type Changes struct {
	FirstName     *string
	LastName      *string
	PhoneNumber   *string
	PostalAddress *string
	EmailAddress  *string
	Note          *string
}

// EditContact locates the first stored record equal to target and applies
// the non-nil fields of ch to it in place, returning the edited record.
//
// Lookup is by value, so target must match the record as currently stored;
// a copy taken before an earlier edit no longer matches and yields ErrNotFound.
// Changes are validated before anything is written.
func (b *Book) EditContact(target contact.Contact, ch Changes) (contact.Contact, error) {
	if target.IsZero() {
		return contact.Contact{}, fmt.Errorf("%w: no contact to edit", ErrInvalidArgument)
	}
	if ch.FirstName != nil && *ch.FirstName == "" {
		return contact.Contact{}, fmt.Errorf("%w: first name is required", ErrInvalidArgument)
	}
	if ch.EmailAddress != nil && !contact.ValidEmail(*ch.EmailAddress) {
		return contact.Contact{}, fmt.Errorf("%w: email address %q", ErrInvalidArgument, *ch.EmailAddress)
	}
	i := b.indexOf(target)
	if i < 0 {
		return contact.Contact{}, fmt.Errorf("%w: %s", ErrNotFound, target)
	}

	rec := &b.contacts[i]
	if ch.FirstName != nil {
		rec.SetFirstName(*ch.FirstName)
	}
	if ch.LastName != nil {
		rec.SetLastName(*ch.LastName)
	}
	if ch.PhoneNumber != nil {
		rec.SetPhoneNumber(*ch.PhoneNumber)
	}
	if ch.PostalAddress != nil {
		rec.SetPostalAddress(*ch.PostalAddress)
	}
	if ch.EmailAddress != nil {
		// Already validated above.
		_ = rec.SetEmailAddress(*ch.EmailAddress)
	}
	if ch.Note != nil {
		rec.SetNote(*ch.Note)
	}
	return *rec, nil
}

func (b *Book) indexOf(c contact.Contact) int {
	return slices.IndexFunc(b.contacts, c.Equal)
}
