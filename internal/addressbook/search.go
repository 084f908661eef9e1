package addressbook

import (
	"fmt"

	"github.com/smileynet/addressbook/internal/contact"
)

// Field selects which contact field a search matches against.
type Field string

const (
	FieldFirstName   Field = "first"
	FieldLastName    Field = "last"
	FieldPhoneNumber Field = "phone"
)

// Fields lists the searchable fields in display order.
var Fields = []Field{FieldFirstName, FieldLastName, FieldPhoneNumber}

// ParseField maps a field name to a Field.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldFirstName, FieldLastName, FieldPhoneNumber:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown search field %q", ErrInvalidArgument, s)
}

// value returns the contact's value for f and whether it is set.
func (f Field) value(c contact.Contact) (string, bool) {
	switch f {
	case FieldFirstName:
		return c.FirstName(), true
	case FieldLastName:
		return c.LastName()
	case FieldPhoneNumber:
		return c.PhoneNumber()
	}
	return "", false
}

// Search returns, in stored order, every contact whose field f is set and
// exactly equal to query. There is no partial or case-insensitive matching.
func (b *Book) Search(f Field, query string) ([]contact.Contact, error) {
	if _, err := ParseField(string(f)); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, fmt.Errorf("%w: empty %s query", ErrInvalidArgument, f)
	}
	var matches []contact.Contact
	for _, c := range b.contacts {
		if v, ok := f.value(c); ok && v == query {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// SearchByFirstName returns the contacts whose first name equals name.
func (b *Book) SearchByFirstName(name string) ([]contact.Contact, error) {
	return b.Search(FieldFirstName, name)
}

// SearchByLastName returns the contacts whose last name is set and equals name.
func (b *Book) SearchByLastName(name string) ([]contact.Contact, error) {
	return b.Search(FieldLastName, name)
}

// SearchByPhoneNumber returns the contacts whose phone number is set and equals number.
func (b *Book) SearchByPhoneNumber(number string) ([]contact.Contact, error) {
	return b.Search(FieldPhoneNumber, number)
}
