package contact

import "strings"

// Compare orders contacts by first name, breaking ties on last name, phone
// number, postal address, email address and note in that order. Absent
// values sort before any present value. It returns a negative number, zero
// or a positive number like strings.Compare.
func Compare(a, b Contact) int {
	if c := strings.Compare(a.firstName, b.firstName); c != 0 {
		return c
	}
	if c := compareOpt(a.lastName, b.lastName); c != 0 {
		return c
	}
	return compareRest(a, b)
}

// CompareByLastName orders contacts by last name (absent first), then first
// name, then the same tie-break chain as Compare.
func CompareByLastName(a, b Contact) int {
	if c := compareOpt(a.lastName, b.lastName); c != 0 {
		return c
	}
	if c := strings.Compare(a.firstName, b.firstName); c != 0 {
		return c
	}
	return compareRest(a, b)
}

func compareRest(a, b Contact) int {
	if c := compareOpt(a.phoneNumber, b.phoneNumber); c != 0 {
		return c
	}
	if c := compareOpt(a.postalAddress, b.postalAddress); c != 0 {
		return c
	}
	if c := compareOpt(a.emailAddress, b.emailAddress); c != 0 {
		return c
	}
	return compareOpt(a.note, b.note)
}

func compareOpt(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}
