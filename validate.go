package catalogkit

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Length bounds for book text fields.
const (
	TitleMinLen  = 1
	TitleMaxLen  = 100
	AuthorMinLen = 1
	AuthorMaxLen = 50
	GenreMinLen  = 1
	GenreMaxLen  = 30
)

// contentHashMinLen is the minimum length of an accepted content hash.
const contentHashMinLen = 32

// bannedPatterns are substrings rejected in any text field after upper-casing.
// A heuristic defense against injection payloads, not a parser.
var bannedPatterns = []string{
	"SELECT", "INSERT", "UPDATE", "DELETE", "DROP", "--", "/*", "*/", ";",
}

// ValidateText checks a text field against its length bounds, the printable
// ASCII rule, and the banned pattern list. The field name is carried in the
// returned error for caller-side reporting.
//
// Example:
//
//	if err := catalogkit.ValidateText("title", title, catalogkit.TitleMinLen, catalogkit.TitleMaxLen); err != nil {
//	    return err
//	}
func ValidateText(field, value string, minLen, maxLen int) error {
	if len(value) < minLen {
		return NewError(ErrFieldTooShort, fmt.Sprintf("%s must be at least %d characters", field, minLen)).WithField(field)
	}
	if len(value) > maxLen {
		return NewError(ErrFieldTooLong, fmt.Sprintf("%s must be at most %d characters", field, maxLen)).WithField(field)
	}

	for _, r := range value {
		if r != ' ' && (r < '!' || r > '~') {
			return NewError(ErrInvalidInput, field+" contains a non-printable character").WithField(field)
		}
	}

	upper := strings.ToUpper(value)
	for _, pattern := range bannedPatterns {
		if strings.Contains(upper, pattern) {
			return NewError(ErrInvalidInput, field+" contains a banned pattern").WithField(field)
		}
	}

	return nil
}

// ValidateContentHash checks the format of a content-address string. Two
// families are recognized: "Qm" hashes must decode in the base58 alphabet
// (which excludes the ambiguous characters 0, O, I and l), and "baf" hashes
// must be ASCII alphanumeric. The hash is never resolved.
func ValidateContentHash(hash string) error {
	if len(hash) < contentHashMinLen {
		return NewError(ErrInvalidContentHash, fmt.Sprintf("content hash must be at least %d characters", contentHashMinLen))
	}

	switch {
	case strings.HasPrefix(hash, "Qm"):
		if _, err := base58.Decode(hash); err != nil {
			return NewError(ErrInvalidContentHash, "content hash contains characters outside the base58 alphabet")
		}
	case strings.HasPrefix(hash, "baf"):
		for _, r := range hash {
			if !isASCIIAlphanumeric(r) {
				return NewError(ErrInvalidContentHash, "content hash contains a non-alphanumeric character")
			}
		}
	default:
		return NewError(ErrInvalidContentHash, "content hash has an unrecognized prefix")
	}

	return nil
}

// ValidateBookID checks that a book identifier is a well-formed v4 UUID by
// reading the raw version and variant bits.
func ValidateBookID(id uuid.UUID) error {
	if id == uuid.Nil {
		return NewError(ErrInvalidBookID, "book id is the zero identifier")
	}
	if id[6]>>4 != 4 {
		return NewError(ErrInvalidBookID, "book id is not a version 4 identifier").WithBook(id.String())
	}
	if id[8]>>6 != 2 {
		return NewError(ErrInvalidBookID, "book id has invalid variant bits").WithBook(id.String())
	}
	return nil
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
