package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Slugify folds a title down to its URL-safe form: decompose Unicode,
// drop combining marks, lowercase, keep [a-z0-9-], turn whitespace runs
// into single hyphens and trim the edges.
func Slugify(title string) string {
	decomposed := norm.NFD.String(title)

	var stripped strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		stripped.WriteRune(r)
	}

	var kept strings.Builder
	for _, r := range strings.ToLower(stripped.String()) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(kept.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}

// GenerateSlug derives a unique slug from title. exists reports whether a
// candidate is already taken; on collision a numeric suffix is appended
// and probed again. A title that yields nothing URL-safe gets a random
// token instead of an empty slug.
//
// The probe-then-use sequence is deliberately not atomic: two concurrent
// creations with the same title can both pass the probe, and the store's
// unique constraint rejects the loser as a conflict.
func GenerateSlug(title string, exists func(string) (bool, error)) (string, error) {
	slug := Slugify(title)
	if slug == "" {
		return uuid.NewString(), nil
	}

	base := slug
	for counter := 1; ; counter++ {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
