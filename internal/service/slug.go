// Package service contains the business logic layer: slug assignment,
// identity resolution, authentication orchestration, and content rules.
// Handlers parse HTTP and call in here; repositories do the SQL. Services
// depend only on the repository interfaces, so every test in this package
// runs against in-memory mocks.
package service

import (
	"context"
	"fmt"
	"strings"
)

// maxSlugAttempts bounds the collision loop. The existence check is supposed
// to eventually report an untaken candidate; if it says "taken" a thousand
// times in a row it is broken (or someone owns alice through alice-999), and
// looping further would hang the login request.
const maxSlugAttempts = 1000

// SlugExistsFunc reports whether a candidate slug is already taken.
// repository.UserRepository.SlugExists satisfies it.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// Slugify normalizes a display name into a URL-safe base slug: lowercase,
// with every run of non-alphanumeric characters collapsed into a single
// hyphen. "Jane Q. Public" → "jane-q-public".
func Slugify(name string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// GenerateSlug produces a unique slug from a display name: the normalized
// base if free, otherwise base-1, base-2, ... until the existence check
// reports an untaken candidate.
//
// The check is read-only and the result is NOT reserved — two concurrent
// callers racing on the same name can both be handed the same candidate.
// That gap is closed downstream by the unique index on users.slug: the loser
// of the race gets a conflict error from the store and regenerates (see
// IdentityResolver.ensureSlug).
func GenerateSlug(ctx context.Context, name string, exists SlugExistsFunc) (string, error) {
	base := Slugify(name)
	if base == "" {
		// Display names made entirely of punctuation normalize to nothing.
		base = "user"
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}
