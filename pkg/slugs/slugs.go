package slugs

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Make derives a URL-safe slug from the provided name.
func Make(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// WithSuffix appends a short random suffix so retries can sidestep slug collisions.
func WithSuffix(name string) string {
	base := Make(name)
	suffix := strings.Split(uuid.NewString(), "-")[0]
	if base == "" {
		return suffix
	}
	return fmt.Sprintf("%s-%s", base, suffix)
}

// IsValid reports whether the value is already in slug form.
func IsValid(value string) bool {
	return value != "" && slug.IsSlug(value)
}
