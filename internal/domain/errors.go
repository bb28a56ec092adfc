package domain

import "errors"

// ErrNotFound marks lookups whose target row does not exist. Repositories
// wrap it into their not-found errors so callers can branch with errors.Is
// without importing the database driver.
var ErrNotFound = errors.New("not found")
