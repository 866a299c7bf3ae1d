package authz

import "errors"

// ErrNotFound is returned both when a row does not exist and when no policy
// admits the caller to it. The two cases are deliberately indistinguishable
// so that denied callers cannot enumerate rows they may not see.
var ErrNotFound = errors.New("not found")

// ErrUnauthenticated is returned when no caller identity is present on the
// request context.
var ErrUnauthenticated = errors.New("unauthenticated")
