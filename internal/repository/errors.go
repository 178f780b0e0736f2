package repository

import "errors"

// ErrNotFound is returned by Load when nothing has been stored under the
// namespace yet. It hides driver errors such as sql.ErrNoRows and redis.Nil so
// callers can treat every backend alike.
var ErrNotFound = errors.New("repository: not found")
