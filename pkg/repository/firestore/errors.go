package firestore

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("not found")
