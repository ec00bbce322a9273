package rule

import "errors"

// ErrInvalidInput indicates an empty rule.
var ErrInvalidInput = errors.New("invalid rule input")
