package block

import "errors"

var (
	ErrConfiguration = errors.New("invalid configuration")
	ErrUnsupported   = errors.New("unsupported combination")
)
