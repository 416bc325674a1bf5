package engine

import "errors"

// ErrInvalidDimension is returned when a width, height or padding is out of
// range. The packer state is left unchanged.
var ErrInvalidDimension = errors.New("invalid dimension")

// ErrInvalidSnapshot is returned by Load when a snapshot is structurally
// inconsistent. It wraps ErrInvalidDimension.
var ErrInvalidSnapshot = errors.Join(errors.New("invalid snapshot"), ErrInvalidDimension)
