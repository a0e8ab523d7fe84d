package compiler

import "errors"

var (
	ErrInvalidMaxLevels     = errors.New("compiler: maxLevels must be at least 1")
	ErrInvalidMinPrimitives = errors.New("compiler: minLeafPrimitives must be at least 1")
	ErrMissingNode          = errors.New("compiler: nil tree node")
	ErrAddressOverflow      = errors.New("compiler: compiled data exceeds the addressable range")
)
