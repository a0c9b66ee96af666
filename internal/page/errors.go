package page

import "github.com/pkg/errors"

var ErrUnknownVariant = errors.New("unknown hero variant")
