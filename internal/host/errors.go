package host

import "github.com/pkg/errors"

var (
	// ErrNoContext indicates the element could not provide a drawing context.
	ErrNoContext = errors.New("host: drawing context unavailable")

	// ErrMounted indicates Mount was called twice.
	ErrMounted = errors.New("host: already mounted")

	// ErrNoFactory indicates Options carried no renderer factory.
	ErrNoFactory = errors.New("host: no renderer factory")
)
