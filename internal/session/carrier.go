package session

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Carrier binds the store to a single inbound request so code that only
// sees a context.Context (the upstream request authorizer) can consult
// and reset the session.
type Carrier struct {
	store *Store
	echo  echo.Context
}

// Carrier returns a carrier for the given request.
func (s *Store) Carrier(c echo.Context) *Carrier {
	return &Carrier{store: s, echo: c}
}

// Resolve re-reads the credential from the jar. Every call re-evaluates
// from storage; there is no caching across calls.
func (cr *Carrier) Resolve() (string, error) {
	return cr.store.Resolve(cr.echo)
}

// Reset tears the session down on the response of the bound request.
func (cr *Carrier) Reset() {
	cr.store.Clear(cr.echo)
}

type carrierKey struct{}

// NewContext returns a context carrying cr.
func NewContext(ctx context.Context, cr *Carrier) context.Context {
	return context.WithValue(ctx, carrierKey{}, cr)
}

// FromContext extracts the carrier, nil when none was attached.
func FromContext(ctx context.Context) *Carrier {
	cr, _ := ctx.Value(carrierKey{}).(*Carrier)

	return cr
}
