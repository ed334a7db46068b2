package middleware

import "github.com/danielgtaylor/huma/v2"

// Container collects middlewares for the next handler group.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw ...func(huma.Context, func(huma.Context))) *Container {
	c.mws = append(c.mws, mw...)
	return c
}

// GetAllAndClear returns the collected chain and resets the container.
func (c *Container) GetAllAndClear() huma.Middlewares {
	out := c.mws
	c.mws = nil
	if out == nil {
		out = huma.Middlewares{}
	}
	return out
}

// Set groups the chains a handler picks from per operation.
type Set struct {
	// Public is for unauthenticated routes.
	Public huma.Middlewares
	// Strict is Public with the tighter credential rate limit.
	Strict huma.Middlewares
	// Protected requires a valid access token.
	Protected huma.Middlewares
	// StrictProtected is Protected with the tighter rate limit.
	StrictProtected huma.Middlewares
}
