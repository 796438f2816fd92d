// Package server composes long-lived components (the HTTP service, the
// consumer loop) under one context so they start and stop together.
package server

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Component is anything that runs until its context is cancelled.
type Component interface {
	Run(ctx context.Context) error
}

type App struct {
	components []Component
}

func New(components ...Component) *App {
	return &App{
		components: components,
	}
}

// Run starts every component and blocks until all have stopped. The first
// failure cancels the rest.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, component := range a.components {
		g.Go(func() error {
			return component.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("app error: %w", err)
	}

	return nil
}
