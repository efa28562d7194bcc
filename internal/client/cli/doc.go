// Package cli is the interactive terminal client of the catalog.
//
// It plays the part of the rendering layer: it restores the session at
// startup, resolves views through the guarded router, prompts for forms and
// prints store state. All backend work goes through the stores.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
