package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/fx"
)

// run starts app and blocks until ctx is cancelled or the app asks to shut
// down. The returned value is the process exit code. Start is bounded only by
// the fx start timeout, so a signal during startup still stops cleanly.
func run(ctx context.Context, app *fx.App, stderr io.Writer) int {
	startCtx, cancelStart := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancelStart()

	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(stderr, "pharmadash: failed to start: %v\n", err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()

	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "pharmadash: failed to stop: %v\n", err)
		return 1
	}
	return code
}
