package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/nachosys/internal/kernel"
	"github.com/desertwitch/nachosys/internal/report"
)

type App struct {
	kernel      *kernel.Kernel
	programName string
	program     kernel.Program
	reportOut   io.Writer
}

// NewApp returns a pointer to a new [App] running program on k. A nil
// reportOut disables the halt report.
func NewApp(k *kernel.Kernel, programName string, program kernel.Program, reportOut io.Writer) *App {
	return &App{
		kernel:      k,
		programName: programName,
		program:     program,
		reportOut:   reportOut,
	}
}

// Launch runs the program as the root process until the machine halts and
// returns the exit status of the root process. A canceled context halts the
// machine early.
func (app *App) Launch(ctx context.Context) (int, error) {
	root, err := app.kernel.Spawn(ctx, app.programName, app.program)
	if err != nil {
		return 0, fmt.Errorf("(app) %w", err)
	}

	if err := app.kernel.Wait(ctx); err != nil {
		slog.Warn("Interrupted, halting machine.",
			"program", app.programName,
		)
		app.kernel.Halt()

		return 0, fmt.Errorf("(app) %w", err)
	}

	// The root may still be unwinding after a halt it requested itself.
	status, err := root.Wait(context.WithoutCancel(ctx))
	if err != nil {
		return 0, fmt.Errorf("(app) %w", err)
	}

	slog.Debug("Root process terminated.",
		"program", app.programName,
		"status", status,
	)

	if app.reportOut != nil {
		if err := app.printReport(); err != nil {
			return status, fmt.Errorf("(app) %w", err)
		}
	}

	return status, nil
}

func (app *App) printReport() error {
	files, err := app.kernel.Files()
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if err := report.Render(app.reportOut, app.kernel.Statistics(), files); err != nil {
		return err
	}

	return nil
}
