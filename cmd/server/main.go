package main

import (
	"log/slog"
	"os"

	"github.com/bancamd/corebank/pkg/app"
)

func main() {
	if err := app.Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
