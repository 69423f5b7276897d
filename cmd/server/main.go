// Command server runs the property CMS HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ikhlashousing/propertycms/internal/server"
	"github.com/ikhlashousing/propertycms/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "propertycms: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app, err := server.NewApp(config.LoadConfig())
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
