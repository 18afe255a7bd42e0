package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/initialize"
	"github.com/arpitkhare33/maxshapez-printer-update/backend/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to server config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize:", err)
		os.Exit(1)
	}

	_ = app.Audit.Recordf("SERVER STARTED on port %d", app.Cfg.HTTP.Port)
	app.Log.Info().Str("host", app.Cfg.HTTP.Host).Int("port", app.Cfg.HTTP.Port).Msg("listening")

	if err := server.ListenAndServe(app.Cfg.HTTP.Host, app.Cfg.HTTP.Port, app.Router); err != nil {
		app.Log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
