package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/arpitkhare33/maxshapez-printer-update/agent/internal/client"
	"github.com/arpitkhare33/maxshapez-printer-update/agent/internal/config"
	"github.com/arpitkhare33/maxshapez-printer-update/agent/internal/updater"
)

const updateArchive = "update.zip"

func main() {
	configPath := flag.String("config", "agentConfig.json", "Path to agent config file")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	cl := client.New(cfg.ServerURL, cfg.HeaderName, cfg.AuthToken)

	switch cmd {
	case "list":
		builds, err := cl.BuildDetails(cfg.PrinterType, cfg.SubType, cfg.Make)
		if err != nil {
			log.Error().Err(err).Msg("fetch build details")
			os.Exit(1)
		}
		if len(builds) == 0 {
			log.Info().Msg("no builds published for this device profile")
			return
		}
		for _, b := range builds {
			fmt.Printf("%-6d %-20s version=%-12s uploaded=%s size=%sMB\n", b.ID, b.Name, b.Version, b.UploadTime, b.Size)
		}
	case "update":
		log.Info().Str("build_number", cfg.BuildNumber).Msg("downloading update archive")
		if err := cl.Download(cfg.PrinterType, cfg.SubType, cfg.Make, cfg.BuildNumber, updateArchive); err != nil {
			log.Error().Err(err).Msg("download failed")
			os.Exit(1)
		}
		log.Info().Msg("archive downloaded, applying update")
		if err := updater.Apply(updateArchive, cfg.BuildDir, cfg.BackupDir); err != nil {
			log.Error().Err(err).Msg("apply update")
			os.Exit(1)
		}
		log.Info().Str("build_dir", cfg.BuildDir).Msg("update complete")
	default:
		fmt.Fprintln(os.Stderr, "usage: agent [-config agentConfig.json] <list|update>")
		os.Exit(2)
	}
}
