package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arpitkhare33/maxshapez-printer-update/cmd/webui/ui"
)

func main() {
	serverURL := flag.String("server", "http://127.0.0.1:3001", "Update service base URL")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(*serverURL), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "ui error:", err)
		os.Exit(1)
	}
}
