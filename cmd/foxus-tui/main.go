// foxus-tui is a terminal dashboard over the daemon's command socket.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"foxus/cmd/foxus-tui/ui"
)

func main() {
	var (
		host = flag.String("host", "127.0.0.1", "Daemon host")
		port = flag.Int("port", 9610, "Daemon command port")
	)
	flag.Parse()

	session, err := ui.NewSession(*host, *port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "foxus-tui: %v (is foxusd running?)\n", err)
		os.Exit(1)
	}
	defer session.Close()

	p := tea.NewProgram(ui.NewRootModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "foxus-tui:", err)
		os.Exit(1)
	}
}
