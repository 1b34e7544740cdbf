package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/server"
)

var (
	portNumber  int  // HTTP port, 0 = random free port
	openBrowser bool // Launch the dashboard in the default browser
)

// serveCmd starts the HTTP API and dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard and JSON API",
	Run: func(cmd *cobra.Command, args []string) {
		srv := server.NewServer().WithPortNumber(portNumber)
		listener, url, err := srv.Listen()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Fprintf(os.Stderr, "Memory visualizer listening on %s\n", url)

		if openBrowser {
			if err := browser.OpenURL(url); err != nil {
				logrus.Warnf("Could not open browser: %v", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := srv.Serve(ctx, listener); err != nil {
			logrus.Fatalf("Server error: %v", err)
		}
		logrus.Info("Server stopped.")
	},
}

func init() {
	serveCmd.Flags().IntVar(&portNumber, "port", 5000, "Port to listen on (0 picks a free port)")
	serveCmd.Flags().BoolVar(&openBrowser, "open", false, "Open the dashboard in the default browser")

	rootCmd.AddCommand(serveCmd)
}
