package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/df07/go-whitted-raytracer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP render service",
	Long: `Serve starts an HTTP service that renders scenes from the configured
scene directory on demand, streams render progress over websockets, and can
publish results to S3. Configuration comes from the environment, with .env
support.`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	srv, err := server.New(server.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
