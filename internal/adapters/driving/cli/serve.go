package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-hub/internal/adapters/driving/api"
)

var serveTrustProxy bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the search API over HTTP:

  POST /api/search             structured GitHub search
  POST /api/similarity-search  Exa search by prompt
  POST /api/similar-urls       pages similar to a URL
  GET  /healthz                liveness

Rate limits apply per client address. Behind a reverse proxy, pass
--trust-proxy so the forwarded client address is used instead.

Examples:
  sercha-hub serve --port 8080
  sercha-hub serve --host 0.0.0.0 --trust-proxy`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "HTTP port")
	serveCmd.Flags().String("host", "127.0.0.1", "interface to bind")
	serveCmd.Flags().BoolVar(&serveTrustProxy, "trust-proxy", false, "rate limit on X-Forwarded-For / X-Real-IP")
	rootCmd.AddCommand(serveCmd)
}

// newAPIServer builds the HTTP server from the wired services.
func newAPIServer() (*api.Server, error) {
	return api.NewServer(&api.Ports{
		Search:     searchService,
		Similarity: similarityService,
		TrustProxy: serveTrustProxy,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return fmt.Errorf("getting host flag: %w", err)
	}
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	server, err := newAPIServer()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	fmt.Fprintf(cmd.OutOrStdout(), "API listening on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}
