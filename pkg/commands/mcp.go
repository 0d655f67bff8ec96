package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/uebung/pkg/commands/options"
	"tableflip.dev/uebung/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve practice data over the Model Context Protocol.",
		Long: options.Wrap80(`MCP starts a Model Context Protocol server. Clients can read the day
plan, exercises, schedule and scale coverage, and record practice logs with
the same rules as the log command.`),
		Example: `
uebung mcp
uebung mcp --http-port 0
uebung mcp --transport stdio
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			transport, err := mcp.ParseTransport(mo.Transport)
			if err != nil {
				return err
			}
			runner := mcp.Runner{
				Name:             "uebung",
				Version:          buildVersion(),
				Transport:        transport,
				HTTPEndpointPath: mo.Endpoint(),
				HTTPServerCert:   strings.TrimSpace(mo.TLSCert),
				HTTPServerKey:    strings.TrimSpace(mo.TLSKey),
			}
			if transport == mcp.TransportHTTP {
				if runner.HTTPListenAddr, err = mo.Addr(); err != nil {
					return err
				}
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP HTTP server listening on %s\n", runner.URL(a))
				}
			}

			svc, done, err := loadService()
			if err != nil {
				return err
			}
			defer done()
			runner.Service = svc
			runner.Log = svc.Log
			return runner.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
