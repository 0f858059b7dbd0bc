package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/mikeboe/verifact/pkg/analysis"
	"github.com/mikeboe/verifact/pkg/config"
	"github.com/mikeboe/verifact/pkg/render"
	"github.com/mikeboe/verifact/pkg/server"
	"github.com/mikeboe/verifact/pkg/session"
)

var (
	query     string
	wrapWidth int
	style     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "verifact",
		Short:        "Web-grounded answers with cited sources",
		Long:         `VeriFact asks Gemini with Google Search grounding and shows the answer together with the web sources it cited and a credibility score.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			renderer, err := render.NewRenderer(wrapWidth, style)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if cmd.Flags().Changed("query") {
				// Non-Interactive Mode (Flag provided)
				return runOnce(ctx, ctrl, renderer, cmd.OutOrStdout(), query)
			}
			return runInteractive(ctx, ctrl, renderer, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "Ask a single question and exit")
	rootCmd.Flags().IntVarP(&wrapWidth, "width", "w", 100, "Word wrap width for rendered output")
	rootCmd.Flags().StringVar(&style, "style", "auto", "Output style: auto, dark, light or notty")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "mcp",
		Short: "Serve the analysis tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cfg, err := newController(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			svc := server.NewService(ctrl, rate.Limit(cfg.RateLimit), cfg.RateBurst)
			return server.NewMCPServer(svc).Run(cmd.Context(), &mcp.StdioTransport{})
		},
	})

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

// newController wires config, logging and the analysis client. Logs go to
// logOut so they never mix with rendered answers or MCP frames on stdout.
func newController(logOut io.Writer) (*session.Controller, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(slog.New(cfg.NewHandler(logOut)))

	client, err := analysis.NewClient(context.Background(), analysis.Config{
		APIKey:      cfg.APIKey(),
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing client: %w", err)
	}
	return session.NewController(client, cfg.HistorySize), cfg, nil
}

func runOnce(ctx context.Context, ctrl *session.Controller, r *render.Renderer, out io.Writer, q string) error {
	st, err := ctrl.Submit(ctx, q)
	if err != nil {
		return err
	}
	fmt.Fprint(out, r.Render(render.StateMarkdown(st)))
	if st.Status == session.StatusError {
		return fmt.Errorf("analysis failed: %s", st.Error)
	}
	return nil
}

func runInteractive(ctx context.Context, ctrl *session.Controller, r *render.Renderer, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "Ask a question. Commands: /history, /load <n>, /exit")

	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case line == "/exit" || line == "/quit":
			return nil
		case line == "/history":
			fmt.Fprint(out, r.Render(render.HistoryMarkdown(ctrl.History())))
			continue
		case line == "/load" || strings.HasPrefix(line, "/load "):
			st, err := loadByIndex(ctrl, strings.TrimSpace(strings.TrimPrefix(line, "/load")))
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			fmt.Fprint(out, r.Render(render.StateMarkdown(st)))
			continue
		}

		fmt.Fprintln(out, "Analyzing...")
		st, err := ctrl.Submit(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprint(out, r.Render(render.StateMarkdown(st)))

		if ctx.Err() != nil {
			return nil
		}
	}
}

// loadByIndex resolves the 1-based position shown by /history.
func loadByIndex(ctrl *session.Controller, arg string) (session.State, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return session.State{}, fmt.Errorf("usage: /load <n>")
	}
	items := ctrl.History()
	if n < 1 || n > len(items) {
		return session.State{}, fmt.Errorf("no history entry %d", n)
	}
	return ctrl.LoadHistoryItem(items[n-1].ID)
}
