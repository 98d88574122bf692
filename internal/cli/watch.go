package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moneta-labs/moneta/internal/config"
	"github.com/moneta-labs/moneta/internal/loader"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload currency data whenever the data file changes",
	Long: `Load the registry, then watch the data file and reload on every change
or SIGHUP. A reload that fails keeps the previous registry. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s := config.LoaderSettings()
	opts, err := s.Options(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, err := loader.NewHolder(ctx, s.PrimaryPath, opts)
	if err != nil {
		return err
	}
	defer h.Stop()

	report := func(r *registry.Registry) {
		fmt.Fprintf(out, "%d currencies, data version %q\n", r.Len(), r.Version())
	}
	h.OnChange(report)
	report(h.Get())

	if err := h.WatchFile(); err != nil {
		return err
	}
	h.WatchSignals()
	fmt.Fprintf(out, "Watching %s\n", h.Path())

	<-ctx.Done()
	return nil
}
