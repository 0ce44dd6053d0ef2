package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/bnema/citybike/internal/adapters/in/cli"
	"github.com/bnema/citybike/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/citybike/pkg/version"
)

var (
	buildVersion = "dev"
	commit       = "unknown"
	date         = "unknown"
)

func main() {
	version.Set(buildVersion, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	rootCmd.SilenceErrors = true
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		stop()
		os.Exit(1)
	}
}
