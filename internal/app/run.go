package app

import (
	"context"
	"fmt"

	"github.com/bnema/zerowrap"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/citybike/internal/adapters/in/cli/ui/presenter"
	"github.com/bnema/citybike/internal/adapters/out/datasource"
	"github.com/bnema/citybike/internal/adapters/out/httpfetch"
	"github.com/bnema/citybike/internal/boundaries/out"
	"github.com/bnema/citybike/internal/domain"
	"github.com/bnema/citybike/pkg/version"
)

// Run starts the interactive networks list and blocks until the user quits.
func Run(ctx context.Context, o Overrides) error {
	cfg, err := initConfig(o)
	if err != nil {
		return err
	}

	log, cleanup, err := initLogger(cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx = zerowrap.CtxWithFields(zerowrap.WithCtx(ctx, log), map[string]any{
		zerowrap.FieldLayer:     "app",
		zerowrap.FieldComponent: "tui",
	})
	log = zerowrap.FromCtx(ctx)

	// The program is created after the fetcher, but nothing is dispatched
	// before the program runs: the only fetch is triggered from its update loop.
	var program *tea.Program
	fetcher := newFetcher(cfg, log, httpfetch.WithDispatcher(func(apply func()) {
		program.Send(presenter.ApplyMsg{Apply: apply})
	}))
	defer func() { _ = fetcher.Close() }()

	model := presenter.New(dataSource(cfg, fetcher),
		presenter.WithFetcher(fetcher),
		presenter.WithNotifier(fetcher),
		presenter.WithURL(cfg.API.URL),
		presenter.WithRunNetworkCalls(cfg.RunNetworkCalls()),
	)
	defer model.Close()

	log.Info().
		Str("url", cfg.API.URL).
		Bool("run_network_calls", cfg.RunNetworkCalls()).
		Msg("starting networks list")

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running networks list: %w", err)
	}

	return nil
}

// newFetcher builds the networks fetcher from configuration.
func newFetcher(cfg Config, log zerowrap.Logger, opts ...httpfetch.Option) *httpfetch.Fetcher[domain.Networks] {
	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	base := []httpfetch.Option{
		httpfetch.WithTimeout(cfg.API.Timeout),
		httpfetch.WithUserAgent(userAgent),
		httpfetch.WithLogger(log),
	}
	return httpfetch.New[domain.Networks](append(base, opts...)...)
}

// dataSource returns the sample mock in preview mode, the live fetcher otherwise.
func dataSource(cfg Config, fetcher out.ValueHolder[domain.Networks]) out.DataSource[domain.Networks] {
	if !cfg.RunNetworkCalls() {
		return datasource.NewMock(domain.SampleNetworks())
	}
	return datasource.NewLive(fetcher)
}
