package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/zerowrap"

	"github.com/bnema/citybike/internal/domain"
)

// ListNetworks fetches the networks once and returns them. In preview mode
// no request is sent and the sample networks are returned.
func ListNetworks(ctx context.Context, o Overrides) (domain.Networks, error) {
	cfg, err := initConfig(o)
	if err != nil {
		return domain.Networks{}, err
	}

	log, cleanup, err := initLogger(cfg, false)
	if err != nil {
		return domain.Networks{}, err
	}
	defer cleanup()

	ctx = zerowrap.CtxWithFields(zerowrap.WithCtx(ctx, log), map[string]any{
		zerowrap.FieldLayer:     "app",
		zerowrap.FieldComponent: "list",
	})

	return listNetworks(ctx, cfg)
}

func listNetworks(ctx context.Context, cfg Config) (domain.Networks, error) {
	log := zerowrap.FromCtx(ctx)

	fetcher := newFetcher(cfg, log)
	defer func() { _ = fetcher.Close() }()

	source := dataSource(cfg, fetcher)

	if cfg.RunNetworkCalls() {
		fetcher.Fetch(cfg.API.URL, domain.SampleNetworks())
		if err := fetcher.Wait(ctx); err != nil {
			return domain.Networks{}, fmt.Errorf("waiting for networks: %w", err)
		}
	}

	networks, ok := source.Get()
	if !ok {
		return domain.Networks{}, errors.New("no networks available")
	}

	log.Debug().
		Int(zerowrap.FieldCount, networks.Len()).
		Msg("networks listed")

	return networks, nil
}
