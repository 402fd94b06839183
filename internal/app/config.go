package service

import (
	"github.com/okian/medalboard/internal/adapters/repository"
	"github.com/okian/medalboard/internal/config"
)

// FromConfig maps a loaded Config onto dashboard options.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithPaths(repository.Paths{
			Hosts:    cfg.Path(cfg.HostsFile),
			Medals:   cfg.Path(cfg.MedalsFile),
			GDP:      cfg.Path(cfg.GDPFile),
			Athletes: cfg.Path(cfg.AthletesFile),
		}),
		WithLoadWorkers(cfg.LoadWorkers),
		WithMedalsDelimiter(cfg.Delimiter()),
		WithSeason(cfg.Season),
		WithEconomyCountry(cfg.EconomyCountry),
		WithEconomyFromYear(cfg.EconomyFromYear),
		WithBarTopN(cfg.BarTopN),
		WithSankeyTopCountries(cfg.SankeyTopCountries),
	}
}
