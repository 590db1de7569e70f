package calendar

import (
	"slotwise/config"
	"slotwise/utils"

	"go.uber.org/zap"
)

// ProvidersFromConfig builds the configured calendar sources. Unknown kinds
// are skipped with a warning so one bad entry cannot take the page down.
func ProvidersFromConfig(sources []config.CalendarSourceConfig) []CalendarProvider {
	logger := utils.GetLogger()

	var providers []CalendarProvider
	for _, src := range sources {
		switch src.Kind {
		case "ics":
			providers = append(providers, NewICSProvider(src.ID, src.URL))
		case "http":
			providers = append(providers, NewHTTPProvider(src.ID, src.URL))
		default:
			logger.Warn("skipping calendar source with unknown kind",
				zap.String("id", src.ID), zap.String("kind", src.Kind))
		}
	}
	return providers
}
