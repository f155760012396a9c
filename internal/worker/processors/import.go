package processors

import (
	"fmt"

	"stocksync/internal/events"
	"stocksync/internal/logger"
)

// ImportProcessor tallies import events per type and channel so a run
// can be audited from the consumer side.
type ImportProcessor struct {
	logger *logger.Logger
	counts map[string]int
}

func NewImportProcessor(logger *logger.Logger) *ImportProcessor {
	return &ImportProcessor{
		logger: logger,
		counts: make(map[string]int),
	}
}

func (p *ImportProcessor) Process(event events.Event) error {
	switch event.Type {
	case "product.created", "variation.created", "order.created":
		key := fmt.Sprintf("%s/%s", event.Channel, event.Type)
		p.counts[key]++
		p.logger.Debug("%s %s (%d so far)", event.Type, event.EntityID, p.counts[key])
		return nil
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}

func (p *ImportProcessor) LogTotals() {
	for key, count := range p.counts {
		p.logger.Info("%s: %d", key, count)
	}
}
