package bulk

import (
	"errors"
	"log/slog"
	"sync"

	"mailblast/internal/models"
)

var ErrNoRecipients = errors.New("no recipients provided")

// Dispatcher submits one message and reports the outcome. It must not
// panic or return control early: every call settles.
type Dispatcher interface {
	Send(to, subject, body string) models.SendResult
}

type Orchestrator struct {
	log        *slog.Logger
	dispatcher Dispatcher
}

func New(log *slog.Logger, dispatcher Dispatcher) *Orchestrator {
	return &Orchestrator{
		log:        log,
		dispatcher: dispatcher,
	}
}

// SendAll fans out one dispatch per recipient and waits for every one
// of them to settle. Each outcome is written at its recipient's own
// index, so failure attribution never depends on completion order.
func (o *Orchestrator) SendAll(recipients []string, subject, body string) (models.BulkSummary, error) {
	const op = "bulk.SendAll"

	if len(recipients) == 0 {
		return models.BulkSummary{}, ErrNoRecipients
	}

	results := make([]models.SendResult, len(recipients))

	var wg sync.WaitGroup
	for i, to := range recipients {
		wg.Add(1)
		go func(i int, to string) {
			defer wg.Done()
			results[i] = o.dispatcher.Send(to, subject, body)
		}(i, to)
	}
	wg.Wait()

	summary := models.BulkSummary{
		FailedEmails: []string{},
	}
	for i, res := range results {
		if res.Delivered {
			summary.SuccessCount++
		} else {
			summary.FailedEmails = append(summary.FailedEmails, recipients[i])
		}
	}

	o.log.Info("bulk send settled",
		slog.String("op", op),
		slog.Int("sent", summary.SuccessCount),
		slog.Int("failed", len(summary.FailedEmails)),
	)

	return summary, nil
}
