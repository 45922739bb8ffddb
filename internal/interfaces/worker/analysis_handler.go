package worker

import (
	"context"
	"time"

	"github.com/turtacn/Resilience-Insights/internal/application/insights"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/Resilience-Insights/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Resilience-Insights/pkg/errors"
)

const defaultJobTimeout = 5 * time.Minute

// JobClaimer hands out one claim per job id across worker replicas.
type JobClaimer interface {
	Claim(ctx context.Context, jobID string) (release func(context.Context) error, ok bool, err error)
}

// AnalysisHandler runs analysis.requested events against the orchestrator.
// Reports are announced by the service's event publisher.
type AnalysisHandler struct {
	svc     insights.Service
	claims  JobClaimer
	logger  logging.Logger
	timeout time.Duration
}

// NewAnalysisHandler builds the handler. claims may be nil, in which case
// redelivered events are analysed again.
func NewAnalysisHandler(svc insights.Service, claims JobClaimer, log logging.Logger, timeout time.Duration) *AnalysisHandler {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	return &AnalysisHandler{svc: svc, claims: claims, logger: log.Named("worker.analysis"), timeout: timeout}
}

// Topic is the topic Handle consumes.
func (h *AnalysisHandler) Topic() string { return kafka.TopicAnalysisRequested }

// Handle is a kafka.MessageHandler. Malformed events and invalid options are
// not retried; content-store failures and timeouts are.
func (h *AnalysisHandler) Handle(ctx context.Context, msg *kafka.Message) error {
	env, err := kafka.MessageToEventEnvelope(msg)
	if err != nil {
		return kafka.NonRetryable(err)
	}
	if env.EventType != kafka.EventTypeAnalysisRequested {
		h.logger.Warn("ignoring unexpected event type",
			logging.String("event_id", env.EventID),
			logging.String("event_type", env.EventType))
		return nil
	}

	var payload kafka.AnalysisRequestedPayload
	if err := env.DecodePayload(&payload); err != nil {
		return kafka.NonRetryable(err)
	}
	t, err := insights.ParseAnalysisType(payload.AnalysisType)
	if err != nil {
		return kafka.NonRetryable(err)
	}
	opts := insights.Options{
		MaxRecords:   payload.MaxRecords,
		ClusterCount: payload.ClusterCount,
		AnalysisType: t,
		Seed:         payload.Seed,
	}

	log := h.logger.With(logging.String("event_id", env.EventID), logging.String("request_id", payload.RequestID))

	if h.claims != nil {
		release, ok, err := h.claims.Claim(ctx, env.EventID)
		if err != nil {
			return err
		}
		if !ok {
			log.Info("analysis already claimed by another worker")
			return nil
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.Warn("failed to release job claim", logging.Err(err))
			}
		}()
	}

	runCtx, cancel := context.WithTimeout(logging.IntoContext(ctx, log), h.timeout)
	defer cancel()

	res := h.svc.Analyze(runCtx, opts)
	if res.Success {
		log.Info("analysis request completed",
			logging.String("report_id", res.Report.ReportID),
			logging.Bool("partial", res.Report.Metadata.Partial))
		return nil
	}

	failure := errors.New(res.Code, res.Error)
	switch res.Code {
	case errors.ErrCodeInputInvalid, errors.ErrCodeAnalysisTypeInvalid, errors.ErrCodeBadRequest:
		return kafka.NonRetryable(failure)
	}
	return failure
}

//Personal.AI order the ending
