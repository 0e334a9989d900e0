// Package queue runs comprehensive analyses for jobs delivered over AMQP and
// publishes each outcome to a topic exchange.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/streadway/amqp"

	"resuscan/internal/analysis"
	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/objectstore"
	"resuscan/internal/types"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job asks for one analysis. Exactly one of S3Key and ResumeText is read;
// S3Key wins when both are set.
type Job struct {
	ID         string `json:"id" validate:"required"`
	JobTitle   string `json:"job_title" validate:"required"`
	S3Key      string `json:"s3_key,omitempty" validate:"required_without=ResumeText"`
	ResumeText string `json:"resume_text,omitempty" validate:"required_without=S3Key"`
}

// Result is published for every consumed job.
type Result struct {
	ID        string                       `json:"id"`
	Status    string                       `json:"status"`
	Analysis  *types.ComprehensiveAnalysis `json:"analysis,omitempty"`
	Error     string                       `json:"error,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

// RoutingKey is the results exchange key for a job id.
func RoutingKey(id string) string {
	return "analysis." + id
}

// Analyzer is the part of analysis.Analyzer the worker drives.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (types.ComprehensiveAnalysis, error)
	AnalyzeText(ctx context.Context, text, jobTitle string) (types.ComprehensiveAnalysis, error)
}

// ObjectSource fetches uploaded resumes. objectstore.Store satisfies it.
type ObjectSource interface {
	Fetch(ctx context.Context, key string) (objectstore.Object, error)
}

// Worker consumes jobs from cfg.JobsQueue.
type Worker struct {
	cfg      config.QueueConfig
	analyzer Analyzer
	objects  ObjectSource
	validate *validator.Validate
	logger   *errors.Logger
}

// NewWorker creates a worker. objects may be nil, in which case jobs that
// carry an s3_key fail.
func NewWorker(cfg config.QueueConfig, analyzer Analyzer, objects ObjectSource, logger *errors.Logger) *Worker {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Prefetch < 1 {
		cfg.Prefetch = 1
	}
	return &Worker{
		cfg:      cfg,
		analyzer: analyzer,
		objects:  objects,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Handle decodes and runs one job. It never fails: decoding, validation and
// analysis errors become a failed Result.
func (w *Worker) Handle(ctx context.Context, body []byte) Result {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return failed(job.ID, fmt.Errorf("invalid job payload: %w", err))
	}
	if err := w.validate.Struct(job); err != nil {
		return failed(job.ID, fmt.Errorf("invalid job: %w", err))
	}

	report, err := w.run(ctx, job)
	if err != nil {
		return failed(job.ID, err)
	}
	return Result{ID: job.ID, Status: StatusCompleted, Analysis: &report, Timestamp: time.Now().UTC()}
}

func (w *Worker) run(ctx context.Context, job Job) (types.ComprehensiveAnalysis, error) {
	if job.S3Key == "" {
		return w.analyzer.AnalyzeText(ctx, job.ResumeText, job.JobTitle)
	}
	if w.objects == nil {
		return types.ComprehensiveAnalysis{}, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"object storage is not configured", nil)
	}
	obj, err := w.objects.Fetch(ctx, job.S3Key)
	if err != nil {
		return types.ComprehensiveAnalysis{}, err
	}
	return w.analyzer.Analyze(ctx, analysis.Request{
		FileName:    path.Base(obj.Key),
		ContentType: obj.ContentType,
		Data:        obj.Data,
		JobTitle:    job.JobTitle,
	})
}

func failed(id string, err error) Result {
	return Result{ID: id, Status: StatusFailed, Error: err.Error(), Timestamp: time.Now().UTC()}
}

// Run dials the broker and starts cfg.Workers consumers, each on its own
// channel. It blocks until ctx is cancelled or the connection drops.
func (w *Worker) Run(ctx context.Context) error {
	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to connect to message broker", err)
	}
	defer conn.Close()

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, w.cfg.Workers)
	for i := range w.cfg.Workers {
		ch, err := conn.Channel()
		if err != nil {
			cancel()
			wg.Wait()
			return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to open channel", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer ch.Close()
			if err := w.consume(consumeCtx, i+1, ch); err != nil {
				errs <- err
				cancel()
			}
		}()
	}

	w.logger.Info("Queue worker started",
		"queue", w.cfg.JobsQueue,
		"exchange", w.cfg.ResultsExchange,
		"consumers", w.cfg.Workers)

	var runErr error
	select {
	case <-consumeCtx.Done():
	case amqpErr := <-closed:
		if amqpErr != nil {
			runErr = errors.NewNetworkError(errors.ErrCodeQueueFailed, "broker connection closed", amqpErr)
		}
		cancel()
	}
	wg.Wait()

	select {
	case err := <-errs:
		if runErr == nil {
			runErr = err
		}
	default:
	}

	w.logger.Info("Queue worker stopped")
	return runErr
}

func (w *Worker) consume(ctx context.Context, id int, ch *amqp.Channel) error {
	if err := w.declare(ch); err != nil {
		return err
	}

	tag := fmt.Sprintf("resuscan-%d", id)
	deliveries, err := ch.Consume(
		w.cfg.JobsQueue,
		tag,
		false, // manual ack after the result is published
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to consume jobs", err)
	}

	for {
		select {
		case <-ctx.Done():
			_ = ch.Cancel(tag, false)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			w.deliver(ctx, id, ch, d)
		}
	}
}

func (w *Worker) declare(ch *amqp.Channel) error {
	if err := ch.Qos(w.cfg.Prefetch, 0, false); err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to set prefetch", err)
	}
	if _, err := ch.QueueDeclare(
		w.cfg.JobsQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to declare jobs queue", err)
	}
	if err := ch.ExchangeDeclare(
		w.cfg.ResultsExchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to declare results exchange", err)
	}
	return nil
}

// publisher is the part of amqp.Channel results go through.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// deliver handles d and acks it once the result is published. A job cut off
// by shutdown is requeued without a result so another consumer can run it.
func (w *Worker) deliver(ctx context.Context, consumer int, ch publisher, d amqp.Delivery) {
	start := time.Now()
	result := w.Handle(ctx, d.Body)

	if result.Status == StatusFailed && ctx.Err() != nil {
		w.logger.Warn("Analysis job interrupted, requeueing", "consumer", consumer, "job_id", result.ID)
		_ = d.Nack(false, true)
		return
	}

	if result.Status == StatusFailed {
		w.logger.Warn("Analysis job failed", "consumer", consumer, "job_id", result.ID, "error", result.Error)
	} else {
		w.logger.Info("Analysis job completed",
			"consumer", consumer,
			"job_id", result.ID,
			"duration", time.Since(start).String())
	}

	if err := w.publish(ch, result); err != nil {
		w.logger.LogError(err, "Failed to publish analysis result", "job_id", result.ID)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func (w *Worker) publish(ch publisher, result Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeQueueFailed, "failed to encode result", err)
	}
	return ch.Publish(
		w.cfg.ResultsExchange,
		RoutingKey(result.ID),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    result.Timestamp,
			Body:         body,
		},
	)
}

// Submit publishes job to the jobs queue on a short-lived connection.
func Submit(cfg config.QueueConfig, job Job) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(job); err != nil {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "invalid job", err)
	}
	body, err := json.Marshal(job)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeQueueFailed, "failed to encode job", err)
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to connect to message broker", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to open channel", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.JobsQueue, true, false, false, false, nil); err != nil {
		return errors.NewNetworkError(errors.ErrCodeQueueFailed, "failed to declare jobs queue", err)
	}
	return ch.Publish("", cfg.JobsQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
