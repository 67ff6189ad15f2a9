package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"batch-gateway-server/models"
)

// BudgetHeader carries a call's resource budget to http endpoints.
const BudgetHeader = "X-Batch-Budget"

// EndpointResolver resolves a target name to its registered endpoint.
// Satisfied by DBService.
type EndpointResolver interface {
	GetEndpointByName(ctx context.Context, name string) (*models.Endpoint, error)
}

// DispatchQueue is the queue transport used for queue-kind endpoints.
// Satisfied by RedisService.
type DispatchQueue interface {
	PushDispatchJob(ctx context.Context, queueKey string, job *models.DispatchJob) error
	GetDispatchResult(ctx context.Context, jobID string) (*models.DispatchResult, error)
}

// Dispatcher is the host invocation primitive behind the batch executor. It
// resolves each call's target to a registered endpoint and routes on the
// endpoint kind: http endpoints get the payload POSTed to them, queue
// endpoints get a job pushed to their redis list and the worker result polled
// back. Any resolution or transport failure becomes a failure outcome whose
// data holds the diagnostic text; the executor never sees a Go error from
// dispatch.
type Dispatcher struct {
	endpoints    EndpointResolver
	queue        DispatchQueue
	httpClient   *http.Client
	queueTimeout time.Duration
	pollInterval time.Duration
}

func NewDispatcher(endpoints EndpointResolver, queue DispatchQueue, httpClient *http.Client) *Dispatcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Dispatcher{
		endpoints:    endpoints,
		queue:        queue,
		httpClient:   httpClient,
		queueTimeout: 60 * time.Second,
		pollInterval: 500 * time.Millisecond,
	}
}

// Invoke dispatches a call that may mutate state at its target.
func (d *Dispatcher) Invoke(ctx context.Context, call models.Call) models.Outcome {
	ep, out := d.resolve(ctx, call.Target)
	if ep == nil {
		return out
	}

	switch ep.Kind {
	case models.EndpointKindHTTP:
		if ep.URL == "" {
			return failureOutcome("endpoint %s has no dispatch url", ep.Name)
		}
		return d.httpDispatch(ctx, ep.URL, call)
	case models.EndpointKindQueue:
		return d.queueDispatch(ctx, ep, call)
	default:
		return failureOutcome("endpoint %s has unknown kind %q", ep.Name, ep.Kind)
	}
}

// Query dispatches a call read-only. Only http endpoints with a registered
// query url can guarantee no state change; everything else fails closed
// without dispatching.
func (d *Dispatcher) Query(ctx context.Context, call models.Call) models.Outcome {
	ep, out := d.resolve(ctx, call.Target)
	if ep == nil {
		return out
	}

	if ep.Kind != models.EndpointKindHTTP || ep.QueryURL == "" {
		return failureOutcome("endpoint %s does not support read-only dispatch", ep.Name)
	}
	return d.httpDispatch(ctx, ep.QueryURL, call)
}

func (d *Dispatcher) resolve(ctx context.Context, target string) (*models.Endpoint, models.Outcome) {
	ep, err := d.endpoints.GetEndpointByName(ctx, target)
	if err != nil {
		return nil, failureOutcome("resolve target %s: %v", target, err)
	}
	if ep == nil {
		return nil, failureOutcome("unknown target: %s", target)
	}
	return ep, models.Outcome{}
}

func (d *Dispatcher) httpDispatch(ctx context.Context, url string, call models.Call) models.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(call.Payload))
	if err != nil {
		return failureOutcome("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if call.Budget > 0 {
		req.Header.Set(BudgetHeader, strconv.FormatUint(call.Budget, 10))
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return failureOutcome("dispatch to %s: %v", call.Target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failureOutcome("read response from %s: %v", call.Target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data := body
		if len(data) == 0 {
			data = []byte(resp.Status)
		}
		return models.Outcome{Success: false, Data: data}
	}

	return models.Outcome{Success: true, Data: body}
}

func (d *Dispatcher) queueDispatch(ctx context.Context, ep *models.Endpoint, call models.Call) models.Outcome {
	if ep.Queue == "" {
		return failureOutcome("endpoint %s has no queue configured", ep.Name)
	}

	job := &models.DispatchJob{
		JobID:   uuid.New().String(),
		Target:  call.Target,
		Payload: call.Payload,
		Budget:  call.Budget,
	}
	if err := d.queue.PushDispatchJob(ctx, ep.Queue, job); err != nil {
		return failureOutcome("enqueue to %s: %v", ep.Queue, err)
	}

	deadline := time.Now().Add(d.queueTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(d.pollInterval)

		result, err := d.queue.GetDispatchResult(ctx, job.JobID)
		if err != nil {
			log.Printf("dispatcher: failed to poll result for job %s: %v", job.JobID, err)
			continue
		}
		if result == nil {
			continue
		}

		if result.Status == models.DispatchStatusSuccess {
			return models.Outcome{Success: true, Data: result.Output}
		}
		data := []byte(result.ErrorMessage)
		if len(data) == 0 {
			data = result.Output
		}
		return models.Outcome{Success: false, Data: data}
	}

	return failureOutcome("dispatch to %s timed out after %v", call.Target, d.queueTimeout)
}

func failureOutcome(format string, args ...interface{}) models.Outcome {
	return models.Outcome{Success: false, Data: []byte(fmt.Sprintf(format, args...))}
}
