package openvocab

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

// DefaultTimeout bounds each inference request when the config leaves the
// timeout unset.
const DefaultTimeout = 5 * time.Second

// ErrNoWorker means the tier has no worker command configured.
var ErrNoWorker = errors.New("openvocab: no worker command configured")

// Config locates and parameterizes the worker process.
type Config struct {
	Command    []string           // worker argv; empty disables the tier
	ModelPath  string             // passed to the worker at initialization
	Threshold  float64            // default detection threshold
	Thresholds map[string]float64 // per-label overrides
	Timeout    time.Duration      // per-request timeout
}

// Client talks to the span-model worker. Initialization is lazy and
// memoized: the first Extract spawns and initializes the worker, and
// concurrent callers share that one in-flight startup. A dead worker is
// detected via its exit or a broken pipe, at which point every outstanding
// request fails and the handle is cleared so the next call re-spawns.
type Client struct {
	cfg     Config
	mapping *Mapping

	mu     sync.Mutex
	w      *worker
	initSF singleflight.Group
	nextID atomic.Uint64
}

func NewClient(cfg Config, mapping *Mapping) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg, mapping: mapping}
}

// Extract runs one inference request and maps the worker's detections to
// taxonomy candidates. Detections scoring below their threshold are dropped,
// as are labels with no valid mapping and detections with offsets outside
// the text.
func (c *Client) Extract(ctx context.Context, text string) ([]model.Candidate, error) {
	w, err := c.ensure(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := w.call(ctx, request{
		ID:   c.nextID.Add(1),
		Type: typeInference,
		Payload: inferencePayload{
			Text:      text,
			Labels:    c.mapping.Labels(),
			Threshold: c.cfg.Threshold,
		},
	}, c.cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("openvocab: inference: %w", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("openvocab: worker error: %s", resp.Error)
	}

	var res inferenceResult
	if err := json.Unmarshal(resp.Result, &res); err != nil {
		return nil, fmt.Errorf("openvocab: decode result: %w", err)
	}

	var out []model.Candidate
	for _, det := range res.Detections {
		role, ok := c.mapping.Role(det.Label)
		if !ok {
			continue
		}
		threshold := c.cfg.Threshold
		if t, ok := c.cfg.Thresholds[det.Label]; ok {
			threshold = t
		}
		conf := calibrate(det.Score, threshold)
		if conf == 0 {
			continue
		}
		if det.Start < 0 || det.End > len(text) || det.Start >= det.End {
			slog.Warn("dropping detection with bad offsets",
				"label", det.Label, "start", det.Start, "end", det.End)
			continue
		}
		out = append(out, model.Candidate{
			Span: model.Span{
				Text:       text[det.Start:det.End],
				Role:       role,
				Confidence: conf,
				Start:      det.Start,
				End:        det.End,
			},
			Source: model.SourceOpenVocab,
		})
	}
	return out, nil
}

// Warmup spawns and initializes the worker ahead of the first request.
func (c *Client) Warmup(ctx context.Context) error {
	w, err := c.ensure(ctx)
	if err != nil {
		return err
	}
	resp, err := w.call(ctx, request{ID: c.nextID.Add(1), Type: typeWarmup}, c.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("openvocab: warmup: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("openvocab: warmup: %s", resp.Error)
	}
	return nil
}

// Close kills the worker if one is running.
func (c *Client) Close() error {
	c.mu.Lock()
	w := c.w
	c.w = nil
	c.mu.Unlock()
	if w != nil {
		w.fail(errors.New("openvocab: client closed"))
		w.kill()
	}
	return nil
}

// ensure returns a live worker, spawning and initializing one if needed.
// Concurrent callers share a single in-flight initialization.
func (c *Client) ensure(ctx context.Context) (*worker, error) {
	c.mu.Lock()
	if c.w != nil && c.w.alive() {
		w := c.w
		c.mu.Unlock()
		return w, nil
	}
	c.w = nil
	c.mu.Unlock()

	v, err, _ := c.initSF.Do("spawn", func() (any, error) {
		c.mu.Lock()
		if c.w != nil && c.w.alive() {
			w := c.w
			c.mu.Unlock()
			return w, nil
		}
		c.mu.Unlock()

		w, err := c.spawn()
		if err != nil {
			return nil, err
		}
		resp, err := w.call(ctx, request{
			ID:   c.nextID.Add(1),
			Type: typeInitialize,
			Payload: initPayload{
				ModelPath:     c.cfg.ModelPath,
				Labels:        c.mapping.Labels(),
				Thresholds:    c.cfg.Thresholds,
				TimeoutMillis: c.cfg.Timeout.Milliseconds(),
			},
		}, c.cfg.Timeout)
		if err != nil {
			w.kill()
			return nil, fmt.Errorf("openvocab: initialize: %w", err)
		}
		if !resp.OK {
			w.kill()
			return nil, fmt.Errorf("openvocab: initialize: %s", resp.Error)
		}

		c.mu.Lock()
		c.w = w
		c.mu.Unlock()
		return w, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*worker), nil
}

// spawn starts the worker process and wires its stdio.
func (c *Client) spawn() (*worker, error) {
	if len(c.cfg.Command) == 0 {
		return nil, ErrNoWorker
	}
	cmd := exec.Command(c.cfg.Command[0], c.cfg.Command[1:]...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("openvocab: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("openvocab: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("openvocab: start worker: %w", err)
	}

	w := newWorker(stdin, stdout, func() { _ = cmd.Process.Kill() })
	go func() {
		err := cmd.Wait()
		if err == nil {
			err = errors.New("worker exited")
		}
		w.fail(fmt.Errorf("openvocab: worker died: %w", err))
	}()
	return w, nil
}

// worker owns one child process's stdio and the outstanding-request table.
type worker struct {
	writeMu sync.Mutex
	stdin   io.Writer

	mu      sync.Mutex
	pending map[uint64]chan response
	dead    bool
	err     error

	kill func()
}

// newWorker starts the read loop over stdout. Tests construct workers over
// in-process pipes with a no-op kill.
func newWorker(stdin io.Writer, stdout io.Reader, kill func()) *worker {
	w := &worker{
		stdin:   stdin,
		pending: make(map[uint64]chan response),
		kill:    kill,
	}
	go w.readLoop(stdout)
	return w
}

func (w *worker) alive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.dead
}

// call registers the request id, writes the request, and waits for the
// matching response, the timeout, or cancellation. A timed-out request is
// removed from the table; the worker itself keeps running.
func (w *worker) call(ctx context.Context, req request, timeout time.Duration) (response, error) {
	ch := make(chan response, 1)
	w.mu.Lock()
	if w.dead {
		err := w.err
		w.mu.Unlock()
		return response{}, err
	}
	w.pending[req.ID] = ch
	w.mu.Unlock()

	if err := w.send(req); err != nil {
		w.drop(req.ID)
		return response{}, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case resp, ok := <-ch:
		if !ok {
			w.mu.Lock()
			err := w.err
			w.mu.Unlock()
			return response{}, err
		}
		return resp, nil
	case <-timer.C:
		w.drop(req.ID)
		return response{}, fmt.Errorf("request %d timed out after %s", req.ID, timeout)
	case <-ctx.Done():
		w.drop(req.ID)
		return response{}, ctx.Err()
	}
}

func (w *worker) send(req request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	data = append(data, '\n')
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if _, err := w.stdin.Write(data); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	return nil
}

func (w *worker) drop(id uint64) {
	w.mu.Lock()
	delete(w.pending, id)
	w.mu.Unlock()
}

// readLoop matches responses to outstanding requests. When stdout closes the
// worker is considered dead.
func (w *worker) readLoop(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var resp response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			slog.Warn("discarding unparsable worker message", "error", err)
			continue
		}
		w.mu.Lock()
		ch, ok := w.pending[resp.ID]
		delete(w.pending, resp.ID)
		w.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
	err := scanner.Err()
	if err == nil {
		err = errors.New("worker closed its output")
	}
	w.fail(fmt.Errorf("openvocab: %w", err))
}

// fail marks the worker dead and fails every outstanding request. Idempotent.
func (w *worker) fail(err error) {
	w.mu.Lock()
	if w.dead {
		w.mu.Unlock()
		return
	}
	w.dead = true
	w.err = err
	pending := w.pending
	w.pending = make(map[uint64]chan response)
	w.mu.Unlock()
	for _, ch := range pending {
		close(ch)
	}
}
