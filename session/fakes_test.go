package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/response"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type heard struct {
	text string
	err  error
}

func say(text string) heard { return heard{text: text} }

var silence = heard{err: domain.ErrInputTimeout}

type fakeInput struct {
	script   []heard
	timeouts []time.Duration
	clock    *clock
	// cancel ends the test context once the script runs out.
	cancel context.CancelFunc
}

func (f *fakeInput) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	f.timeouts = append(f.timeouts, timeout)
	if len(f.script) == 0 {
		if f.cancel != nil {
			f.cancel()
		}
		return "", ctx.Err()
	}
	h := f.script[0]
	f.script = f.script[1:]
	if h.err != nil && f.clock != nil {
		f.clock.Advance(timeout)
	}
	return h.text, h.err
}

type fakeOutput struct {
	lines []string
}

func (f *fakeOutput) Speak(_ context.Context, text string) error {
	f.lines = append(f.lines, text)
	return nil
}

func (f *fakeOutput) index(prefix string) int {
	for i, l := range f.lines {
		if strings.HasPrefix(l, prefix) {
			return i
		}
	}
	return -1
}

type fakeDevice struct {
	acquired, released int
	failAcquire        error
}

func (d *fakeDevice) Acquire(context.Context) error {
	if d.failAcquire != nil {
		return d.failAcquire
	}
	d.acquired++
	return nil
}

func (d *fakeDevice) Release() error {
	d.released++
	return nil
}

type fakeCamera struct {
	fakeDevice
}

func (c *fakeCamera) Capture(context.Context) (domain.Frame, error) {
	return domain.Frame{Data: []byte{1}}, nil
}

type fakeFaces struct {
	id         *domain.Identity
	confidence float64
}

func (f *fakeFaces) Identify(context.Context, domain.Frame) (*domain.Identity, float64, error) {
	return f.id, f.confidence, nil
}

type fakeDirectory struct {
	records []domain.EmployeeRecord
	err     error
}

func (d *fakeDirectory) Lookup(_ context.Context, name string) (*domain.EmployeeRecord, error) {
	if d.err != nil {
		return nil, d.err
	}
	for i := range d.records {
		if strings.EqualFold(d.records[i].Name, name) {
			return &d.records[i], nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) GetByID(_ context.Context, id string) (*domain.EmployeeRecord, error) {
	if d.err != nil {
		return nil, d.err
	}
	for i := range d.records {
		if d.records[i].ID == id {
			return &d.records[i], nil
		}
	}
	return nil, nil
}

type fakeDispatcher struct {
	calls []domain.NotificationRequest
	fail  bool
}

func (d *fakeDispatcher) Notify(_ context.Context, req domain.NotificationRequest) domain.NotificationResult {
	d.calls = append(d.calls, req)
	if d.fail {
		return domain.NotificationResult{Cause: errors.New("carrier down")}
	}
	return domain.NotificationResult{OK: true}
}

type fakeKnowledge struct {
	asked  []string
	answer string
	err    error
	panics bool
}

func (k *fakeKnowledge) Ask(_ context.Context, prompt string) (string, error) {
	if k.panics {
		panic("model client exploded")
	}
	k.asked = append(k.asked, prompt)
	return k.answer, k.err
}

type fakePresenter struct {
	states   []domain.AvatarState
	captions []string
	replies  []response.Reply
}

func (p *fakePresenter) SetState(s domain.AvatarState) { p.states = append(p.states, s) }
func (p *fakePresenter) Caption(text string)           { p.captions = append(p.captions, text) }
func (p *fakePresenter) ShowReply(r response.Reply)    { p.replies = append(p.replies, r) }

type fakeWake struct {
	wakes int
}

func (w *fakeWake) Detect(context.Context) (bool, error) {
	if w.wakes == 0 {
		return false, nil
	}
	w.wakes--
	return true, nil
}
