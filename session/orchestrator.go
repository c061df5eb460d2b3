package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/room4-2/frontdesk/avatar"
	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/intent"
	"github.com/room4-2/frontdesk/policy"
	"github.com/room4-2/frontdesk/response"
	"github.com/room4-2/frontdesk/site"
)

// Dispatcher sends notifications without failing the caller.
type Dispatcher interface {
	Notify(ctx context.Context, req domain.NotificationRequest) domain.NotificationResult
}

// ReplyViewer is implemented by presenters that can show structured replies.
type ReplyViewer interface {
	ShowReply(r response.Reply)
}

// Collaborators are the outside systems the orchestrator drives.
type Collaborators struct {
	Wake         domain.WakeDetector
	Camera       domain.Camera
	Microphone   domain.Device
	Faces        domain.FaceIdentifier
	Input        domain.VoiceInput
	Output       domain.VoiceOutput
	Knowledge    domain.KnowledgeService
	Directory    domain.EmployeeDirectory
	Attendance   domain.AttendanceStore
	Notifier     Dispatcher
	Presenter    domain.Presenter
	Appointments domain.AppointmentBook
	Site         *site.Catalog
}

// Options tunes timeouts and thresholds.
type Options struct {
	MinConfidence    float64
	ListenTimeout    time.Duration
	RetryTimeout     time.Duration
	FollowUpTimeout  time.Duration
	IdentifyTimeout  time.Duration
	KnowledgeTimeout time.Duration
	DirectoryTimeout time.Duration
	// IdleTimeout ends a session when the caller has not been heard for this
	// long. Zero disables it.
	IdleTimeout time.Duration
	Now         func() time.Time
	// OnPhase, when set, observes every phase change.
	OnPhase func(domain.Phase)
}

func (o *Options) setDefaults() {
	if o.MinConfidence <= 0 {
		o.MinConfidence = 0.6
	}
	if o.ListenTimeout <= 0 {
		o.ListenTimeout = 8 * time.Second
	}
	if o.RetryTimeout <= 0 {
		o.RetryTimeout = 2 * o.ListenTimeout
	}
	if o.FollowUpTimeout <= 0 {
		o.FollowUpTimeout = o.ListenTimeout
	}
	if o.IdentifyTimeout <= 0 {
		o.IdentifyTimeout = 5 * time.Second
	}
	if o.KnowledgeTimeout <= 0 {
		o.KnowledgeTimeout = 15 * time.Second
	}
	if o.DirectoryTimeout <= 0 {
		o.DirectoryTimeout = 5 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Orchestrator runs the receptionist state machine. It is single threaded:
// one session at a time, one sub-query at a time.
type Orchestrator struct {
	c          Collaborators
	opts       Options
	classifier *intent.Classifier
	manager    *Manager

	phase   domain.Phase
	session *Session
	held    []domain.Device
}

// NewOrchestrator wires the collaborators. Presenter, Site, Knowledge and
// Appointments may be nil.
func NewOrchestrator(c Collaborators, opts Options, classifier *intent.Classifier, manager *Manager) *Orchestrator {
	opts.setDefaults()
	if classifier == nil {
		classifier = intent.Default()
	}
	if manager == nil {
		manager = NewManager(nil, 0)
	}
	if c.Site == nil {
		c.Site = site.Default()
	}
	return &Orchestrator{c: c, opts: opts, classifier: classifier, manager: manager}
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() domain.Phase {
	return o.phase
}

// Run waits for the wake phrase and serves sessions until the detector asks
// to stop or ctx ends. Only domain.ErrResourceUnavailable is returned.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		o.enter(domain.PhaseWaitingWake, "")
		woke, err := o.c.Wake.Detect(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			log.Printf("⚠️ Wake detection failed: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		if !woke {
			return nil
		}
		if err := o.RunSession(ctx); err != nil {
			if errors.Is(err, domain.ErrResourceUnavailable) {
				return err
			}
			log.Printf("❌ Session ended with error: %v", err)
		}
	}
}

// RunSession serves one person from identification to exit. Devices are
// released on every return path.
func (o *Orchestrator) RunSession(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session panic: %v", r)
		}
		o.releaseAll()
		if o.session != nil {
			o.manager.End(context.WithoutCancel(ctx), o.session)
			log.Printf("🔌 [%s] Session closed", o.session.ShortID())
			o.session = nil
		}
		o.enter(domain.PhaseWaitingWake, "")
	}()

	id, err := o.identify(ctx)
	if err != nil {
		return err
	}

	s, err := o.manager.Begin(ctx, id, o.opts.Now())
	if err != nil {
		return err
	}
	o.session = s
	s.setPhase(o.phase)
	log.Printf("✅ [%s] Session started for %s (%s)", s.ShortID(), id.DisplayName(), id.Role())

	o.enter(domain.PhaseGreeting, "")
	o.say(ctx, response.Greeting(id, o.opts.Now()), "")

	if err := o.acquire(ctx, o.c.Microphone, "microphone"); err != nil {
		return err
	}

	for {
		text, ok := o.listen(ctx)
		if !ok {
			o.enter(domain.PhaseExiting, "")
			if ctx.Err() == nil {
				o.say(ctx, response.IdleFarewell, "")
			}
			return nil
		}
		if o.handleUtterance(ctx, domain.Utterance{Text: text, CapturedAt: o.opts.Now()}) {
			return nil
		}
	}
}

// identify acquires the camera and binds an identity. Only a camera failure
// is an error.
func (o *Orchestrator) identify(ctx context.Context) (domain.Identity, error) {
	o.enter(domain.PhaseIdentifying, "")
	if err := o.acquire(ctx, o.c.Camera, "camera"); err != nil {
		return domain.Identity{}, err
	}
	if o.c.Camera == nil || o.c.Faces == nil {
		return domain.Visitor(""), nil
	}

	idCtx, cancel := context.WithTimeout(ctx, o.opts.IdentifyTimeout)
	defer cancel()

	frame, err := o.c.Camera.Capture(idCtx)
	if err != nil {
		log.Printf("⚠️ Capture failed, treating as visitor: %v", err)
		return domain.Visitor(""), nil
	}
	found, confidence, err := o.c.Faces.Identify(idCtx, frame)
	if err != nil || found == nil || !found.IsEmployee() || confidence < o.opts.MinConfidence {
		if err != nil {
			log.Printf("⚠️ Identification failed, treating as visitor: %v", err)
		}
		return domain.Visitor(""), nil
	}

	id := *found
	if o.c.Attendance != nil {
		if err := o.c.Attendance.Record(ctx, id.EmployeeID, o.opts.Now()); err != nil {
			log.Printf("⚠️ Attendance for %s not recorded: %v", id.EmployeeID, err)
		}
	}
	return id, nil
}

// listen captures one utterance, retrying once with the extended timeout.
// It returns false when the session should end.
func (o *Orchestrator) listen(ctx context.Context) (string, bool) {
	for {
		o.enter(domain.PhaseListening, "")
		if text, ok := o.capture(ctx, o.opts.ListenTimeout); ok {
			return text, true
		}
		if ctx.Err() != nil {
			return "", false
		}
		o.say(ctx, response.RetryPrompt, "")
		if text, ok := o.capture(ctx, o.opts.RetryTimeout); ok {
			return text, true
		}
		if ctx.Err() != nil {
			return "", false
		}
		o.say(ctx, response.ListenApology, "")
		if o.idle() {
			log.Printf("💤 [%s] Idle timeout", o.session.ShortID())
			return "", false
		}
	}
}

func (o *Orchestrator) capture(ctx context.Context, timeout time.Duration) (string, bool) {
	text, err := o.c.Input.Listen(ctx, timeout)
	if err != nil {
		if !errors.Is(err, domain.ErrInputTimeout) && !errors.Is(err, domain.ErrRecognitionFailure) && ctx.Err() == nil {
			log.Printf("⚠️ [%s] Voice input error: %v", o.session.ShortID(), err)
		}
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	o.manager.Touch(ctx, o.session, o.opts.Now())
	return text, true
}

func (o *Orchestrator) idle() bool {
	if o.opts.IdleTimeout <= 0 {
		return false
	}
	return o.opts.Now().Sub(o.session.LastActivity()) >= o.opts.IdleTimeout
}

// handleUtterance answers every sub-query in order. It returns true when
// the session must end.
func (o *Orchestrator) handleUtterance(ctx context.Context, u domain.Utterance) bool {
	o.enter(domain.PhaseClassifying, "")
	queries := o.classifier.Classify(u)
	o.session.History.Append(Turn{At: u.CapturedAt, Speaker: SpeakerCaller, Text: u.Text})
	log.Printf("🧭 [%s] %d sub-quer%s", o.session.ShortID(), len(queries), plural(len(queries), "y", "ies"))

	if len(queries) > 1 {
		o.enter(domain.PhaseResponding, "")
		o.say(ctx, response.Announce(len(queries)), "")
	}

	for _, q := range queries {
		o.enter(domain.PhaseClassifying, "")
		if lead := response.Lead(q.SubQuery.Ordinal); lead != "" {
			o.say(ctx, lead, "")
		}
		if q.Intent.Tag == domain.IntentExit {
			o.enter(domain.PhaseEnforcingPolicy, q.Intent.Tag)
			o.enter(domain.PhaseResponding, q.Intent.Tag)
			o.say(ctx, response.Farewell(o.session.Identity()), q.Intent.Tag)
			o.enter(domain.PhaseExiting, q.Intent.Tag)
			return true
		}
		if o.answer(ctx, q) {
			return true
		}
	}
	return false
}

// answer runs one EnforcingPolicy → Dispatching → Responding lap.
func (o *Orchestrator) answer(ctx context.Context, q domain.ClassifiedQuery) bool {
	id := o.session.Identity()
	tag := q.Intent.Tag

	o.enter(domain.PhaseEnforcingPolicy, tag)
	decision := policy.Decide(tag, id.Role())
	log.Printf("🔐 [%s] %s for %s → %s", o.session.ShortID(), tag, id.Role(), decision.Outcome)

	o.enter(domain.PhaseDispatching, tag)
	var res response.Result
	if decision.Allowed() {
		res = o.dispatch(ctx, q, id)
	}

	o.enter(domain.PhaseResponding, tag)
	reply := response.Compose(decision, q.Intent, res, id.Role())
	o.reply(ctx, reply, tag)

	if decision.Outcome == domain.DenyWithOffer {
		if name := q.Intent.Slot(domain.SlotPersonName); name != "" {
			return o.offer(ctx, name, tag)
		}
	}
	return false
}

// offer runs the nested yes/no exchange after a refusal.
func (o *Orchestrator) offer(ctx context.Context, name string, tag domain.IntentTag) bool {
	o.enter(domain.PhaseListening, "")
	text, ok := o.capture(ctx, o.opts.FollowUpTimeout)
	if ok {
		o.session.History.Append(Turn{At: o.opts.Now(), Speaker: SpeakerCaller, Text: text})
	}
	if ok && o.classifier.Resolve(text).Tag == domain.IntentExit {
		o.enter(domain.PhaseResponding, domain.IntentExit)
		o.say(ctx, response.Farewell(o.session.Identity()), domain.IntentExit)
		o.enter(domain.PhaseExiting, domain.IntentExit)
		return true
	}
	if !ok || !intent.IsAffirmative(text) {
		o.enter(domain.PhaseResponding, tag)
		o.say(ctx, response.OfferDeclined, tag)
		return false
	}

	o.enter(domain.PhaseDispatching, tag)
	line := o.notifyOnRequest(ctx, name)
	o.enter(domain.PhaseResponding, tag)
	o.say(ctx, line, tag)
	return false
}

func (o *Orchestrator) notifyOnRequest(ctx context.Context, name string) string {
	rec, err := o.lookup(ctx, name)
	if err != nil {
		return response.LookupUnavailable
	}
	if rec == nil {
		return response.NotFound(name)
	}
	res := o.notify(ctx, domain.NotificationRequest{
		TargetID:   rec.ID,
		TargetName: rec.Name,
		Contact:    rec.Phone,
		Message:    visitorMessage,
		Reason:     "visitor-request",
	})
	return response.OfferAccepted(rec.Name, res)
}

// enter moves to phase and emits exactly one avatar update per change.
func (o *Orchestrator) enter(phase domain.Phase, tag domain.IntentTag) {
	if phase == o.phase {
		return
	}
	o.phase = phase
	if o.session != nil {
		o.session.setPhase(phase)
	}
	if o.c.Presenter != nil {
		o.c.Presenter.SetState(avatar.StateFor(phase, tag))
	}
	if o.opts.OnPhase != nil {
		o.opts.OnPhase(phase)
	}
}

func (o *Orchestrator) say(ctx context.Context, text string, tag domain.IntentTag) {
	if text == "" {
		return
	}
	if o.session != nil {
		o.session.History.Append(Turn{At: o.opts.Now(), Speaker: SpeakerReceptionist, Text: text, Intent: tag})
	}
	if c, ok := o.c.Presenter.(domain.Captioner); ok {
		c.Caption(text)
	}
	if err := o.c.Output.Speak(ctx, text); err != nil {
		log.Printf("⚠️ Speak failed: %v", err)
	}
}

func (o *Orchestrator) reply(ctx context.Context, r response.Reply, tag domain.IntentTag) {
	if r.Structured() {
		if v, ok := o.c.Presenter.(ReplyViewer); ok {
			v.ShowReply(r)
		}
	}
	o.say(ctx, r.Text, tag)
}

func (o *Orchestrator) acquire(ctx context.Context, d domain.Device, name string) error {
	if d == nil {
		return nil
	}
	if err := d.Acquire(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrResourceUnavailable, name, err)
	}
	o.held = append(o.held, d)
	return nil
}

func (o *Orchestrator) releaseAll() {
	for i := len(o.held) - 1; i >= 0; i-- {
		if err := o.held[i].Release(); err != nil {
			log.Printf("⚠️ Device release failed: %v", err)
		}
	}
	o.held = nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
