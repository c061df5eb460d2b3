package session

import (
	"context"
	"fmt"
	"log"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/response"
)

const (
	visitorMessage    = "You have a visitor at the reception asking for you."
	departmentMessage = "Reception: A visitor is asking about %s department location. Please assist them."
)

// dispatch runs the handler for an allowed intent.
func (o *Orchestrator) dispatch(ctx context.Context, q domain.ClassifiedQuery, id domain.Identity) response.Result {
	in := q.Intent
	switch in.Tag {
	case domain.IntentGeneralKnowledge:
		return o.askKnowledge(ctx, q.SubQuery.Text)
	case domain.IntentEmployeeRecord, domain.IntentSensitiveInfo, domain.IntentEmployeeNameCheck:
		return o.findEmployee(ctx, in.Slot(domain.SlotPersonName))
	case domain.IntentDepartmentLocation:
		return o.locateDepartment(ctx, in.Slot(domain.SlotDepartment), id)
	case domain.IntentMeetingRequest:
		return o.requestMeeting(ctx, in.Slot(domain.SlotPersonName))
	case domain.IntentAttendanceQuery:
		return o.attendance(ctx, in.Slot(domain.SlotPersonName))
	case domain.IntentFacilityQuery:
		if f, ok := o.c.Site.Facility(in.Slot(domain.SlotFacility)); ok {
			return response.Result{Answer: f.Answer}
		}
		return response.Result{}
	case domain.IntentAppointmentQuery:
		return o.appointments(ctx, id)
	}
	return response.Result{}
}

func (o *Orchestrator) askKnowledge(ctx context.Context, question string) response.Result {
	if o.c.Knowledge == nil {
		return response.Result{Unavailable: true}
	}
	kctx, cancel := context.WithTimeout(ctx, o.opts.KnowledgeTimeout)
	defer cancel()
	answer, err := o.c.Knowledge.Ask(kctx, question)
	if err != nil {
		log.Printf("⚠️ [%s] Knowledge unavailable: %v", o.session.ShortID(), err)
		return response.Result{Unavailable: true}
	}
	return response.Result{Answer: answer}
}

func (o *Orchestrator) lookup(ctx context.Context, name string) (*domain.EmployeeRecord, error) {
	if o.c.Directory == nil {
		return nil, domain.ErrDirectoryUnavailable
	}
	dctx, cancel := o.directoryContext(ctx)
	defer cancel()
	rec, err := o.c.Directory.Lookup(dctx, name)
	if err != nil {
		log.Printf("⚠️ [%s] Directory lookup failed: %v", o.session.ShortID(), err)
		return nil, err
	}
	return rec, nil
}

// directoryContext bounds one directory call. A failover directory may try
// two sources each with DirectoryTimeout, so both must fit.
func (o *Orchestrator) directoryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 2*o.opts.DirectoryTimeout)
}

func (o *Orchestrator) findEmployee(ctx context.Context, name string) response.Result {
	if name == "" {
		return response.Result{}
	}
	rec, err := o.lookup(ctx, name)
	if err != nil {
		return response.Result{Unavailable: true}
	}
	return response.Result{Found: rec != nil, Record: rec}
}

func (o *Orchestrator) locateDepartment(ctx context.Context, dept string, id domain.Identity) response.Result {
	d, ok := o.c.Site.Department(dept)
	if !ok {
		return response.Result{}
	}
	res := response.Result{Answer: d.Location}
	if id.IsEmployee() || d.Representative.Name == "" || o.c.Notifier == nil {
		return res
	}
	n := o.notify(ctx, domain.NotificationRequest{
		TargetID:   d.Representative.EmployeeID,
		TargetName: d.Representative.Name,
		Contact:    d.Representative.Phone,
		Message:    fmt.Sprintf(departmentMessage, d.Name),
		Reason:     "department-location",
	})
	res.Target = d.Representative.Name
	res.Notified = &n
	return res
}

func (o *Orchestrator) requestMeeting(ctx context.Context, name string) response.Result {
	if name == "" {
		return response.Result{}
	}
	rec, err := o.lookup(ctx, name)
	if err != nil {
		return response.Result{Unavailable: true}
	}
	if rec == nil {
		return response.Result{}
	}
	res := response.Result{Found: true, Record: rec, Target: rec.Name}
	if o.c.Attendance != nil {
		present, err := o.c.Attendance.ListPresent(ctx, domain.DateKey(o.opts.Now()))
		if err != nil {
			log.Printf("⚠️ [%s] Attendance unavailable, notifying anyway: %v", o.session.ShortID(), err)
		} else if !containsEmployee(present, rec.ID) {
			res.Absent = true
			return res
		}
	}
	n := o.notify(ctx, domain.NotificationRequest{
		TargetID:   rec.ID,
		TargetName: rec.Name,
		Contact:    rec.Phone,
		Message:    visitorMessage,
		Reason:     "meeting-request",
	})
	res.Notified = &n
	return res
}

func (o *Orchestrator) attendance(ctx context.Context, name string) response.Result {
	if o.c.Attendance == nil {
		return response.Result{Unavailable: true}
	}
	var res response.Result
	if name != "" {
		rec, err := o.lookup(ctx, name)
		if err != nil {
			return response.Result{Unavailable: true}
		}
		if rec == nil {
			return response.Result{}
		}
		res.Found, res.Record = true, rec
	}
	records, err := o.c.Attendance.ListPresent(ctx, domain.DateKey(o.opts.Now()))
	if err != nil {
		log.Printf("⚠️ [%s] Attendance unavailable: %v", o.session.ShortID(), err)
		return response.Result{Unavailable: true}
	}
	for _, r := range records {
		if res.Record != nil && r.EmployeeID != res.Record.ID {
			continue
		}
		display := r.EmployeeID
		if res.Record != nil {
			display = res.Record.Name
		} else if o.c.Directory != nil {
			dctx, cancel := o.directoryContext(ctx)
			if e, err := o.c.Directory.GetByID(dctx, r.EmployeeID); err == nil && e != nil {
				display = e.Name
			}
			cancel()
		}
		res.Present = append(res.Present, response.Presence{Name: display, FirstSeen: r.FirstSeen})
	}
	return res
}

func (o *Orchestrator) appointments(ctx context.Context, id domain.Identity) response.Result {
	if o.c.Appointments == nil {
		return response.Result{}
	}
	list, err := o.c.Appointments.Appointments(ctx, id.EmployeeID, domain.DateKey(o.opts.Now()))
	if err != nil {
		log.Printf("⚠️ [%s] Calendar unavailable: %v", o.session.ShortID(), err)
		return response.Result{Unavailable: true}
	}
	return response.Result{Appointments: list}
}

func (o *Orchestrator) notify(ctx context.Context, req domain.NotificationRequest) domain.NotificationResult {
	if o.c.Notifier == nil {
		return domain.NotificationResult{Cause: fmt.Errorf("no notifier configured")}
	}
	return o.c.Notifier.Notify(ctx, req)
}

func containsEmployee(records []domain.AttendanceRecord, id string) bool {
	for _, r := range records {
		if r.EmployeeID == id {
			return true
		}
	}
	return false
}
