package engine

import (
	"strings"
	"testing"
	"time"

	"marsa/internal/ledger"
	"marsa/pkg/config"
	"marsa/pkg/logger"
	"marsa/pkg/model"
)

type mockLedger struct {
	checkAndReserveFunc     func(key model.SlotKey, partySize int) ledger.ReserveResult
	suggestAlternativesFunc func(resource string, partySize int, from time.Time, windowDays int) []model.SlotAvailability
}

func (m *mockLedger) CheckAndReserve(key model.SlotKey, partySize int) ledger.ReserveResult {
	if m.checkAndReserveFunc != nil {
		return m.checkAndReserveFunc(key, partySize)
	}
	return ledger.ReserveResult{OK: true, AvailableBefore: 10, Capacity: 10}
}

func (m *mockLedger) SuggestAlternatives(resource string, partySize int, from time.Time, windowDays int) []model.SlotAvailability {
	if m.suggestAlternativesFunc != nil {
		return m.suggestAlternativesFunc(resource, partySize, from, windowDays)
	}
	return nil
}

var testNow = time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)

func testEngine(l Ledger) *Engine {
	cfg := &config.Config{
		Tours:            config.DefaultTours,
		Timeslots:        config.DefaultTimeslots,
		Location:         time.UTC,
		ReminderLead:     24 * time.Hour,
		SearchWindowDays: 14,
		Log:              logger.New(logger.Config{Level: logger.ERROR, Service: "test"}),
	}
	e := New(cfg, l)
	e.now = func() time.Time { return testNow }
	e.newID = func() string { return "job-fixed" }
	return e
}

func textEvent(text string) model.InboundEvent {
	return model.InboundEvent{SenderID: "+96891234567", MessageID: "m1", Kind: model.EventText, Text: text}
}

func selection(id, title string) model.InboundEvent {
	return model.InboundEvent{
		SenderID: "+96891234567", MessageID: "m1",
		Kind: model.EventListSelection, SelectionID: id, SelectionTitle: title,
	}
}

func session(state model.State, fields map[model.FieldKey]string) model.Session {
	if fields == nil {
		fields = map[model.FieldKey]string{}
	}
	return model.Session{ID: "+96891234567", State: state, Language: "EN", Fields: fields}
}

func apply(sess model.Session, patch model.SessionPatch) model.Session {
	if patch.State != nil {
		sess.State = *patch.State
	}
	if patch.Language != nil {
		sess.Language = *patch.Language
	}
	sess.Fields = mergeFields(sess.Fields, patch.Fields)
	if patch.ClearReservation {
		sess.Reservation = nil
	} else if patch.Reservation != nil {
		sess.Reservation = patch.Reservation
	}
	if patch.ReminderID != nil {
		sess.ReminderID = *patch.ReminderID
	}
	return sess
}

func sends(cmds []model.Command) []model.SendMessage {
	var out []model.SendMessage
	for _, cmd := range cmds {
		if m, ok := cmd.(model.SendMessage); ok {
			out = append(out, m)
		}
	}
	return out
}

func findLead(t *testing.T, cmds []model.Command) model.LeadRecord {
	t.Helper()
	for _, cmd := range cmds {
		if p, ok := cmd.(model.PersistLead); ok {
			return p.Record
		}
	}
	t.Fatal("expected a PersistLead command")
	return model.LeadRecord{}
}

func TestBookingFlowEndToEnd(t *testing.T) {
	var reserved []model.SlotKey
	l := &mockLedger{
		checkAndReserveFunc: func(key model.SlotKey, partySize int) ledger.ReserveResult {
			reserved = append(reserved, key)
			return ledger.ReserveResult{OK: true, AvailableBefore: 6, Capacity: 6}
		},
	}
	e := testEngine(l)
	sess := session(model.StateInitial, nil)

	steps := []struct {
		event     model.InboundEvent
		wantState model.State
	}{
		{selection(SelLanguageEN, "English"), model.StateMenu},
		{selection(SelBookTour, "Book a Tour"), model.StateAwaitName},
		{textEvent("ahmed al harthy"), model.StateAwaitContact},
		{textEvent("91234567"), model.StateAwaitResource},
		{selection("tour_1", "Snorkeling"), model.StateAwaitPartySize},
		{textEvent("4"), model.StateAwaitDate},
		{textEvent("tomorrow"), model.StateAwaitTime},
		{selection("time_0", "8:00 AM"), model.StateAwaitConfirm},
		{selection(SelConfirmYes, "Confirm"), model.StateCompleted},
	}

	var lastCmds []model.Command
	for i, step := range steps {
		patch, cmds := e.Handle(sess, step.event)
		sess = apply(sess, patch)
		if sess.State != step.wantState {
			t.Fatalf("step %d: expected state %s, got %s", i, step.wantState, sess.State)
		}
		if len(cmds) == 0 {
			t.Fatalf("step %d: expected at least one command", i)
		}
		lastCmds = cmds
	}

	wantKey := model.SlotKey{Resource: "Snorkeling", Date: "2026-09-02", Timeslot: "8:00 AM"}
	if len(reserved) != 1 || reserved[0] != wantKey {
		t.Errorf("expected one reservation of %s, got %v", wantKey, reserved)
	}
	if sess.Reservation == nil || !sess.Reservation.Confirmed || sess.Reservation.PartySize != 4 {
		t.Errorf("expected confirmed reservation for 4, got %+v", sess.Reservation)
	}
	if sess.Field(model.FieldName) != "Ahmed Al Harthy" {
		t.Errorf("expected normalized name, got %q", sess.Field(model.FieldName))
	}
	if sess.Field(model.FieldContact) != "+96891234567" {
		t.Errorf("expected E.164 contact, got %q", sess.Field(model.FieldContact))
	}

	lead := findLead(t, lastCmds)
	if lead.Intent != model.IntentBooking || lead.Status != model.LeadStatusConfirmed {
		t.Errorf("unexpected lead intent/status: %+v", lead)
	}
	if lead.ResourceType != "Snorkeling" || lead.Date != "2026-09-02" || lead.PartySize != "4" {
		t.Errorf("unexpected lead row: %+v", lead)
	}
	// 4 guests at 35 OMR with the group rate.
	if !strings.Contains(lead.Notes, "126") {
		t.Errorf("expected discounted total 126 in notes, got %q", lead.Notes)
	}

	var scheduled *model.ScheduleReminder
	for _, cmd := range lastCmds {
		if s, ok := cmd.(model.ScheduleReminder); ok {
			scheduled = &s
		}
	}
	if scheduled == nil {
		t.Fatal("expected a ScheduleReminder command")
	}
	wantFire := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if !scheduled.Job.FireAt.Equal(wantFire) {
		t.Errorf("expected reminder at %s, got %s", wantFire, scheduled.Job.FireAt)
	}
	if sess.ReminderID != "job-fixed" {
		t.Errorf("expected reminder id recorded, got %q", sess.ReminderID)
	}
}

func TestConfirmRejectedWhenSlotFull(t *testing.T) {
	l := &mockLedger{
		checkAndReserveFunc: func(key model.SlotKey, partySize int) ledger.ReserveResult {
			return ledger.ReserveResult{OK: false, AvailableBefore: 1, Capacity: 4}
		},
		suggestAlternativesFunc: func(resource string, partySize int, from time.Time, windowDays int) []model.SlotAvailability {
			return []model.SlotAvailability{
				{Key: model.SlotKey{Resource: resource, Date: "2026-09-10", Timeslot: "2:00 PM"}, Remaining: 4, Capacity: 4},
			}
		},
	}
	e := testEngine(l)
	sess := session(model.StateAwaitConfirm, map[model.FieldKey]string{
		model.FieldName: "Ahmed", model.FieldContact: "+96891234567",
		model.FieldResource: "Fishing Trip", model.FieldPartySize: "3",
		model.FieldDate: "2026-09-10", model.FieldTime: "8:00 AM",
	})

	patch, cmds := e.Handle(sess, selection(SelConfirmYes, "Confirm"))
	sess = apply(sess, patch)

	if sess.State != model.StateAwaitDate {
		t.Errorf("expected fallback to date selection, got %s", sess.State)
	}
	if sess.Reservation != nil {
		t.Error("expected no reservation on a full slot")
	}

	msgs := sends(cmds)
	if len(msgs) != 2 {
		t.Fatalf("expected rejection plus alternatives, got %d messages", len(msgs))
	}
	if !strings.Contains(msgs[1].Body, "2026-09-10 2:00 PM") {
		t.Errorf("expected alternative slot in message, got %q", msgs[1].Body)
	}
}

func TestConfirmRejectedNoAlternatives(t *testing.T) {
	l := &mockLedger{
		checkAndReserveFunc: func(model.SlotKey, int) ledger.ReserveResult {
			return ledger.ReserveResult{OK: false, AvailableBefore: 0, Capacity: 4}
		},
	}
	e := testEngine(l)
	sess := session(model.StateAwaitConfirm, map[model.FieldKey]string{
		model.FieldResource: "Fishing Trip", model.FieldPartySize: "4",
		model.FieldDate: "2026-09-10", model.FieldTime: "8:00 AM",
	})

	_, cmds := e.Handle(sess, textEvent("yes"))
	msgs := sends(cmds)
	if len(msgs) != 2 {
		t.Fatalf("expected two messages, got %d", len(msgs))
	}
	if !strings.Contains(msgs[1].Body, "14") {
		t.Errorf("expected search window in no-alternatives message, got %q", msgs[1].Body)
	}
}

func TestConfirmDeclineCancels(t *testing.T) {
	e := testEngine(&mockLedger{})
	sess := session(model.StateAwaitConfirm, map[model.FieldKey]string{
		model.FieldResource: "Snorkeling", model.FieldPartySize: "2",
		model.FieldDate: "2026-09-10", model.FieldTime: "8:00 AM",
	})

	patch, cmds := e.Handle(sess, selection(SelConfirmNo, "Cancel"))
	sess = apply(sess, patch)

	if sess.State != model.StateCancelled {
		t.Errorf("expected CANCELLED, got %s", sess.State)
	}
	for _, cmd := range cmds {
		if _, ok := cmd.(model.ReleaseCapacity); ok {
			t.Error("decline before reserve must not release capacity")
		}
	}
}

func TestInvalidInputsDoNotAdvance(t *testing.T) {
	e := testEngine(&mockLedger{})

	tests := []struct {
		name  string
		state model.State
		text  string
	}{
		{name: "bad contact", state: model.StateAwaitContact, text: "call me maybe"},
		{name: "zero party", state: model.StateAwaitPartySize, text: "0"},
		{name: "party not a number", state: model.StateAwaitPartySize, text: "a few"},
		{name: "party over capacity", state: model.StateAwaitPartySize, text: "99"},
		{name: "bad date", state: model.StateAwaitDate, text: "someday"},
		{name: "bad time", state: model.StateAwaitTime, text: "midnight"},
		{name: "bad confirm", state: model.StateAwaitConfirm, text: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session(tt.state, map[model.FieldKey]string{
				model.FieldResource: "Snorkeling", model.FieldPartySize: "2",
				model.FieldDate: "2026-09-10", model.FieldTime: "8:00 AM",
			})
			patch, cmds := e.Handle(sess, textEvent(tt.text))
			if patch.State != nil {
				t.Errorf("expected no state change, got %s", *patch.State)
			}
			if len(patch.Fields) != 0 {
				t.Errorf("expected no field mutation, got %v", patch.Fields)
			}
			if len(sends(cmds)) == 0 {
				t.Error("expected a re-prompt message")
			}
		})
	}
}

func TestArabicDigitsAcceptedForPartySize(t *testing.T) {
	e := testEngine(&mockLedger{})
	sess := session(model.StateAwaitPartySize, map[model.FieldKey]string{model.FieldResource: "Dhow Cruise"})

	patch, _ := e.Handle(sess, textEvent("٤"))
	if patch.State == nil || *patch.State != model.StateAwaitDate {
		t.Fatal("expected Arabic-digit party size to advance")
	}
	if patch.Fields[model.FieldPartySize] != "4" {
		t.Errorf("expected normalized party size 4, got %q", patch.Fields[model.FieldPartySize])
	}
}

func TestInquiryFlow(t *testing.T) {
	e := testEngine(&mockLedger{})
	sess := session(model.StateMenu, nil)

	patch, _ := e.Handle(sess, selection(SelInquiry, "Ask a Question"))
	sess = apply(sess, patch)
	if sess.State != model.StateInquiryAwaitName {
		t.Fatalf("expected inquiry flow start, got %s", sess.State)
	}

	patch, _ = e.Handle(sess, textEvent("Fatma"))
	sess = apply(sess, patch)
	patch, _ = e.Handle(sess, textEvent("92345678"))
	sess = apply(sess, patch)
	if sess.State != model.StateInquiryAwaitTopic {
		t.Fatalf("expected topic prompt, got %s", sess.State)
	}

	patch, cmds := e.Handle(sess, textEvent("Do you have life jackets for kids?"))
	sess = apply(sess, patch)
	if sess.State != model.StateInquiryComplete {
		t.Errorf("expected inquiry completion, got %s", sess.State)
	}

	lead := findLead(t, cmds)
	if lead.Intent != model.IntentInquiry {
		t.Errorf("expected inquiry intent, got %q", lead.Intent)
	}
	if lead.ResourceType != model.NotSpecified || lead.PartySize != model.NotSpecified {
		t.Errorf("expected placeholder columns, got %+v", lead)
	}
	if lead.Notes != "Do you have life jackets for kids?" {
		t.Errorf("expected topic in notes, got %q", lead.Notes)
	}
}

func TestCancelFlowReleasesConfirmedBooking(t *testing.T) {
	e := testEngine(&mockLedger{})
	slot := model.SlotKey{Resource: "Snorkeling", Date: "2026-09-10", Timeslot: "8:00 AM"}
	sess := session(model.StateCompleted, map[model.FieldKey]string{
		model.FieldName: "Ahmed", model.FieldContact: "+96891234567", model.FieldPartySize: "3",
	})
	sess.Reservation = &model.Reservation{Slot: slot, PartySize: 3, Confirmed: true}
	sess.ReminderID = "job-9"

	patch, cmds := e.CancelFlow(sess)

	if patch.State == nil || *patch.State != model.StateCancelled {
		t.Error("expected CANCELLED state")
	}
	if !patch.ClearReservation {
		t.Error("expected reservation cleared")
	}

	var released *model.ReleaseCapacity
	var cancelled *model.CancelReminder
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case model.ReleaseCapacity:
			released = &c
		case model.CancelReminder:
			cancelled = &c
		}
	}
	if released == nil || released.Slot != slot || released.PartySize != 3 {
		t.Errorf("expected release of %s for 3, got %+v", slot, released)
	}
	if cancelled == nil || cancelled.JobID != "job-9" {
		t.Errorf("expected reminder job-9 cancelled, got %+v", cancelled)
	}

	lead := findLead(t, cmds)
	if lead.Status != model.LeadStatusCancelled {
		t.Errorf("expected cancelled lead, got %q", lead.Status)
	}
}

func TestReminderNotScheduledInsideLeadWindow(t *testing.T) {
	e := testEngine(&mockLedger{})
	sess := session(model.StateAwaitConfirm, map[model.FieldKey]string{
		model.FieldName: "Ahmed", model.FieldContact: "+96891234567",
		model.FieldResource: "Snorkeling", model.FieldPartySize: "2",
		// Departure is in 4 hours; lead is 24h.
		model.FieldDate: "2026-09-01", model.FieldTime: "10:00 AM",
	})

	patch, cmds := e.Handle(sess, textEvent("yes"))
	if patch.ReminderID != nil {
		t.Error("expected no reminder id inside the lead window")
	}
	for _, cmd := range cmds {
		if _, ok := cmd.(model.ScheduleReminder); ok {
			t.Error("expected no ScheduleReminder inside the lead window")
		}
	}
}

func TestTourResolvedFromArabicText(t *testing.T) {
	e := testEngine(&mockLedger{})
	sess := session(model.StateAwaitResource, map[model.FieldKey]string{model.FieldName: "Ahmed"})

	patch, _ := e.Handle(sess, textEvent("رحلة سفينة الداو"))
	if patch.Fields[model.FieldResource] != "Dhow Cruise" {
		t.Errorf("expected Arabic label mapped to Dhow Cruise, got %q", patch.Fields[model.FieldResource])
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"hi", IntentGreeting},
		{"Hello", IntentGreeting},
		{"مرحبا", IntentGreeting},
		{"cancel", IntentCancel},
		{"إلغاء", IntentCancel},
		{"where are you located", IntentFAQLocation},
		{"موقع", IntentFAQLocation},
		{"how much", IntentFAQPricing},
		{"كم السعر", IntentFAQPricing},
		{"Ahmed Al Harthy", IntentNone},
		{"2026-09-10", IntentNone},
		{"", IntentNone},
		// Long sentences are booking answers, not FAQ triggers.
		{"I will arrive at the price street near the old town by taxi", IntentNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.input); got != tt.want {
			t.Errorf("Classify(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func TestLanguageSelectionArabic(t *testing.T) {
	e := testEngine(&mockLedger{})
	sess := session(model.StateInitial, nil)

	patch, cmds := e.Handle(sess, selection(SelLanguageAR, "العربية"))
	sess = apply(sess, patch)

	if sess.State != model.StateMenu || sess.Language != "AR" {
		t.Errorf("expected Arabic menu state, got state=%s lang=%s", sess.State, sess.Language)
	}
	msgs := sends(cmds)
	if len(msgs) != 1 || msgs[0].Interactive == nil {
		t.Fatal("expected one interactive menu message")
	}
}

func TestPriceFor(t *testing.T) {
	tour := config.TourConfig{Name: "Snorkeling", PriceOMR: 35, Capacity: 6}

	if got := priceFor(tour, 2); got != 70 {
		t.Errorf("expected 70, got %g", got)
	}
	// Group rate at 4 and above.
	if got := priceFor(tour, 4); got != 126 {
		t.Errorf("expected 126, got %g", got)
	}
	if got := formatPrice(94.5); got != "94.5" {
		t.Errorf("expected 94.5, got %s", got)
	}
	if got := formatPrice(90); got != "90" {
		t.Errorf("expected 90, got %s", got)
	}
}
