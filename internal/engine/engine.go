// Package engine is the conversation state machine. Handle is a pure
// transition: it receives a session snapshot and one inbound event and
// returns a patch plus side-effect commands. It never mutates shared
// state itself except through the availability ledger at confirm time,
// where the check-and-reserve outcome decides the transition.
package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"marsa/internal/ledger"
	"marsa/pkg/config"
	"marsa/pkg/locale"
	"marsa/pkg/logger"
	"marsa/pkg/model"
	"marsa/pkg/sanitizer"
)

// Ledger is the capacity collaborator consulted at confirm time.
type Ledger interface {
	CheckAndReserve(key model.SlotKey, partySize int) ledger.ReserveResult
	SuggestAlternatives(resource string, partySize int, from time.Time, windowDays int) []model.SlotAvailability
}

type Engine struct {
	cfg    *config.Config
	ledger Ledger
	log    *logger.Logger

	// Injectable for tests.
	now   func() time.Time
	newID func() string
}

func New(cfg *config.Config, capacity Ledger) *Engine {
	return &Engine{
		cfg:    cfg,
		ledger: capacity,
		log:    cfg.Log,
		now:    func() time.Time { return time.Now().In(cfg.Location) },
		newID:  uuid.NewString,
	}
}

// Handle advances one session by one event. The returned patch is applied
// by the caller under the sender's lock; commands run afterwards.
func (e *Engine) Handle(sess model.Session, ev model.InboundEvent) (model.SessionPatch, []model.Command) {
	lang := locale.Normalize(sess.Language)

	switch sess.State {
	case model.StateInitial:
		return e.handleLanguage(sess, ev)
	case model.StateMenu:
		return e.handleMenu(sess, ev, lang)
	case model.StateAwaitName:
		return e.handleName(sess, ev, lang)
	case model.StateAwaitContact:
		return e.handleContact(sess, ev, lang)
	case model.StateAwaitResource:
		return e.handleResource(sess, ev, lang)
	case model.StateAwaitPartySize:
		return e.handlePartySize(sess, ev, lang)
	case model.StateAwaitDate:
		return e.handleDate(sess, ev, lang)
	case model.StateAwaitTime:
		return e.handleTime(sess, ev, lang)
	case model.StateAwaitConfirm:
		return e.handleConfirm(sess, ev, lang)
	case model.StateCompleted:
		// Booking settled; anything but a cancel or greeting just gets
		// the menu again.
		return model.SessionPatch{}, e.Menu(ev.SenderID, lang)
	case model.StateInquiryAwaitName:
		return e.handleInquiryName(sess, ev, lang)
	case model.StateInquiryAwaitContact:
		return e.handleInquiryContact(sess, ev, lang)
	case model.StateInquiryAwaitTopic:
		return e.handleInquiryTopic(sess, ev, lang)
	default:
		// Terminal states: restart at the menu, keeping the language.
		return model.SessionPatch{
			State:    model.StatePtr(model.StateMenu),
			FlowKind: model.FlowPtr(model.FlowBooking),
		}, e.Menu(ev.SenderID, lang)
	}
}

func (e *Engine) handleLanguage(sess model.Session, ev model.InboundEvent) (model.SessionPatch, []model.Command) {
	var lang locale.Language
	switch {
	case ev.SelectionID == SelLanguageEN:
		lang = locale.English
	case ev.SelectionID == SelLanguageAR:
		lang = locale.Arabic
	default:
		s := strings.ToLower(sanitizer.TrimAndNormalize(ev.Text))
		switch s {
		case "english", "en", "1":
			lang = locale.English
		case "العربية", "عربي", "arabic", "ar", "2":
			lang = locale.Arabic
		default:
			return model.SessionPatch{}, e.Welcome(ev.SenderID)
		}
	}
	patch := model.SessionPatch{
		State:    model.StatePtr(model.StateMenu),
		Language: model.StringPtr(lang.Upper()),
	}
	return patch, e.Menu(ev.SenderID, lang)
}

func (e *Engine) handleMenu(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	choice := ev.SelectionID
	if choice == "" {
		s := strings.ToLower(sanitizer.TrimAndNormalize(ev.Text))
		switch {
		case strings.Contains(s, "book") || strings.Contains(s, "حجز"):
			choice = SelBookTour
		case strings.Contains(s, "question") || strings.Contains(s, "inquir") || strings.Contains(s, "استفسار"):
			choice = SelInquiry
		}
	}

	switch choice {
	case SelBookTour:
		patch := model.SessionPatch{
			State:    model.StatePtr(model.StateAwaitName),
			FlowKind: model.FlowPtr(model.FlowBooking),
		}
		return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyBookingStart, nil)}
	case SelInquiry:
		patch := model.SessionPatch{
			State:    model.StatePtr(model.StateInquiryAwaitName),
			FlowKind: model.FlowPtr(model.FlowInquiry),
		}
		return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyInquiryStart, nil)}
	}

	cmds := []model.Command{e.text(ev.SenderID, lang, locale.KeyUnknownOption, nil)}
	return model.SessionPatch{}, append(cmds, e.Menu(ev.SenderID, lang)...)
}

func (e *Engine) handleName(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	name := sanitizer.NormalizeName(sanitizer.TrimAndNormalize(ev.Text))
	if name == "" {
		return model.SessionPatch{}, []model.Command{e.text(ev.SenderID, lang, locale.KeyBookingStart, nil)}
	}
	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateAwaitContact),
		Fields: map[model.FieldKey]string{model.FieldName: name},
	}
	return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyAskContact, map[string]string{"name": name})}
}

func (e *Engine) handleContact(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	phone := sanitizer.NormalizePhone(ev.Text)
	if phone == "" {
		return model.SessionPatch{}, []model.Command{e.text(ev.SenderID, lang, locale.KeyInvalidContact, nil)}
	}
	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateAwaitResource),
		Fields: map[model.FieldKey]string{model.FieldContact: phone},
	}
	cmd := model.SendMessage{
		To:          ev.SenderID,
		Interactive: tourList(lang, e.cfg.Tours, sess.Field(model.FieldName)),
	}
	return patch, []model.Command{cmd}
}

func (e *Engine) handleResource(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	tour, ok := e.resolveTour(ev)
	if !ok {
		cmds := []model.Command{
			e.text(ev.SenderID, lang, locale.KeyUnknownOption, nil),
			model.SendMessage{To: ev.SenderID, Interactive: tourList(lang, e.cfg.Tours, sess.Field(model.FieldName))},
		}
		return model.SessionPatch{}, cmds
	}
	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateAwaitPartySize),
		Fields: map[model.FieldKey]string{model.FieldResource: tour.Name},
	}
	return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyAskPartySize, map[string]string{"resource": tour.Name})}
}

func (e *Engine) handlePartySize(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	s := sanitizer.NormalizeDigits(sanitizer.TrimAndNormalize(ev.Text))
	n, err := strconv.Atoi(s)
	tour, known := e.cfg.Tour(sess.Field(model.FieldResource))
	if err != nil || n < 1 || (known && n > tour.Capacity) {
		return model.SessionPatch{}, []model.Command{e.text(ev.SenderID, lang, locale.KeyInvalidPartySize, nil)}
	}
	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateAwaitDate),
		Fields: map[model.FieldKey]string{model.FieldPartySize: strconv.Itoa(n)},
	}
	return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyAskDate, map[string]string{"partySize": strconv.Itoa(n)})}
}

func (e *Engine) handleDate(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	date, err := ParseDate(ev.Text, e.now())
	if err != nil {
		return model.SessionPatch{}, []model.Command{e.text(ev.SenderID, lang, locale.KeyInvalidDate, nil)}
	}
	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateAwaitTime),
		Fields: map[model.FieldKey]string{model.FieldDate: date},
	}
	cmd := model.SendMessage{
		To:          ev.SenderID,
		Interactive: timeList(lang, e.cfg.Timeslots, date, sess.Field(model.FieldResource)),
	}
	return patch, []model.Command{cmd}
}

func (e *Engine) handleTime(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	timeslot, ok := e.resolveTimeslot(ev)
	if !ok {
		cmds := []model.Command{
			e.text(ev.SenderID, lang, locale.KeyInvalidTime, nil),
			model.SendMessage{
				To:          ev.SenderID,
				Interactive: timeList(lang, e.cfg.Timeslots, sess.Field(model.FieldDate), sess.Field(model.FieldResource)),
			},
		}
		return model.SessionPatch{}, cmds
	}

	fields := map[model.FieldKey]string{model.FieldTime: timeslot}
	next := sess
	next.Fields = mergeFields(sess.Fields, fields)

	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateAwaitConfirm),
		Fields: fields,
	}
	return patch, []model.Command{e.confirmPrompt(ev.SenderID, lang, &next)}
}

func (e *Engine) handleConfirm(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	switch confirmChoice(ev) {
	case SelConfirmYes:
		return e.completeBooking(sess, ev, lang)
	case SelConfirmNo:
		patch := model.SessionPatch{State: model.StatePtr(model.StateCancelled)}
		return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyBookingCancelled, nil)}
	}
	cmds := []model.Command{
		e.text(ev.SenderID, lang, locale.KeyInvalidConfirm, nil),
		e.confirmPrompt(ev.SenderID, lang, &sess),
	}
	return model.SessionPatch{}, cmds
}

// completeBooking runs the atomic capacity check. A full slot bounces the
// guest back to date selection with up to three open departures; success
// finalizes the session, persists the lead and schedules the reminder.
func (e *Engine) completeBooking(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	partySize, _ := strconv.Atoi(sess.Field(model.FieldPartySize))
	key := model.SlotKey{
		Resource: sess.Field(model.FieldResource),
		Date:     sess.Field(model.FieldDate),
		Timeslot: sess.Field(model.FieldTime),
	}

	res := e.ledger.CheckAndReserve(key, partySize)
	if !res.OK {
		return e.rejectFull(sess, ev, lang, key, partySize, res)
	}

	tour, _ := e.cfg.Tour(key.Resource)
	price := formatPrice(priceFor(tour, partySize))
	now := e.now()

	patch := model.SessionPatch{
		State: model.StatePtr(model.StateCompleted),
		Reservation: &model.Reservation{
			Slot:      key,
			PartySize: partySize,
			Confirmed: true,
		},
	}

	cmds := []model.Command{
		e.text(ev.SenderID, lang, locale.KeyBookingComplete, map[string]string{
			"name":      sess.Field(model.FieldName),
			"resource":  key.Resource,
			"date":      key.Date,
			"time":      key.Timeslot,
			"partySize": sess.Field(model.FieldPartySize),
			"price":     price,
		}),
		model.PersistLead{Record: e.bookingLead(&sess, key, price, now)},
	}

	if job, ok := e.reminderJob(&sess, key, partySize, now); ok {
		patch.ReminderID = model.StringPtr(job.ID)
		cmds = append(cmds, model.ScheduleReminder{Job: job})
	}
	return patch, cmds
}

func (e *Engine) rejectFull(sess model.Session, ev model.InboundEvent, lang locale.Language, key model.SlotKey, partySize int, res ledger.ReserveResult) (model.SessionPatch, []model.Command) {
	cmds := []model.Command{
		e.text(ev.SenderID, lang, locale.KeyCapacityFull, map[string]string{
			"resource":  key.Resource,
			"date":      key.Date,
			"time":      key.Timeslot,
			"remaining": strconv.Itoa(res.AvailableBefore),
		}),
	}

	from, err := time.ParseInLocation(model.DateLayout, key.Date, e.cfg.Location)
	if err != nil {
		from = e.now()
	}
	alts := e.ledger.SuggestAlternatives(key.Resource, partySize, from, e.cfg.SearchWindowDays)
	if len(alts) == 0 {
		cmds = append(cmds, e.text(ev.SenderID, lang, locale.KeyNoAlternatives, map[string]string{
			"days": strconv.Itoa(e.cfg.SearchWindowDays),
		}))
	} else {
		var b strings.Builder
		for _, alt := range alts {
			b.WriteString("• " + alt.Key.Date + " " + alt.Key.Timeslot +
				" (" + strconv.Itoa(alt.Remaining) + " seats)\n")
		}
		cmds = append(cmds, e.text(ev.SenderID, lang, locale.KeyAlternatives, map[string]string{
			"options": b.String(),
		}))
	}

	patch := model.SessionPatch{State: model.StatePtr(model.StateAwaitDate)}
	return patch, cmds
}

func (e *Engine) handleInquiryName(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	name := sanitizer.NormalizeName(sanitizer.TrimAndNormalize(ev.Text))
	if name == "" {
		return model.SessionPatch{}, []model.Command{e.text(ev.SenderID, lang, locale.KeyInquiryStart, nil)}
	}
	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateInquiryAwaitContact),
		Fields: map[model.FieldKey]string{model.FieldName: name},
	}
	return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyInquiryContact, map[string]string{"name": name})}
}

func (e *Engine) handleInquiryContact(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	phone := sanitizer.NormalizePhone(ev.Text)
	if phone == "" {
		return model.SessionPatch{}, []model.Command{e.text(ev.SenderID, lang, locale.KeyInvalidContact, nil)}
	}
	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateInquiryAwaitTopic),
		Fields: map[model.FieldKey]string{model.FieldContact: phone},
	}
	return patch, []model.Command{e.text(ev.SenderID, lang, locale.KeyInquiryTopic, nil)}
}

func (e *Engine) handleInquiryTopic(sess model.Session, ev model.InboundEvent, lang locale.Language) (model.SessionPatch, []model.Command) {
	topic := sanitizer.TrimAndNormalize(ev.Text)
	if topic == "" {
		return model.SessionPatch{}, []model.Command{e.text(ev.SenderID, lang, locale.KeyInquiryTopic, nil)}
	}

	patch := model.SessionPatch{
		State:  model.StatePtr(model.StateInquiryComplete),
		Fields: map[model.FieldKey]string{model.FieldTopic: topic},
	}
	record := model.LeadRecord{
		Timestamp:    e.now().Format(time.RFC3339),
		Name:         sess.Field(model.FieldName),
		Contact:      sess.Field(model.FieldContact),
		Intent:       model.IntentInquiry,
		ResourceType: model.NotSpecified,
		Date:         model.NotSpecified,
		Time:         model.NotSpecified,
		PartySize:    model.NotSpecified,
		Language:     locale.Normalize(sess.Language).Upper(),
		Notes:        topic,
		Status:       model.LeadStatusConfirmed,
	}
	cmds := []model.Command{
		e.text(ev.SenderID, lang, locale.KeyInquiryComplete, map[string]string{"name": sess.Field(model.FieldName)}),
		model.PersistLead{Record: record},
	}
	return patch, cmds
}

// CancelFlow abandons the sender's current flow. A confirmed reservation
// is released and its reminder cancelled; the cancellation is recorded as
// a lead so the operator sees freed seats.
func (e *Engine) CancelFlow(sess model.Session) (model.SessionPatch, []model.Command) {
	lang := locale.Normalize(sess.Language)
	patch := model.SessionPatch{
		State:            model.StatePtr(model.StateCancelled),
		ClearReservation: true,
	}
	cmds := []model.Command{e.text(sess.ID, lang, locale.KeyBookingCancelled, nil)}

	if sess.Reservation != nil {
		cmds = append(cmds, model.ReleaseCapacity{
			Slot:      sess.Reservation.Slot,
			PartySize: sess.Reservation.PartySize,
		})
		if sess.Reservation.Confirmed {
			record := e.bookingLead(&sess, sess.Reservation.Slot, "", e.now())
			record.Status = model.LeadStatusCancelled
			record.Notes = "Cancelled by guest"
			cmds = append(cmds, model.PersistLead{Record: record})
		}
	}
	if sess.ReminderID != "" {
		patch.ReminderID = model.StringPtr("")
		cmds = append(cmds, model.CancelReminder{JobID: sess.ReminderID})
	}
	return patch, cmds
}

// Welcome greets a first-time sender with the language selection list.
func (e *Engine) Welcome(to string) []model.Command {
	return []model.Command{model.SendMessage{
		To:          to,
		Body:        locale.Get(locale.English, locale.KeyWelcome),
		Interactive: languageList(),
	}}
}

// Menu sends the main menu list in the session language.
func (e *Engine) Menu(to string, lang locale.Language) []model.Command {
	return []model.Command{model.SendMessage{To: to, Interactive: menuList(lang)}}
}

// FAQ answers a keyword question without touching session state.
func (e *Engine) FAQ(to string, lang locale.Language, intent Intent) []model.Command {
	key := locale.KeyFAQLocation
	if intent == IntentFAQPricing {
		key = locale.KeyFAQPricing
	}
	return []model.Command{e.text(to, lang, key, nil)}
}

// Apology is the generic fallback after a processing panic.
func (e *Engine) Apology(to string, lang locale.Language) []model.Command {
	return []model.Command{e.text(to, lang, locale.KeyApology, nil)}
}

// ReminderMessage renders a fired job into the outbound reminder text.
func (e *Engine) ReminderMessage(job model.ReminderJob) model.SendMessage {
	lang := locale.Normalize(job.Payload.Language)
	return model.SendMessage{
		To: job.SessionID,
		Body: locale.Format(lang, locale.KeyReminder, map[string]string{
			"name":      job.Payload.Name,
			"resource":  job.Payload.Resource,
			"date":      job.Payload.Date,
			"time":      job.Payload.Timeslot,
			"partySize": strconv.Itoa(job.Payload.PartySize),
		}),
	}
}

func (e *Engine) confirmPrompt(to string, lang locale.Language, sess *model.Session) model.Command {
	partySize, _ := strconv.Atoi(sess.Field(model.FieldPartySize))
	tour, _ := e.cfg.Tour(sess.Field(model.FieldResource))
	summary := locale.Format(lang, locale.KeyConfirmSummary, map[string]string{
		"name":      sess.Field(model.FieldName),
		"contact":   sess.Field(model.FieldContact),
		"resource":  sess.Field(model.FieldResource),
		"partySize": sess.Field(model.FieldPartySize),
		"date":      sess.Field(model.FieldDate),
		"time":      sess.Field(model.FieldTime),
		"price":     formatPrice(priceFor(tour, partySize)),
	})
	return model.SendMessage{To: to, Interactive: confirmButtons(lang, summary)}
}

func (e *Engine) bookingLead(sess *model.Session, key model.SlotKey, price string, now time.Time) model.LeadRecord {
	notes := model.NotSpecified
	if price != "" {
		notes = "Total " + price + " OMR"
	}
	return model.LeadRecord{
		Timestamp:    now.Format(time.RFC3339),
		Name:         sess.Field(model.FieldName),
		Contact:      sess.Field(model.FieldContact),
		Intent:       model.IntentBooking,
		ResourceType: key.Resource,
		Date:         key.Date,
		Time:         key.Timeslot,
		PartySize:    sess.Field(model.FieldPartySize),
		Language:     locale.Normalize(sess.Language).Upper(),
		Notes:        notes,
		Status:       model.LeadStatusConfirmed,
	}
}

// reminderJob builds the deferred reminder for a confirmed booking. No
// job is created when the departure is already inside the lead window.
func (e *Engine) reminderJob(sess *model.Session, key model.SlotKey, partySize int, now time.Time) (model.ReminderJob, bool) {
	start, err := SlotStart(key.Date, key.Timeslot, e.cfg.Location)
	if err != nil {
		e.log.Error("Unresolvable slot start for reminder", "slot", key.String(), "error", err)
		return model.ReminderJob{}, false
	}
	fireAt := start.Add(-e.cfg.ReminderLead)
	if !fireAt.After(now) {
		return model.ReminderJob{}, false
	}
	return model.ReminderJob{
		ID:        e.newID(),
		SessionID: sess.ID,
		FireAt:    fireAt,
		Payload: model.ReminderPayload{
			Name:      sess.Field(model.FieldName),
			Contact:   sess.Field(model.FieldContact),
			Resource:  key.Resource,
			Date:      key.Date,
			Timeslot:  key.Timeslot,
			PartySize: partySize,
			Language:  sess.Language,
		},
	}, true
}

func (e *Engine) text(to string, lang locale.Language, key locale.Key, args map[string]string) model.SendMessage {
	if args == nil {
		return model.SendMessage{To: to, Body: locale.Get(lang, key)}
	}
	return model.SendMessage{To: to, Body: locale.Format(lang, key, args)}
}

func (e *Engine) resolveTour(ev model.InboundEvent) (config.TourConfig, bool) {
	if i, ok := indexedSelection(ev.SelectionID, selTourPrefix); ok && i < len(e.cfg.Tours) {
		return e.cfg.Tours[i], true
	}
	raw := ev.SelectionTitle
	if raw == "" {
		raw = ev.Text
	}
	name := sanitizer.NormalizeTourType(sanitizer.TrimAndNormalize(raw))
	for _, tour := range e.cfg.Tours {
		if strings.EqualFold(tour.Name, name) {
			return tour, true
		}
	}
	return config.TourConfig{}, false
}

func (e *Engine) resolveTimeslot(ev model.InboundEvent) (string, bool) {
	if i, ok := indexedSelection(ev.SelectionID, selTimePrefix); ok && i < len(e.cfg.Timeslots) {
		return e.cfg.Timeslots[i], true
	}
	raw := ev.SelectionTitle
	if raw == "" {
		raw = ev.Text
	}
	raw = sanitizer.NormalizeDigits(sanitizer.TrimAndNormalize(raw))
	for _, ts := range e.cfg.Timeslots {
		if strings.EqualFold(ts, raw) {
			return ts, true
		}
	}
	return "", false
}

func indexedSelection(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func confirmChoice(ev model.InboundEvent) string {
	switch ev.SelectionID {
	case SelConfirmYes, SelConfirmNo:
		return ev.SelectionID
	}
	switch strings.ToLower(sanitizer.TrimAndNormalize(ev.Text)) {
	case "yes", "y", "confirm", "ok", "نعم", "تأكيد", "اكد", "أكد":
		return SelConfirmYes
	case "no", "n", "لا":
		return SelConfirmNo
	}
	return ""
}

func mergeFields(base map[model.FieldKey]string, extra map[model.FieldKey]string) map[model.FieldKey]string {
	out := make(map[model.FieldKey]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
