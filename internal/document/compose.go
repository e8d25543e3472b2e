package document

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cleared-dev/ngodocs/internal/locale"
	"github.com/cleared-dev/ngodocs/internal/numwords"
	"github.com/cleared-dev/ngodocs/internal/session"
)

// Rendered is a composed document in both of its forms.
type Rendered struct {
	Kind      Kind   `json:"kind"`
	Reference string `json:"reference"`
	Model     View   `json:"model"`
	Text      string `json:"text"`
}

// Preview is the outcome of Compose: exactly one of Document and NotReady is set.
type Preview struct {
	Document *Rendered
	NotReady *NotReady
}

// Ready reports whether a document was produced.
func (p Preview) Ready() bool {
	return p.Document != nil
}

// Composer builds documents from requests. It holds no per-request state and
// may be shared between goroutines.
type Composer struct {
	Locale   locale.Formatter
	Defaults Defaults
}

// NewComposer returns a Composer. A nil formatter selects the Indian convention.
func NewComposer(loc locale.Formatter, defaults Defaults) *Composer {
	if loc == nil {
		loc = locale.NewIndia()
	}
	return &Composer{Locale: loc, Defaults: defaults}
}

// Compose renders req within session s. Missing required fields produce a
// NotReady preview; an error is returned only for unusable input such as a
// negative amount or a malformed date.
func (c *Composer) Compose(s *session.Session, req Request) (Preview, error) {
	req, err := concrete(req)
	if err != nil {
		return Preview{}, err
	}
	k := req.Kind()
	if s.Scheme() != k.Scheme() {
		return Preview{}, fmt.Errorf("%w: session %s, request %s", ErrSessionKind, s.Scheme().Prefix, k)
	}

	missing, err := missingFields(req)
	if err != nil {
		return Preview{}, err
	}
	if len(missing) > 0 {
		return Preview{NotReady: &NotReady{Kind: k, Prompt: k.Prompt(), Missing: missing}}, nil
	}

	var view View
	switch r := req.(type) {
	case Receipt:
		view, err = c.receipt(s, r)
	case Member:
		view, err = c.member(s, r)
	case Meeting:
		view, err = c.meeting(s, r)
	case Volunteer:
		view, err = c.volunteer(s, r)
	case Resolution:
		view, err = c.resolution(s, r)
	default:
		return Preview{}, fmt.Errorf("%w: %T", ErrUnknownKind, req)
	}
	if err != nil {
		return Preview{}, err
	}

	text, err := renderText(view)
	if err != nil {
		return Preview{}, err
	}

	return Preview{Document: &Rendered{
		Kind:      k,
		Reference: s.Reference().String(),
		Model:     view,
		Text:      text,
	}}, nil
}

// concrete dereferences pointer requests so the kind switch sees values.
func concrete(req Request) (Request, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	v := reflect.ValueOf(req)
	if v.Kind() != reflect.Pointer {
		return req, nil
	}
	if v.IsNil() {
		return nil, errors.New("nil request")
	}
	return v.Elem().Interface().(Request), nil
}

func (c *Composer) receipt(s *session.Session, r Receipt) (ReceiptView, error) {
	amount, err := numwords.ParseToAmount(r.Amount)
	if err != nil {
		return ReceiptView{}, &FieldError{Field: "amount", Err: err}
	}
	date, err := c.dateOr("date", r.Date, s.Today, c.Locale.LongDate)
	if err != nil {
		return ReceiptView{}, err
	}

	return ReceiptView{
		Reference:          s.Reference().String(),
		OrgName:            trim(r.OrgName),
		OrgHeading:         c.Locale.Upper(trim(r.OrgName)),
		RegistrationNumber: trim(r.RegistrationNumber),
		DonorName:          trim(r.DonorName),
		DonorAddress:       trim(r.DonorAddress),
		Amount:             amount,
		AmountFigure:       c.Locale.Currency(amount.Numeral),
		AmountWords:        c.Locale.AmountInWords(amount.Words),
		Date:               date,
		PaymentMode:        or(r.PaymentMode, c.Defaults.PaymentMode),
		Purpose:            or(r.Purpose, FallbackPurpose),
	}, nil
}

func (c *Composer) member(s *session.Session, r Member) (MemberView, error) {
	dob, err := c.optionalDate("date_of_birth", r.DateOfBirth, FallbackNotProvided, c.Locale.LongDate)
	if err != nil {
		return MemberView{}, err
	}

	nationalID := FallbackNotProvided
	if !isBlank(r.NationalID) {
		nationalID = locale.MaskNationalID(r.NationalID)
	}

	return MemberView{
		Reference:        s.Reference().String(),
		RegistrationDate: c.Locale.LongDate(s.Today),
		FullName:         trim(r.FullName),
		GuardianName:     or(r.GuardianName, FallbackNotProvided),
		DateOfBirth:      dob,
		Mobile:           trim(r.Mobile),
		Address:          or(r.Address, FallbackNotProvided),
		NationalID:       nationalID,
		MembershipType:   or(r.MembershipType, c.Defaults.MembershipType),
	}, nil
}

func (c *Composer) meeting(s *session.Session, r Meeting) (MeetingView, error) {
	date, err := c.dateOr("date", r.Date, s.Today, c.Locale.WeekdayDate)
	if err != nil {
		return MeetingView{}, err
	}
	next, err := c.optionalDate("next_meeting_date", r.NextMeetingDate, FallbackNextMeeting, c.Locale.LongDate)
	if err != nil {
		return MeetingView{}, err
	}

	return MeetingView{
		Reference:      s.Reference().String(),
		OrgName:        trim(r.OrgName),
		OrgHeading:     c.Locale.Upper(trim(r.OrgName)),
		Date:           date,
		Time:           or(r.Time, c.Defaults.MeetingTime),
		Venue:          or(r.Venue, FallbackVenue),
		Attendees:      newList(r.Attendees, FallbackAttendees),
		Agenda:         newList(r.Agenda, FallbackAgenda),
		Decisions:      newList(r.Decisions, FallbackDecisions),
		ClosingRemarks: or(r.ClosingRemarks, FallbackClosingRemarks),
		NextMeeting:    next,
		PreparedOn:     c.Locale.ShortDate(s.Today),
	}, nil
}

func (c *Composer) volunteer(s *session.Session, r Volunteer) (VolunteerView, error) {
	from, err := c.dateOr("valid_from", r.ValidFrom, s.Today, c.Locale.MonthYear)
	if err != nil {
		return VolunteerView{}, err
	}
	until := s.Today.AddDate(0, 0, c.Defaults.ValidityDays)
	to, err := c.dateOr("valid_to", r.ValidTo, until, c.Locale.MonthYear)
	if err != nil {
		return VolunteerView{}, err
	}

	return VolunteerView{
		Reference:            s.Reference().String(),
		OrgName:              trim(r.OrgName),
		OrgHeading:           c.Locale.Upper(trim(r.OrgName)),
		Name:                 trim(r.Name),
		Designation:          or(r.Designation, c.Defaults.Designation),
		ValidFrom:            from,
		ValidTo:              to,
		BloodGroup:           trim(r.BloodGroup),
		EmergencyContactName: or(r.EmergencyContactName, FallbackEmergencyPerson),
		EmergencyContact:     or(r.EmergencyContact, FallbackNotProvided),
	}, nil
}

func (c *Composer) resolution(s *session.Session, r Resolution) (ResolutionView, error) {
	date, err := c.dateOr("date", r.Date, s.Today, c.Locale.LongDate)
	if err != nil {
		return ResolutionView{}, err
	}

	return ResolutionView{
		Reference:            s.Reference().String(),
		OrgName:              trim(r.OrgName),
		OrgHeading:           c.Locale.Upper(trim(r.OrgName)),
		RegistrationNumber:   trim(r.RegistrationNumber),
		Subject:              trim(r.Subject),
		Date:                 date,
		Details:              or(r.Details, FallbackResolution),
		ProposedBy:           or(r.ProposedBy, FallbackSignatoryLine),
		SecondedBy:           or(r.SecondedBy, FallbackSignatoryLine),
		AuthorityName:        or(r.AuthorityName, FallbackAuthorityName),
		AuthorityDesignation: or(r.AuthorityDesignation, c.Defaults.AuthorityDesignation),
	}, nil
}

// dateOr formats raw, or def when raw is blank.
func (c *Composer) dateOr(field, raw string, def time.Time, format func(time.Time) string) (string, error) {
	if isBlank(raw) {
		return format(def), nil
	}
	t, err := locale.ParseDate(raw)
	if err != nil {
		return "", &FieldError{Field: field, Err: err}
	}
	return format(t), nil
}

// optionalDate formats raw, or returns fallback text when raw is blank.
func (c *Composer) optionalDate(field, raw, fallback string, format func(time.Time) string) (string, error) {
	if isBlank(raw) {
		return fallback, nil
	}
	t, err := locale.ParseDate(raw)
	if err != nil {
		return "", &FieldError{Field: field, Err: err}
	}
	return format(t), nil
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
