package document

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownField is returned when a field bag names a field the kind does
// not have.
var ErrUnknownField = errors.New("unknown field")

// Request is the form input for one document. It is implemented by Receipt,
// Member, Meeting, Volunteer and Resolution only.
type Request interface {
	Kind() Kind
	request()
}

// Receipt is the donation receipt form.
type Receipt struct {
	OrgName            string `field:"org_name" validate:"filled"`
	RegistrationNumber string `field:"registration_number"`
	DonorName          string `field:"donor_name" validate:"filled"`
	DonorAddress       string `field:"donor_address"`
	Amount             string `field:"amount" validate:"filled"`
	Date               string `field:"date"`
	PaymentMode        string `field:"payment_mode"`
	Purpose            string `field:"purpose"`
}

// Member is the membership registration form.
type Member struct {
	FullName       string `field:"full_name" validate:"filled"`
	GuardianName   string `field:"guardian_name"`
	DateOfBirth    string `field:"date_of_birth"`
	Mobile         string `field:"mobile" validate:"filled"`
	Address        string `field:"address"`
	NationalID     string `field:"national_id"`
	MembershipType string `field:"membership_type"`
}

// Meeting is the meeting minutes form. Attendees, Agenda and Decisions hold
// raw multi-line text, one item per line.
type Meeting struct {
	OrgName         string `field:"org_name" validate:"filled"`
	Date            string `field:"date" validate:"filled"`
	Time            string `field:"time"`
	Venue           string `field:"venue"`
	Attendees       string `field:"attendees"`
	Agenda          string `field:"agenda"`
	Decisions       string `field:"decisions"`
	NextMeetingDate string `field:"next_meeting_date"`
	ClosingRemarks  string `field:"closing_remarks"`
}

// Volunteer is the volunteer ID card form.
type Volunteer struct {
	Name                 string `field:"name" validate:"filled"`
	OrgName              string `field:"org_name" validate:"filled"`
	Designation          string `field:"designation"`
	ValidFrom            string `field:"valid_from"`
	ValidTo              string `field:"valid_to"`
	BloodGroup           string `field:"blood_group"`
	EmergencyContact     string `field:"emergency_contact"`
	EmergencyContactName string `field:"emergency_contact_name"`
}

// Resolution is the certified resolution form.
type Resolution struct {
	OrgName              string `field:"org_name" validate:"filled"`
	RegistrationNumber   string `field:"registration_number"`
	Subject              string `field:"subject" validate:"filled"`
	Date                 string `field:"date"`
	Details              string `field:"details"`
	ProposedBy           string `field:"proposed_by"`
	SecondedBy           string `field:"seconded_by"`
	AuthorityName        string `field:"authority_name"`
	AuthorityDesignation string `field:"authority_designation"`
}

func (Receipt) Kind() Kind    { return KindReceipt }
func (Member) Kind() Kind     { return KindMember }
func (Meeting) Kind() Kind    { return KindMeeting }
func (Volunteer) Kind() Kind  { return KindVolunteer }
func (Resolution) Kind() Kind { return KindResolution }

func (Receipt) request()    {}
func (Member) request()     {}
func (Meeting) request()    {}
func (Volunteer) request()  {}
func (Resolution) request() {}

// NewRequest returns an empty request of kind k.
func NewRequest(k Kind) (Request, error) {
	switch k {
	case KindReceipt:
		return Receipt{}, nil
	case KindMember:
		return Member{}, nil
	case KindMeeting:
		return Meeting{}, nil
	case KindVolunteer:
		return Volunteer{}, nil
	case KindResolution:
		return Resolution{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// FromFields builds a request of kind k from a field-name to value map.
// Field names are the snake_case names listed by Fields.
func FromFields(k Kind, fields map[string]string) (Request, error) {
	empty, err := NewRequest(k)
	if err != nil {
		return nil, err
	}

	v := reflect.New(reflect.TypeOf(empty)).Elem()
	index := fieldIndex(v.Type())

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w %q for %s", ErrUnknownField, name, k)
		}
		v.Field(i).SetString(fields[name])
	}
	return v.Interface().(Request), nil
}

// ToFields is the inverse of FromFields. Empty fields are omitted.
func ToFields(req Request) map[string]string {
	v := reflect.Indirect(reflect.ValueOf(req))
	t := v.Type()
	out := make(map[string]string)
	for i := range t.NumField() {
		name := t.Field(i).Tag.Get("field")
		if s := v.Field(i).String(); s != "" {
			out[name] = s
		}
	}
	return out
}

// FieldSpec describes one form field.
type FieldSpec struct {
	Name     string
	Required bool
}

// Fields lists the form fields of kind k in declaration order.
func Fields(k Kind) []FieldSpec {
	empty, err := NewRequest(k)
	if err != nil {
		return nil
	}
	t := reflect.TypeOf(empty)
	specs := make([]FieldSpec, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		specs = append(specs, FieldSpec{
			Name:     f.Tag.Get("field"),
			Required: strings.Contains(f.Tag.Get("validate"), "filled"),
		})
	}
	return specs
}

func fieldIndex(t reflect.Type) map[string]int {
	index := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		index[t.Field(i).Tag.Get("field")] = i
	}
	return index
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("field")
	})
	// filled: present and not just whitespace.
	_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// missingFields returns the names of required fields that are empty.
func missingFields(req Request) ([]string, error) {
	err := validate.Struct(req)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validating %s: %w", req.Kind(), err)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return missing, nil
}
