package document

import (
	"strings"

	"github.com/cleared-dev/ngodocs/internal/lines"
	"github.com/cleared-dev/ngodocs/internal/numwords"
)

// View is the structured render model for one document kind. The plain-text
// rendering is produced from the same value.
type View interface {
	kind() Kind
}

// List is a parsed multi-line field together with its numbered display lines.
// Lines holds the fallback line when Items is empty.
type List struct {
	Items []string `json:"items"`
	Lines []string `json:"lines"`
}

const listIndent = "   "

func newList(raw, fallback string) List {
	items := lines.Parse(raw)
	if len(items) == 0 {
		return List{Items: items, Lines: []string{listIndent + fallback}}
	}
	return List{Items: items, Lines: lines.Numbered(items, listIndent)}
}

// Text joins the display lines.
func (l List) Text() string {
	return strings.Join(l.Lines, "\n")
}

// ReceiptView is the rendered donation receipt.
type ReceiptView struct {
	Reference          string          `json:"reference"`
	OrgName            string          `json:"org_name"`
	OrgHeading         string          `json:"org_heading"`
	RegistrationNumber string          `json:"registration_number,omitempty"`
	DonorName          string          `json:"donor_name"`
	DonorAddress       string          `json:"donor_address,omitempty"`
	Amount             numwords.Amount `json:"amount"`
	AmountFigure       string          `json:"amount_figure"`
	AmountWords        string          `json:"amount_words"`
	Date               string          `json:"date"`
	PaymentMode        string          `json:"payment_mode"`
	Purpose            string          `json:"purpose"`
}

// MemberView is the rendered membership entry.
type MemberView struct {
	Reference        string `json:"reference"`
	RegistrationDate string `json:"registration_date"`
	FullName         string `json:"full_name"`
	GuardianName     string `json:"guardian_name"`
	DateOfBirth      string `json:"date_of_birth"`
	Mobile           string `json:"mobile"`
	Address          string `json:"address"`
	NationalID       string `json:"national_id"`
	MembershipType   string `json:"membership_type"`
}

// MeetingView is the rendered meeting minutes.
type MeetingView struct {
	Reference      string `json:"reference"`
	OrgName        string `json:"org_name"`
	OrgHeading     string `json:"org_heading"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Venue          string `json:"venue"`
	Attendees      List   `json:"attendees"`
	Agenda         List   `json:"agenda"`
	Decisions      List   `json:"decisions"`
	ClosingRemarks string `json:"closing_remarks"`
	NextMeeting    string `json:"next_meeting"`
	PreparedOn     string `json:"prepared_on"`
}

// VolunteerView is the rendered volunteer ID card.
type VolunteerView struct {
	Reference            string `json:"reference"`
	OrgName              string `json:"org_name"`
	OrgHeading           string `json:"org_heading"`
	Name                 string `json:"name"`
	Designation          string `json:"designation"`
	ValidFrom            string `json:"valid_from"`
	ValidTo              string `json:"valid_to"`
	BloodGroup           string `json:"blood_group,omitempty"`
	EmergencyContactName string `json:"emergency_contact_name"`
	EmergencyContact     string `json:"emergency_contact"`
}

// ResolutionView is the rendered certified resolution.
type ResolutionView struct {
	Reference            string `json:"reference"`
	OrgName              string `json:"org_name"`
	OrgHeading           string `json:"org_heading"`
	RegistrationNumber   string `json:"registration_number,omitempty"`
	Subject              string `json:"subject"`
	Date                 string `json:"date"`
	Details              string `json:"details"`
	ProposedBy           string `json:"proposed_by"`
	SecondedBy           string `json:"seconded_by"`
	AuthorityName        string `json:"authority_name"`
	AuthorityDesignation string `json:"authority_designation"`
}

func (ReceiptView) kind() Kind    { return KindReceipt }
func (MemberView) kind() Kind     { return KindMember }
func (MeetingView) kind() Kind    { return KindMeeting }
func (VolunteerView) kind() Kind  { return KindVolunteer }
func (ResolutionView) kind() Kind { return KindResolution }
