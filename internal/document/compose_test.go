package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ngodocs/internal/id"
	"github.com/cleared-dev/ngodocs/internal/locale"
	"github.com/cleared-dev/ngodocs/internal/numwords"
	"github.com/cleared-dev/ngodocs/internal/session"
)

// fixedSource always draws v.
type fixedSource struct{ v int }

func (f fixedSource) IntN(n int) int { return f.v % n }

var opened = time.Date(2026, 10, 17, 11, 45, 0, 0, time.UTC)

func newSession(k Kind) *session.Session {
	return session.New(k.Scheme(), id.NewGenerator(fixedSource{v: 42}), opened)
}

func newComposer() *Composer {
	return NewComposer(locale.NewIndia(), DefaultDefaults())
}

func compose(t *testing.T, req Request) *Rendered {
	t.Helper()
	p, err := newComposer().Compose(newSession(req.Kind()), req)
	require.NoError(t, err)
	require.True(t, p.Ready(), "expected document, got prompt %v", p.NotReady)
	require.Nil(t, p.NotReady)
	return p.Document
}

func TestCompose_ReceiptNotReady(t *testing.T) {
	req := Receipt{OrgName: "Seva Trust", DonorName: "Anita Rao"}
	p, err := newComposer().Compose(newSession(KindReceipt), req)
	require.NoError(t, err)

	assert.False(t, p.Ready())
	require.NotNil(t, p.NotReady)
	assert.Equal(t, KindReceipt, p.NotReady.Kind)
	assert.Equal(t, []string{"amount"}, p.NotReady.Missing)
	assert.Equal(t, "Fill in the required fields to generate your donation receipt.", p.NotReady.Prompt)
	assert.Contains(t, p.NotReady.String(), "missing: amount")
}

func TestCompose_NotReadyListsAllMissing(t *testing.T) {
	p, err := newComposer().Compose(newSession(KindReceipt), Receipt{})
	require.NoError(t, err)
	require.NotNil(t, p.NotReady)
	assert.Equal(t, []string{"org_name", "donor_name", "amount"}, p.NotReady.Missing)
}

func TestCompose_WhitespaceIsMissing(t *testing.T) {
	req := Member{FullName: "   ", Mobile: "9876543210"}
	p, err := newComposer().Compose(newSession(KindMember), req)
	require.NoError(t, err)
	require.NotNil(t, p.NotReady)
	assert.Equal(t, []string{"full_name"}, p.NotReady.Missing)
}

func TestCompose_Receipt(t *testing.T) {
	req := Receipt{
		OrgName:            "Seva Trust",
		RegistrationNumber: "MH/123/2019",
		DonorName:          "Anita Rao",
		Amount:             "1234567",
		Date:               "2026-10-02",
		PaymentMode:        "UPI",
		Purpose:            "Flood Relief",
	}
	doc := compose(t, req)

	assert.Equal(t, KindReceipt, doc.Kind)
	assert.Equal(t, "DR-2026-0042", doc.Reference)
	assert.Contains(t, doc.Text, "Receipt No: DR-2026-0042")
	assert.Contains(t, doc.Text, "Amount: ₹12,34,567")
	assert.Contains(t, doc.Text, "(Rupees Twelve Lakh Thirty-Four Thousand Five Hundred Sixty-Seven Only)")
	assert.Contains(t, doc.Text, "Date: 2 October 2026")
	assert.Contains(t, doc.Text, "SEVA TRUST\nRegistration No: MH/123/2019\n\n")
	assert.Contains(t, doc.Text, "Payment Mode: UPI")
	assert.Contains(t, doc.Text, "Purpose: Flood Relief")
	assert.Contains(t, doc.Text, "For Seva Trust\nAuthorized Signatory")
	assert.NotContains(t, doc.Text, "Address:")

	view, ok := doc.Model.(ReceiptView)
	require.True(t, ok)
	assert.Equal(t, numwords.Amount{Numeral: 1234567, Words: "Twelve Lakh Thirty-Four Thousand Five Hundred Sixty-Seven"}, view.Amount)
	assert.Equal(t, "₹12,34,567", view.AmountFigure)
}

func TestCompose_ReceiptStable(t *testing.T) {
	c := newComposer()
	s := session.New(KindReceipt.Scheme(), id.NewGenerator(nil), opened)
	req := Receipt{OrgName: "Seva Trust", DonorName: "Anita Rao", Amount: "500"}

	first, err := c.Compose(s, req)
	require.NoError(t, err)
	second, err := c.Compose(s, req)
	require.NoError(t, err)

	require.True(t, first.Ready())
	assert.Equal(t, first.Document.Reference, second.Document.Reference)
	assert.Equal(t, first.Document.Text, second.Document.Text)
	assert.Contains(t, first.Document.Text, s.Reference().String())
}

func TestCompose_ReceiptExactText(t *testing.T) {
	doc := compose(t, Receipt{
		OrgName:      "Seva Trust",
		DonorName:    "Anita Rao",
		DonorAddress: "12 MG Road, Pune",
		Amount:       "1500",
	})

	heavy := strings.Repeat("━", 47)
	light := strings.Repeat("─", 46)
	want := strings.Join([]string{
		heavy,
		strings.Repeat(" ", 15) + "DONATION RECEIPT",
		heavy,
		"",
		"Receipt No: DR-2026-0042",
		"Date: 17 October 2026",
		"",
		"SEVA TRUST",
		"",
		light,
		"",
		"RECEIVED WITH THANKS FROM:",
		"",
		"Donor Name: Anita Rao",
		"Address: 12 MG Road, Pune",
		"",
		light,
		"",
		"DONATION DETAILS:",
		"",
		"Amount: ₹1,500",
		"(Rupees One Thousand Five Hundred Only)",
		"Payment Mode: Cash",
		"Purpose: General Donation",
		"",
		light,
		"",
		"This donation is received as per the objects of the",
		"organization and shall be utilized for the same.",
		"",
		"Thank you for your generous contribution!",
		"",
		heavy,
		"",
		"For Seva Trust",
		"Authorized Signatory",
		"",
		heavy,
	}, "\n")
	assert.Equal(t, want, doc.Text)
}

func TestCompose_ReceiptInvalidAmount(t *testing.T) {
	for _, amount := range []string{"-500", "five hundred"} {
		req := Receipt{OrgName: "Seva Trust", DonorName: "Anita Rao", Amount: amount}
		p, err := newComposer().Compose(newSession(KindReceipt), req)
		require.Error(t, err, "amount %q", amount)
		assert.ErrorIs(t, err, numwords.ErrInvalidAmount)
		assert.False(t, p.Ready())

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "amount", fe.Field)
	}
}

func TestCompose_InvalidDate(t *testing.T) {
	req := Meeting{OrgName: "Seva Trust", Date: "17/10/2026"}
	_, err := newComposer().Compose(newSession(KindMeeting), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, locale.ErrInvalidDate)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "date", fe.Field)
}

func TestCompose_Meeting(t *testing.T) {
	req := Meeting{
		OrgName:         "Seva Trust",
		Date:            "2026-10-17",
		Time:            "16:30",
		Venue:           "Community Hall",
		Attendees:       "Ravi Kumar\n\n  Sita Devi \n",
		Agenda:          "Budget review\nVolunteer drive",
		Decisions:       "Approve budget",
		NextMeetingDate: "2026-11-14",
		ClosingRemarks:  "Meeting closed at 6 PM.",
	}
	doc := compose(t, req)

	assert.Equal(t, "MM-2026-042", doc.Reference)
	assert.Contains(t, doc.Text, "Date     : Saturday, 17 October 2026")
	assert.Contains(t, doc.Text, "Time     : 16:30")
	assert.Contains(t, doc.Text, "Venue    : Community Hall")
	assert.Contains(t, doc.Text, "   1. Ravi Kumar\n   2. Sita Devi\n")
	assert.Contains(t, doc.Text, "   1. Budget review\n   2. Volunteer drive\n")
	assert.Contains(t, doc.Text, "   1. Approve budget\n")
	assert.Contains(t, doc.Text, "Meeting closed at 6 PM.")
	assert.Contains(t, doc.Text, "Next Meeting: 14 November 2026")
	assert.Contains(t, doc.Text, "Date: 17/10/2026")

	view, ok := doc.Model.(MeetingView)
	require.True(t, ok)
	assert.Equal(t, []string{"Ravi Kumar", "Sita Devi"}, view.Attendees.Items)
	assert.Equal(t, "Saturday, 17 October 2026", view.Date)
}

func TestCompose_MeetingDeterministic(t *testing.T) {
	c := newComposer()
	s := newSession(KindMeeting)
	req := Meeting{OrgName: "Seva Trust", Date: "2026-10-17", Attendees: "A\nB"}

	first, err := c.Compose(s, req)
	require.NoError(t, err)
	second, err := c.Compose(s, req)
	require.NoError(t, err)

	assert.Equal(t, first.Document.Text, second.Document.Text)
	assert.Equal(t, first.Document.Model, second.Document.Model)
	assert.Equal(t, first, second)
}

func TestCompose_TextAgreesWithModel(t *testing.T) {
	doc := compose(t, Receipt{OrgName: "Seva Trust", DonorName: "Anita Rao", Amount: "250075", Date: "2026-01-26"})
	view := doc.Model.(ReceiptView)

	assert.Contains(t, doc.Text, view.Reference)
	assert.Contains(t, doc.Text, view.Date)
	assert.Contains(t, doc.Text, view.AmountFigure)
	assert.Contains(t, doc.Text, view.AmountWords)
	assert.Equal(t, doc.Reference, view.Reference)
}

func TestCompose_ReadinessBoundary(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{
			name: "receipt",
			req:  Receipt{OrgName: "Seva Trust", DonorName: "Anita Rao", Amount: "100"},
			want: []string{
				"Date: 17 October 2026",
				"Payment Mode: Cash",
				"Purpose: " + FallbackPurpose,
			},
		},
		{
			name: "member",
			req:  Member{FullName: "Anita Rao", Mobile: "9876543210"},
			want: []string{
				"Member ID: MEM-2026-0042",
				"Registration Date: 17 October 2026",
				"Father/Husband Name: Not Provided",
				"Date of Birth: Not Provided",
				"ADDRESS:\nNot Provided",
				"Aadhaar/ID Number: Not Provided",
				"Membership Type: General Member",
			},
		},
		{
			name: "meeting",
			req:  Meeting{OrgName: "Seva Trust", Date: "2026-10-17"},
			want: []string{
				"Time     : 10:00",
				"Venue    : " + FallbackVenue,
				"   " + FallbackAttendees,
				"   " + FallbackAgenda,
				"   " + FallbackDecisions,
				FallbackClosingRemarks,
				"Next Meeting: " + FallbackNextMeeting,
			},
		},
		{
			name: "volunteer",
			req:  Volunteer{Name: "Anita Rao", OrgName: "Seva Trust"},
			want: []string{
				"ID Number : VOL-2026-0042",
				"Role      : Volunteer",
				"Valid From: Oct 2026",
				"Valid To  : Oct 2027",
				"Contact Person: Not Provided",
				"This card is the property of Seva Trust.",
			},
		},
		{
			name: "resolution",
			req:  Resolution{OrgName: "Seva Trust", Subject: "Opening a bank account"},
			want: []string{
				"Resolution Number: RES/2026/42",
				"Date: 17 October 2026",
				FallbackResolution,
				"Proposed by : " + FallbackSignatoryLine,
				"Seconded by : " + FallbackSignatoryLine,
				FallbackAuthorityName + "\nPresident",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := compose(t, tt.req)
			for _, w := range tt.want {
				assert.Contains(t, doc.Text, w)
			}
		})
	}
}

func TestCompose_OptionalLinesOmitted(t *testing.T) {
	doc := compose(t, Volunteer{Name: "Anita Rao", OrgName: "Seva Trust"})
	assert.NotContains(t, doc.Text, "Blood Group")

	doc = compose(t, Volunteer{Name: "Anita Rao", OrgName: "Seva Trust", BloodGroup: "O+", EmergencyContactName: "Ravi", EmergencyContact: "9000000000"})
	assert.Contains(t, doc.Text, "Valid To  : Oct 2027\nBlood Group: O+\n")
	assert.Contains(t, doc.Text, "Ravi: 9000000000")

	doc = compose(t, Resolution{OrgName: "Seva Trust", Subject: "Audit", RegistrationNumber: "KA/99"})
	assert.Contains(t, doc.Text, "SEVA TRUST\n(Registration No: KA/99)\n")
}

func TestCompose_MemberMasksNationalID(t *testing.T) {
	doc := compose(t, Member{FullName: "Anita Rao", Mobile: "9876543210", NationalID: "123412341234", DateOfBirth: "1990-05-09"})
	assert.Contains(t, doc.Text, "Aadhaar/ID Number: 1234-1234-1234")
	assert.Contains(t, doc.Text, "Date of Birth: 9 May 1990")

	doc = compose(t, Member{FullName: "Anita Rao", Mobile: "9876543210", NationalID: "X-99"})
	assert.Contains(t, doc.Text, "Aadhaar/ID Number: X-99")
}

func TestCompose_PointerRequest(t *testing.T) {
	doc := compose(t, &Resolution{OrgName: "Seva Trust", Subject: "Audit"})
	assert.Equal(t, KindResolution, doc.Kind)
}

func TestCompose_SessionKindMismatch(t *testing.T) {
	_, err := newComposer().Compose(newSession(KindMember), Receipt{})
	assert.ErrorIs(t, err, ErrSessionKind)
}

func TestCompose_NilRequest(t *testing.T) {
	_, err := newComposer().Compose(newSession(KindReceipt), nil)
	require.Error(t, err)

	var r *Receipt
	_, err = newComposer().Compose(newSession(KindReceipt), r)
	require.Error(t, err)
}

func TestCompose_DoesNotMutateRequest(t *testing.T) {
	req := &Meeting{OrgName: " Seva Trust ", Date: "2026-10-17"}
	before := *req
	compose(t, req)
	assert.Equal(t, before, *req)
}
