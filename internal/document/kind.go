// Package document turns form input into formatted NGO documents: donation
// receipts, membership entries, meeting minutes, volunteer ID cards and
// certified resolutions.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cleared-dev/ngodocs/internal/id"
)

// ErrUnknownKind is returned for an unrecognised document kind.
var ErrUnknownKind = errors.New("unknown document kind")

// Kind identifies one of the supported document types.
type Kind string

const (
	KindReceipt    Kind = "receipt"
	KindMember     Kind = "member"
	KindMeeting    Kind = "meeting"
	KindVolunteer  Kind = "volunteer"
	KindResolution Kind = "resolution"
)

type kindInfo struct {
	title  string
	scheme id.Scheme
	prompt string
}

var kindTable = map[Kind]kindInfo{
	KindReceipt: {
		title:  "Donation Receipt",
		scheme: id.Scheme{Prefix: "DR", Width: 4, Layout: id.LayoutDash},
		prompt: "Fill in the required fields to generate your donation receipt.",
	},
	KindMember: {
		title:  "Membership Registration",
		scheme: id.Scheme{Prefix: "MEM", Width: 4, Layout: id.LayoutDash},
		prompt: "Fill in the required fields to generate the membership entry.",
	},
	KindMeeting: {
		title:  "Meeting Minutes",
		scheme: id.Scheme{Prefix: "MM", Width: 3, Layout: id.LayoutDash},
		prompt: "Fill in the required fields to generate the meeting minutes.",
	},
	KindVolunteer: {
		title:  "Volunteer ID Card",
		scheme: id.Scheme{Prefix: "VOL", Width: 4, Layout: id.LayoutDash},
		prompt: "Fill in the required fields to generate the ID card.",
	},
	KindResolution: {
		title:  "Certified Resolution",
		scheme: id.Scheme{Prefix: "RES", Width: 2, Layout: id.LayoutSlash},
		prompt: "Fill in the required fields to generate the resolution.",
	},
}

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindReceipt, KindMember, KindMeeting, KindVolunteer, KindResolution}
}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kindTable[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Title is the human-readable name, e.g. "Donation Receipt".
func (k Kind) Title() string {
	return kindTable[k].title
}

// Scheme is the reference code scheme for documents of this kind.
func (k Kind) Scheme() id.Scheme {
	return kindTable[k].scheme
}

// Prompt is shown in place of the document until it is ready.
func (k Kind) Prompt() string {
	return kindTable[k].prompt
}

func (k Kind) String() string {
	return string(k)
}
