package sink

import (
	"fmt"
	"github.com/brityrelay/smtp-relay/service/parser"
)

// vendorRequest mirrors the document shape the web-mail send endpoint expects.
// The field set and the constant values come from a captured browser session
// and must not be changed independently of the vendor.
type vendorRequest struct {
	Priority              string              `json:"priority"`
	DocSecuType           string              `json:"docSecuType"`
	DemandReply           bool                `json:"demandReply"`
	SenderEngExprYN       bool                `json:"senderEngExprYN"`
	OpenAlert             bool                `json:"openAlert"`
	OpenAlertTargets      []string            `json:"openAlertTargets"`
	DeleteSecurityPhrase  bool                `json:"deleteSecurityPhrase"`
	CpgsPassed            bool                `json:"cpgsPassed"`
	OriginalFolderID      int                 `json:"originalFolderID"`
	OriginalMailSeq       int                 `json:"originalMailSeq"`
	PreMailSeq            int                 `json:"preMailSeq"`
	ProcessCode           string              `json:"processCode"`
	PreFolderID           int                 `json:"preFolderID"`
	ContentText           string              `json:"contentText"`
	ContentType           string              `json:"contentType"`
	IndividualMail        bool                `json:"individualMail"`
	IsConfidentialExtMail bool                `json:"isConfidentialExtMail"`
	TopMailID             *string             `json:"topMailID"`
	OriginalMessageID     *string             `json:"originalMessageID"`
	From                  vendorSender        `json:"from"`
	Attachs               []parser.Attachment `json:"attachs"`
	Subject               string              `json:"subject"`
	Recipients            []vendorRecipient   `json:"recipients"`
	NonEncMail            bool                `json:"nonEncMail"`
	DisabledMailOption    vendorMailOption    `json:"disabledMailOption"`
	ApprovalList          []string            `json:"approvalList"`
}

type vendorSender struct {
	Email        string `json:"email"`
	Dcomp        string `json:"dcomp"`
	UserID       string `json:"userID"`
	SendrIndiVal string `json:"sendrIndiVal"`
}

type vendorRecipient struct {
	Email         string `json:"email"`
	RecipientType string `json:"recipientType"`
	DirectKeyin   bool   `json:"directKeyin"`
	RcvrName      string `json:"rcvrName"`
	DisplayName   string `json:"displayName"`
}

type vendorMailOption struct {
	DisabledConfidential       bool `json:"disabledConfidential"`
	DisabledConfidentialStrict bool `json:"disabledConfidential_Strict"`
}

func newVendorRequest(p Payload) (req vendorRequest) {
	attachs := p.Attachments
	if attachs == nil {
		attachs = []parser.Attachment{}
	}
	req = vendorRequest{
		Priority:         "3",
		DocSecuType:      "PERSONAL",
		SenderEngExprYN:  true,
		OpenAlertTargets: []string{},
		ProcessCode:      "NONE",
		ContentText:      p.RawContent,
		ContentType:      "MIME",
		From: vendorSender{
			Email:        p.From,
			Dcomp:        "O",
			UserID:       p.From,
			SendrIndiVal: fmt.Sprintf("%s<%s>", p.From, p.From),
		},
		Attachs: attachs,
		Subject: p.Subject,
		Recipients: []vendorRecipient{
			{
				Email:         p.To,
				RecipientType: "TO",
				RcvrName:      p.To,
				DisplayName:   p.To,
			},
		},
		ApprovalList: []string{},
	}
	return
}
