package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/healthhubhq/backend/internal/models"
)

const signature = "Best regards,\nThe HealthHub Team\nWhere Fitness Meets Wellness"

// RegistrationMessage is the welcome mail sent after any account is created.
func RegistrationMessage(user *models.User, loginURL string) Message {
	roleName := roleDisplay(user.Role)
	body := fmt.Sprintf(`Dear %s,

Thank you for registering with HealthHub!

Your %s account has been successfully created.

Registration Details:
- Full Name: %s
- Email: %s
- Phone: %s
- Role: %s
- Registration Date: %s

You can now login to your dashboard using your email and password.

Login URL: %s

%s`,
		user.FullName, roleName, user.FullName, user.Email, user.PhoneNumber,
		roleName, user.RegisteredAt.Format("January 2, 2006"), loginURL, signature)

	return Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Welcome to HealthHub - %s Registration Successful", roleName),
		Body:    body,
	}
}

// TrainerApprovedMessage notifies a trainer that their account was activated.
func TrainerApprovedMessage(trainer *models.User, approvedBy string, at time.Time, loginURL string) Message {
	body := fmt.Sprintf(`Dear %s,

Congratulations! Your trainer account has been approved.

You can now login to your trainer dashboard using your credentials.

Login URL: %s

Approved By: %s
Approval Date: %s

Welcome to the HealthHub team!

%s`,
		trainer.FullName, loginURL, approvedBy, at.Format("January 2, 2006 at 3:04 PM"), signature)

	return Message{
		To:      trainer.Email,
		Subject: "HealthHub - Trainer Account Approved",
		Body:    body,
	}
}

// TrainerRejectedMessage notifies a trainer of rejection, carrying the reason.
func TrainerRejectedMessage(trainer *models.User, reason string) Message {
	body := fmt.Sprintf(`Dear %s,

We regret to inform you that your trainer application has not been approved at this time.

Reason: %s

If you believe this is an error, please contact us.

Thank you for your interest in HealthHub.

%s`,
		trainer.FullName, reason, signature)

	return Message{
		To:      trainer.Email,
		Subject: "HealthHub - Trainer Application Status",
		Body:    body,
	}
}

// MembershipMessage confirms a completed member registration. The receipt
// PDF, when rendering succeeded, rides along as an attachment.
func MembershipMessage(user *models.User, m *models.Membership, addons []models.Addon, loginURL string, receipt []byte) Message {
	var addonLines strings.Builder
	if len(addons) > 0 {
		addonLines.WriteString("\nL3 Add-ons Selected:\n")
		for _, a := range addons {
			addonLines.WriteString("  - " + a.AddonType.DisplayName())
			if a.AssignedTrainer != nil {
				addonLines.WriteString(" (Trainer: " + a.AssignedTrainer.FullName + ")")
			}
			addonLines.WriteString("\n")
		}
	}

	// The sentence only appears when the PDF actually made it; a failed
	// render must not promise an attachment that is not there.
	receiptLine := ""
	if len(receipt) > 0 {
		receiptLine = "\nYour membership receipt is attached to this email for your records.\n"
	}

	body := fmt.Sprintf(`Dear %s,

Congratulations! Your HealthHub membership registration is complete.

Membership Details:
- Registration ID: %s
- Tier: %s %s
- Base Fee: Rs %.2f
- Monthly Fee: Rs %.2f
- Discount: Rs %.2f
- Add-on Fees: Rs %.2f
- Total Amount: Rs %.2f
- Registration Date: %s
%s%s
Login URL: %s

Thank you for choosing HealthHub. We look forward to helping you achieve your fitness goals!

%s`,
		user.FullName, m.RegistrationID, m.Tier, m.Tier.DisplayName(),
		m.BaseFee, m.MonthlyFee, m.Discount, m.AddonFees, m.Total,
		m.JoinDate.Format("January 2, 2006"), addonLines.String(), receiptLine, loginURL, signature)

	msg := Message{
		To:      user.Email,
		Subject: "Welcome to HealthHub - Membership Registration Successful",
		Body:    body,
	}
	if len(receipt) > 0 {
		msg.Attachments = []Attachment{{
			Filename: fmt.Sprintf("receipt_%s.pdf", m.RegistrationID),
			Content:  receipt,
		}}
	}
	return msg
}

func roleDisplay(r models.Role) string {
	switch r {
	case models.RoleAdmin:
		return "Admin"
	case models.RoleTrainer:
		return "Trainer"
	case models.RoleMember:
		return "Member"
	}
	return string(r)
}
