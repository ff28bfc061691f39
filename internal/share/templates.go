package share

import (
	"fmt"
	"strings"
)

const (
	defaultSender = "Your friend"
	defaultCode   = "YOUR_CODE"
)

func orSender(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultSender
	}
	return name
}

func orCode(code string) string {
	if strings.TrimSpace(code) == "" {
		return defaultCode
	}
	return code
}

// FriendInvite is the invitation sent from the friends page
func FriendInvite(name, code, base string) Invite {
	msg := fmt.Sprintf(`👋 %s invited you to join our community!

🌟 Get these exclusive benefits:
✅ Special sign-up bonus
✅ Early access to new features
✅ Personalized recommendations

💎 Use this referral code during registration:
   Coupon Code: %s

🔗 Join now: %s

See you inside!`, orSender(name), orCode(code), RegisterLink(base))

	return Invite{
		Message: msg,
		Subject: fmt.Sprintf("Join me! %s sent you an invitation", orSender(name)),
		URL:     ReferralLink(base, code),
	}
}

// RewardInvite is the invitation sent from the rewards page and dashboard
func RewardInvite(name, code, base string) Invite {
	msg := fmt.Sprintf(`%s invites you to join and earn rewards!

✨ Benefits you'll get:
- Special sign-up bonus
- Exclusive deals and offers
- Early access to new features

Use this coupon code during registration:
🎁 Coupon Code: %s

Join now: %s`, orSender(name), orCode(code), RegisterLink(base))

	return Invite{
		Message: msg,
		Subject: fmt.Sprintf("%s invites you!", orSender(name)),
		URL:     ReferralLink(base, code),
	}
}

// ProgramInvite is the short form used when a rich invite cannot be shown
func ProgramInvite(code, base string) Invite {
	return Invite{
		Message: fmt.Sprintf("Use my coupon code %s at %s", orCode(code), RegisterLink(base)),
		Subject: "Join our referral program",
		URL:     ReferralLink(base, code),
	}
}

// CampaignInvite shares a campaign's own message, pointing at the campaign page
func CampaignInvite(title, message, pageURL string) Invite {
	return Invite{
		Message: message,
		Subject: title,
		URL:     pageURL,
	}
}
