package service

import (
	"github.com/prajwalbharadwajbm/referralhub/internal/assistant"
	"github.com/prajwalbharadwajbm/referralhub/internal/listing"
	"github.com/prajwalbharadwajbm/referralhub/internal/models"
	"github.com/prajwalbharadwajbm/referralhub/internal/share"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

// AdminView is the signed-in admin
type AdminView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CampaignView is a campaign with the labels list rows show
type CampaignView struct {
	models.Campaign
	Active      bool   `json:"active"`
	StatusLabel string `json:"statusLabel"`
	Reward      string `json:"reward"`
}

func newCampaignView(c models.Campaign) CampaignView {
	return CampaignView{
		Campaign:    c,
		Active:      c.IsActive(),
		StatusLabel: c.StatusLabel(),
		Reward:      c.RewardSummary(),
	}
}

func campaignViews(list []models.Campaign) []CampaignView {
	out := make([]CampaignView, len(list))
	for i, c := range list {
		out[i] = newCampaignView(c)
	}
	return out
}

// Dashboard is the admin landing page
type Dashboard struct {
	AdminName       string           `json:"adminName"`
	Overview        listing.Overview `json:"overview"`
	RecentCampaigns []CampaignView   `json:"recentCampaigns"`
}

// CampaignList is one page of the campaign list view
type CampaignList struct {
	Query     listing.CampaignQuery `json:"query"`
	Summary   listing.Summary       `json:"summary"`
	Campaigns []CampaignView        `json:"campaigns"`
}

// CustomerList is the customers view
type CustomerList struct {
	Search    string                `json:"search"`
	Stats     listing.Stats         `json:"stats"`
	Customers []models.CustomerView `json:"customers"`
}

// WizardView is the campaign wizard as the page draws it
type WizardView struct {
	Step     wizard.Step     `json:"step"`
	Title    string          `json:"title"`
	Progress int             `json:"progress"`
	First    bool            `json:"first"`
	Last     bool            `json:"last"`
	Form     wizard.Form     `json:"form"`
	Options  *wizard.Options `json:"options"`
}

// AssistantView is the chat page: transcript plus the static panels beside it
type AssistantView struct {
	Messages     []assistant.Message `json:"messages"`
	QuickActions []string            `json:"quickActions"`
	Metrics      assistant.Metrics   `json:"metrics"`
}

// UserView is the signed-in end user
type UserView struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	CouponCode string `json:"couponCode"`
}

// ShareKit is an invitation with its channel links
type ShareKit struct {
	Invite share.Invite `json:"invite"`
	Links  []share.Link `json:"links"`
}

func newShareKit(inv share.Invite) ShareKit {
	return ShareKit{Invite: inv, Links: share.Links(inv)}
}

// UserDashboard is the portal landing page
type UserDashboard struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	ReferralCode  string   `json:"referralCode"`
	ReferralCount int      `json:"referralCount"`
	Reward        string   `json:"reward"`
	Share         ShareKit `json:"share"`
}

// Rewards is the portal rewards page
type Rewards struct {
	Customer    models.CustomerView  `json:"customer"`
	TopReferrer *models.CustomerView `json:"topReferrer"`
	Share       ShareKit             `json:"share"`
}

// Friends is the portal friends page
type Friends struct {
	CouponCode    string                `json:"couponCode"`
	ReferralCount int                   `json:"referralCount"`
	Reward        string                `json:"reward"`
	ReferredUsers []models.ReferredUser `json:"referredUsers"`
	Celebrated    bool                  `json:"celebrated"`
	Share         ShareKit              `json:"share"`
}

// Offer is an active campaign a user can claim
type Offer struct {
	CampaignView
	CouponCode string `json:"couponCode"`
}

// PublicCampaign is a campaign on the public page with its share links
type PublicCampaign struct {
	CampaignView
	CouponCode string   `json:"couponCode"`
	Share      ShareKit `json:"share"`
}
