package domain

import "time"

// FeedbackType categorizes user feedback submissions.
type FeedbackType string

const (
	FeedbackTypeGeneral    FeedbackType = "general"
	FeedbackTypeBug        FeedbackType = "bug"
	FeedbackTypeFeature    FeedbackType = "feature"
	FeedbackTypeCompliment FeedbackType = "compliment"
	FeedbackTypeContent    FeedbackType = "content"
	FeedbackTypeOther      FeedbackType = "other"
)

// FeedbackStatus tracks the admin triage state.
type FeedbackStatus string

const (
	FeedbackStatusNew      FeedbackStatus = "new"
	FeedbackStatusSeen     FeedbackStatus = "seen"
	FeedbackStatusResolved FeedbackStatus = "resolved"
)

// Feedback is a user-submitted report. UserID is empty for anonymous
// submissions. AdminReply is set when an admin answers by email.
type Feedback struct {
	ID            string         `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	UserID        string         `json:"user_id,omitempty"`
	Name          string         `json:"name"`
	Email         string         `json:"email,omitempty"`
	Subject       string         `json:"subject,omitempty"`
	Message       string         `json:"message"`
	Rating        int            `json:"rating"`
	Type          FeedbackType   `json:"type"`
	ScreenshotURL string         `json:"screenshot_url,omitempty"`
	Status        FeedbackStatus `json:"status"`
	AdminReply    string         `json:"admin_reply,omitempty"`
}
