package email

import (
	"fmt"
	"html"
)

// FeedbackReplyHTML renders the HTML body for a feedback reply email.
func FeedbackReplyHTML(userName, reply string) string {
	name := html.EscapeString(userName)
	body := html.EscapeString(reply)

	return fmt.Sprintf(`
    <div style="font-family: 'Poppins', sans-serif; max-width: 600px; margin: 0 auto; background: #0A0A1A; color: #fff; padding: 32px; border-radius: 16px;">
      <h1 style="color: #FF2D78; font-size: 24px; margin-bottom: 16px;">AnimeX</h1>
      <p>Hi %s,</p>
      <p>Thank you for your feedback! Here's our response:</p>
      <div style="background: rgba(255,255,255,0.05); padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 3px solid #FF2D78;">
        %s
      </div>
      <p>- The AnimeX Team</p>
    </div>
  `, name, body)
}
