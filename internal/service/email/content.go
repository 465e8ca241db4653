package email

import "fmt"

// VerificationMessage formats the login code email for the pipeline.
func VerificationMessage(username, toEmail, code string) Message {
	text := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your verification code for Data Security System login is: %s\n\n"+
			"This code will expire in 10 minutes for security reasons.\n\n"+
			"If you didn't request this code, please ignore this email.\n\n"+
			"Best regards,\nData Security System Team",
		username, code,
	)
	html := fmt.Sprintf(
		"<p>Hello %s,</p>"+
			"<p>Your verification code for <strong>Data Security System</strong> login is: "+
			`<strong style="letter-spacing:2px">%s</strong></p>`+
			"<p>This code will expire in <strong>10 minutes</strong> for security reasons.</p>"+
			"<p>If you didn't request this code, please ignore this email.</p>"+
			"<p>Best regards,<br/>Data Security System Team</p>",
		username, code,
	)
	return Message{
		To:       toEmail,
		Subject:  "Data Security System - Login Verification Code",
		Text:     text,
		HTML:     html,
		Username: username,
		Code:     code,
	}
}
