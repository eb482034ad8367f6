package service

import (
	"fmt"

	"github.com/templui/footprint/internal/emissions"
)

func forgotPasswordEmailTemplate(signInURL, appName string) (string, string) {
	subject := fmt.Sprintf("Reset your password for %s", appName)
	body := fmt.Sprintf(`You asked to reset your password. We'll remove your current password and sign you in with this link:
%s

Once signed in you can set a new password from your account.

The link can only be used once.

If you didn't ask for this, ignore this email. Nothing will change.

Best,
The %s Team`, signInURL, appName)

	return subject, body
}

func magicLinkEmailTemplate(magicURL, appName string) (string, string) {
	subject := fmt.Sprintf("Sign in to %s", appName)
	body := fmt.Sprintf(`Use this link to sign in:
%s

It expires in 10 minutes and works once.

If you didn't request it, ignore this email.

Best,
The %s Team`, magicURL, appName)

	return subject, body
}

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Calculate your first footprint, log a green action and watch your eco points grow.

Your dashboard: %s

Best,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account has been permanently deleted from %s, including your footprint history, eco points and uploaded files.

If you didn't request this, contact support right away. We can't restore deleted accounts.

Best,
The %s Team`, name, appName, appName)

	return subject, body
}

func pledgeEmailTemplate(name string, number int, certificateURL, appName string) (string, string) {
	subject := fmt.Sprintf("Thank you for pledge #%d", number)
	body := fmt.Sprintf(`Hi %s,

You are climate pledger #%d. Every small step adds up.

Your certificate: %s

Best,
The %s Team`, name, number, certificateURL, appName)

	return subject, body
}

func weeklyDigestEmailTemplate(name string, d WeeklyDigest, appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your week on %s: %s CO2 saved", appName, emissions.FormatKg(d.CarbonSaved))
	eq := emissions.Equivalent(d.CarbonSaved)
	body := fmt.Sprintf(`Hi %s,

This week you logged %d activities and saved %s of CO2.
That is about %s.

Level: %d
Current streak: %d days

Keep going: %s/api/me/dashboard

Best,
The %s Team`, name, d.Activities, emissions.FormatKg(d.CarbonSaved), eq.CarMilesText, d.Level, d.Streak, appURL, appName)

	return subject, body
}
