package scraper

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/codes"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	// where run reports go
	AdminAddress string `json:"admin_address"`
}

func (c SmtpConfig) Enabled() bool {
	return c.Server != "" && c.AdminAddress != ""
}

func formatRunReport(stats RunStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule scrape run %s finished.\n\n", stats.RunID)
	for _, g := range stats.Groups {
		fmt.Fprintf(
			&b, "%s (id %d): %d/%d weeks, %d lessons\n",
			g.Group.Name, g.Group.ID,
			g.WeeksScraped, g.WeeksAttempted, g.Lessons,
		)
	}
	fmt.Fprintf(&b, "\nTotal: %d weeks, %d lessons.\n", stats.WeeksScraped(), stats.Lessons())
	return b.String()
}

// SendRunReport mails the aggregate run statistics to the administrator.
func SendRunReport(ctx context.Context, cfg SmtpConfig, stats RunStats) error {
	ctx, span := tracer.Start(ctx, "SendRunReport")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Course Portal <%s>", cfg.EmailAddress)
	mail.To = []string{cfg.AdminAddress}
	mail.Subject = fmt.Sprintf("Schedule scrape report (%s)", stats.RunID)
	mail.Text = []byte(formatRunReport(stats))

	err := mail.Send(
		fmt.Sprintf("%s:%d", cfg.Server, cfg.Port),
		smtp.PlainAuth("", cfg.EmailAddress, cfg.Password, cfg.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(fmt.Sprintf("%s:%d", cfg.Server, cfg.Port), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send run report")
		return err
	}

	return nil
}
