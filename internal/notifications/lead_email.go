package notifications

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"payana-backend/internal/leads"
)

const leadNotificationTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: {{.HeaderColor}}; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
    <h1 style="margin: 0; font-size: 24px;">{{.Title}}</h1>
  </div>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 0 0 8px 8px;">
    <p style="font-size: 16px; margin-bottom: 20px;">{{.Intro}}</p>
    <table border="1" cellpadding="10" cellspacing="0" style="border-collapse: collapse; width: 100%; max-width: 600px;">
      <thead>
        <tr style="background-color: #0066cc; color: white;">
          <th align="left" style="padding: 12px;">Field</th>
          <th align="left" style="padding: 12px;">Value</th>
        </tr>
      </thead>
      <tbody>
        {{- range .Rows}}
        <tr style="border-bottom: 1px solid #ddd;">
          <th align="left" style="padding: 10px; background-color: #f5f5f5; font-weight: 600;">{{.Label}}</th>
          <td style="padding: 10px;">{{.Value}}</td>
        </tr>
        {{- end}}
      </tbody>
    </table>
    <div style="margin-top: 30px; padding: 15px; background-color: #fff3cd; border-left: 4px solid #ffc107; border-radius: 4px;">
      <p style="margin: 0; font-size: 14px;"><strong>Action Required:</strong> {{.Callout}}</p>
    </div>
    <div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid #ddd; text-align: center; font-size: 12px; color: #666;">
      <p style="margin: 5px 0;">This is an automated notification from Payana Overseas CRM</p>
      <p style="margin: 5px 0;">Submission Time: {{.SubmittedAt}}</p>
    </div>
  </div>
</body>
</html>`

var leadNotificationTmpl = template.Must(template.New("lead_notification").Parse(leadNotificationTemplate))

type fieldRow struct {
	Label string
	Value string
}

type leadEmail struct {
	Title       string
	HeaderColor string
	Intro       string
	Rows        []fieldRow
	Callout     string
	SubmittedAt string
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// LeadMailer builds the per-lead-type staff emails and pushes them through
// the Brevo client.
type LeadMailer struct {
	client   *BrevoClient
	location *time.Location
}

func NewLeadMailer(client *BrevoClient, location *time.Location) *LeadMailer {
	if client == nil {
		return nil
	}
	if location == nil {
		location = time.UTC
	}
	return &LeadMailer{client: client, location: location}
}

func (m *LeadMailer) SendStudyLeadNotification(ctx context.Context, lead leads.StudyLead) (string, error) {
	email := leadEmail{
		Title:       "New Study Abroad Inquiry",
		HeaderColor: "#0066cc",
		Intro:       "A new student has expressed interest in studying abroad. Here are their details:",
		Rows: []fieldRow{
			{"Country of Interest", orPlaceholder(lead.Country, "Not specified")},
			{"Qualification", orPlaceholder(lead.Qualification, "Not specified")},
			{"Age", orPlaceholder(lead.Age, "Not specified")},
			{"Education Topic", orPlaceholder(lead.EducationTopic, "Not specified")},
			{"Current CGPA", orPlaceholder(lead.CGPA, "Not specified")},
			{"Budget Range", orPlaceholder(lead.Budget, "Not specified")},
			{"Needs Loan", yesNo(lead.NeedsLoan)},
			{"Full Name", orPlaceholder(lead.Name, "Not provided")},
			{"Email Address", orPlaceholder(lead.Email, "Not provided")},
			{"Phone Number", orPlaceholder(lead.Phone, "Not provided")},
		},
		Callout:     "Please follow up with this lead as soon as possible.",
		SubmittedAt: time.Now().In(m.location).Format("02/01/2006, 15:04:05"),
	}
	html, err := buildLeadEmailHTML(email)
	if err != nil {
		return "", err
	}
	return m.client.SendHTML(ctx, "New Study Abroad Inquiry - Payana Overseas", html)
}

func (m *LeadMailer) SendWorkLeadNotification(ctx context.Context, lead leads.WorkLead) (string, error) {
	email := leadEmail{
		Title:       "New Work Abroad Inquiry",
		HeaderColor: "#28a745",
		Intro:       "A new candidate is interested in working abroad. Here are their details:",
		Rows: []fieldRow{
			{"Occupation", orPlaceholder(lead.Occupation, "Not specified")},
			{"Education Level", orPlaceholder(lead.Education, "Not specified")},
			{"Experience", orPlaceholder(lead.Experience, "Not specified")},
			{"Full Name", orPlaceholder(lead.Name, "Not provided")},
			{"Email Address", orPlaceholder(lead.Email, "Not provided")},
			{"Phone Number", orPlaceholder(lead.Phone, "Not provided")},
		},
		Callout:     "Review the candidate's profile and reach out within 24 hours for best conversion rates.",
		SubmittedAt: time.Now().In(m.location).Format("02/01/2006, 15:04:05"),
	}
	html, err := buildLeadEmailHTML(email)
	if err != nil {
		return "", err
	}
	return m.client.SendHTML(ctx, "New Work Abroad Inquiry - Payana Overseas", html)
}

func (m *LeadMailer) SendInvestLeadNotification(ctx context.Context, lead leads.InvestLead) (string, error) {
	email := leadEmail{
		Title:       "New Investment Inquiry",
		HeaderColor: "#dc3545",
		Intro:       "A potential investor has expressed interest in investing abroad. Here are their details:",
		Rows: []fieldRow{
			{"Country of Interest", orPlaceholder(lead.Country, "Not specified")},
			{"Full Name", orPlaceholder(lead.Name, "Not provided")},
			{"Email Address", orPlaceholder(lead.Email, "Not provided")},
		},
		Callout:     "Investment inquiries require immediate attention. Schedule a consultation call ASAP.",
		SubmittedAt: time.Now().In(m.location).Format("02/01/2006, 15:04:05"),
	}
	html, err := buildLeadEmailHTML(email)
	if err != nil {
		return "", err
	}
	return m.client.SendHTML(ctx, "New Investment Inquiry - Payana Overseas", html)
}

func buildLeadEmailHTML(email leadEmail) (string, error) {
	var buf bytes.Buffer
	if err := leadNotificationTmpl.Execute(&buf, email); err != nil {
		return "", err
	}
	return buf.String(), nil
}
