package resend

import (
	"bytes"
	"context"
	"html/template"

	"github.com/brk3/cadence/internal/nudge"
	"github.com/resend/resend-go/v2"
)

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type ResendNotifier struct {
	From   string
	Email  string
	sender emailSender
}

func NewResendNotifier(apiKey, from, email string) *ResendNotifier {
	return &ResendNotifier{
		From:   from,
		Email:  email,
		sender: resend.NewClient(apiKey).Emails,
	}
}

var emailTemplate = template.Must(template.New("email").Parse(`
<p>These streaks end in {{.Hours}} hours unless you check them off today:</p>
<ul>
{{range .Habits}}
  <li><strong>{{.Habit.Name}}</strong>: {{.Streak}} day streak</li>
{{end}}
</ul>
`))

func render(habits []nudge.AtRisk, hoursLeft int) (string, error) {
	data := struct {
		Habits []nudge.AtRisk
		Hours  int
	}{
		Habits: habits,
		Hours:  hoursLeft,
	}
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ResendNotifier) SendNudge(ctx context.Context, habits []nudge.AtRisk, hoursLeft int) error {
	html, err := render(habits, hoursLeft)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    r.From,
		To:      []string{r.Email},
		Subject: "Streaks at risk today",
		Html:    html,
	}
	_, err = r.sender.SendWithContext(ctx, params)
	return err
}
