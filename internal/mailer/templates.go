package mailer

import (
	"embed"
	"fmt"
	"time"

	"github.com/osteele/liquid"

	"meetapp.app/api/internal/queue"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const NewSubscriptionSubject = "Novo Inscrito em seu Meetup!"

type template struct {
	html *liquid.Template
	text *liquid.Template
}

// Renderer turns task payloads into messages using the embedded Liquid
// templates.
type Renderer struct {
	from            string
	loc             *time.Location
	newSubscription template
}

func NewRenderer(fromName, fromEmail string, loc *time.Location) (*Renderer, error) {
	engine := liquid.NewEngine()

	newSub, err := parseTemplate(engine, "new_subscription")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		from:            Address(fromName, fromEmail),
		loc:             loc,
		newSubscription: newSub,
	}, nil
}

func parseTemplate(engine *liquid.Engine, name string) (template, error) {
	var t template
	for _, part := range []struct {
		ext string
		dst **liquid.Template
	}{
		{"html", &t.html},
		{"txt", &t.text},
	} {
		src, err := templateFS.ReadFile(fmt.Sprintf("templates/%s.%s.liquid", name, part.ext))
		if err != nil {
			return template{}, fmt.Errorf("reading template %s.%s: %w", name, part.ext, err)
		}
		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return template{}, fmt.Errorf("parsing template %s.%s: %w", name, part.ext, perr)
		}
		*part.dst = tpl
	}
	return t, nil
}

// NewSubscription renders the organizer notification. The running count
// includes the subscription that triggered it.
func (r *Renderer) NewSubscription(p queue.NewSubscriptionMail) (Message, error) {
	bindings := liquid.Bindings{
		"meetup":          p.MeetupTitle,
		"organizer":       p.OrganizerName,
		"subsNumber":      p.SubscriberCount + 1,
		"date":            FormatDatePtBR(p.MeetupDate, r.loc),
		"subscriber":      p.SubscriberName,
		"subscriberEmail": p.SubscriberEmail,
	}

	html, err := r.newSubscription.html.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("rendering html: %w", err)
	}
	text, err := r.newSubscription.text.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("rendering text: %w", err)
	}

	return Message{
		From:    r.from,
		To:      Address(p.OrganizerName, p.OrganizerEmail),
		Subject: NewSubscriptionSubject,
		HTML:    html,
		Text:    text,
	}, nil
}
