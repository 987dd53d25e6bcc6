package infra

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/slack-go/slack"

	"jobs-api/jobs/domain"
)

const slackTimeLayout = "02/01/2006 15:04:05"

// SlackNotifier publica a candidatura num canal do Slack via chat.postMessage.
type SlackNotifier struct {
	client  *slack.Client
	channel string
	loc     *time.Location
	now     func() time.Time
}

type SlackOption func(*slackSettings)

type slackSettings struct {
	apiURL string
	loc    *time.Location
	now    func() time.Time
}

// WithSlackAPIURL aponta o client para outra URL (testes). Precisa terminar em "/".
func WithSlackAPIURL(url string) SlackOption {
	return func(s *slackSettings) { s.apiURL = url }
}

// WithSlackLocation define o fuso usado no campo "Time" da mensagem.
func WithSlackLocation(loc *time.Location) SlackOption {
	return func(s *slackSettings) { s.loc = loc }
}

func WithSlackClock(now func() time.Time) SlackOption {
	return func(s *slackSettings) { s.now = now }
}

func NewSlackNotifier(token, channel string, opts ...SlackOption) *SlackNotifier {
	cfg := slackSettings{loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	var clientOpts []slack.Option
	if cfg.apiURL != "" {
		clientOpts = append(clientOpts, slack.OptionAPIURL(cfg.apiURL))
	}

	return &SlackNotifier{
		client:  slack.New(token, clientOpts...),
		channel: channel,
		loc:     cfg.loc,
		now:     cfg.now,
	}
}

func (n *SlackNotifier) Target() string { return "slack:" + n.channel }

func (n *SlackNotifier) Notify(ctx context.Context, app domain.Application) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText("New application for "+app.Position, false),
		slack.MsgOptionBlocks(n.blocks(app)...),
	)
	if err != nil {
		return fmt.Errorf("slack post message to %s: %w", n.channel, err)
	}
	return nil
}

func (n *SlackNotifier) blocks(app domain.Application) []slack.Block {
	at := app.SubmittedAt
	if at.IsZero() {
		at = n.now()
	}

	field := func(label, value string) *slack.TextBlockObject {
		return slack.NewTextBlockObject(slack.MarkdownType, "*"+label+":* "+value, false, false)
	}

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, "🎯 New Job Application", true, false),
	)
	section := slack.NewSectionBlock(nil, []*slack.TextBlockObject{
		field("Position", app.Position),
		field("Name", app.FullName),
		field("Email", app.Email),
		field("LinkedIn", "<"+app.LinkedInProfile+"|Profile>"),
		field("Graduation", strconv.Itoa(app.GraduationYear)),
		field("Time", at.In(n.loc).Format(slackTimeLayout)),
	}, nil)

	return []slack.Block{header, section}
}
