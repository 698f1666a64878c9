package mailer

import (
	"context"
	"errors"
	"testing"

	"devEvents/internal/config"
	"devEvents/internal/lib/logger/handlers/slogdiscard"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}

	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

type recordingSender struct {
	msgs []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	r.msgs = append(r.msgs, msg)
	return r.err
}

func TestNew(t *testing.T) {
	t.Parallel()

	log := slogdiscard.NewDiscardLogger()

	s, err := New(log, config.Mailer{Provider: ProviderNoop})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, s)

	s, err = New(log, config.Mailer{Provider: "carrier-pigeon"})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, s)

	_, err = New(log, config.Mailer{Provider: ProviderSES})
	assert.Error(t, err)

	s, err = New(log, config.Mailer{
		Provider:    ProviderSES,
		FromAddress: "events@example.com",
		SES:         config.SESConfig{Region: "us-east-1", AccessKeyID: "id", SecretAccessKey: "secret"},
	})
	require.NoError(t, err)
	assert.IsType(t, &SES{}, s)
}

func TestSES_Send(t *testing.T) {
	t.Parallel()

	client := &fakeSES{}
	s := newSES(slogdiscard.NewDiscardLogger(), client, config.Mailer{
		FromAddress: "events@example.com",
		FromName:    "DevEvents",
	})

	err := s.Send(context.Background(), Message{To: "jane@example.com", Subject: "Hi", Text: "plain"})
	require.NoError(t, err)

	assert.Equal(t, "DevEvents <events@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"jane@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hi", aws.ToString(client.input.Message.Subject.Data))
	assert.Equal(t, "plain", aws.ToString(client.input.Message.Body.Text.Data))
	assert.Nil(t, client.input.Message.Body.Html)

	client.err = errors.New("throttled")
	err = s.Send(context.Background(), Message{To: "jane@example.com"})
	assert.ErrorIs(t, err, client.err)
}

func TestNotifier_BookingConfirmed(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	n := NewNotifier(slogdiscard.NewDiscardLogger(), sender)

	err := n.BookingConfirmed(context.Background(), BookingData{
		Email:      "jane@example.com",
		EventTitle: "React <Conf> 2026",
		Date:       "2026-05-15",
		Time:       "09:00",
		Venue:      "Convention Center",
		Location:   "Las Vegas, Nevada",
	})
	require.NoError(t, err)
	require.Len(t, sender.msgs, 1)

	msg := sender.msgs[0]
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "You're booked for React <Conf> 2026", msg.Subject)
	assert.Contains(t, msg.HTML, "React &lt;Conf&gt; 2026")
	assert.Contains(t, msg.Text, "2026-05-15 09:00")

	sender.err = errors.New("down")
	err = n.BookingConfirmed(context.Background(), BookingData{Email: "jane@example.com"})
	assert.ErrorIs(t, err, sender.err)
}
