package mail_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eats/internal/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(queue string, body []byte) error {
	args := m.Called(queue, body)
	return args.Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func billingMessage() mail.Message {
	return mail.Message{
		To:       "customer@example.com",
		Template: mail.TemplateBilling,
		Vars:     map[string]string{"username": "customer", "orderId": "order-1"},
	}
}

func TestQueueSender_PublishesJSON(t *testing.T) {
	publisher := new(MockPublisher)
	var published []byte
	publisher.On("Publish", "mail_queue", mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(1).([]byte) }).
		Return(nil)

	err := mail.NewQueueSender(publisher, "mail_queue").Send(context.Background(), billingMessage())
	require.NoError(t, err)

	var got mail.Message
	require.NoError(t, json.Unmarshal(published, &got))
	assert.Equal(t, billingMessage(), got)
	publisher.AssertExpectations(t)
}

func TestQueueSender_PublishError(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", "mail_queue", mock.Anything).Return(errors.New("channel closed"))

	err := mail.NewQueueSender(publisher, "mail_queue").Send(context.Background(), billingMessage())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "billing")
}

func TestDispatcher_Handle(t *testing.T) {
	body, err := json.Marshal(billingMessage())
	require.NoError(t, err)

	t.Run("delivers to delegate", func(t *testing.T) {
		delegate := new(MockSender)
		delegate.On("Send", mock.Anything, billingMessage()).Return(nil).Once()

		d := mail.NewDispatcher(nil, "mail_queue", delegate)
		assert.NoError(t, d.Handle(body))
		delegate.AssertExpectations(t)
	})

	t.Run("delivery failure requeues", func(t *testing.T) {
		delegate := new(MockSender)
		delegate.On("Send", mock.Anything, billingMessage()).Return(errors.New("mailgun down"))

		d := mail.NewDispatcher(nil, "mail_queue", delegate)
		assert.Error(t, d.Handle(body))
	})

	t.Run("malformed body is dropped", func(t *testing.T) {
		delegate := new(MockSender)

		d := mail.NewDispatcher(nil, "mail_queue", delegate)
		assert.NoError(t, d.Handle([]byte("{not json")))
		delegate.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestMailgun_Send(t *testing.T) {
	var (
		gotPath     string
		gotUser     string
		gotPassword string
		gotForm     map[string]string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPassword, _ = r.BasicAuth()
		_ = r.ParseForm()
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := mail.NewMailgun("key-123", "mg.example.com", "Eats <no-reply@example.com>", server.URL)
	err := m.Send(context.Background(), billingMessage())
	require.NoError(t, err)

	assert.Equal(t, "/v3/mg.example.com/messages", gotPath)
	assert.Equal(t, "api", gotUser)
	assert.Equal(t, "key-123", gotPassword)
	assert.Equal(t, "customer@example.com", gotForm["to"])
	assert.Equal(t, "billing", gotForm["template"])
	assert.Equal(t, "customer", gotForm["v:username"])
	assert.Equal(t, "order-1", gotForm["v:orderId"])
}

func TestMailgun_SendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	m := mail.NewMailgun("bad-key", "mg.example.com", "no-reply@example.com", server.URL)
	err := m.Send(context.Background(), billingMessage())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
