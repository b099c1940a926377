package messaging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/abgdnv/catalog/internal/platform/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type testEvent struct{}

func (testEvent) Subject() string          { return "test.subject" }
func (testEvent) Payload() ([]byte, error) { return []byte(`{}`), nil }

// MockPublisher is a mock implementation of the Publisher interface.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	// given
	next := new(MockPublisher)
	next.On("Publish", mock.Anything, testEvent{}).Return(nil).Twice()
	p := NewBreakerPublisher(next, config.CircuitBreakerConfig{ConsecutiveFailures: 3, ErrorRatePercent: 50, OpenTimeout: time.Minute}, discardLogger())

	// when
	err1 := p.Publish(context.Background(), testEvent{})
	err2 := p.Publish(context.Background(), testEvent{})

	// then
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	next.AssertExpectations(t)
}

func TestBreakerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	// given
	brokerDown := errors.New("no responders")
	next := new(MockPublisher)
	next.On("Publish", mock.Anything, testEvent{}).Return(brokerDown).Times(2)
	p := NewBreakerPublisher(next, config.CircuitBreakerConfig{ConsecutiveFailures: 2, ErrorRatePercent: 100, OpenTimeout: time.Minute}, discardLogger())

	// when
	err1 := p.Publish(context.Background(), testEvent{})
	err2 := p.Publish(context.Background(), testEvent{})
	err3 := p.Publish(context.Background(), testEvent{})

	// then
	assert.ErrorIs(t, err1, brokerDown)
	assert.ErrorIs(t, err2, brokerDown)
	assert.ErrorIs(t, err3, gobreaker.ErrOpenState, "open breaker must not call the publisher")
	next.AssertExpectations(t)
	next.AssertNumberOfCalls(t, "Publish", 2)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), testEvent{}))
}
