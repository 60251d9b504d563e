package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testCommand struct {
	Value   string
	invalid bool
}

func (c testCommand) Validate() error {
	if c.invalid {
		return errors.New("invalid command")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

func TestCommandBus_Dispatch(t *testing.T) {
	b := NewCommandBus()

	var received testCommand
	handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		received = cmd.(testCommand)
		return nil
	})
	require.NoError(t, b.Register(testCommand{}, handler))

	err := b.Send(context.Background(), testCommand{Value: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", received.Value)
}

func TestCommandBus_ValidatesBeforeDispatch(t *testing.T) {
	b := NewCommandBus()

	called := false
	require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		called = true
		return nil
	})))

	err := b.Send(context.Background(), testCommand{invalid: true})
	require.Error(t, err)
	assert.False(t, called, "invalid commands never reach the handler")
}

func TestCommandBus_UnregisteredCommand(t *testing.T) {
	b := NewCommandBus()

	err := b.Send(context.Background(), otherCommand{})
	assert.Error(t, err)
}

func TestCommandBus_DuplicateRegistration(t *testing.T) {
	b := NewCommandBus()
	noop := CommandHandlerFunc(func(ctx context.Context, cmd Command) error { return nil })

	require.NoError(t, b.Register(testCommand{}, noop))
	assert.Error(t, b.Register(testCommand{}, noop))
}

func TestCommandBus_HandlerErrorPropagates(t *testing.T) {
	b := NewCommandBus()
	handlerErr := errors.New("storage down")

	require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return handlerErr
	})))

	err := b.Send(context.Background(), testCommand{})
	assert.ErrorIs(t, err, handlerErr)
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	handlerErr := errors.New("boom")
	wrapped := LoggingMiddleware(zap.NewNop())(CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return handlerErr
	}))

	assert.ErrorIs(t, wrapped.Handle(context.Background(), testCommand{}), handlerErr)
}
