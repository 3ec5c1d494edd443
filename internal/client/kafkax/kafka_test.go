// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package kafkax

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { f.closed = true; return nil }

// fakeReader serves queued messages, then blocks until the fetch context
// expires like a real reader on an idle topic.
type fakeReader struct {
	queue  []kafka.Message
	err    error
	closed bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if f.err != nil {
		return kafka.Message{}, f.err
	}
	if len(f.queue) > 0 {
		msg := f.queue[0]
		f.queue = f.queue[1:]
		return msg, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeReader) Close() error { f.closed = true; return nil }

func newClientUnderTest(t *testing.T, w *fakeWriter, r *fakeReader) *Client {
	t.Helper()
	c := New("events", logger.Nop())
	c.writer = w
	c.reader = r
	require.NoError(t, c.Init(context.Background(), map[string]any{
		"brokers": []any{"localhost:9092"},
		"topic":   "smoke.events",
	}))
	return c
}

func TestClient_InitValidation(t *testing.T) {
	c := New("events", logger.Nop())
	err := c.Init(context.Background(), map[string]any{"topic": "t"})
	assert.ErrorIs(t, err, client.ErrValidation)

	c = New("events", logger.Nop())
	err = c.Init(context.Background(), map[string]any{"brokers": []any{"localhost:9092"}})
	assert.ErrorIs(t, err, client.ErrValidation)
}

func TestClient_PublishAddsCorrelationHeader(t *testing.T) {
	w := &fakeWriter{}
	c := newClientUnderTest(t, w, &fakeReader{})

	require.NoError(t, c.Publish(context.Background(), []byte("k"), []byte("v")))
	require.Len(t, w.written, 1)

	msg := w.written[0]
	assert.Equal(t, "k", string(msg.Key))
	assert.Equal(t, "v", string(msg.Value))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "correlation-id", msg.Headers[0].Key)
	assert.NotEmpty(t, msg.Headers[0].Value)
}

func TestClient_PublishBeforeInit(t *testing.T) {
	c := New("events", logger.Nop())
	err := c.Publish(context.Background(), nil, []byte("v"))
	assert.ErrorIs(t, err, client.ErrNotInitialized)
}

func TestClient_WaitForMessage(t *testing.T) {
	r := &fakeReader{queue: []kafka.Message{
		{Value: []byte("unrelated")},
		{Value: []byte(`{"order":"42","status":"shipped"}`)},
	}}
	c := newClientUnderTest(t, &fakeWriter{}, r)

	msg, err := c.WaitForMessage(context.Background(), "shipped", time.Second, 10*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Contains(t, string(msg.Value), "shipped")
}

func TestClient_WaitForMessageTimesOut(t *testing.T) {
	c := newClientUnderTest(t, &fakeWriter{}, &fakeReader{})

	msg, err := c.WaitForMessage(context.Background(), "never", 30*time.Millisecond, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestClient_WaitForMessageFetchError(t *testing.T) {
	boom := errors.New("broker gone")
	c := newClientUnderTest(t, &fakeWriter{}, &fakeReader{err: boom})

	_, err := c.WaitForMessage(context.Background(), "x", time.Second, 10*time.Millisecond)
	assert.ErrorIs(t, err, boom)
}

func TestClient_ResetClosesBoth(t *testing.T) {
	w := &fakeWriter{}
	r := &fakeReader{}
	c := newClientUnderTest(t, w, r)

	require.NoError(t, c.Reset(context.Background()))
	assert.True(t, w.closed)
	assert.True(t, r.closed)
	assert.False(t, c.IsInitialized())
}
