//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"roster/pkg/testutil/containers"
)

func TestKafkaStore_AppendProducesKeyedJSON(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	broker := containers.GetManager().GetRedpanda(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "roster.audit.test"
	store, err := NewKafkaStore(broker.Brokers, topic)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.EnsureTopic(ctx, 1, 1))
	require.NoError(t, store.EnsureTopic(ctx, 1, 1), "ensuring an existing topic is a no-op")

	event := Event{
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Action:    ActionPersonAdded,
		Subject:   "person-1",
		RequestID: "req-1",
	}
	require.NoError(t, store.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, "person-1", string(records[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, event, got)
}
