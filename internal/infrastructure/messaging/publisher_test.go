package messaging

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRabbitPublisher_DisabledWithoutURL(t *testing.T) {
	p, err := NewRabbitPublisher("", "skillsift.events", log.New(io.Discard, "", 0))
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	err = p.Publish(context.Background(), RoutingAnalysisCompleted, AnalysisCompletedEvent{EventType: RoutingAnalysisCompleted})
	assert.NoError(t, err)
	assert.Error(t, p.Ping(context.Background()))
	assert.NoError(t, p.Close())
}

func TestRabbitPublisher_NilIsDisabled(t *testing.T) {
	var p *RabbitPublisher
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), RoutingIndustryUpdated, nil))
}
