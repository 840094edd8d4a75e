package rabbitmq_test

import (
	"testing"

	"rentdir/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := rabbitmq.NewClient(rabbitmq.Config{URL: "http://localhost:5672/"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to RabbitMQ")
}

func TestClient_WithoutChannel(t *testing.T) {
	c := &rabbitmq.Client{}
	assert.Error(t, c.Publish("activity.view", []byte(`{}`)))
	assert.Error(t, c.Consume("q", "#", nil))
	assert.NoError(t, c.Close())
}
