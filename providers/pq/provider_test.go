package pq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Konsultn-Engineering/sqlfrag/connector"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, connector.Drivers(), Driver)
	assert.Equal(t, "postgres", (&Provider{}).Dialect().Name())
}
