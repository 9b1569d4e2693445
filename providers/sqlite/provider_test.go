package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Konsultn-Engineering/sqlfrag/connector"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, connector.Drivers(), Driver)

	d := (&Provider{}).Dialect()
	assert.Equal(t, "sqlite", d.Name())
	assert.Equal(t, "?2", d.Placeholder(2))
}
