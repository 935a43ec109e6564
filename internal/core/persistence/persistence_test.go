package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledStore(t *testing.T) {
	id, err := Disabled{}.Append(context.Background(), History, Entry{UserID: "u1"})
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Empty(t, id)
}
