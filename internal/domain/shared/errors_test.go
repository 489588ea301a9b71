package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Is(t *testing.T) {
	custom := NewDomainError("NOT_FOUND", "invoice not found")

	assert.True(t, errors.Is(custom, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("load: %w", custom), ErrNotFound))
	assert.False(t, errors.Is(custom, ErrInsufficientStock))
	assert.False(t, errors.Is(errors.New("plain"), ErrNotFound))
	assert.Equal(t, "invoice not found", custom.Error())
}

func TestBaseAggregateRoot_PendingEvents(t *testing.T) {
	root := NewBaseAggregateRoot()
	require.Equal(t, 1, root.Version)
	assert.Equal(t, root.CreatedAt, root.UpdatedAt)

	first := NewBaseDomainEvent("InvoiceCreated", "Invoice", root.ID)
	second := NewBaseDomainEvent("InvoiceVoided", "Invoice", root.ID)
	root.RecordEvent(&first)
	root.RecordEvent(&second)

	events := root.PendingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "InvoiceCreated", events[0].EventType())
	assert.Equal(t, "InvoiceVoided", events[1].EventType())
	assert.Equal(t, root.ID, events[0].AggregateID())
	assert.NotEqual(t, uuid.Nil, events[0].EventID())
	assert.Equal(t, "UTC", events[0].OccurredAt().Location().String())

	root.ClearEvents()
	assert.Empty(t, root.PendingEvents())

	root.IncrementVersion()
	assert.Equal(t, 2, root.Version)
}

func TestFilter_Offset(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, 0, f.Offset())
	f.Page = 3
	assert.Equal(t, 100, f.Offset())
	f.Page = 0
	assert.Equal(t, 0, f.Offset())
}
