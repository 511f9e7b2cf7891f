package points

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReason(t *testing.T) {
	t.Run("IsValid returns true for valid reasons", func(t *testing.T) {
		assert.True(t, ReasonGranted.IsValid())
		assert.True(t, ReasonReceived.IsValid())
	})

	t.Run("IsValid returns false for invalid reason", func(t *testing.T) {
		invalid := Reason("X")
		assert.False(t, invalid.IsValid())
	})

	t.Run("String returns correct value", func(t *testing.T) {
		assert.Equal(t, "D", ReasonGranted.String())
		assert.Equal(t, "R", ReasonReceived.String())
	})
}

func TestOrigin(t *testing.T) {
	t.Run("IsValid returns true for valid origins", func(t *testing.T) {
		assert.True(t, OriginPeer.IsValid())
		assert.True(t, OriginReferral.IsValid())
	})

	t.Run("IsValid returns false for invalid origin", func(t *testing.T) {
		invalid := Origin("9")
		assert.False(t, invalid.IsValid())
	})

	t.Run("String returns correct value", func(t *testing.T) {
		assert.Equal(t, "0", OriginPeer.String())
		assert.Equal(t, "3", OriginReferral.String())
	})
}

func TestNewLedgerEntry(t *testing.T) {
	receiverID := uuid.New()
	counterpartyID := uuid.New()

	t.Run("creates valid entry", func(t *testing.T) {
		entry, err := NewLedgerEntry(receiverID, counterpartyID, 100, ReasonReceived, OriginPeer)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, receiverID, entry.ReceiverID)
		assert.Equal(t, counterpartyID, entry.CounterpartyID)
		assert.Equal(t, int64(100), entry.Points)
		assert.Equal(t, ReasonReceived, entry.Reason)
		assert.Equal(t, OriginPeer, entry.Origin)
		assert.Nil(t, entry.ActivityID)
		assert.Nil(t, entry.IdempotencyKey)
		assert.False(t, entry.OccurredAt.IsZero())
	})

	t.Run("fails with nil receiver", func(t *testing.T) {
		_, err := NewLedgerEntry(uuid.Nil, counterpartyID, 100, ReasonReceived, OriginPeer)
		assert.Error(t, err)
	})

	t.Run("fails with nil counterparty", func(t *testing.T) {
		_, err := NewLedgerEntry(receiverID, uuid.Nil, 100, ReasonReceived, OriginPeer)
		assert.Error(t, err)
	})

	t.Run("fails with zero amount", func(t *testing.T) {
		_, err := NewLedgerEntry(receiverID, counterpartyID, 0, ReasonReceived, OriginPeer)
		assert.Error(t, err)
	})

	t.Run("fails with negative amount", func(t *testing.T) {
		_, err := NewLedgerEntry(receiverID, counterpartyID, -50, ReasonReceived, OriginPeer)
		assert.Error(t, err)
	})

	t.Run("fails with invalid reason", func(t *testing.T) {
		_, err := NewLedgerEntry(receiverID, counterpartyID, 100, Reason("X"), OriginPeer)
		assert.Error(t, err)
	})

	t.Run("fails with invalid origin", func(t *testing.T) {
		_, err := NewLedgerEntry(receiverID, counterpartyID, 100, ReasonReceived, Origin("9"))
		assert.Error(t, err)
	})
}

func TestLedgerEntryBuilders(t *testing.T) {
	entry, err := NewLedgerEntry(uuid.New(), uuid.New(), 100, ReasonReceived, OriginReferral)
	require.NoError(t, err)

	t.Run("WithActivityID links the activity", func(t *testing.T) {
		activityID := uuid.New()
		entry.WithActivityID(activityID)

		require.NotNil(t, entry.ActivityID)
		assert.Equal(t, activityID, *entry.ActivityID)
		assert.True(t, entry.IsActivityLinked())
	})

	t.Run("WithIdempotencyKey sets the token", func(t *testing.T) {
		entry.WithIdempotencyKey("client-token-1")

		require.NotNil(t, entry.IdempotencyKey)
		assert.Equal(t, "client-token-1", *entry.IdempotencyKey)
	})

	t.Run("WithOccurredAt overrides the timestamp", func(t *testing.T) {
		ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		entry.WithOccurredAt(ts)

		assert.Equal(t, ts, entry.OccurredAt)
	})
}

func TestNewActivityGrant(t *testing.T) {
	granterID := uuid.New()
	activityID := uuid.New()

	t.Run("creates valid grant", func(t *testing.T) {
		grant, err := NewActivityGrant(granterID, activityID, 25)

		require.NoError(t, err)
		assert.Equal(t, granterID, grant.GranterID)
		assert.Equal(t, activityID, grant.ActivityID)
		assert.Equal(t, int64(25), grant.Points)
		assert.False(t, grant.GrantedAt.IsZero())
	})

	t.Run("fails with nil granter", func(t *testing.T) {
		_, err := NewActivityGrant(uuid.Nil, activityID, 25)
		assert.Error(t, err)
	})

	t.Run("fails with nil activity", func(t *testing.T) {
		_, err := NewActivityGrant(granterID, uuid.Nil, 25)
		assert.Error(t, err)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		_, err := NewActivityGrant(granterID, activityID, 0)
		assert.Error(t, err)

		_, err = NewActivityGrant(granterID, activityID, -10)
		assert.Error(t, err)
	})
}
