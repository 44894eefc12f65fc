package services

import (
	"testing"

	"github.com/prosync/prosync-api/internal/models"
	"github.com/prosync/prosync-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newConnectionService(db *gorm.DB) *ConnectionService {
	notificationService := NewNotificationService(repository.NewNotificationRepository(db))
	return NewConnectionService(
		repository.NewConnectionRepository(db),
		repository.NewUserRepository(db),
		notificationService,
	)
}

func countConnectionRequests(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ConnectionRequest{}).Count(&count).Error)
	return count
}

func TestConnectionService_Connect(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	request, outcome, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeRequested, outcome)
	require.Equal(t, models.StatusPending, request.Status)
	require.Equal(t, alice.ID, request.SenderID)

	notifications := notificationsFor(t, db, bob.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, "alice sent you a connection request", notifications[0].Message)
}

func TestConnectionService_ConnectSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")

	_, _, err := svc.Connect(alice.ID, alice.ID)
	require.ErrorIs(t, err, ErrSelfConnection)
}

func TestConnectionService_ConnectUnknownReceiver(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")

	_, _, err := svc.Connect(alice.ID, alice.ID+999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestConnectionService_OnePerUnorderedPair(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, outcome, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeRequested, outcome)

	// Repeat in the same direction surfaces the existing request
	repeat, outcome, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadySent, outcome)
	require.Equal(t, first.ID, repeat.ID)

	// The reverse direction does not create a second row either
	reverse, outcome, err := svc.Connect(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeRespondInstead, outcome)
	require.Equal(t, first.ID, reverse.ID)

	require.EqualValues(t, 1, countConnectionRequests(t, db))
}

func TestConnectionService_RespondAccept(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	request, _, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)

	// Only the receiver may respond
	_, err = svc.Respond(request.ID, alice.ID, models.DecisionAccept)
	require.ErrorIs(t, err, ErrNotRequestReceiver)

	accepted, err := svc.Respond(request.ID, bob.ID, models.DecisionAccept)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, accepted.Status)

	notifications := notificationsFor(t, db, alice.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, "bob accepted your connection request", notifications[0].Message)

	// The decision is terminal
	_, err = svc.Respond(request.ID, bob.ID, models.DecisionReject)
	require.ErrorIs(t, err, ErrRequestNotPending)

	// Connecting again in either direction reports the standing connection
	_, outcome, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyConnected, outcome)
	_, outcome, err = svc.Connect(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyConnected, outcome)
}

func TestConnectionService_RespondInvalidDecision(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	request, _, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Respond(request.ID, bob.ID, models.WorkflowDecision("MAYBE"))
	require.ErrorIs(t, err, ErrInvalidDecision)
}

func TestConnectionService_RejectedPairCanReconnect(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	request, _, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)

	rejected, err := svc.Respond(request.ID, bob.ID, models.DecisionReject)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, rejected.Status)

	// The rejected row is retained, not deleted
	require.EqualValues(t, 1, countConnectionRequests(t, db))

	// Either side may try again; the row reopens under the new sender
	reopened, outcome, err := svc.Connect(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeRequested, outcome)
	require.Equal(t, request.ID, reopened.ID)
	require.Equal(t, bob.ID, reopened.SenderID)
	require.Equal(t, models.StatusPending, reopened.Status)
	require.EqualValues(t, 1, countConnectionRequests(t, db))
}

func TestConnectionService_Status(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	// Anonymous observers get no status
	status, err := svc.Status(0, alice.ID)
	require.NoError(t, err)
	require.Empty(t, status)

	status, err = svc.Status(alice.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, ConnectionSelf, status)

	status, err = svc.Status(alice.ID, carol.ID)
	require.NoError(t, err)
	require.Equal(t, ConnectionNone, status)

	request, _, err := svc.Connect(alice.ID, bob.ID)
	require.NoError(t, err)

	status, err = svc.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, ConnectionPendingSent, status)

	status, err = svc.Status(bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, ConnectionPendingReceived, status)

	_, err = svc.Respond(request.ID, bob.ID, models.DecisionAccept)
	require.NoError(t, err)

	status, err = svc.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, ConnectionConnected, status)
}

func TestConnectionService_ListPending(t *testing.T) {
	db := newTestDB(t)
	svc := newConnectionService(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, _, err := svc.Connect(alice.ID, carol.ID)
	require.NoError(t, err)
	_, _, err = svc.Connect(bob.ID, carol.ID)
	require.NoError(t, err)

	pending, err := svc.ListPending(carol.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, request := range pending {
		require.Equal(t, models.StatusPending, request.Status)
		require.Equal(t, carol.ID, request.ReceiverID)
		require.NotEmpty(t, request.Sender.Username)
	}

	require.Empty(t, notificationsFor(t, db, alice.ID))
}
