package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/gasdetection/iot-gas-bridge/pkg/types"
)

func TestNewStoreHasDefaults(t *testing.T) {
	is := is.New(t)
	s := New()

	snapshot := s.Snapshot()
	is.Equal(snapshot.Mode, types.ModeAuto)
	is.Equal(snapshot.Threshold, 4000)
	is.True(!snapshot.Connected)
}

func TestUpdateStampsLastUpdate(t *testing.T) {
	is := is.New(t)
	s := New()

	before := time.Now()
	s.Update(func(sn *types.SensorSnapshot) { sn.MQ2 = 850 })

	snapshot := s.Snapshot()
	is.Equal(snapshot.MQ2, 850)
	is.True(!snapshot.LastUpdate.Before(before))
}

func TestSetConnectedDoesNotStampLastUpdate(t *testing.T) {
	is := is.New(t)
	s := New()

	s.SetConnected(true)

	snapshot := s.Snapshot()
	is.True(snapshot.Connected)
	is.True(snapshot.LastUpdate.IsZero())
}

func TestSnapshotIsACopy(t *testing.T) {
	is := is.New(t)
	s := New()

	snapshot := s.Snapshot()
	snapshot.MQ2 = 9000

	is.Equal(s.Snapshot().MQ2, 0)
}

func TestHistoryIsNewestFirst(t *testing.T) {
	is := is.New(t)
	s := New()

	s.AddNotification(types.Notification{Message: "first"})
	s.AddNotification(types.Notification{Message: "second"})

	notifications := s.Notifications(2)
	is.Equal(notifications[0].Message, "second")
	is.Equal(notifications[1].Message, "first")
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	is := is.New(t)
	s := New()

	for i := 1; i <= MaxNotifications+1; i++ {
		s.AddNotification(types.Notification{Message: fmt.Sprintf("N%d", i)})
	}

	is.Equal(s.NotificationCount(), MaxNotifications)

	notifications := s.Notifications(MaxNotifications)
	is.Equal(notifications[0].Message, fmt.Sprintf("N%d", MaxNotifications+1))
	is.Equal(notifications[MaxNotifications-1].Message, "N2")
}

func TestNotificationsClampsLimit(t *testing.T) {
	is := is.New(t)
	s := New()

	s.AddNotification(types.Notification{Message: "only"})

	is.Equal(len(s.Notifications(50)), 1)
	is.Equal(len(s.Notifications(-1)), 1)
	is.Equal(len(s.Notifications(0)), 0)
}
