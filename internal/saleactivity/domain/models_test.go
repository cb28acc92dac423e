package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParkingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ParkingStatus
		to      ParkingStatus
		allowed bool
	}{
		{ParkingStatusStarted, ParkingStatusInFlight, true},
		{ParkingStatusStarted, ParkingStatusException, true},
		{ParkingStatusStarted, ParkingStatusCompleted, false},
		{ParkingStatusInFlight, ParkingStatusCompleted, true},
		{ParkingStatusInFlight, ParkingStatusException, true},
		{ParkingStatusInFlight, ParkingStatusStarted, false},
		{ParkingStatusCompleted, ParkingStatusException, true},
		{ParkingStatusCompleted, ParkingStatusInFlight, false},
		{ParkingStatusException, ParkingStatusStarted, false},
		{ParkingStatusException, ParkingStatusCompleted, false},
	}

	for _, tc := range cases {
		require.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestParkingStatusValid(t *testing.T) {
	require.True(t, ParkingStatusStarted.Valid())
	require.True(t, ParkingStatusException.Valid())
	require.False(t, ParkingStatus("PAUSED").Valid())
	require.False(t, ParkingStatus("").Valid())
}

func TestInFlight(t *testing.T) {
	entry := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	exit := entry.Add(time.Hour)

	require.True(t, SaleActivity{EntryDatetime: &entry}.InFlight())
	require.False(t, SaleActivity{EntryDatetime: &entry, ExitDatetime: &exit}.InFlight())
	require.False(t, SaleActivity{}.InFlight())
}
