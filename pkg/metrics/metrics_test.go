package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond)
		m.SetDBPoolStats(1, 1, 0)
		m.IncSlotReservation(ReservationReserved)
		m.IncReminder(ReminderSent)
		m.SetRemindersPending(3)
	})
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg, "salon")

	m.IncSlotReservation(ReservationReserved)
	m.IncSlotReservation(ReservationTaken)
	m.IncSlotReservation(ReservationTaken)
	m.IncReminder(ReminderDeadLetter)
	m.SetRemindersPending(5)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotReservations.WithLabelValues("salon", ReservationReserved)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotReservations.WithLabelValues("salon", ReservationTaken)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemindersTotal.WithLabelValues("salon", ReminderDeadLetter)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.RemindersPending.WithLabelValues("salon")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
