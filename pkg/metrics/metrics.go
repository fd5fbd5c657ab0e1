package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты резервирования слота
const (
	ReservationReserved = "reserved"
	ReservationTaken    = "taken"
	ReservationError    = "error"
)

// Результаты отправки напоминаний
const (
	ReminderSent       = "sent"
	ReminderRetry      = "retry"
	ReminderDeadLetter = "dead_letter"
	ReminderDropped    = "dropped"
)

// Metrics набор метрик Prometheus сервиса
// Все методы безопасны для nil-получателя (метрики выключены в конфиге)
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	SlotReservations *prometheus.CounterVec
	RemindersTotal   *prometheus.CounterVec
	RemindersPending *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		SlotReservations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_slot_reservations_total",
			Help: "Slot reservation attempts by result",
		}, []string{"service", "result"}),

		RemindersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_reminders_total",
			Help: "Reminder deliveries by result",
		}, []string{"service", "result"}),

		RemindersPending: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "salon_reminders_pending",
			Help: "Number of armed reminder timers",
		}, []string{"service"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats выставляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.DBInUseConnections.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.DBIdleConnections.WithLabelValues(m.serviceName).Set(float64(idle))
}

// IncSlotReservation считает попытку резервирования слота
func (m *Metrics) IncSlotReservation(result string) {
	if m == nil {
		return
	}
	m.SlotReservations.WithLabelValues(m.serviceName, result).Inc()
}

// IncReminder считает результат доставки напоминания
func (m *Metrics) IncReminder(result string) {
	if m == nil {
		return
	}
	m.RemindersTotal.WithLabelValues(m.serviceName, result).Inc()
}

// SetRemindersPending выставляет число взведенных таймеров
func (m *Metrics) SetRemindersPending(n int) {
	if m == nil {
		return
	}
	m.RemindersPending.WithLabelValues(m.serviceName).Set(float64(n))
}
