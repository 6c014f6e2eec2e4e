package domain

// Default configuration values
const (
	DefaultGranularityMinutes = 60
	DefaultWaitlistExpiryDays = 7
	DefaultSweepBatchSize     = 100
	DefaultDispatchBatchSize  = 50
)

// Business validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 480 // 8 hours
	MaxPurposeLength      = 200
	MaxNotesLength        = 500
	MaxReasonLength       = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов бронирования
// Бронирования в этих статусах не участвуют в инварианте непересечения
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
