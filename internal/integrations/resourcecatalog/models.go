package resourcecatalog

import "github.com/campushub/CB-ReservationService/pkg/types"

// ResourceType тип ресурса в каталоге
type ResourceType string

const (
	TypeRoom            ResourceType = "room"
	TypeWorkstation     ResourceType = "workstation"
	TypeCirculatingItem ResourceType = "circulating_item"
	TypeEquipment       ResourceType = "equipment"
)

// Resource модель ресурса из каталога
type Resource struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Type           ResourceType   `json:"type"`
	Capacity       int            `json:"capacity"`
	Location       *string        `json:"location,omitempty"`
	OperatingHours WeeklySchedule `json:"operatingHours"`
	IsActive       bool           `json:"isActive"`
}

// WeeklySchedule расписание работы ресурса по дням недели
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы ресурса на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "08:00"
	CloseTime *string `json:"closeTime,omitempty"` // "22:00"
}

// Window возвращает границы рабочего дня как TimeString
// Возвращает ok=false, если ресурс закрыт в этот день
func (d DaySchedule) Window() (open, close types.TimeString, ok bool) {
	if !d.IsOpen || d.OpenTime == nil || d.CloseTime == nil {
		return "", "", false
	}
	return types.TimeString(*d.OpenTime), types.TimeString(*d.CloseTime), true
}
