package components

// RentStationComponent 交租台
type RentStationComponent struct {
	InteractRange float64
	RentDue       bool
}
