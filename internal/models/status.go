package models

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCooking   Status = "Cooking"
	StatusCooked    Status = "Cooked"
	StatusPickedUp  Status = "PickedUp"
	StatusDelivered Status = "Delivered"
)

var statusRank = map[Status]int{
	StatusPending:   0,
	StatusCooking:   1,
	StatusCooked:    2,
	StatusPickedUp:  3,
	StatusDelivered: 4,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Before reports whether s comes strictly earlier than other in the lifecycle.
func (s Status) Before(other Status) bool {
	return s.Valid() && other.Valid() && statusRank[s] < statusRank[other]
}

// transitions lists, per role, the status changes that role may request.
// Every entry moves strictly forward along the lifecycle. Drivers may also
// move Cooked to PickedUp, otherwise no role could ever reach PickedUp.
var transitions = map[Role]map[Status][]Status{
	RoleOwner: {
		StatusPending: {StatusCooking, StatusCooked},
		StatusCooking: {StatusCooked},
	},
	RoleDriver: {
		StatusCooked:   {StatusPickedUp},
		StatusPickedUp: {StatusDelivered},
	},
}

// CanTransition checks if role may move an order from -> to.
func CanTransition(role Role, from, to Status) bool {
	for _, next := range transitions[role][from] {
		if next == to {
			return true
		}
	}
	return false
}
