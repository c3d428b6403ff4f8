package model

// UserStatus is the lifecycle state of a user. It is stored as an integer.
type UserStatus int

const (
	StatusInactive UserStatus = 0
	StatusActive   UserStatus = 1
	StatusPending  UserStatus = 2
)

var userStatusNames = map[UserStatus]string{
	StatusInactive: "inactive",
	StatusActive:   "active",
	StatusPending:  "pending",
}

func (s UserStatus) String() string {
	if n, ok := userStatusNames[s]; ok {
		return n
	}
	return "unknown"
}

// Priority ranks a task.
type Priority int

const (
	PriorityLow      Priority = 0
	PriorityMedium   Priority = 1
	PriorityHigh     Priority = 2
	PriorityCritical Priority = 3
)

var priorityNames = map[Priority]string{
	PriorityLow:      "low",
	PriorityMedium:   "medium",
	PriorityHigh:     "high",
	PriorityCritical: "critical",
}

func (p Priority) String() string {
	if n, ok := priorityNames[p]; ok {
		return n
	}
	return "unknown"
}
