package domain

type PID int32
type PidStatus string

const (
	RUNNING PidStatus = "RUNNING"
	SLEEP   PidStatus = "SLEEP"
	STOP    PidStatus = "STOP"
	IDLE    PidStatus = "IDLE"
	ZOMBIE  PidStatus = "ZOMBIE"
	WAIT    PidStatus = "WAIT"
	LOCK    PidStatus = "LOCK"
	UNKNOWN PidStatus = "UNKNOWN"
)

var pidStatuses = map[string]PidStatus{
	"R": RUNNING,
	"S": SLEEP,
	"T": STOP,
	"I": IDLE,
	"Z": ZOMBIE,
	"W": WAIT,
	"L": LOCK,
}

// ToStatus maps the one-letter process state of the OS.
func ToStatus(status string) PidStatus {
	if s, ok := pidStatuses[status]; ok {
		return s
	}
	return UNKNOWN
}

// ProcessStats is a snapshot of the resources held by a player process.
type ProcessStats struct {
	PID    PID
	Status PidStatus
	CPU    float64
	RSS    uint64
	RAM    float32
}
