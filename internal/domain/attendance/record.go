// internal/domain/attendance/record.go
package attendance

// Log entry types as written by the attendance client.
const (
	LogTypeIn  = "in"
	LogTypeOut = "out"
)

const (
	LabelCheckIn  = "Check-In"
	LabelCheckOut = "Check-Out"

	// FallbackName is shown when the record carries no display name.
	FallbackName = "An employee"
)

// LogEntry is one check-in or check-out event.
type LogEntry struct {
	Type string `firestore:"type"`
	Time string `firestore:"time"` // Display string, format is up to the writer
}

// Record is the per-employee, per-date attendance document stored at
// attendance/{date}/records/{employeeId}. Logs are in insertion order.
type Record struct {
	Name string     `firestore:"name"`
	Logs []LogEntry `firestore:"logs"`
}

// Snapshot is the state of a Record on one side of a write.
// Exists is false when the write deleted the document.
type Snapshot struct {
	Exists bool
	Record Record
}

// PathParams are the wildcards of the attendance document path.
type PathParams struct {
	Date       string
	EmployeeID string
}

// LatestLog returns the last log entry, or false when there are none.
func (r Record) LatestLog() (LogEntry, bool) {
	if len(r.Logs) == 0 {
		return LogEntry{}, false
	}
	return r.Logs[len(r.Logs)-1], true
}

// DisplayName returns the record name or FallbackName when it is empty.
func (r Record) DisplayName() string {
	if r.Name == "" {
		return FallbackName
	}
	return r.Name
}

// Label maps the entry type to a notification label.
// Anything other than "in" is reported as a check-out.
func (e LogEntry) Label() string {
	if e.Type == LogTypeIn {
		return LabelCheckIn
	}
	return LabelCheckOut
}
