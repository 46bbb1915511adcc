package model

// RunAction is what the driver does at a stop.
type RunAction string

const (
	RunActionDeliver RunAction = "deliver"
	RunActionCollect RunAction = "collect"
)

// RunStop is one unit of outstanding work on a driver's run: deliver a skip to a
// site or collect one from it. LastEvent carries the most recent timeline entry
// so the driver sees the latest note or status without a second lookup.
type RunStop struct {
	Action    RunAction `json:"action"`
	Job       *Job      `json:"job"`
	LastEvent *JobEvent `json:"last_event,omitempty"`
}

// DriverRun is the ordered set of outstanding stops for one driver on one date.
// It is a read-only projection derived from job records; it has no independent
// state. Stops are ordered by driver_run_group then driver_sort_key, so the two
// legs of a swap appear adjacent.
type DriverRun struct {
	DriverID string    `json:"driver_id"`
	Date     Date      `json:"date"`
	Stops    []RunStop `json:"stops"`
}
