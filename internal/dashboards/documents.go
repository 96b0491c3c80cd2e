package dashboards

// StatusDocument is the decoded body of GET /api/status. Only the health
// states are consumed; the rest of the payload (version, metrics echoes)
// is ignored.
type StatusDocument struct {
	Status *StatusSection `json:"status"`
}

// StatusSection carries the overall state plus one entry per core
// component and plugin.
type StatusSection struct {
	Overall  *ComponentStatus  `json:"overall"`
	Statuses []ComponentStatus `json:"statuses"`
}

// ComponentStatus is a single health entry. ID identifies the component
// (e.g. "core:savedObjects@2.11.0"), State is its color keyword.
type ComponentStatus struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

// StatsDocument is the decoded body of GET /api/stats. Every section is
// optional; a nil section means the upstream did not report it.
type StatsDocument struct {
	ConcurrentConnections *float64       `json:"concurrent_connections"`
	Process               *ProcessStats  `json:"process"`
	OS                    *OSStats       `json:"os"`
	ResponseTimes         *ResponseTimes `json:"response_times"`
	Requests              *RequestStats  `json:"requests"`
}

// ProcessStats covers the Node.js process: uptime, event loop, memory.
type ProcessStats struct {
	UptimeInMillis *float64       `json:"uptime_in_millis"`
	EventLoopDelay *float64       `json:"event_loop_delay"`
	Memory         *ProcessMemory `json:"memory"`
}

// ProcessMemory nests the heap figures and the resident set size.
type ProcessMemory struct {
	Heap                   *HeapStats `json:"heap"`
	ResidentSetSizeInBytes *float64   `json:"resident_set_size_in_bytes"`
}

// HeapStats are the V8 heap readings in bytes.
type HeapStats struct {
	TotalInBytes *float64 `json:"total_in_bytes"`
	UsedInBytes  *float64 `json:"used_in_bytes"`
	SizeLimit    *float64 `json:"size_limit"`
}

// OSStats covers the host as seen by the Dashboards process.
type OSStats struct {
	Load   *LoadAverages `json:"load"`
	Memory *OSMemory     `json:"memory"`
}

// LoadAverages are the standard one, five and fifteen minute load figures.
type LoadAverages struct {
	OneM     *float64 `json:"1m"`
	FiveM    *float64 `json:"5m"`
	FifteenM *float64 `json:"15m"`
}

// OSMemory is host memory in bytes.
type OSMemory struct {
	TotalInBytes *float64 `json:"total_in_bytes"`
	FreeInBytes  *float64 `json:"free_in_bytes"`
	UsedInBytes  *float64 `json:"used_in_bytes"`
}

// ResponseTimes are served-request latencies in milliseconds.
type ResponseTimes struct {
	AvgInMillis *float64 `json:"avg_in_millis"`
	MaxInMillis *float64 `json:"max_in_millis"`
}

// RequestStats are request counters since process start.
type RequestStats struct {
	Disconnects *float64 `json:"disconnects"`
	Total       *float64 `json:"total"`
}

// Heap returns the heap section, or nil when any level of the nesting is
// absent. Keeps callers free of chained nil checks.
func (d *StatsDocument) Heap() *HeapStats {
	if d.Process == nil || d.Process.Memory == nil {
		return nil
	}
	return d.Process.Memory.Heap
}

// Load returns the OS load section, or nil when absent.
func (d *StatsDocument) Load() *LoadAverages {
	if d.OS == nil {
		return nil
	}
	return d.OS.Load
}

// OSMemory returns the OS memory section, or nil when absent.
func (d *StatsDocument) OSMemory() *OSMemory {
	if d.OS == nil {
		return nil
	}
	return d.OS.Memory
}
