// Package events defines the progress event types emitted by the download
// and install pipeline through an injected sink, decoupling those
// subsystems from any particular UI.
package events

// Status is the lifecycle state of a single file transfer or install step.
type Status string

const (
	StatusDownloading Status = "Downloading"
	StatusVerifying   Status = "Verifying"
	StatusSkipped     Status = "Skipped"
	StatusExtracting  Status = "Extracting"
	StatusCompleted   Status = "Completed"
	StatusError       Status = "Error"
	StatusCancelled   Status = "Cancelled"
)

// Progress describes the state of one in-flight file transfer.
type Progress struct {
	FileName        string
	DownloadedBytes int64
	TotalBytes      int64
	BytesPerSecond  float64
	ETASeconds      float64
	Status          Status
	Percentage      float64
}

// Sink receives progress events. Implementations must not block the
// caller for long; a TUI sink typically forwards to a channel.
type Sink interface {
	OnDownloadStart(count int)
	OnProgress(p Progress)
	OnDownloadComplete()
}

// NoopSink discards every event. Useful when a caller does not care about
// progress reporting (e.g. scripted, non-interactive invocations).
type NoopSink struct{}

func (NoopSink) OnDownloadStart(int) {}
func (NoopSink) OnProgress(Progress) {}
func (NoopSink) OnDownloadComplete() {}

// ChannelSink forwards every event onto a buffered channel, for consumption
// by a bubbletea program via tea.Program.Send or a polling loop.
type ChannelSink struct {
	Events chan Event
}

// Event is a tagged union of the three event kinds a ChannelSink emits.
type Event struct {
	Kind     EventKind
	Count    int
	Progress Progress
}

type EventKind string

const (
	EventDownloadStart    EventKind = "download-start"
	EventDownloadProgress EventKind = "download-progress"
	EventDownloadComplete EventKind = "download-complete"
)

// NewChannelSink creates a ChannelSink with the given channel buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{Events: make(chan Event, buffer)}
}

func (c *ChannelSink) OnDownloadStart(count int) {
	c.emit(Event{Kind: EventDownloadStart, Count: count})
}

func (c *ChannelSink) OnProgress(p Progress) {
	c.emit(Event{Kind: EventDownloadProgress, Progress: p})
}

func (c *ChannelSink) OnDownloadComplete() {
	c.emit(Event{Kind: EventDownloadComplete})
}

func (c *ChannelSink) emit(e Event) {
	select {
	case c.Events <- e:
	default:
		// Drop rather than block a downloading goroutine on a slow consumer.
	}
}
