package download

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/kestrelforge/javart/internal/appdata"
	"github.com/kestrelforge/javart/internal/applog"
	"github.com/kestrelforge/javart/internal/atomicio"
	"github.com/kestrelforge/javart/internal/catalog"
)

// PendingDownload is an install intent that survives a restart until the
// corresponding JavaInstallation has been produced.
type PendingDownload struct {
	MajorVersion int               `json:"majorVersion"`
	ImageType    catalog.ImageType `json:"imageType"`
	DownloadURL  string            `json:"downloadUrl"`
	ArchiveFile  string            `json:"archiveFile"`
	FileSize     int64             `json:"fileSize"`
	Checksum     string            `json:"checksum,omitempty"`
	InstallDir   string            `json:"installDir"`
	CreatedAt    time.Time         `json:"createdAt"`
}

func (p PendingDownload) key() string {
	return string(p.ImageType) + "/" + strconv.Itoa(p.MajorVersion)
}

// Queue is the in-memory view of java_download_queue.json.
type Queue struct {
	Entries []PendingDownload
}

// LoadQueue reads the persisted queue. A missing or corrupt file yields an
// empty queue rather than an error.
func LoadQueue() *Queue {
	data, err := os.ReadFile(appdata.QueuePath())
	if err != nil {
		return &Queue{}
	}
	var entries []PendingDownload
	if err := json.Unmarshal(data, &entries); err != nil {
		applog.Warnf("java_download_queue.json is corrupt, starting empty: %v", err)
		return &Queue{}
	}
	return &Queue{Entries: entries}
}

// Save persists the queue atomically.
func (q *Queue) Save() error {
	data, err := json.MarshalIndent(q.Entries, "", "  ")
	if err != nil {
		return err
	}
	return atomicio.WriteFile(appdata.QueuePath(), data)
}

// Add inserts p, replacing any existing entry with the same
// (major_version, image_type) key.
func (q *Queue) Add(p PendingDownload) {
	for i, existing := range q.Entries {
		if existing.key() == p.key() {
			q.Entries[i] = p
			return
		}
	}
	q.Entries = append(q.Entries, p)
}

// Remove deletes the entry for (major, imageType), if any.
func (q *Queue) Remove(major int, imageType catalog.ImageType) {
	target := PendingDownload{MajorVersion: major, ImageType: imageType}.key()
	out := q.Entries[:0]
	for _, e := range q.Entries {
		if e.key() != target {
			out = append(out, e)
		}
	}
	q.Entries = out
}

// List returns every pending entry.
func (q *Queue) List() []PendingDownload {
	return q.Entries
}
