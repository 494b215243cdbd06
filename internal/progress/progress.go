package progress

import (
	"fmt"
	"sync"
	"time"
)

// Reporter handles progress reporting for batch folder creation
type Reporter interface {
	// SetTotal sets the number of folders to process
	SetTotal(totalFolders int)
	// Start begins work on a folder
	Start(name string)
	// Complete marks the current folder as created
	Complete(path string)
	// Error reports a failure on the current folder
	Error(err error)
}

// Callback is a function that receives progress updates
type Callback func(update Update)

// Update represents a progress update
type Update struct {
	Type             UpdateType
	CurrentFolder    string
	CurrentPath      string
	FoldersCompleted int
	FoldersFailed    int
	FoldersTotal     int
	Elapsed          time.Duration
	Error            error
}

// Done returns the number of folders processed so far, failed or not
func (u Update) Done() int {
	return u.FoldersCompleted + u.FoldersFailed
}

// UpdateType indicates the type of progress update
type UpdateType int

const (
	UpdateStart UpdateType = iota
	UpdateComplete
	UpdateError
)

// CallbackReporter implements Reporter with a callback function
type CallbackReporter struct {
	callback         Callback
	mu               sync.Mutex
	currentFolder    string
	foldersTotal     int
	foldersCompleted int
	foldersFailed    int
	startTime        time.Time
}

// NewCallbackReporter creates a new CallbackReporter
func NewCallbackReporter(callback Callback) *CallbackReporter {
	return &CallbackReporter{
		callback: callback,
	}
}

// SetTotal sets the total number of folders and restarts the clock
func (r *CallbackReporter) SetTotal(totalFolders int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.foldersTotal = totalFolders
	r.foldersCompleted = 0
	r.foldersFailed = 0
	r.startTime = time.Now()
}

// Start begins work on a folder
func (r *CallbackReporter) Start(name string) {
	r.mu.Lock()
	r.currentFolder = name
	update := r.snapshot(UpdateStart)
	callback := r.callback
	r.mu.Unlock()

	// Call callback outside lock to prevent deadlock
	if callback != nil {
		callback(update)
	}
}

// Complete marks the current folder as created
func (r *CallbackReporter) Complete(path string) {
	r.mu.Lock()
	r.foldersCompleted++
	update := r.snapshot(UpdateComplete)
	update.CurrentPath = path
	callback := r.callback
	r.mu.Unlock()

	if callback != nil {
		callback(update)
	}
}

// Error reports a failure on the current folder
func (r *CallbackReporter) Error(err error) {
	r.mu.Lock()
	r.foldersFailed++
	update := r.snapshot(UpdateError)
	update.Error = err
	callback := r.callback
	r.mu.Unlock()

	if callback != nil {
		callback(update)
	}
}

// snapshot captures the current counters; callers hold r.mu
func (r *CallbackReporter) snapshot(t UpdateType) Update {
	var elapsed time.Duration
	if !r.startTime.IsZero() {
		elapsed = time.Since(r.startTime)
	}
	return Update{
		Type:             t,
		CurrentFolder:    r.currentFolder,
		FoldersCompleted: r.foldersCompleted,
		FoldersFailed:    r.foldersFailed,
		FoldersTotal:     r.foldersTotal,
		Elapsed:          elapsed,
	}
}

// NullReporter is a no-op reporter
type NullReporter struct{}

func (NullReporter) SetTotal(totalFolders int) {}
func (NullReporter) Start(name string)         {}
func (NullReporter) Complete(path string)      {}
func (NullReporter) Error(err error)           {}

// FormatProgress returns a progress bar string
func FormatProgress(current, total int64, width int) string {
	if total == 0 {
		return ""
	}

	percent := float64(current) / float64(total)
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}

	bar := make([]byte, width)
	for i := 0; i < width; i++ {
		if i < filled {
			bar[i] = '='
		} else if i == filled {
			bar[i] = '>'
		} else {
			bar[i] = ' '
		}
	}

	return fmt.Sprintf("[%s] %5.1f%%", string(bar), percent*100)
}

// FormatCount returns "done/total" padded to the width of total
func FormatCount(done, total int) string {
	width := len(fmt.Sprint(total))
	return fmt.Sprintf("%*d/%d", width, done, total)
}
