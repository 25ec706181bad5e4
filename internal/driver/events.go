package driver

import "context"

// Status is the progress state of one file.
type Status uint8

const (
	StatusQueued Status = iota
	StatusParsing
	StatusChecking
	// StatusCached means the result came from the disk cache.
	StatusCached
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusParsing:
		return "parsing"
	case StatusChecking:
		return "checking"
	case StatusCached:
		return "cached"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return ""
}

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	return s == StatusCached || s == StatusDone || s == StatusError
}

// Event reports a file changing status. File is the path as loaded.
type Event struct {
	File   string
	Status Status
}

func emit(ctx context.Context, ch chan<- Event, file string, st Status) {
	if ch == nil {
		return
	}
	select {
	case ch <- Event{File: file, Status: st}:
	case <-ctx.Done():
	}
}
