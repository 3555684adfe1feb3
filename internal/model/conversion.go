package model

import (
	"path/filepath"
	"strings"
	"time"
)

// ConversionItem records what happened to one source file during a batch
type ConversionItem struct {
	ID         string
	SourcePath string // input MP3
	OutputPath string // WAV written by the transcoder
	FinalPath  string // OutputPath, or the renamed file
	Status     ItemStatus
	Renamed    bool
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayName returns the source file name without its extension
func (ci *ConversionItem) GetDisplayName() string {
	name := filepath.Base(ci.SourcePath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// BatchReport summarizes a folder conversion
type BatchReport struct {
	InputDir  string
	OutputDir string
	Items     []*ConversionItem
	Skipped   int // directory entries that were not source files
}

// Converted returns the number of items that completed
func (r *BatchReport) Converted() int {
	return r.count(ItemStatusCompleted)
}

// Failed returns the number of items that ended in error
func (r *BatchReport) Failed() int {
	return r.count(ItemStatusError)
}

// Processed returns the number of items that reached a final status
func (r *BatchReport) Processed() int {
	n := 0
	for _, item := range r.Items {
		if item.Status.IsFinished() {
			n++
		}
	}
	return n
}

// FailedItems returns the items that ended in error
func (r *BatchReport) FailedItems() []*ConversionItem {
	var failed []*ConversionItem
	for _, item := range r.Items {
		if item.Status == ItemStatusError {
			failed = append(failed, item)
		}
	}
	return failed
}

func (r *BatchReport) count(status ItemStatus) int {
	n := 0
	for _, item := range r.Items {
		if item.Status == status {
			n++
		}
	}
	return n
}
