// Package job holds the typed view of a crawl job as the API reports it.
package job

import (
	"fmt"
	"strings"
)

// Job represents one crawl job.
type Job struct {
	ID             string            `json:"id"`
	Spider         string            `json:"spider"`
	SpiderArgs     map[string]string `json:"spider_args,omitempty"`
	State          State             `json:"state"`
	Tags           []string          `json:"tags,omitempty"`
	Priority       int               `json:"priority,omitempty"`
	ItemsScraped   int               `json:"items_scraped"`
	ErrorsCount    int               `json:"errors_count"`
	StartedTime    string            `json:"started_time,omitempty"`
	UpdatedTime    string            `json:"updated_time,omitempty"`
	CloseReason    string            `json:"close_reason,omitempty"`
	ElapsedSeconds int               `json:"elapsed,omitempty"`
}

// State represents the job lifecycle state.
type State string

const (
	StatePending  State = "pending"
	StateRunning  State = "running"
	StateFinished State = "finished"
	StateDeleted  State = "deleted"
)

// Project returns the project section of the job id, empty when the id is
// not in project/spider/job form.
func (j Job) Project() string {
	parts := strings.Split(j.ID, "/")
	if len(parts) != 3 {
		return ""
	}
	return parts[0]
}

// ListResponse is the envelope the jobs list endpoint returns.
type ListResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Total  int    `json:"total"`
	Jobs   []Job  `json:"jobs"`
}

// RunResponse is the envelope the run endpoint returns.
type RunResponse struct {
	Status string `json:"status"`
	JobID  string `json:"jobid"`
}

func (j Job) String() string {
	return fmt.Sprintf("%s (%s, %s)", j.ID, j.Spider, j.State)
}
