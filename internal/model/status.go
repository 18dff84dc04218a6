package model

import "fmt"

type Status string

const (
	StatusOpen Status = "open"
	StatusDone Status = "done"
)

var validStatuses = []Status{StatusOpen, StatusDone}

func ValidateStatus(s Status) error {
	for _, v := range validStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid status %q: must be one of open, done", s)
}
