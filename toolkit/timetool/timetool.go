// Package timetool provides a clock tool.
package timetool

import (
	"context"
	"time"

	"github.com/skosovsky/reagent"
)

type args struct {
	Timezone string `json:"timezone,omitempty" description:"IANA timezone name (default: UTC)"`
}

// New builds the get_current_time tool. The clock function is injectable for
// tests; pass nil to use time.Now.
func New(now func() time.Time) (*reagent.Tool, error) {
	if now == nil {
		now = time.Now
	}
	return reagent.NewTool(
		"get_current_time",
		"Get the current date and time in a specified timezone.",
		func(_ context.Context, a args) (string, error) {
			loc := time.UTC
			if a.Timezone != "" {
				l, err := time.LoadLocation(a.Timezone)
				if err != nil {
					return "", &reagent.ClientError{Reason: "unknown timezone " + a.Timezone}
				}
				loc = l
			}
			return now().In(loc).Format("2006-01-02 15:04:05"), nil
		},
	)
}
