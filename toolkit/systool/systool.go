// Package systool provides a host-information tool.
package systool

import (
	"context"
	"runtime"

	"github.com/skosovsky/reagent"
)

type info struct {
	System    string `json:"system"`
	Machine   string `json:"machine"`
	CPUs      int    `json:"cpus"`
	GoVersion string `json:"go_version"`
}

// New builds the system_info tool.
func New() (*reagent.Tool, error) {
	return reagent.NewTool(
		"system_info",
		"Get information about the current system including OS, architecture, and runtime version.",
		func(_ context.Context, _ struct{}) (info, error) {
			return info{
				System:    runtime.GOOS,
				Machine:   runtime.GOARCH,
				CPUs:      runtime.NumCPU(),
				GoVersion: runtime.Version(),
			}, nil
		},
	)
}
