package driver

import (
	"encoding/json"
	"fmt"
	"strings"

	"zeron/internal/diag"
	"zeron/internal/observ"
	"zeron/internal/source"
)

// timingNote is the JSON note of an OBS6001 diagnostic.
type timingNote struct {
	Command string               `json:"command"`
	File    string               `json:"file,omitempty"`
	Slowest string               `json:"slowest,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// reportTimings adds the phase breakdown of one check or run to bag as an
// info diagnostic. The bag limit is raised if it is already full.
func reportTimings(bag *diag.Bag, command, file string, rep observ.Report) {
	if bag == nil || len(rep.Phases) == 0 {
		return
	}
	note := timingNote{Command: command, File: file, TotalMS: rep.TotalMS, Phases: rep.Phases}
	parts := make([]string, 0, len(rep.Phases))
	slowest := -1.0
	for _, p := range rep.Phases {
		parts = append(parts, fmt.Sprintf("%s %.2f", p.Name, p.DurationMS))
		if p.DurationMS > slowest {
			slowest, note.Slowest = p.DurationMS, p.Name
		}
	}
	data, err := json.Marshal(note)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("%s %s: %.2f ms (%s)", command, file, rep.TotalMS, strings.Join(parts, ", "))

	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg)
	d.Notes = []diag.Note{{Msg: string(data)}}
	if bag.Add(d) {
		return
	}
	extra := diag.NewBag(1)
	extra.Add(d)
	bag.Merge(extra)
}
