package stress

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/plus3/marquee/selection"
)

// Report summarizes a stress run.
type Report struct {
	// Configuration
	Duration time.Duration
	Entities int
	Seed     int64

	// Results
	Cycles         int64
	Frames         int64
	TotalTime      time.Duration
	CycleTime      Stats
	MaxSelection   int
	CacheRebuilds  int
	Engine         selection.Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats aggregates duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

// Finalize computes Min, Max and Avg from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Selection Stress Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Entities:** {{comma .Entities}}
- **Seed:** {{.Seed}}

## Gestures
- **Cycles:** {{comma .Cycles}} ({{comma .Frames}} frames)
- **Total Time:** {{.TotalTime}}
- **Cycle Time:**
  - **Avg:** {{.CycleTime.Avg}}
  - **Min:** {{.CycleTime.Min}}
  - **Max:** {{.CycleTime.Max}}
- **Largest Selection:** {{comma .MaxSelection}}

## Engine
- Commits:        {{comma .Engine.Commits}}
- Preview Passes: {{comma .Engine.PreviewPasses}}
- Enumerations:   {{comma .Engine.Enumerations}}
- Cache Rebuilds: {{comma .CacheRebuilds}}
- Unresolved:     {{comma .Engine.Unresolved}}

## Memory Usage
- Heap Alloc:  {{bytes .MemStatsStart.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{bytes .MemStatsStart.TotalAlloc}} (start) -> {{bytes .MemStatsEnd.TotalAlloc}} (end) -> delta: {{bytes (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:  {{bytes .MemStatsStart.Sys}} (start) -> {{bytes .MemStatsEnd.Sys}} (end)
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"comma": func(v any) string {
			switch val := v.(type) {
			case int:
				return humanize.Comma(int64(val))
			case int64:
				return humanize.Comma(val)
			default:
				return "N/A"
			}
		},
		"bytes": humanize.Bytes,
		"bsub": func(a, b uint64) uint64 {
			if b > a {
				return 0
			}
			return a - b
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
