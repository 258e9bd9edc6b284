package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/sparsecs/ecs"
)

// Report is everything printed at the end of a run.
type Report struct {
	Config  Config
	Elapsed time.Duration
	Passes  int64
	Pass    Stats

	Registry  *ecs.RegistryStats
	Scheduler *ecs.SchedulerStats
	Expired   int
	Spawned   int

	memStart runtime.MemStats
	memEnd   runtime.MemStats
}

// Stats summarizes a series of pass durations.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

// Finalize computes the summary fields from Samples, leaving Samples in
// recorded order.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// memRow is one line of the memory table.
type memRow struct {
	Name       string
	Start, End int64
}

func (m memRow) Delta() int64 {
	return m.End - m.Start
}

func (r *Report) startMemory() {
	runtime.ReadMemStats(&r.memStart)
}

func (r *Report) endMemory() {
	runtime.ReadMemStats(&r.memEnd)
}

func (r *Report) Memory() []memRow {
	return []memRow{
		{"Heap alloc", int64(r.memStart.HeapAlloc), int64(r.memEnd.HeapAlloc)},
		{"Total alloc", int64(r.memStart.TotalAlloc), int64(r.memEnd.TotalAlloc)},
		{"Sys", int64(r.memStart.Sys), int64(r.memEnd.Sys)},
		{"GC cycles", int64(r.memStart.NumGC), int64(r.memEnd.NumGC)},
	}
}

func (r *Report) GCPause() time.Duration {
	return time.Duration(r.memEnd.PauseTotalNs - r.memStart.PauseTotalNs)
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"mib": func(bytes int64) float64 {
		return float64(bytes) / (1 << 20)
	},
}).Parse(`
# ECS Stress Test Report

## Configuration
- **Run Duration:** {{.Config.Duration}}
- **Initial Entities:** {{.Config.Entities}}
- **Seed:** {{.Config.Seed}}
- **Churn:** {{.Config.Churn}}
- **Systems:** {{range $i, $name := .Config.Systems}}{{if $i}}, {{end}}{{$name}}{{end}}

## Passes
- **Count:** {{.Passes}} in {{.Elapsed}}
- **Avg:** {{.Pass.Avg}}
- **Min:** {{.Pass.Min}}
- **Max:** {{.Pass.Max}}
- **P99:** {{.Pass.P99}}

## Registry
- **Expired:** {{.Expired}}
- **Spawned:** {{.Spawned}}
{{with .Registry}}- **Live Entities:** {{.EntityCount}} ({{.IssuedCount}} ids issued, {{.FreeCount}} free)
{{range .Components}}- {{.Name}}: {{.Count}} present / {{.Len}} slots
{{end}}{{end}}
{{with .Scheduler}}## Systems
| System | Executions | Avg | Min | Max |
|---|---|---|---|---|
{{range .Systems}}{{if .Enabled}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{end}}{{end}}{{end}}
## Memory
| Metric | Start | End | Delta |
|---|---|---|---|
{{range .Memory}}| {{.Name}} | {{.Start}} | {{.End}} | {{.Delta}} |
{{end}}
Heap at end: {{printf "%.2f" (mib (index .Memory 0).End)}} MiB
{{if .Config.GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.GCPause}}
{{end}}`))

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}
