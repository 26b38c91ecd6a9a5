package display

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/podrun/podrun/engine"
	"github.com/podrun/podrun/internal/util"
	"github.com/podrun/podrun/tpu"
)

const tableExcerptChars = 80

// HistoryTable renders execution records newest-first
func HistoryTable(records []*engine.ExecutionRecord) error {
	data := pterm.TableData{
		{"Timestamp", "Command", "Workers", "Status", "Retries", "Output"},
	}
	for _, r := range records {
		data = append(data, []string{
			r.CreatedAt.Local().Format(time.DateTime),
			util.Truncate(r.Command, 40),
			r.WorkerScope,
			statusCell(r.Status),
			strconv.Itoa(r.RetryCountUsed),
			util.Truncate(r.OutputExcerpt, tableExcerptChars),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// ErrorsTable renders failed and timed-out records with per-worker detail
func ErrorsTable(records []*engine.ExecutionRecord) error {
	data := pterm.TableData{
		{"Timestamp", "Command", "Status", "Failed", "Detail"},
	}
	for _, r := range records {
		data = append(data, []string{
			r.CreatedAt.Local().Format(time.DateTime),
			util.Truncate(r.Command, 40),
			statusCell(r.Status),
			fmt.Sprintf("%d/%d", r.WorkersFailed, r.WorkersTotal),
			util.Truncate(workerDetail(r), tableExcerptChars),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// StatusTable renders TPU describe output
func StatusTable(status *tpu.Status) error {
	data := pterm.TableData{
		{"Property", "Value"},
		{"Name", status.Name},
		{"State", status.State},
		{"Type", status.AcceleratorType},
		{"Network", status.Network},
		{"API Version", status.APIVersion},
		{"Workers", strconv.Itoa(status.Workers())},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// RecordSummary prints a one-line result for `podrun run`
func RecordSummary(record *engine.ExecutionRecord) {
	switch record.Status {
	case engine.StatusSuccess:
		pterm.Success.Printf("Command succeeded on %d worker(s)\n", record.WorkersTotal)
	case engine.StatusTimedOut:
		pterm.Warning.Printf("Command timed out (%d/%d workers)\n", record.WorkersFailed, record.WorkersTotal)
	default:
		pterm.Error.Printf("Command failed on %d/%d worker(s) after %d retries\n",
			record.WorkersFailed, record.WorkersTotal, record.RetryCountUsed)
	}
}

func statusCell(s engine.Status) string {
	switch s {
	case engine.StatusSuccess:
		return pterm.LightGreen(string(s))
	case engine.StatusTimedOut:
		return pterm.Yellow(string(s))
	default:
		return pterm.LightRed(string(s))
	}
}

func workerDetail(r *engine.ExecutionRecord) string {
	detail := ""
	for _, w := range r.Workers {
		if w.Outcome == engine.OutcomeSuccess {
			continue
		}
		if detail != "" {
			detail += "; "
		}
		detail += fmt.Sprintf("worker %d: %s", w.Worker, w.Outcome)
		if w.Message != "" {
			detail += " (" + w.Message + ")"
		}
	}
	return detail
}
