package export

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Status is the aggregate outcome of an export run.
type Status string

// Run statuses: every zone exported, some zones exported, or none.
const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailure Status = "failure"
)

// ZoneStatus is the outcome of one zone.
type ZoneStatus string

// Zone outcomes. Skipped zones hit an unsupported configuration; failed
// zones hit a computation or rendering error.
const (
	ZoneExported ZoneStatus = "exported"
	ZoneSkipped  ZoneStatus = "skipped"
	ZoneFailed   ZoneStatus = "failed"
)

// ZoneOutcome records what happened to one zone during an export run.
type ZoneOutcome struct {
	Building string
	Zone     string
	Status   ZoneStatus

	// Path is the written model file, empty unless exported.
	Path string

	// Err is the failure or skip reason.
	Err error

	// RefChecked marks that a reference file existed and was compared.
	RefChecked bool

	// RefMismatches lists reference values outside the tolerance.
	RefMismatches []Mismatch
}

// Report is the aggregate result of one export run.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Outcomes []ZoneOutcome
}

// Status derives the aggregate status: failures and skips both count
// against a clean run, but as long as one zone exported the run is
// partial rather than failed.
func (r *Report) Status() Status {
	var exported, troubled int
	for _, o := range r.Outcomes {
		if o.Status == ZoneExported {
			exported++
		} else {
			troubled++
		}
	}
	switch {
	case troubled == 0:
		return StatusSuccess
	case exported > 0:
		return StatusPartial
	default:
		return StatusFailure
	}
}

// tabwriterPadding is the minimum padding between report columns.
const tabwriterPadding = 2

// printer formats counts with locale-aware separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Render writes the human-readable report table followed by a summary
// line and any reference mismatches.
func (r *Report) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "BUILDING\tZONE\tSTATUS\tDETAIL")
	for _, o := range r.Outcomes {
		detail := o.Path
		if o.Err != nil {
			detail = o.Err.Error()
		}
		if o.RefChecked && len(o.RefMismatches) == 0 && o.Err == nil {
			detail += " (reference ok)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Building, o.Zone, o.Status, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var exported, skipped, failed, mismatched int
	for _, o := range r.Outcomes {
		switch o.Status {
		case ZoneExported:
			exported++
		case ZoneSkipped:
			skipped++
		case ZoneFailed:
			failed++
		}
		if len(o.RefMismatches) > 0 {
			mismatched++
		}
	}

	printer.Fprintf(w, "\nrun %s: %d exported, %d skipped, %d failed (%s)\n",
		r.RunID, exported, skipped, failed, r.Status())

	if mismatched > 0 {
		printer.Fprintf(w, "%d zone(s) deviate from reference results:\n", mismatched)
		for _, o := range r.Outcomes {
			for _, m := range o.RefMismatches {
				fmt.Fprintf(w, "  %s/%s %s\n", o.Building, o.Zone, m)
			}
		}
	}
	return nil
}
