package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/flybeeper/gps-checker/internal/check"
	"github.com/flybeeper/gps-checker/internal/models"
)

func writeJSON(w io.Writer, report *check.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeText печатает таблицу аномалий (или всех записей), дубли и сводку
func writeText(w io.Writer, report *check.Report, all bool) error {
	records := report.Anomalies
	title := "Suspected errors"
	if all {
		records = report.Records
		title = "Records"
	}

	fmt.Fprintf(w, "%s: %d of %d fixes (%d lines dropped)\n\n",
		title, len(records), report.Summary.Fixes, report.Parse.Dropped)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tLAT\tLON\tDIST_M\tELAPSED_S\tSPEED_KMH\tACC_G\tBEARING_CHG\tERRORS\tDESCRIPTION")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			rec.Time,
			rec.Latitude,
			rec.Longitude,
			distanceCell(rec),
			elapsedCell(rec),
			speedCell(rec),
			accelerationCell(rec),
			bearingChangeCell(rec),
			rec.ErrorCount,
			check.DescriptionText(rec.Annotation),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Duplicates) > 0 {
		fmt.Fprintf(w, "\nDuplicate coordinates: %d groups\n", len(report.Duplicates))
		for _, g := range report.Duplicates {
			fmt.Fprintf(w, "  %.6f, %.6f  x%d  %s\n", g.Latitude, g.Longitude, g.Count, memberTimes(g))
		}
	}

	s := report.Summary
	fmt.Fprintf(w, "\nDistance: %.1f m, duration: %d s, max gap: %d s\n",
		s.TotalDistanceMeters, s.DurationSeconds, s.MaxDataGapSeconds)
	if s.AvgSpeedKmh != nil && s.MaxSpeedKmh != nil {
		fmt.Fprintf(w, "Speed: avg %.1f km/h, max %.1f km/h\n", *s.AvgSpeedKmh, *s.MaxSpeedKmh)
	}

	return nil
}

const missing = "-"

func distanceCell(rec models.AnnotatedRecord) string {
	if rec.Movement == nil {
		return missing
	}
	return fmt.Sprintf("%.1f", rec.Movement.DistanceMeters)
}

func elapsedCell(rec models.AnnotatedRecord) string {
	if rec.Movement == nil {
		return missing
	}
	return fmt.Sprintf("%d", rec.Movement.ElapsedSeconds)
}

func speedCell(rec models.AnnotatedRecord) string {
	speed, ok := rec.Speed()
	if !ok {
		return missing
	}
	return fmt.Sprintf("%.1f", speed)
}

func accelerationCell(rec models.AnnotatedRecord) string {
	if rec.Change == nil || rec.Change.AccelerationG == nil {
		return missing
	}
	return fmt.Sprintf("%.2f", *rec.Change.AccelerationG)
}

func bearingChangeCell(rec models.AnnotatedRecord) string {
	if rec.Change == nil {
		return missing
	}
	return fmt.Sprintf("%.1f", rec.Change.BearingChangeDegrees)
}

func memberTimes(g models.DuplicateGroup) string {
	times := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		times = append(times, m.Time.String())
	}
	return strings.Join(times, " ")
}
