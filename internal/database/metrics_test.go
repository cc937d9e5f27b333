package database

import (
	"path/filepath"
	"testing"
)

func initTestDB(t *testing.T) {
	t.Helper()
	if err := InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { CloseDB() })
}

func TestSaveMetricReplacesPreviousValue(t *testing.T) {
	initTestDB(t)

	if err := SaveMetric("commands_processed", 10); err != nil {
		t.Fatalf("SaveMetric: %v", err)
	}
	if err := SaveMetric("commands_processed", 25); err != nil {
		t.Fatalf("SaveMetric: %v", err)
	}

	var rows int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM metrics WHERE metric_name = ?`, "commands_processed").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("repeated saves left %d rows, want 1", rows)
	}

	value, err := GetMetric("commands_processed")
	if err != nil {
		t.Fatalf("GetMetric: %v", err)
	}
	if value != 25 {
		t.Errorf("GetMetric = %v, want latest save 25", value)
	}
}

func TestGetMetricMissingDefaultsToZero(t *testing.T) {
	initTestDB(t)

	value, err := GetMetric("never_saved")
	if err != nil {
		t.Fatalf("GetMetric: %v", err)
	}
	if value != 0 {
		t.Errorf("GetMetric = %v, want 0", value)
	}
}

func TestLabeledMetricsStayApartFromUnlabeled(t *testing.T) {
	initTestDB(t)

	if err := SaveMetric("messages_per_channel", 7); err != nil {
		t.Fatalf("SaveMetric: %v", err)
	}
	if err := SaveMetricWithLabels("messages_per_channel", "100", "Some Group", 3); err != nil {
		t.Fatalf("SaveMetricWithLabels: %v", err)
	}
	if err := SaveMetricWithLabels("messages_per_channel", "100", "Some Group", 5); err != nil {
		t.Fatalf("SaveMetricWithLabels: %v", err)
	}

	labeled, err := GetMetricsWithLabels("messages_per_channel")
	if err != nil {
		t.Fatalf("GetMetricsWithLabels: %v", err)
	}
	if got := labeled["100"]["Some Group"]; got != 5 {
		t.Errorf("labeled value = %v, want 5", got)
	}
	if len(labeled) != 1 {
		t.Errorf("labeled rows = %v, want one label key", labeled)
	}

	value, err := GetMetric("messages_per_channel")
	if err != nil {
		t.Fatalf("GetMetric: %v", err)
	}
	if value != 7 {
		t.Errorf("unlabeled value = %v, want 7", value)
	}
}
