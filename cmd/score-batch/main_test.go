package main

import "testing"

func TestParseBatchConfigDefaults(t *testing.T) {
	t.Setenv("SCORE_BATCH_SIZE", "")
	t.Setenv("SCORE_MAX_CONCURRENT", "")
	t.Setenv("SCORE_RESCORE_OLDER_THAN_DAYS", "")
	t.Setenv("SCORE_NEW_ONLY", "")

	batch := parseBatchConfig()
	if batch.batchSize != 100 {
		t.Errorf("batchSize = %d, expected 100", batch.batchSize)
	}
	if batch.maxConcurrent != 5 {
		t.Errorf("maxConcurrent = %d, expected 5", batch.maxConcurrent)
	}
	if batch.rescoreOlderThanDays != 30 {
		t.Errorf("rescoreOlderThanDays = %d, expected 30", batch.rescoreOlderThanDays)
	}
	if batch.newOnly {
		t.Error("newOnly = true, expected false")
	}
}

func TestParseBatchConfigConcurrency(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"explicit", "8", 8},
		{"minimum", "1", 1},
		{"zero keeps default", "0", 5},
		{"negative keeps default", "-3", 5},
		{"garbage keeps default", "many", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SCORE_MAX_CONCURRENT", tt.env)

			batch := parseBatchConfig()
			if batch.maxConcurrent != tt.want {
				t.Errorf("maxConcurrent = %d, expected %d", batch.maxConcurrent, tt.want)
			}
		})
	}
}
