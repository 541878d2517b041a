package main

import (
	"context"
	"testing"
)

func TestRunFailsOnBadStorageConfig(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("LOG_LEVEL", "error")
	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
