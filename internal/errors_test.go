package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestCategorizeError_DiskSpace(t *testing.T) {
	err := errors.New("write failed: no space left on device")
	procErr := CategorizeError("/photos/a.jpg", err)

	if procErr.Category != ErrorCategoryIO {
		t.Errorf("Expected IO category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityCritical {
		t.Errorf("Expected critical severity, got %s", procErr.Severity)
	}
	if !strings.Contains(procErr.Suggestion, "disk space") {
		t.Errorf("Expected disk space suggestion, got: %s", procErr.Suggestion)
	}
}

func TestCategorizeError_Permission(t *testing.T) {
	err := fmt.Errorf("failed to remove original: %w", fs.ErrPermission)
	procErr := CategorizeError("/photos/a.jpg", err)

	if procErr.Category != ErrorCategoryIO {
		t.Errorf("Expected IO category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityCritical {
		t.Errorf("Expected critical severity, got %s", procErr.Severity)
	}
}

func TestCategorizeError_Decode(t *testing.T) {
	err := &DecodeError{Path: "/photos/a.jpg", Err: errors.New("truncated file")}
	procErr := CategorizeError("/photos/a.jpg", err)

	if procErr.Category != ErrorCategoryDecode {
		t.Errorf("Expected decode category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityError {
		t.Errorf("Expected error severity, got %s", procErr.Severity)
	}
	if !errors.Is(procErr, err) {
		t.Error("Expected ProcessError to unwrap to the decode error")
	}
}

func TestCategorizeError_Unsupported(t *testing.T) {
	err := &DecodeError{Path: "/photos/a.jpg", Err: errors.New("unsupported format text/plain")}
	procErr := CategorizeError("/photos/a.jpg", err)

	if procErr.Category != ErrorCategoryUnsupported {
		t.Errorf("Expected unsupported category, got %s", procErr.Category)
	}
	if procErr.Severity != ErrorSeverityWarning {
		t.Errorf("Expected warning severity, got %s", procErr.Severity)
	}
}

func TestCategorizeError_Encode(t *testing.T) {
	err := &EncodeError{Path: "/photos/.phototag-1.jpg", Err: errors.New("exiftool: write failed")}
	procErr := CategorizeError("/photos/a.jpg", err)

	if procErr.Category != ErrorCategoryEncode {
		t.Errorf("Expected encode category, got %s", procErr.Category)
	}
}

func TestCategorizeError_Nil(t *testing.T) {
	if CategorizeError("/photos/a.jpg", nil) != nil {
		t.Error("Expected nil for a nil error")
	}
}

func TestErrorStats_LastErrors(t *testing.T) {
	stats := NewErrorStats()
	for i := range 7 {
		stats.Add(&ProcessError{
			FilePath:    fmt.Sprintf("/photos/%d.jpg", i),
			Category:    ErrorCategoryDecode,
			Severity:    ErrorSeverityError,
			OriginalErr: errors.New("test"),
		})
	}

	if stats.Total != 7 {
		t.Errorf("Expected 7 errors, got %d", stats.Total)
	}
	if len(stats.LastErrors) != 5 {
		t.Fatalf("Expected 5 recent errors, got %d", len(stats.LastErrors))
	}
	if stats.LastErrors[0].FilePath != "/photos/2.jpg" {
		t.Errorf("Expected oldest kept error to be 2.jpg, got %s", stats.LastErrors[0].FilePath)
	}
}

func TestErrorStats_GenerateReport(t *testing.T) {
	stats := NewErrorStats()

	stats.Add(&ProcessError{
		FilePath:    "/photos/file1.jpg",
		Category:    ErrorCategoryIO,
		Severity:    ErrorSeverityError,
		OriginalErr: errors.New("I/O error"),
		Suggestion:  "Check disk health",
	})
	stats.Add(&ProcessError{
		FilePath:    "/photos/file2.jpg",
		Category:    ErrorCategoryEncode,
		Severity:    ErrorSeverityError,
		OriginalErr: errors.New("write failed"),
	})

	report := stats.GenerateReport()

	for _, want := range []string{
		"Run encountered 2 errors",
		"Error categories",
		"Recent errors",
		"Suggested next steps",
		"file1.jpg",
		"Check disk health",
		"re-run in 'n' mode",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}

func TestErrorStats_ByCategory(t *testing.T) {
	stats := NewErrorStats()

	stats.Add(&ProcessError{Category: ErrorCategoryIO, Severity: ErrorSeverityError, OriginalErr: errors.New("test")})
	stats.Add(&ProcessError{Category: ErrorCategoryIO, Severity: ErrorSeverityCritical, OriginalErr: errors.New("test")})
	stats.Add(&ProcessError{Category: ErrorCategoryDecode, Severity: ErrorSeverityWarning, OriginalErr: errors.New("test")})

	if stats.ByCategory[ErrorCategoryIO] != 2 {
		t.Errorf("Expected 2 IO errors, got %d", stats.ByCategory[ErrorCategoryIO])
	}
	if stats.ByCategory[ErrorCategoryDecode] != 1 {
		t.Errorf("Expected 1 decode error, got %d", stats.ByCategory[ErrorCategoryDecode])
	}
	if stats.Critical != 1 || stats.Errors != 1 || stats.Warnings != 1 {
		t.Errorf("Unexpected severity counts: %d/%d/%d", stats.Critical, stats.Errors, stats.Warnings)
	}
}
