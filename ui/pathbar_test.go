// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/pathbar_test.go
// Summary: Tests for breadcrumb formatting.

package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestBreadcrumbsRoot(t *testing.T) {
	if got := breadcrumbs("/", 40); got != "/" {
		t.Fatalf("root crumb = %q", got)
	}
}

func TestBreadcrumbsFullTrailFits(t *testing.T) {
	got := breadcrumbs("/home/alex/docs", 40)
	want := "/home › alex › docs"
	if got != want {
		t.Fatalf("crumbs = %q, want %q", got, want)
	}
}

func TestBreadcrumbsDropsLeadingSegments(t *testing.T) {
	got := breadcrumbs("/home/alex/projects/filegrid/internal", 24)
	if !strings.HasPrefix(got, "…") {
		t.Fatalf("expected elided prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "internal") {
		t.Fatalf("deepest segment must survive, got %q", got)
	}
	if runewidth.StringWidth(got) > 24 {
		t.Fatalf("crumbs overflow width: %q", got)
	}
}

func TestBreadcrumbsVeryNarrow(t *testing.T) {
	got := breadcrumbs("/home/alex/some-extremely-long-directory-name", 10)
	if runewidth.StringWidth(got) > 10 {
		t.Fatalf("crumbs overflow width: %q", got)
	}
}
