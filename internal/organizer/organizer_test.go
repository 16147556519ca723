package organizer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"shunt/internal/catalog"
	"shunt/internal/logging"
	"shunt/internal/match"
	"shunt/internal/mediathek"
	"shunt/internal/organizer"
	"shunt/internal/testsupport"
)

const targetName = "Eisenbahn-Romantik S1991E01 - 1991-04-07 - 1 - Der Rheingold-Express.mp4"

func testMappings() []match.Mapping {
	return []match.Mapping{
		{
			Listing:     mediathek.Listing{Title: "Der Rheingold-Express"},
			MatchedCode: "S1991E01",
			Confidence:  1.0,
			NewFilename: targetName,
		},
	}
}

func TestCopyMapped(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	srcDir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(srcDir, "Eisenbahn-Romantik-Der_Rheingold-Express-1412345454.mp4"), 2048)
	testsupport.WriteFile(t, filepath.Join(srcDir, "Unbekannter_Clip.mp4"), 512)

	o := organizer.New(cfg, logging.NewNop())
	summary, err := o.CopyMapped(context.Background(), testMappings(), organizer.Options{
		SourceDir: srcDir,
		DestDir:   cfg.Paths.LibraryDir,
	})
	if err != nil {
		t.Fatalf("CopyMapped: %v", err)
	}
	if summary.Scanned != 2 || summary.Copied != 1 || summary.SkippedUnmapped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	copied := filepath.Join(cfg.Paths.LibraryDir, targetName)
	info, err := os.Stat(copied)
	if err != nil {
		t.Fatalf("expected copied file: %v", err)
	}
	if info.Size() != 2048 {
		t.Fatalf("unexpected copied size %d", info.Size())
	}
}

func TestCopyMappedSkipsExisting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	srcDir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(srcDir, "Eisenbahn-Romantik-Der_Rheingold-Express.mp4"), 2048)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.LibraryDir, targetName), 1)

	o := organizer.New(cfg, logging.NewNop())
	summary, err := o.CopyMapped(context.Background(), testMappings(), organizer.Options{
		SourceDir: srcDir,
		DestDir:   cfg.Paths.LibraryDir,
	})
	if err != nil {
		t.Fatalf("CopyMapped: %v", err)
	}
	if summary.Copied != 0 || summary.SkippedExisting != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	info, err := os.Stat(filepath.Join(cfg.Paths.LibraryDir, targetName))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 1 {
		t.Fatalf("existing file was overwritten, size %d", info.Size())
	}
}

func TestCopyMappedDryRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	srcDir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(srcDir, "Eisenbahn-Romantik-Der_Rheingold-Express.mp4"), 2048)

	o := organizer.New(cfg, logging.NewNop())
	summary, err := o.CopyMapped(context.Background(), testMappings(), organizer.Options{
		SourceDir: srcDir,
		DestDir:   cfg.Paths.LibraryDir,
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("CopyMapped: %v", err)
	}
	if !summary.DryRun || summary.Copied != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.LibraryDir, targetName)); !os.IsNotExist(err) {
		t.Fatal("dry run must not write files")
	}
}

func TestRenameMatched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	srcDir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(srcDir, "Eisenbahn-Romantik-Der_Rheingold-Express.mp4"), 2048)
	testsupport.WriteFile(t, filepath.Join(srcDir, "Nachrichten_vom_Tage.mp4"), 512)

	episodes := []catalog.Episode{
		{Code: "S1991E01", SeasonRaw: 1991, EpInSeason: 1, Title: "Der Rheingold-Express", AirDateISO: "1991-04-07"},
	}
	catalog.Finalize(episodes, cfg.Naming)
	matcher := match.New(episodes, cfg.Matching)

	o := organizer.New(cfg, logging.NewNop())
	summary, err := o.RenameMatched(context.Background(), matcher, organizer.Options{
		SourceDir: srcDir,
		DestDir:   cfg.Paths.LibraryDir,
	})
	if err != nil {
		t.Fatalf("RenameMatched: %v", err)
	}
	if summary.Copied != 1 || summary.SkippedLowConfidence != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.LibraryDir, targetName)); err != nil {
		t.Fatalf("expected renamed copy: %v", err)
	}
}
