package catalog_test

import (
	"context"
	"errors"
	"testing"

	"shunt/internal/catalog"
	"shunt/internal/services"
	"shunt/internal/testsupport"
)

func TestRecordFetchRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	episodes := []catalog.Episode{
		{Code: "S1991E01", SeasonRaw: 1991, EpInSeason: 1, Title: "Der Rheingold-Express", AirDateISO: "1991-04-07", AbsEpisode: 1, TargetFilename: "a.mp4"},
		{Code: "S1991E02", SeasonRaw: 1991, EpInSeason: 2, Title: "Dampf im Schwarzwald", AirDateISO: "1991-04-14", AbsEpisode: 2, TargetFilename: "b.mp4"},
	}
	runID, err := store.RecordFetch(ctx, "eisenbahn-romantik", "https://example.test/allseasons", episodes)
	if err != nil {
		t.Fatalf("RecordFetch: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	run, err := store.LatestRun(ctx, "eisenbahn-romantik")
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if run.ID != runID {
		t.Fatalf("latest run id = %q, want %q", run.ID, runID)
	}
	if run.EpisodeCount != 2 {
		t.Fatalf("episode count = %d, want 2", run.EpisodeCount)
	}
	if run.FetchedAt.IsZero() {
		t.Fatal("expected fetched_at to be set")
	}

	stored, err := store.EpisodesForRun(ctx, runID)
	if err != nil {
		t.Fatalf("EpisodesForRun: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(stored))
	}
	for i := range episodes {
		if stored[i] != episodes[i] {
			t.Fatalf("episode %d: got %+v, want %+v", i, stored[i], episodes[i])
		}
	}
}

func TestLatestRunNoRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.LatestRun(context.Background(), "eisenbahn-romantik")
	if !errors.Is(err, catalog.ErrNoRuns) {
		t.Fatalf("expected ErrNoRuns, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}

func TestRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := store.RecordFetch(ctx, "eisenbahn-romantik", "https://example.test/a", nil)
	if err != nil {
		t.Fatalf("RecordFetch: %v", err)
	}
	second, err := store.RecordFetch(ctx, "eisenbahn-romantik", "https://example.test/b", nil)
	if err != nil {
		t.Fatalf("RecordFetch: %v", err)
	}

	runs, err := store.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Fatalf("expected newest first, got %q then %q", runs[0].ID, runs[1].ID)
	}
}
