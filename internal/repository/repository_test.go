package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"mediadex/internal/domain"
)

func newTestRepo(t *testing.T) *SQLRepository {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "mediadex-test-*.sqlite")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpPath) })

	repo, err := New(domain.RepositoryConfig{Path: tmpPath})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	return repo
}

func seedItem(t *testing.T, repo *SQLRepository, title string, category domain.Category, status domain.Status, rating *int) *domain.MediaItem {
	t.Helper()

	item := domain.NewMediaItem(title, category)
	item.Status = status
	item.Rating = rating
	if _, err := repo.Add(context.Background(), item); err != nil {
		t.Fatalf("failed to seed %q: %v", title, err)
	}
	return item
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func titles(items []*domain.MediaItem) string {
	var names []string
	for _, item := range items {
		names = append(names, item.Title)
	}
	return strings.Join(names, ",")
}

func TestSQLiteRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		if err := repo.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("AddAndGet", func(t *testing.T) {
		item := domain.NewMediaItem("Dune Messiah", domain.CategoryBook)
		item.Rating = intPtr(8)
		item.Notes = strPtr("second read")
		item.CoverPath = strPtr("covers/dune-messiah.jpg")

		id, err := repo.Add(ctx, item)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if id == 0 {
			t.Fatal("Add returned zero id")
		}
		if item.ID != id {
			t.Errorf("Add should assign id onto the item: got %d, want %d", item.ID, id)
		}

		retrieved, err := repo.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if retrieved == nil {
			t.Fatal("Get returned nil for existing id")
		}

		if retrieved.Title != item.Title {
			t.Errorf("expected Title %q, got %q", item.Title, retrieved.Title)
		}
		if retrieved.Category != item.Category {
			t.Errorf("expected Category %v, got %v", item.Category, retrieved.Category)
		}
		if retrieved.Status != domain.StatusPlanned {
			t.Errorf("expected StatusPlanned, got %v", retrieved.Status)
		}
		if retrieved.Rating == nil || *retrieved.Rating != 8 {
			t.Errorf("expected rating 8, got %v", retrieved.Rating)
		}
		if retrieved.Notes == nil || *retrieved.Notes != "second read" {
			t.Errorf("expected notes preserved, got %v", retrieved.Notes)
		}
		if retrieved.CoverPath == nil || *retrieved.CoverPath != "covers/dune-messiah.jpg" {
			t.Errorf("expected cover path preserved, got %v", retrieved.CoverPath)
		}
		if !retrieved.CreatedAt.Equal(item.CreatedAt) {
			t.Errorf("expected CreatedAt %v, got %v", item.CreatedAt, retrieved.CreatedAt)
		}
		if !retrieved.UpdatedAt.Equal(item.UpdatedAt) {
			t.Errorf("expected UpdatedAt %v, got %v", item.UpdatedAt, retrieved.UpdatedAt)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		item, err := repo.Get(ctx, 99999)
		if err != nil {
			t.Fatalf("Get on missing id should not error, got: %v", err)
		}
		if item != nil {
			t.Errorf("Get on missing id should return nil, got %+v", item)
		}
	})

	t.Run("Update", func(t *testing.T) {
		item := seedItem(t, repo, "Hyperion", domain.CategoryBook, domain.StatusPlanned, nil)
		created := item.CreatedAt

		item.Title = "Hyperion Cantos"
		item.Status = domain.StatusInProgress
		item.Rating = intPtr(9)
		item.Notes = strPtr("reread")
		item.UpdatedAt = item.UpdatedAt.Add(time.Hour)

		if err := repo.Update(ctx, item); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		retrieved, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if retrieved.Title != "Hyperion Cantos" {
			t.Errorf("expected updated title, got %q", retrieved.Title)
		}
		if retrieved.Status != domain.StatusInProgress {
			t.Errorf("expected StatusInProgress, got %v", retrieved.Status)
		}
		if retrieved.Rating == nil || *retrieved.Rating != 9 {
			t.Errorf("expected rating 9, got %v", retrieved.Rating)
		}
		if !retrieved.CreatedAt.Equal(created) {
			t.Errorf("Update must not touch CreatedAt: was %v, now %v", created, retrieved.CreatedAt)
		}
		if !retrieved.UpdatedAt.Equal(item.UpdatedAt) {
			t.Errorf("expected UpdatedAt %v, got %v", item.UpdatedAt, retrieved.UpdatedAt)
		}
	})

	t.Run("UpdateClearsOptionals", func(t *testing.T) {
		item := seedItem(t, repo, "Annihilation", domain.CategoryMovie, domain.StatusFinished, intPtr(7))

		item.Rating = nil
		item.Notes = nil
		if err := repo.Update(ctx, item); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		retrieved, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if retrieved.Rating != nil {
			t.Errorf("expected cleared rating, got %v", *retrieved.Rating)
		}
		if retrieved.Notes != nil {
			t.Errorf("expected cleared notes, got %v", *retrieved.Notes)
		}
	})

	t.Run("UpdateMissingID", func(t *testing.T) {
		ghost := domain.NewMediaItem("Ghost", domain.CategoryOther)
		ghost.ID = 99999

		if err := repo.Update(ctx, ghost); err != nil {
			t.Errorf("Update on missing id should succeed silently, got: %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		item := seedItem(t, repo, "Solaris", domain.CategoryMovie, domain.StatusPlanned, nil)

		if err := repo.Delete(ctx, item.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		retrieved, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if retrieved != nil {
			t.Errorf("expected item gone after delete, got %+v", retrieved)
		}
	})

	t.Run("DeleteMissingID", func(t *testing.T) {
		if err := repo.Delete(ctx, 99999); err != nil {
			t.Errorf("Delete on missing id should succeed silently, got: %v", err)
		}
	})

	t.Run("InitIdempotent", func(t *testing.T) {
		before, err := repo.List(ctx, domain.Query{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}

		if err := repo.Init(ctx); err != nil {
			t.Fatalf("second Init failed: %v", err)
		}

		after, err := repo.List(ctx, domain.Query{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("Init must not lose rows: had %d, now %d", len(before), len(after))
		}
	})
}

func TestListFiltering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedItem(t, repo, "Anathem", domain.CategoryBook, domain.StatusFinished, intPtr(9))
	seedItem(t, repo, "Piranesi", domain.CategoryBook, domain.StatusFinished, intPtr(4))
	seedItem(t, repo, "Blood Meridian", domain.CategoryBook, domain.StatusPlanned, nil)
	seedItem(t, repo, "Dune", domain.CategoryBook, domain.StatusInProgress, intPtr(7))
	seedItem(t, repo, "Stalker", domain.CategoryMovie, domain.StatusFinished, intPtr(9))

	book := domain.CategoryBook
	finished := domain.StatusFinished

	t.Run("TitleContainment", func(t *testing.T) {
		items, err := repo.List(ctx, domain.Query{TitleSubstr: "une"})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if got := titles(items); got != "Dune" {
			t.Errorf("expected Dune, got %q", got)
		}
	})

	t.Run("TitleCaseSensitive", func(t *testing.T) {
		items, err := repo.List(ctx, domain.Query{TitleSubstr: "dune"})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("lowercase substring should not match %q", titles(items))
		}
	})

	t.Run("Category", func(t *testing.T) {
		items, err := repo.List(ctx, domain.Query{Category: &book})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(items) != 4 {
			t.Errorf("expected 4 books, got %d (%s)", len(items), titles(items))
		}
	})

	t.Run("Status", func(t *testing.T) {
		items, err := repo.List(ctx, domain.Query{Status: &finished})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if got := titles(items); got != "Anathem,Piranesi,Stalker" {
			t.Errorf("expected finished items in title order, got %q", got)
		}
	})

	t.Run("MinRatingExcludesUnrated", func(t *testing.T) {
		items, err := repo.List(ctx, domain.Query{MinRating: intPtr(7)})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if got := titles(items); got != "Anathem,Dune,Stalker" {
			t.Errorf("expected rated items >= 7, got %q", got)
		}
	})

	t.Run("Conjunction", func(t *testing.T) {
		items, err := repo.List(ctx, domain.Query{TitleSubstr: "a", Category: &book, MinRating: intPtr(5)})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if got := titles(items); got != "Anathem" {
			t.Errorf("expected only Anathem to satisfy all predicates, got %q", got)
		}
	})
}

func TestListOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().Truncate(time.Second)

	add := func(title string, category domain.Category, status domain.Status, rating *int, updatedOffset time.Duration) {
		t.Helper()
		item := domain.NewMediaItem(title, category)
		item.Status = status
		item.Rating = rating
		item.CreatedAt = base
		item.UpdatedAt = base.Add(updatedOffset)
		if _, err := repo.Add(ctx, item); err != nil {
			t.Fatalf("failed to seed %q: %v", title, err)
		}
	}

	add("Neuromancer", domain.CategoryBook, domain.StatusFinished, intPtr(8), time.Minute)
	add("Arrival", domain.CategoryMovie, domain.StatusFinished, intPtr(8), 3*time.Minute)
	add("Tetris", domain.CategoryGame, domain.StatusPlanned, nil, 2*time.Minute)
	add("Klara", domain.CategoryBook, domain.StatusPlanned, intPtr(6), 4*time.Minute)

	list := func(field domain.SortField, order domain.SortOrder) string {
		t.Helper()
		items, err := repo.List(ctx, domain.Query{SortField: field, SortOrder: order})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		return titles(items)
	}

	t.Run("TitleAsc", func(t *testing.T) {
		if got := list(domain.SortTitle, domain.SortAsc); got != "Arrival,Klara,Neuromancer,Tetris" {
			t.Errorf("unexpected order %q", got)
		}
	})

	t.Run("TitleDesc", func(t *testing.T) {
		if got := list(domain.SortTitle, domain.SortDesc); got != "Tetris,Neuromancer,Klara,Arrival" {
			t.Errorf("unexpected order %q", got)
		}
	})

	t.Run("CategoryTieBreaksByTitle", func(t *testing.T) {
		if got := list(domain.SortCategory, domain.SortAsc); got != "Klara,Neuromancer,Arrival,Tetris" {
			t.Errorf("unexpected order %q", got)
		}
	})

	t.Run("StatusTieBreaksByRecency", func(t *testing.T) {
		// Planned first; Klara updated after Tetris, Arrival after Neuromancer.
		if got := list(domain.SortStatus, domain.SortAsc); got != "Klara,Tetris,Arrival,Neuromancer" {
			t.Errorf("unexpected order %q", got)
		}
	})

	t.Run("RatingAscUnratedLast", func(t *testing.T) {
		if got := list(domain.SortRating, domain.SortAsc); got != "Klara,Arrival,Neuromancer,Tetris" {
			t.Errorf("unrated items must sort last: %q", got)
		}
	})

	t.Run("RatingDescUnratedLast", func(t *testing.T) {
		if got := list(domain.SortRating, domain.SortDesc); got != "Arrival,Neuromancer,Klara,Tetris" {
			t.Errorf("unrated items must sort last in both directions: %q", got)
		}
	})

	t.Run("UpdatedDesc", func(t *testing.T) {
		if got := list(domain.SortUpdatedAt, domain.SortDesc); got != "Klara,Arrival,Tetris,Neuromancer" {
			t.Errorf("unexpected order %q", got)
		}
	})
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("EmptyStore", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats failed: %v", err)
		}
		if stats.Total != 0 || stats.Finished != 0 || stats.Unfinished != 0 {
			t.Errorf("expected zero counts, got %+v", stats)
		}
		if len(stats.ByCategory) != 0 {
			t.Errorf("expected no category rows, got %v", stats.ByCategory)
		}
	})

	seedItem(t, repo, "Dune", domain.CategoryMovie, domain.StatusPlanned, nil)
	seedItem(t, repo, "Dune Messiah", domain.CategoryBook, domain.StatusPlanned, intPtr(8))
	seedItem(t, repo, "Foundation", domain.CategoryBook, domain.StatusPlanned, intPtr(6))

	t.Run("Aggregates", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats failed: %v", err)
		}

		if stats.Total != 3 {
			t.Errorf("expected total 3, got %d", stats.Total)
		}
		if stats.Finished != 0 {
			t.Errorf("expected finished 0, got %d", stats.Finished)
		}
		if stats.Unfinished != 3 {
			t.Errorf("expected unfinished 3, got %d", stats.Unfinished)
		}

		want := []domain.CategoryCount{
			{Category: "Book", Count: 2},
			{Category: "Movie", Count: 1},
		}
		if len(stats.ByCategory) != len(want) {
			t.Fatalf("expected %d category rows, got %v", len(want), stats.ByCategory)
		}
		for i, w := range want {
			if stats.ByCategory[i] != w {
				t.Errorf("ByCategory[%d] = %+v, want %+v", i, stats.ByCategory[i], w)
			}
		}
	})

	t.Run("ConsistentAfterFinish", func(t *testing.T) {
		items, err := repo.List(ctx, domain.Query{TitleSubstr: "Foundation"})
		if err != nil || len(items) != 1 {
			t.Fatalf("List failed: %v (%d items)", err, len(items))
		}
		items[0].MarkFinished()
		if err := repo.Update(ctx, items[0]); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		stats, err := repo.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats failed: %v", err)
		}
		if stats.Finished != 1 || stats.Unfinished != 2 {
			t.Errorf("expected finished 1 / unfinished 2, got %d / %d", stats.Finished, stats.Unfinished)
		}

		sum := 0
		for _, c := range stats.ByCategory {
			sum += c.Count
		}
		if sum != stats.Total {
			t.Errorf("category counts sum to %d, total is %d", sum, stats.Total)
		}
	})
}

func TestErrorClassification(t *testing.T) {
	t.Run("ResourceErrorOnBadPath", func(t *testing.T) {
		// A regular file as the parent directory makes open fail.
		blocker, err := os.CreateTemp("", "mediadex-blocker-*")
		if err != nil {
			t.Fatalf("failed to create blocker file: %v", err)
		}
		blocker.Close()
		t.Cleanup(func() { os.Remove(blocker.Name()) })

		_, err = New(domain.RepositoryConfig{Path: blocker.Name() + "/catalog.sqlite"})
		if err == nil {
			t.Fatal("expected error for unusable store path")
		}
		if !errors.Is(err, ErrResource) {
			t.Errorf("open failure should classify as ErrResource, got: %v", err)
		}
	})

	t.Run("StorageErrorAfterClose", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.Close()

		_, err := repo.Add(context.Background(), domain.NewMediaItem("Dune", domain.CategoryBook))
		if err == nil {
			t.Fatal("expected error on closed store")
		}
		if !errors.Is(err, ErrStorage) {
			t.Errorf("engine failure should classify as ErrStorage, got: %v", err)
		}
		if errors.Is(err, ErrResource) {
			t.Errorf("engine failure should not classify as ErrResource: %v", err)
		}
	})
}

func TestDecodeUnknownCodes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Simulate a row written by a newer version with enum codes this
	// version does not know.
	res, err := repo.db.ExecContext(ctx, `
		INSERT INTO media (title, category, status, rating, notes, cover_path, created_at, updated_at)
		VALUES (?, ?, ?, NULL, NULL, NULL, ?, ?)
	`, "From The Future", int64(99), int64(99), time.Now().Unix(), time.Now().Unix())
	if err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("LastInsertId failed: %v", err)
	}

	item, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if item.Category != domain.CategoryOther {
		t.Errorf("unknown category code should decode to Other, got %v", item.Category)
	}
	if item.Status != domain.StatusPlanned {
		t.Errorf("unknown status code should decode to Planned, got %v", item.Status)
	}
}
