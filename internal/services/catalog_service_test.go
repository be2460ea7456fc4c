package services

import (
	"context"
	"testing"

	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

func newCatalogService(store *fakeStore) CatalogService {
	return NewCatalogService(newFakeRepository(store), testLogger())
}

func TestCatalogService_BrowseTutors(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addUser("u-student", models.RoleStudent)
	student := store.addStudent("u-student")
	science := store.addCategory("Science")
	humanities := store.addCategory("Humanities")

	store.addUser("u-t1", models.RoleTutor)
	t1 := store.addTutor("u-t1", science.ID, true)
	store.addUser("u-t2", models.RoleTutor)
	store.addTutor("u-t2", humanities.ID, true)
	store.addUser("u-t3", models.RoleTutor)
	t3 := store.addTutor("u-t3", science.ID, false)
	t3.IsFeatured = true

	b1 := store.addBooking(student.ID, t1.ID, models.BookingCompleted)
	b2 := store.addBooking(student.ID, t1.ID, models.BookingCompleted)
	store.addReview(student.ID, t1.ID, b1.ID, 5)
	store.addReview(student.ID, t1.ID, b2.ID, 4)

	svc := newCatalogService(store)

	t.Run("unfiltered", func(t *testing.T) {
		resp, err := svc.BrowseTutors(ctx, TutorBrowseQuery{})
		if err != nil {
			t.Fatalf("BrowseTutors: %v", err)
		}
		if len(resp.Tutors) != 3 {
			t.Fatalf("got %d tutors, want 3", len(resp.Tutors))
		}
		for _, tutor := range resp.Tutors {
			if tutor.ID == t1.ID {
				if tutor.AvgRating != 4.5 || tutor.ReviewsCount != 2 {
					t.Errorf("derived rating = (%v, %d), want (4.5, 2)", tutor.AvgRating, tutor.ReviewsCount)
				}
			}
		}
	})

	t.Run("category filter", func(t *testing.T) {
		resp, err := svc.BrowseTutors(ctx, TutorBrowseQuery{CategoryID: &science.ID})
		if err != nil {
			t.Fatalf("BrowseTutors: %v", err)
		}
		if len(resp.Tutors) != 2 {
			t.Errorf("got %d science tutors, want 2", len(resp.Tutors))
		}
	})

	t.Run("availability filter", func(t *testing.T) {
		resp, err := svc.BrowseTutors(ctx, TutorBrowseQuery{Available: ptr(true)})
		if err != nil {
			t.Fatalf("BrowseTutors: %v", err)
		}
		if len(resp.Tutors) != 2 {
			t.Errorf("got %d available tutors, want 2", len(resp.Tutors))
		}
		for _, tutor := range resp.Tutors {
			if tutor.ID == t3.ID {
				t.Error("unavailable tutor in available listing")
			}
		}
	})

	t.Run("featured filter", func(t *testing.T) {
		resp, err := svc.BrowseTutors(ctx, TutorBrowseQuery{Featured: ptr(true)})
		if err != nil {
			t.Fatalf("BrowseTutors: %v", err)
		}
		if len(resp.Tutors) != 1 || resp.Tutors[0].ID != t3.ID {
			t.Errorf("featured listing = %v", resp.Tutors)
		}
	})

	t.Run("pagination meta", func(t *testing.T) {
		resp, err := svc.BrowseTutors(ctx, TutorBrowseQuery{Page: 2, Limit: 2})
		if err != nil {
			t.Fatalf("BrowseTutors: %v", err)
		}
		if len(resp.Tutors) != 1 || resp.Meta.Total != 3 || resp.Meta.TotalPages != 2 {
			t.Errorf("page 2 = %d rows, meta %+v", len(resp.Tutors), resp.Meta)
		}
	})
}

func TestCatalogService_GetTutor(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addUser("u-tutor", models.RoleTutor)
	category := store.addCategory("Science")
	tutor := store.addTutor("u-tutor", category.ID, true)
	svc := newCatalogService(store)

	t.Run("found with relations", func(t *testing.T) {
		got, err := svc.GetTutor(ctx, tutor.ID)
		if err != nil {
			t.Fatalf("GetTutor: %v", err)
		}
		if got.User == nil || got.Category == nil {
			t.Error("expected user and category preloaded")
		}
		if got.AvgRating != 0 || got.ReviewsCount != 0 {
			t.Errorf("rating without reviews = (%v, %d), want (0, 0)", got.AvgRating, got.ReviewsCount)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetTutor(ctx, 999)
		wantAppError(t, err, apperrors.CodeNotFound, 404)
	})
}

func TestCatalogService_ListCategories(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addCategory("Science")
	store.addCategory("Business Studies")
	svc := newCatalogService(store)

	categories, err := svc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(categories))
	}
	if categories[0].Name != "Business Studies" {
		t.Errorf("first category = %s, want alphabetical order", categories[0].Name)
	}
}
