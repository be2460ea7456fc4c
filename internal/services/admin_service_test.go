package services

import (
	"context"
	"testing"

	"github.com/tutorlane/marketplace-service/internal/events"
	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/validator"
	"github.com/tutorlane/marketplace-service/pkg/apperrors"
)

func newAdminService(store *fakeStore) (AdminService, *capturePublisher) {
	publisher, capture := testPublisher()
	return NewAdminService(newFakeRepository(store), validator.New(), publisher, testLogger()), capture
}

func TestAdminService_UserModeration(t *testing.T) {
	ctx := context.Background()

	t.Run("role update invalidates identity", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u-1", models.RoleStudent)
		svc, _ := newAdminService(store)

		user, err := svc.UpdateUserRole(ctx, "u-1", UserRoleUpdateRequest{Role: models.RoleTutor})
		if err != nil {
			t.Fatalf("UpdateUserRole: %v", err)
		}
		if user.Role != models.RoleTutor {
			t.Errorf("role = %s, want %s", user.Role, models.RoleTutor)
		}
		if len(store.invalidated) != 1 || store.invalidated[0] != "u-1" {
			t.Errorf("invalidated = %v, want [u-1]", store.invalidated)
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u-1", models.RoleStudent)
		svc, _ := newAdminService(store)

		_, err := svc.UpdateUserRole(ctx, "u-1", UserRoleUpdateRequest{Role: "superuser"})
		wantAppError(t, err, apperrors.CodeValidationFailed, 400)
	})

	t.Run("suspend and activate", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u-1", models.RoleStudent)
		svc, _ := newAdminService(store)

		user, err := svc.SuspendUser(ctx, "u-1")
		if err != nil {
			t.Fatalf("SuspendUser: %v", err)
		}
		if user.Status != models.UserSuspended {
			t.Errorf("status = %s, want %s", user.Status, models.UserSuspended)
		}

		user, err = svc.ActivateUser(ctx, "u-1")
		if err != nil {
			t.Fatalf("ActivateUser: %v", err)
		}
		if user.Status != models.UserActive {
			t.Errorf("status = %s, want %s", user.Status, models.UserActive)
		}
		if len(store.invalidated) != 2 {
			t.Errorf("expected 2 invalidations, got %d", len(store.invalidated))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		store := newFakeStore()
		svc, _ := newAdminService(store)
		_, err := svc.SuspendUser(ctx, "ghost")
		wantAppError(t, err, apperrors.CodeNotFound, 404)
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades student data", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u-student", models.RoleStudent)
		student := store.addStudent("u-student")
		store.addUser("u-tutor", models.RoleTutor)
		category := store.addCategory("Science")
		tutor := store.addTutor("u-tutor", category.ID, true)
		booking := store.addBooking(student.ID, tutor.ID, models.BookingCompleted)
		store.addReview(student.ID, tutor.ID, booking.ID, 5)

		svc, capture := newAdminService(store)
		if err := svc.DeleteUser(ctx, "u-student"); err != nil {
			t.Fatalf("DeleteUser: %v", err)
		}

		if len(store.users) != 1 {
			t.Errorf("users = %d, want 1", len(store.users))
		}
		if len(store.students) != 0 || len(store.bookings) != 0 || len(store.reviews) != 0 {
			t.Errorf("cascade left rows: students %d bookings %d reviews %d",
				len(store.students), len(store.bookings), len(store.reviews))
		}
		// The tutor side is untouched.
		if len(store.tutors) != 1 {
			t.Errorf("tutors = %d, want 1", len(store.tutors))
		}
		types := capture.eventTypes()
		if len(types) != 1 || types[0] != events.UserDeleted {
			t.Errorf("published events = %v, want [%s]", types, events.UserDeleted)
		}
		if len(store.invalidated) != 1 {
			t.Errorf("expected identity invalidation, got %v", store.invalidated)
		}
	})

	t.Run("cascades tutor data", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u-student", models.RoleStudent)
		student := store.addStudent("u-student")
		store.addUser("u-tutor", models.RoleTutor)
		category := store.addCategory("Science")
		tutor := store.addTutor("u-tutor", category.ID, true)
		booking := store.addBooking(student.ID, tutor.ID, models.BookingCompleted)
		store.addReview(student.ID, tutor.ID, booking.ID, 4)

		svc, _ := newAdminService(store)
		if err := svc.DeleteUser(ctx, "u-tutor"); err != nil {
			t.Fatalf("DeleteUser: %v", err)
		}

		if len(store.tutors) != 0 || len(store.bookings) != 0 || len(store.reviews) != 0 {
			t.Errorf("cascade left rows: tutors %d bookings %d reviews %d",
				len(store.tutors), len(store.bookings), len(store.reviews))
		}
		if len(store.students) != 1 {
			t.Errorf("students = %d, want 1", len(store.students))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		store := newFakeStore()
		svc, _ := newAdminService(store)
		err := svc.DeleteUser(ctx, "ghost")
		wantAppError(t, err, apperrors.CodeNotFound, 404)
	})
}

func TestAdminService_Categories(t *testing.T) {
	ctx := context.Background()

	t.Run("create and update", func(t *testing.T) {
		store := newFakeStore()
		svc, _ := newAdminService(store)

		category, err := svc.CreateCategory(ctx, CategoryCreateRequest{
			Name:     "Science",
			Subjects: []string{"Physics", "Chemistry"},
		})
		if err != nil {
			t.Fatalf("CreateCategory: %v", err)
		}
		if len(category.Subjects) != 2 {
			t.Errorf("subjects = %v", category.Subjects)
		}

		category, err = svc.UpdateCategory(ctx, category.ID, CategoryUpdateRequest{
			Name:     validator.Some("Natural Science"),
			Subjects: validator.Some([]string{"Physics"}),
		})
		if err != nil {
			t.Fatalf("UpdateCategory: %v", err)
		}
		if category.Name != "Natural Science" || len(category.Subjects) != 1 {
			t.Errorf("category = %+v", category)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		store := newFakeStore()
		category := store.addCategory("Science")
		svc, _ := newAdminService(store)

		_, err := svc.UpdateCategory(ctx, category.ID, CategoryUpdateRequest{
			Name: validator.Null[string](),
		})
		wantAppError(t, err, apperrors.CodeBadRequest, 400)
	})

	t.Run("delete refuses while referenced", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u-tutor", models.RoleTutor)
		category := store.addCategory("Science")
		store.addTutor("u-tutor", category.ID, true)
		svc, _ := newAdminService(store)

		err := svc.DeleteCategory(ctx, category.ID)
		wantAppError(t, err, apperrors.CodeCategoryInUse, 409)
		if _, ok := store.categories[category.ID]; !ok {
			t.Error("category deleted despite references")
		}
	})

	t.Run("delete unreferenced", func(t *testing.T) {
		store := newFakeStore()
		category := store.addCategory("Science")
		svc, _ := newAdminService(store)

		if err := svc.DeleteCategory(ctx, category.ID); err != nil {
			t.Fatalf("DeleteCategory: %v", err)
		}
		if len(store.categories) != 0 {
			t.Error("category still present")
		}
	})
}

func TestAdminService_TutorModeration(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addUser("u-tutor", models.RoleTutor)
	category := store.addCategory("Science")
	tutor := store.addTutor("u-tutor", category.ID, true)
	svc, _ := newAdminService(store)

	t.Run("feature", func(t *testing.T) {
		got, err := svc.SetTutorFeatured(ctx, tutor.ID, FeaturedUpdateRequest{IsFeatured: ptr(true)})
		if err != nil {
			t.Fatalf("SetTutorFeatured: %v", err)
		}
		if !got.IsFeatured {
			t.Error("tutor not featured")
		}
	})

	t.Run("force unavailable", func(t *testing.T) {
		got, err := svc.SetTutorAvailability(ctx, tutor.ID, AvailabilityUpdateRequest{IsAvailable: ptr(false)})
		if err != nil {
			t.Fatalf("SetTutorAvailability: %v", err)
		}
		if got.IsAvailable {
			t.Error("tutor still available")
		}
	})

	t.Run("unknown tutor", func(t *testing.T) {
		_, err := svc.SetTutorFeatured(ctx, 999, FeaturedUpdateRequest{IsFeatured: ptr(true)})
		wantAppError(t, err, apperrors.CodeNotFound, 404)
	})
}

func TestAdminService_DeleteReview(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addUser("u-student", models.RoleStudent)
	student := store.addStudent("u-student")
	store.addUser("u-tutor", models.RoleTutor)
	category := store.addCategory("Science")
	tutor := store.addTutor("u-tutor", category.ID, true)
	booking := store.addBooking(student.ID, tutor.ID, models.BookingCompleted)
	review := store.addReview(student.ID, tutor.ID, booking.ID, 2)
	svc, _ := newAdminService(store)

	if err := svc.DeleteReview(ctx, review.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if len(store.reviews) != 0 {
		t.Error("review still present")
	}

	err := svc.DeleteReview(ctx, review.ID)
	wantAppError(t, err, apperrors.CodeNotFound, 404)
}

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.addUser("u-1", models.RoleStudent)
	store.addUser("u-2", models.RoleTutor)
	store.addUser("u-3", models.RoleStudent)
	svc, _ := newAdminService(store)

	role := models.RoleStudent
	resp, err := svc.ListUsers(ctx, UserListQuery{Role: &role})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(resp.Users) != 2 || resp.Meta.Total != 2 {
		t.Errorf("got %d users, total %d, want 2/2", len(resp.Users), resp.Meta.Total)
	}
}
