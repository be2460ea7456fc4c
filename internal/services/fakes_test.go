package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tutorlane/marketplace-service/internal/events"
	"github.com/tutorlane/marketplace-service/internal/models"
	"github.com/tutorlane/marketplace-service/internal/repositories"
	"github.com/tutorlane/marketplace-service/internal/utils"
)

// fakeStore is the shared in-memory backing for the fake repositories. All
// sub-repositories operate on the same maps so multi-table flows behave like
// a single database.
type fakeStore struct {
	mu sync.Mutex

	users      map[string]*models.User
	students   map[uint]*models.Student
	tutors     map[uint]*models.Tutor
	categories map[uint]*models.Category
	bookings   map[uint]*models.Booking
	reviews    map[uint]*models.Review

	nextID      uint
	invalidated []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[string]*models.User{},
		students:   map[uint]*models.Student{},
		tutors:     map[uint]*models.Tutor{},
		categories: map[uint]*models.Category{},
		bookings:   map[uint]*models.Booking{},
		reviews:    map[uint]*models.Review{},
	}
}

func (s *fakeStore) nextPK() uint {
	s.nextID++
	return s.nextID
}

// ===== SEED HELPERS =====

func (s *fakeStore) addUser(id string, role models.UserRole) *models.User {
	u := &models.User{ID: id, Name: "User " + id, Email: id + "@example.com", EmailVerified: true, Role: role, Status: models.UserActive}
	s.users[id] = u
	return u
}

func (s *fakeStore) addStudent(userID string) *models.Student {
	st := &models.Student{ID: s.nextPK(), UserID: userID, Class: "10", Institute: "Inst", Address: "Addr", Phone: "0100", Group: models.GroupScience}
	s.students[st.ID] = st
	return st
}

func (s *fakeStore) addCategory(name string) *models.Category {
	c := &models.Category{ID: s.nextPK(), Name: name, Subjects: datatypes.JSONSlice[string]{"Subject A"}}
	s.categories[c.ID] = c
	return c
}

func (s *fakeStore) addTutor(userID string, categoryID uint, available bool) *models.Tutor {
	t := &models.Tutor{
		ID:          s.nextPK(),
		UserID:      userID,
		Subject:     "Physics",
		Experience:  "5 years",
		Address:     "Addr",
		Phone:       "0200",
		Group:       models.GroupScience,
		CategoryID:  categoryID,
		PricePerDay: 500,
		IsAvailable: available,
	}
	s.tutors[t.ID] = t
	return t
}

func (s *fakeStore) addBooking(studentID, tutorID uint, status models.BookingStatus) *models.Booking {
	b := &models.Booking{
		ID:        s.nextPK(),
		StudentID: studentID,
		TutorID:   tutorID,
		Date:      time.Now().AddDate(0, 0, 1),
		Time:      "10:00",
		Duration:  2,
		Status:    status,
		CreatedAt: time.Now(),
	}
	s.bookings[b.ID] = b
	return b
}

func (s *fakeStore) addReview(studentID, tutorID, bookingID uint, rating int) *models.Review {
	r := &models.Review{ID: s.nextPK(), StudentID: studentID, TutorID: tutorID, BookingID: bookingID, Rating: rating}
	s.reviews[r.ID] = r
	return r
}

// ===== AGGREGATE =====

type fakeRepository struct {
	store *fakeStore
}

func newFakeRepository(store *fakeStore) repositories.Repository {
	return &fakeRepository{store: store}
}

func (r *fakeRepository) User() repositories.UserRepository           { return &fakeUserRepo{r.store} }
func (r *fakeRepository) Student() repositories.StudentRepository     { return &fakeStudentRepo{r.store} }
func (r *fakeRepository) Tutor() repositories.TutorRepository         { return &fakeTutorRepo{r.store} }
func (r *fakeRepository) Category() repositories.CategoryRepository   { return &fakeCategoryRepo{r.store} }
func (r *fakeRepository) Booking() repositories.BookingRepository     { return &fakeBookingRepo{r.store} }
func (r *fakeRepository) Review() repositories.ReviewRepository       { return &fakeReviewRepo{r.store} }
func (r *fakeRepository) Analytics() repositories.AnalyticsRepository { return &fakeAnalyticsRepo{r.store} }
func (r *fakeRepository) Identity() repositories.IdentityRepository   { return &fakeIdentityRepo{r.store} }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return nil }
func (r *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, status models.UserStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.User
	for _, u := range r.store.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.Status != nil && u.Status != *filters.Status {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return page(out, filters.Offset, filters.Limit), total, nil
}

// ===== STUDENTS =====

type fakeStudentRepo struct{ store *fakeStore }

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st, ok := r.store.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return st, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, st := range r.store.students {
		if st.UserID == userID {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	student.ID = r.store.nextPK()
	r.store.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.students[student.ID] = student
	return nil
}

func (r *fakeStudentRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	st, ok := r.store.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "class":
			st.Class = value.(string)
		case "institute":
			st.Institute = value.(string)
		case "address":
			st.Address = value.(string)
		case "phone":
			st.Phone = value.(string)
		case "profile_pic":
			st.ProfilePic = optString(value)
		case "bio":
			st.Bio = optString(value)
		case "group":
			st.Group = value.(models.AcademicGroup)
		}
	}
	return nil
}

func (r *fakeStudentRepo) DeleteByUserID(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, st := range r.store.students {
		if st.UserID == userID {
			delete(r.store.students, id)
		}
	}
	return nil
}

// ===== TUTORS =====

type fakeTutorRepo struct{ store *fakeStore }

func (r *fakeTutorRepo) GetByID(ctx context.Context, id uint) (*models.Tutor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tutors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTutorRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.Tutor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tutors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.attach(t)
	return t, nil
}

func (r *fakeTutorRepo) GetByUserID(ctx context.Context, userID string) (*models.Tutor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.tutors {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTutorRepo) Create(ctx context.Context, tutor *models.Tutor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tutor.ID = r.store.nextPK()
	r.store.tutors[tutor.ID] = tutor
	return nil
}

func (r *fakeTutorRepo) Update(ctx context.Context, tutor *models.Tutor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tutors[tutor.ID] = tutor
	return nil
}

func (r *fakeTutorRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.tutors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "subject":
			t.Subject = value.(string)
		case "experience":
			t.Experience = value.(string)
		case "address":
			t.Address = value.(string)
		case "phone":
			t.Phone = value.(string)
		case "profile_pic":
			t.ProfilePic = optString(value)
		case "bio":
			t.Bio = optString(value)
		case "institute":
			t.Institute = optString(value)
		case "available_from":
			t.AvailableFrom = optString(value)
		case "available_to":
			t.AvailableTo = optString(value)
		case "group":
			t.Group = value.(models.AcademicGroup)
		case "category_id":
			t.CategoryID = value.(uint)
		case "price_per_day":
			t.PricePerDay = value.(float64)
		case "is_available":
			t.IsAvailable = value.(bool)
		case "is_featured":
			t.IsFeatured = value.(bool)
		}
	}
	return nil
}

func (r *fakeTutorRepo) List(ctx context.Context, filters repositories.TutorFilters) ([]*models.Tutor, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Tutor
	for _, t := range r.store.tutors {
		if filters.CategoryID != nil && t.CategoryID != *filters.CategoryID {
			continue
		}
		if filters.Available != nil && t.IsAvailable != *filters.Available {
			continue
		}
		if filters.Featured != nil && t.IsFeatured != *filters.Featured {
			continue
		}
		r.attach(t)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return page(out, filters.Offset, filters.Limit), total, nil
}

func (r *fakeTutorRepo) ListAllWithReviews(ctx context.Context) ([]*models.Tutor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Tutor
	for _, t := range r.store.tutors {
		r.attach(t)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTutorRepo) DeleteByUserID(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, t := range r.store.tutors {
		if t.UserID == userID {
			delete(r.store.tutors, id)
		}
	}
	return nil
}

// attach mimics the relation preloads. Caller holds the lock.
func (r *fakeTutorRepo) attach(t *models.Tutor) {
	t.User = r.store.users[t.UserID]
	t.Category = r.store.categories[t.CategoryID]
	t.Reviews = nil
	var ids []uint
	for id, rv := range r.store.reviews {
		if rv.TutorID == t.ID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		t.Reviews = append(t.Reviews, *r.store.reviews[id])
	}
}

// ===== CATEGORIES =====

type fakeCategoryRepo struct{ store *fakeStore }

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.categories[id]
	return ok, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Category
	for _, c := range r.store.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	category.ID = r.store.nextPK()
	r.store.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "name":
			c.Name = value.(string)
		case "subjects":
			c.Subjects = value.(datatypes.JSONSlice[string])
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.categories, id)
	return nil
}

func (r *fakeCategoryRepo) CountTutors(ctx context.Context, id uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, t := range r.store.tutors {
		if t.CategoryID == id {
			n++
		}
	}
	return n, nil
}

// ===== BOOKINGS =====

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	b.Student = r.store.students[b.StudentID]
	b.Tutor = r.store.tutors[b.TutorID]
	for _, rv := range r.store.reviews {
		if rv.BookingID == b.ID {
			b.Review = rv
		}
	}
	return b, nil
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking.ID = r.store.nextPK()
	booking.CreatedAt = time.Now()
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) UpdateStatusIf(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *fakeBookingRepo) List(ctx context.Context, filters repositories.BookingFilters) ([]*models.Booking, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.store.bookings {
		if filters.StudentID != nil && b.StudentID != *filters.StudentID {
			continue
		}
		if filters.TutorID != nil && b.TutorID != *filters.TutorID {
			continue
		}
		if filters.Status != nil && b.Status != *filters.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return page(out, filters.Offset, filters.Limit), total, nil
}

func (r *fakeBookingRepo) CountByStatusForTutor(ctx context.Context, tutorID uint) (map[models.BookingStatus]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := map[models.BookingStatus]int64{}
	for _, b := range r.store.bookings {
		if b.TutorID == tutorID {
			counts[b.Status]++
		}
	}
	return counts, nil
}

func (r *fakeBookingRepo) DeleteByStudentID(ctx context.Context, studentID uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, b := range r.store.bookings {
		if b.StudentID == studentID {
			delete(r.store.bookings, id)
		}
	}
	return nil
}

func (r *fakeBookingRepo) DeleteByTutorID(ctx context.Context, tutorID uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, b := range r.store.bookings {
		if b.TutorID == tutorID {
			delete(r.store.bookings, id)
		}
	}
	return nil
}

// ===== REVIEWS =====

type fakeReviewRepo struct{ store *fakeStore }

func (r *fakeReviewRepo) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rv, ok := r.store.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rv, nil
}

func (r *fakeReviewRepo) GetByBookingID(ctx context.Context, bookingID uint) (*models.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rv := range r.store.reviews {
		if rv.BookingID == bookingID {
			return rv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) ExistsByBookingID(ctx context.Context, bookingID uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rv := range r.store.reviews {
		if rv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	review.ID = r.store.nextPK()
	r.store.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) ListByTutorID(ctx context.Context, tutorID uint) ([]*models.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Review
	for _, rv := range r.store.reviews {
		if rv.TutorID == tutorID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) ListByStudentID(ctx context.Context, studentID uint) ([]*models.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Review
	for _, rv := range r.store.reviews {
		if rv.StudentID == studentID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) List(ctx context.Context, filters repositories.ReviewFilters) ([]*models.Review, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*models.Review
	for _, rv := range r.store.reviews {
		if filters.TutorID != nil && rv.TutorID != *filters.TutorID {
			continue
		}
		if filters.StudentID != nil && rv.StudentID != *filters.StudentID {
			continue
		}
		if filters.RatingMin != nil && rv.Rating < *filters.RatingMin {
			continue
		}
		if filters.RatingMax != nil && rv.Rating > *filters.RatingMax {
			continue
		}
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return page(out, filters.Offset, filters.Limit), total, nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.reviews, id)
	return nil
}

func (r *fakeReviewRepo) DeleteByStudentID(ctx context.Context, studentID uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, rv := range r.store.reviews {
		if rv.StudentID == studentID {
			delete(r.store.reviews, id)
		}
	}
	return nil
}

func (r *fakeReviewRepo) DeleteByTutorID(ctx context.Context, tutorID uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, rv := range r.store.reviews {
		if rv.TutorID == tutorID {
			delete(r.store.reviews, id)
		}
	}
	return nil
}

// ===== ANALYTICS =====

type fakeAnalyticsRepo struct{ store *fakeStore }

func (r *fakeAnalyticsRepo) EntityCounts(ctx context.Context) (*repositories.EntityCounts, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return &repositories.EntityCounts{
		Users:      int64(len(r.store.users)),
		Students:   int64(len(r.store.students)),
		Tutors:     int64(len(r.store.tutors)),
		Categories: int64(len(r.store.categories)),
		Bookings:   int64(len(r.store.bookings)),
		Reviews:    int64(len(r.store.reviews)),
	}, nil
}

func (r *fakeAnalyticsRepo) UsersByRole(ctx context.Context) (map[string]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := map[string]int64{}
	for _, u := range r.store.users {
		out[string(u.Role)]++
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) UsersByStatus(ctx context.Context) (map[string]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := map[string]int64{}
	for _, u := range r.store.users {
		out[string(u.Status)]++
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) BookingsByStatus(ctx context.Context) (map[string]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := map[string]int64{}
	for _, b := range r.store.bookings {
		out[string(b.Status)]++
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) DailyBookings(ctx context.Context, from, to time.Time) ([]repositories.DailyBookingCount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	byDay := map[string]int64{}
	for _, b := range r.store.bookings {
		if b.CreatedAt.Before(from) || b.CreatedAt.After(to) {
			continue
		}
		byDay[b.CreatedAt.Format("2006-01-02")]++
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	out := make([]repositories.DailyBookingCount, 0, len(days))
	for _, day := range days {
		out = append(out, repositories.DailyBookingCount{Day: day, Count: byDay[day]})
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) ReviewStats(ctx context.Context) (*repositories.RatingStats, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stats := &repositories.RatingStats{}
	var sum int
	for _, rv := range r.store.reviews {
		stats.Count++
		sum += rv.Rating
	}
	if stats.Count > 0 {
		stats.Average = float64(sum) / float64(stats.Count)
	}
	return stats, nil
}

// ===== IDENTITY =====

type fakeIdentityRepo struct{ store *fakeStore }

func (r *fakeIdentityRepo) ResolveToken(ctx context.Context, token string) (*models.User, *models.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[token]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	return u, &models.Session{ID: "sess-" + token, UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (r *fakeIdentityRepo) Invalidate(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.invalidated = append(r.store.invalidated, userID)
	return nil
}

// ===== PUBLISHER =====

// capturePublisher records every event handed to the watermill publisher so
// tests can assert on the outbound stream.
type capturePublisher struct {
	mu       sync.Mutex
	messages []*message.Message
}

func (p *capturePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, messages...)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, msg := range p.messages {
		out = append(out, msg.Metadata.Get(events.MetadataEventType))
	}
	return out
}

// ===== SHARED HELPERS =====

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPublisher() (*events.Publisher, *capturePublisher) {
	capture := &capturePublisher{}
	return events.NewPublisher(capture, "marketplace.events", utils.NewSlogLogger(testLogger())), capture
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func ptr[T any](v T) *T { return &v }

// optString mirrors patchString's tri-state map values: a nil entry clears
// the field, otherwise the entry is a plain string.
func optString(value interface{}) *string {
	if value == nil {
		return nil
	}
	return ptr(value.(string))
}
