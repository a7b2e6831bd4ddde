package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/handlers"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/services"
)

// In-memory stores backing a full router, so the whole client flow can be
// exercised over HTTP without Postgres or Mongo.

type memUserStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*models.User
	tokens map[string]uuid.UUID
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uuid.UUID]*models.User{}, tokens: map[string]uuid.UUID{}}
}

func (s *memUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) CreateVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *memUserStore) ConsumeVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, common.ErrNotFound
	}
	delete(s.tokens, token)
	s.users[userID].EmailVerified = true
	return userID, nil
}

// pendingToken returns the one outstanding verification token, standing in
// for reading the verification email.
func (s *memUserStore) pendingToken(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.tokens, 1)
	for token := range s.tokens {
		return token
	}
	return ""
}

type memBookingStore struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (s *memBookingStore) Insert(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *b
	out.ID = uuid.New()
	out.CreatedAt = time.Now().UTC()
	s.bookings = append(s.bookings, out)
	return &out, nil
}

func (s *memBookingStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.UserID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memBookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Booking{}, s.bookings...), nil
}

func (s *memBookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, adminNotes string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			s.bookings[i].AdminNotes = adminNotes
			out := s.bookings[i]
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

type memNoteStore struct{}

func (memNoteStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.SessionNote, error) {
	return []models.SessionNote{}, nil
}

func (memNoteStore) Insert(ctx context.Context, n *models.SessionNote) (*models.SessionNote, error) {
	out := *n
	out.ID = uuid.New()
	out.CreatedAt = time.Now().UTC()
	return &out, nil
}

type memJournalStore struct {
	mu      sync.Mutex
	entries []models.JournalEntry
}

func (s *memJournalStore) Insert(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *entry
	out.ID = primitive.NewObjectID()
	out.EntryDate = time.Now().UTC()
	out.CreatedAt = out.EntryDate
	s.entries = append([]models.JournalEntry{out}, s.entries...)
	return &out, nil
}

func (s *memJournalStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.JournalEntry{}
	for _, e := range s.entries {
		if e.UserID == ownerID.String() {
			out = append(out, e)
		}
	}
	return out, nil
}

type memSubscriptionStore struct{}

func (memSubscriptionStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Subscription, error) {
	return []models.Subscription{}, nil
}

type memArticleStore struct {
	mu       sync.Mutex
	articles []models.Article
}

func (s *memArticleStore) ListPublished(ctx context.Context) ([]models.ArticleSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ArticleSummary{}
	for _, a := range s.articles {
		if a.Published {
			out = append(out, models.ArticleSummary{ID: a.ID, Title: a.Title, Slug: a.Slug, CreatedAt: a.CreatedAt})
		}
	}
	return out, nil
}

func (s *memArticleStore) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.Slug == slug && a.Published {
			out := a
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *memArticleStore) Insert(ctx context.Context, a *models.Article) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *a
	out.ID = uuid.New()
	out.CreatedAt = time.Now().UTC()
	s.articles = append(s.articles, out)
	return &out, nil
}

func (s *memArticleStore) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles[i].Published = published
			return nil
		}
	}
	return common.ErrNotFound
}

type testEnv struct {
	router   *chi.Mux
	users    *memUserStore
	bookings *memBookingStore
	articles *memArticleStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	users := newMemUserStore()
	bookings := &memBookingStore{}
	journals := &memJournalStore{}
	articles := &memArticleStore{}

	h := &handlers.Handlers{
		Sessions:      services.NewSessionService(users, rdb, nil),
		AdminAuth:     nil,
		Booking:       services.NewBookingService(bookings, nil),
		Dashboard:     services.NewDashboardAggregator(bookings, memNoteStore{}, journals, memSubscriptionStore{}, nil),
		Content:       services.NewContentService(articles),
		Events:        nil,
		AdminBookings: bookings,
		Notes:         memNoteStore{},
		Posts:         articles,
	}

	r := chi.NewRouter()
	SetupRoutes(r, h)
	return &testEnv{router: r, users: users, bookings: bookings, articles: articles}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// signUpAndIn walks the signup, verification, and signin flow and returns a
// live session token.
func (e *testEnv) signUpAndIn(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": email, "password": "correcthorse", "display_name": "Test Client",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, body["message"], "Check your email")

	rec = e.do(t, http.MethodGet, "/api/auth/verify?token="+e.users.pendingToken(t), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": email, "password": "correcthorse",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// nextOpenDate finds a bookable date comfortably in the future.
func nextOpenDate() string {
	d := time.Now().AddDate(0, 0, 7)
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func TestClientFlow_SignupBookDashboard(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUpAndIn(t, "client@example.com")

	// Dashboard starts empty.
	rec := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode(t, rec)["dashboard"].(map[string]any)
	assert.Empty(t, dashboard["bookings"])

	// Book a session.
	rec = env.do(t, http.MethodPost, "/api/bookings", token, map[string]string{
		"service": "Anxiety Support",
		"date":    nextOpenDate(),
		"time":    "10:00",
		"notes":   "first visit",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	booking := decode(t, rec)["booking"].(map[string]any)
	assert.Equal(t, "pending", booking["status"])

	// Journal an entry.
	rec = env.do(t, http.MethodPost, "/api/journals", token, map[string]string{
		"content": "feeling hopeful",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The dashboard now reflects both.
	rec = env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard = decode(t, rec)["dashboard"].(map[string]any)
	assert.Len(t, dashboard["bookings"], 1)
	assert.Len(t, dashboard["journal_entries"], 1)

	// Sign out, then the token no longer works.
	rec = env.do(t, http.MethodPost, "/api/auth/signout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookingEndpoint_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signUpAndIn(t, "client@example.com")

	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{"unknown service", map[string]string{"service": "Palm Reading", "date": nextOpenDate(), "time": "10:00"}, http.StatusBadRequest},
		{"missing date", map[string]string{"service": "Anxiety Support", "time": "10:00"}, http.StatusBadRequest},
		{"past date", map[string]string{"service": "Anxiety Support", "date": "2020-01-06", "time": "10:00"}, http.StatusBadRequest},
		{"off-grid slot", map[string]string{"service": "Anxiety Support", "date": nextOpenDate(), "time": "03:00"}, http.StatusBadRequest},
		{"malformed date", map[string]string{"service": "Anxiety Support", "date": "next tuesday", "time": "10:00"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/bookings", token, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
	assert.Empty(t, env.bookings.bookings)

	rec := env.do(t, http.MethodPost, "/api/bookings", "", map[string]string{
		"service": "Anxiety Support", "date": nextOpenDate(), "time": "10:00",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBlogEndpoints_PublicAndDraftSafe(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()
	env.articles.articles = []models.Article{
		{ID: uuid.New(), Title: "Grounding Techniques", Slug: "grounding-techniques", Content: "Breathe.", Published: true, PublishedAt: &now, CreatedAt: now},
		{ID: uuid.New(), Title: "Unfinished Draft", Slug: "unfinished-draft", Content: "wip", CreatedAt: now},
	}

	// No auth needed for the public blog.
	rec := env.do(t, http.MethodGet, "/api/blog", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["posts"], 1)

	rec = env.do(t, http.MethodGet, "/api/blog/grounding-techniques", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Draft and missing slugs are the same 404.
	draft := env.do(t, http.MethodGet, "/api/blog/unfinished-draft", "", nil)
	missing := env.do(t, http.MethodGet, "/api/blog/no-such-post", "", nil)
	assert.Equal(t, http.StatusNotFound, draft.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, draft.Body.String(), missing.Body.String())
}

func TestBookingOptionsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/booking/options", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["services"], 8)
	assert.Len(t, body["time_slots"], 16)
	assert.Equal(t, "Sunday", body["closed_weekday"])
}
