package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/Gopikrishna-M-A/facfolio/internal/apperror"
	"github.com/Gopikrishna-M-A/facfolio/internal/model"
	"github.com/Gopikrishna-M-A/facfolio/internal/repository"
)

// Hand-written in-memory mocks for the repository interfaces. They store
// copies (never the caller's pointers), mimic the sqlite implementation's
// error contract (NotFound, Conflict on slug/email), and expose err fields
// for injecting store failures.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int

	updateErr     error // injected failure for Update
	slugExistsErr error // injected failure for SlugExists

	// conflictOnSlugOnce makes the next Update with this slug fail with
	// Conflict exactly once — simulates losing the check-then-insert race.
	conflictOnSlugOnce string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("user", user.Email)
		}
		if user.Slug != "" && u.Slug == user.Slug {
			return apperror.Conflict("slug", user.Slug)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copy := *u
	return &copy, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) GetBySlug(_ context.Context, slug string) (*model.User, error) {
	for _, u := range m.users {
		if u.Slug == slug && slug != "" {
			copy := *u
			return &copy, nil
		}
	}
	return nil, apperror.NotFound("user", slug)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	if user.Slug != "" && user.Slug == m.conflictOnSlugOnce {
		m.conflictOnSlugOnce = ""
		return apperror.Conflict("slug", user.Slug)
	}
	for id, u := range m.users {
		if id == user.ID {
			continue
		}
		if user.Slug != "" && u.Slug == user.Slug {
			return apperror.Conflict("slug", user.Slug)
		}
		if u.Email == user.Email {
			return apperror.Conflict("user", user.Email)
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	if m.slugExistsErr != nil {
		return false, m.slugExistsErr
	}
	for _, u := range m.users {
		if u.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type mockHomeRepo struct {
	homes  map[string]*model.Home
	nextID int

	createErr error // injected failure for Create
}

func newMockHomeRepo() *mockHomeRepo {
	return &mockHomeRepo{homes: make(map[string]*model.Home)}
}

func (m *mockHomeRepo) Create(_ context.Context, home *model.Home) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	home.ID = fmt.Sprintf("home-%d", m.nextID)
	stored := *home
	m.homes[home.ID] = &stored
	return nil
}

func (m *mockHomeRepo) GetByID(_ context.Context, id string) (*model.Home, error) {
	h, ok := m.homes[id]
	if !ok {
		return nil, apperror.NotFound("home", id)
	}
	copy := *h
	return &copy, nil
}

func (m *mockHomeRepo) GetByUser(_ context.Context, userID string) (*model.Home, error) {
	// Oldest row wins, like the sqlite store. Creation order follows nextID.
	var best *model.Home
	for _, h := range m.homes {
		if h.UserID != userID {
			continue
		}
		if best == nil || h.ID < best.ID {
			best = h
		}
	}
	if best == nil {
		return nil, apperror.NotFound("home", userID)
	}
	copy := *best
	return &copy, nil
}

func (m *mockHomeRepo) List(_ context.Context) ([]model.Home, error) {
	out := []model.Home{}
	for _, h := range m.homes {
		out = append(out, *h)
	}
	return out, nil
}

func (m *mockHomeRepo) Update(_ context.Context, home *model.Home) error {
	if _, ok := m.homes[home.ID]; !ok {
		return apperror.NotFound("home", home.ID)
	}
	stored := *home
	m.homes[home.ID] = &stored
	return nil
}

func (m *mockHomeRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.homes[id]; !ok {
		return apperror.NotFound("home", id)
	}
	delete(m.homes, id)
	return nil
}

// countForUser reports how many Home rows reference the user — the
// idempotence assertions hinge on this being exactly one.
func (m *mockHomeRepo) countForUser(userID string) int {
	n := 0
	for _, h := range m.homes {
		if h.UserID == userID {
			n++
		}
	}
	return n
}

type mockAboutRepo struct {
	abouts map[string]*model.About
	nextID int

	createErr error
}

func newMockAboutRepo() *mockAboutRepo {
	return &mockAboutRepo{abouts: make(map[string]*model.About)}
}

func (m *mockAboutRepo) Create(_ context.Context, about *model.About) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	about.ID = fmt.Sprintf("about-%d", m.nextID)
	stored := *about
	m.abouts[about.ID] = &stored
	return nil
}

func (m *mockAboutRepo) GetByID(_ context.Context, id string) (*model.About, error) {
	a, ok := m.abouts[id]
	if !ok {
		return nil, apperror.NotFound("about", id)
	}
	copy := *a
	return &copy, nil
}

func (m *mockAboutRepo) GetByUser(_ context.Context, userID string) (*model.About, error) {
	var best *model.About
	for _, a := range m.abouts {
		if a.UserID != userID {
			continue
		}
		if best == nil || a.ID < best.ID {
			best = a
		}
	}
	if best == nil {
		return nil, apperror.NotFound("about", userID)
	}
	copy := *best
	return &copy, nil
}

func (m *mockAboutRepo) List(_ context.Context) ([]model.About, error) {
	out := []model.About{}
	for _, a := range m.abouts {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockAboutRepo) Update(_ context.Context, about *model.About) error {
	if _, ok := m.abouts[about.ID]; !ok {
		return apperror.NotFound("about", about.ID)
	}
	stored := *about
	m.abouts[about.ID] = &stored
	return nil
}

func (m *mockAboutRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.abouts[id]; !ok {
		return apperror.NotFound("about", id)
	}
	delete(m.abouts, id)
	return nil
}

func (m *mockAboutRepo) countForUser(userID string) int {
	n := 0
	for _, a := range m.abouts {
		if a.UserID == userID {
			n++
		}
	}
	return n
}

type mockResearchRepo struct {
	items  map[string]*model.Research
	nextID int
}

func newMockResearchRepo() *mockResearchRepo {
	return &mockResearchRepo{items: make(map[string]*model.Research)}
}

func (m *mockResearchRepo) Create(_ context.Context, research *model.Research) error {
	m.nextID++
	research.ID = fmt.Sprintf("research-%d", m.nextID)
	stored := *research
	m.items[research.ID] = &stored
	return nil
}

func (m *mockResearchRepo) GetByID(_ context.Context, id string) (*model.Research, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, apperror.NotFound("research", id)
	}
	copy := *r
	return &copy, nil
}

func (m *mockResearchRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Research, error) {
	out := []model.Research{}
	for _, r := range m.items {
		if opts.UserID != "" && r.UserID != opts.UserID {
			continue
		}
		if opts.VisibleOnly && !r.IsVisible {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockResearchRepo) Update(_ context.Context, research *model.Research) error {
	if _, ok := m.items[research.ID]; !ok {
		return apperror.NotFound("research", research.ID)
	}
	stored := *research
	m.items[research.ID] = &stored
	return nil
}

func (m *mockResearchRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return apperror.NotFound("research", id)
	}
	delete(m.items, id)
	return nil
}

type mockProjectRepo struct {
	items  map[string]*model.Project
	nextID int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{items: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	m.nextID++
	project.ID = fmt.Sprintf("project-%d", m.nextID)
	stored := *project
	m.items[project.ID] = &stored
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, apperror.NotFound("project", id)
	}
	copy := *p
	return &copy, nil
}

func (m *mockProjectRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Project, error) {
	out := []model.Project{}
	for _, p := range m.items {
		if opts.UserID != "" && p.UserID != opts.UserID {
			continue
		}
		if opts.VisibleOnly && !p.IsVisible {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	if _, ok := m.items[project.ID]; !ok {
		return apperror.NotFound("project", project.ID)
	}
	stored := *project
	m.items[project.ID] = &stored
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return apperror.NotFound("project", id)
	}
	delete(m.items, id)
	return nil
}

type mockBlogRepo struct {
	items  map[string]*model.Blog
	nextID int
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{items: make(map[string]*model.Blog)}
}

func (m *mockBlogRepo) Create(_ context.Context, blog *model.Blog) error {
	m.nextID++
	blog.ID = fmt.Sprintf("blog-%d", m.nextID)
	stored := *blog
	m.items[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) GetByID(_ context.Context, id string) (*model.Blog, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	copy := *b
	return &copy, nil
}

func (m *mockBlogRepo) List(_ context.Context, opts repository.ListOptions) ([]model.Blog, error) {
	out := []model.Blog{}
	for _, b := range m.items {
		if opts.UserID != "" && b.UserID != opts.UserID {
			continue
		}
		if opts.VisibleOnly && !b.IsVisible {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBlogRepo) Update(_ context.Context, blog *model.Blog) error {
	if _, ok := m.items[blog.ID]; !ok {
		return apperror.NotFound("blog", blog.ID)
	}
	stored := *blog
	m.items[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return apperror.NotFound("blog", id)
	}
	delete(m.items, id)
	return nil
}

// Interface conformance for the mocks.
var (
	_ repository.UserRepository     = (*mockUserRepo)(nil)
	_ repository.HomeRepository     = (*mockHomeRepo)(nil)
	_ repository.AboutRepository    = (*mockAboutRepo)(nil)
	_ repository.ResearchRepository = (*mockResearchRepo)(nil)
	_ repository.ProjectRepository  = (*mockProjectRepo)(nil)
	_ repository.BlogRepository     = (*mockBlogRepo)(nil)
)

// newTestResolver wires an IdentityResolver over fresh mocks.
func newTestResolver(t *testing.T) (*IdentityResolver, *mockUserRepo, *mockHomeRepo, *mockAboutRepo) {
	t.Helper()
	users := newMockUserRepo()
	homes := newMockHomeRepo()
	abouts := newMockAboutRepo()
	return NewIdentityResolver(users, homes, abouts, testLogger()), users, homes, abouts
}
