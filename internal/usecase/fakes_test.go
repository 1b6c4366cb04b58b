package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/domain/course"
	"career-portal/internal/domain/job"
	"career-portal/internal/domain/skill"
	"career-portal/internal/domain/user"
	"career-portal/internal/infrastructure/storage"
	"career-portal/internal/pkg/jwt"
	"career-portal/internal/pkg/logger"
	"career-portal/internal/repository"

	"github.com/google/uuid"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]user.User
	login map[uuid.UUID]time.Time
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uuid.UUID]user.User{}, login: map[uuid.UUID]time.Time{}}
}

func (f *fakeUsers) Create(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.byID {
		if strings.EqualFold(x.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.byID[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	cur.FirstName, cur.LastName = u.FirstName, u.LastName
	cur.Profile, cur.Preferences, cur.CareerGoals = u.Profile, u.Preferences, u.CareerGoals
	cur.UpdatedAt = u.UpdatedAt
	f.byID[u.ID] = cur
	return nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.login[id] = at
	return nil
}

type fakeSkills struct {
	mu     sync.Mutex
	byUser map[uuid.UUID][]skill.Skill
}

func newFakeSkills() *fakeSkills {
	return &fakeSkills{byUser: map[uuid.UUID][]skill.Skill{}}
}

func (f *fakeSkills) ListByUser(_ context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]skill.Skill{}, f.byUser[userID]...), nil
}

func (f *fakeSkills) find(userID uuid.UUID, name string) int {
	for i, s := range f.byUser[userID] {
		if skill.Key(s.Name) == skill.Key(name) {
			return i
		}
	}
	return -1
}

func (f *fakeSkills) Upsert(_ context.Context, userID uuid.UUID, skills []skill.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range skills {
		if i := f.find(userID, s.Name); i >= 0 {
			f.byUser[userID][i].Level = s.Level
			f.byUser[userID][i].Category = s.Category
			continue
		}
		f.byUser[userID] = append(f.byUser[userID], s)
	}
	return nil
}

func (f *fakeSkills) AddMissing(_ context.Context, userID uuid.UUID, skills []skill.Skill) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range skills {
		if f.find(userID, s.Name) >= 0 {
			continue
		}
		f.byUser[userID] = append(f.byUser[userID], s)
		n++
	}
	return n, nil
}

func (f *fakeSkills) Delete(_ context.Context, userID uuid.UUID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.find(userID, name)
	if i < 0 {
		return user.ErrSkillNotFound
	}
	list := f.byUser[userID]
	f.byUser[userID] = append(list[:i:i], list[i+1:]...)
	return nil
}

type fakeResumes struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]user.Resume
}

func newFakeResumes() *fakeResumes {
	return &fakeResumes{byUser: map[uuid.UUID]user.Resume{}}
}

func (f *fakeResumes) Get(_ context.Context, userID uuid.UUID) (user.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byUser[userID]
	if !ok {
		return user.Resume{}, user.ErrNoResume
	}
	return r, nil
}

func (f *fakeResumes) Save(_ context.Context, userID uuid.UUID, r user.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[userID] = r
	return nil
}

func (f *fakeResumes) Delete(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUser[userID]; !ok {
		return user.ErrNoResume
	}
	delete(f.byUser, userID)
	return nil
}

type fakeActivities struct {
	mu    sync.Mutex
	items []activity.Activity
}

func (f *fakeActivities) Append(_ context.Context, a activity.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, a)
	return nil
}

func (f *fakeActivities) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]activity.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]activity.Activity, 0)
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeActivities) actions(userID uuid.UUID) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0)
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, a.Action)
		}
	}
	return out
}

type fakeNotifier struct {
	mu   sync.Mutex
	seen []activity.Activity
}

func (f *fakeNotifier) NotifyActivity(_ context.Context, a activity.Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, a)
}

type fakeJobs struct {
	mu        sync.Mutex
	jobs      []job.Job
	listCalls int
}

func (f *fakeJobs) List(_ context.Context, fl repository.JobFilter) ([]job.Job, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	active := make([]job.Job, 0)
	for _, j := range f.jobs {
		if j.IsActive() {
			active = append(active, j)
		}
	}
	total := len(active)
	if fl.Offset >= len(active) {
		return []job.Job{}, total, nil
	}
	active = active[fl.Offset:]
	if fl.Limit > 0 && len(active) > fl.Limit {
		active = active[:fl.Limit]
	}
	return active, total, nil
}

func (f *fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, job.ErrNotFound
}

func (f *fakeJobs) IncrementViews(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs[i].Views++
			return nil
		}
	}
	return job.ErrNotFound
}

func (f *fakeJobs) ListActiveByPreference(_ context.Context, fl repository.JobPreferenceFilter) ([]job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]job.Job, 0)
	for _, j := range f.jobs {
		if !j.IsActive() {
			continue
		}
		if fl.WorkArrangement != "" && j.WorkArrangement != fl.WorkArrangement {
			continue
		}
		out = append(out, j)
	}
	if fl.Limit > 0 && len(out) > fl.Limit {
		out = out[:fl.Limit]
	}
	return out, nil
}

func (f *fakeJobs) ActiveSkillSets(_ context.Context) ([][]skill.Requirement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]skill.Requirement, 0)
	for _, j := range f.jobs {
		if j.IsActive() {
			out = append(out, j.Skills)
		}
	}
	return out, nil
}

func (f *fakeJobs) Upsert(_ context.Context, jobs []job.Job) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, jobs...)
	return len(jobs), nil
}

// fakeApplications mimics the store's atomic insert-if-absent.
type fakeApplications struct {
	mu   sync.Mutex
	apps map[[2]uuid.UUID]job.Application
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{apps: map[[2]uuid.UUID]job.Application{}}
}

func (f *fakeApplications) Apply(_ context.Context, a job.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]uuid.UUID{a.JobID, a.UserID}
	if _, ok := f.apps[k]; ok {
		return job.ErrAlreadyApplied
	}
	f.apps[k] = a
	return nil
}

func (f *fakeApplications) HasApplied(_ context.Context, jobID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.apps[[2]uuid.UUID{jobID, userID}]
	return ok, nil
}

func (f *fakeApplications) ListByUser(_ context.Context, userID uuid.UUID, fl repository.ApplicationFilter) ([]repository.ApplicationView, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.ApplicationView, 0)
	for _, a := range f.apps {
		if a.UserID != userID || (fl.Status != "" && a.Status != fl.Status) {
			continue
		}
		out = append(out, repository.ApplicationView{Application: a, Job: job.Job{ID: a.JobID}})
	}
	return out, len(out), nil
}

func (f *fakeApplications) StatusCounts(_ context.Context, userID uuid.UUID) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int{}
	for _, a := range f.apps {
		if a.UserID == userID {
			out[a.Status]++
		}
	}
	return out, nil
}

func (f *fakeApplications) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.apps)
}

type fakeCourses struct {
	mu       sync.Mutex
	courses  []course.Course
	enrolled map[[2]uuid.UUID]bool
}

func (f *fakeCourses) List(_ context.Context, fl repository.CourseFilter) ([]course.Course, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]course.Course, 0)
	for _, c := range f.courses {
		if c.IsActive {
			out = append(out, c)
		}
	}
	total := len(out)
	if fl.Offset >= len(out) {
		return []course.Course{}, total, nil
	}
	out = out[fl.Offset:]
	if fl.Limit > 0 && len(out) > fl.Limit {
		out = out[:fl.Limit]
	}
	return out, total, nil
}

func (f *fakeCourses) GetByID(_ context.Context, id uuid.UUID) (course.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (f *fakeCourses) Enroll(_ context.Context, e course.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.enrolled == nil {
		f.enrolled = map[[2]uuid.UUID]bool{}
	}
	k := [2]uuid.UUID{e.CourseID, e.UserID}
	if f.enrolled[k] {
		return course.ErrAlreadyEnrolled
	}
	f.enrolled[k] = true
	return nil
}

func (f *fakeCourses) Upsert(_ context.Context, courses []course.Course) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses = append(f.courses, courses...)
	return len(courses), nil
}

type fakeBlobs struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{data: map[string][]byte{}}
}

func (f *fakeBlobs) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = b
	return nil
}

func (f *fakeBlobs) Get(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return storage.ErrNotFound
	}
	delete(f.data, key)
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	locks map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, locks: map[string]bool{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	delete(f.locks, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func (f *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locks[key] {
		return false, nil
	}
	f.locks[key] = true
	return true, nil
}

func (f *fakeCache) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

// harness wires every usecase against in-memory fakes.
type harness struct {
	users        *fakeUsers
	skills       *fakeSkills
	resumes      *fakeResumes
	activities   *fakeActivities
	notifier     *fakeNotifier
	jobs         *fakeJobs
	applications *fakeApplications
	courses      *fakeCourses
	blobs        *fakeBlobs
	cache        *fakeCache

	store    UserStore
	activity *ActivityLog
	jwt      *jwt.HMACService
}

func newHarness() *harness {
	h := &harness{
		users:        newFakeUsers(),
		skills:       newFakeSkills(),
		resumes:      newFakeResumes(),
		activities:   &fakeActivities{},
		notifier:     &fakeNotifier{},
		jobs:         &fakeJobs{},
		applications: newFakeApplications(),
		courses:      &fakeCourses{},
		blobs:        newFakeBlobs(),
		cache:        newFakeCache(),
		jwt:          jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour),
	}
	h.store = UserStore{Users: h.users, Skills: h.skills, Resumes: h.resumes, Logger: logger.Nop()}
	h.activity = NewActivityLog(h.activities, logger.Nop(), h.notifier)
	return h
}

func (h *harness) addUser(first string, skills ...skill.Skill) user.User {
	u := user.User{
		ID:        uuid.New(),
		Email:     strings.ToLower(first) + "@example.com",
		FirstName: first,
		LastName:  "Tester",
		Role:      user.RoleStudent,
		IsActive:  true,
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	h.users.byID[u.ID] = u
	if len(skills) > 0 {
		h.skills.byUser[u.ID] = append([]skill.Skill{}, skills...)
	}
	return u
}

func (h *harness) addJob(title string, reqs ...skill.Requirement) job.Job {
	j := job.Job{
		ID:          uuid.New(),
		Title:       title,
		CompanyName: "Acme",
		Status:      job.StatusActive,
		Skills:      reqs,
		CreatedAt:   time.Now().UTC(),
	}
	h.jobs.jobs = append(h.jobs.jobs, j)
	return j
}

func (h *harness) addCourse(title string, taught ...skill.Skill) course.Course {
	c := course.Course{ID: uuid.New(), Title: title, Provider: "Academy", IsActive: true, Skills: taught}
	h.courses.courses = append(h.courses.courses, c)
	return c
}

func req(name string, level skill.Level) skill.Requirement {
	return skill.Requirement{Name: name, Level: level, Required: true}
}

func opt(name string, level skill.Level) skill.Requirement {
	return skill.Requirement{Name: name, Level: level}
}

func has(name string, level skill.Level) skill.Skill {
	return skill.Skill{Name: name, Level: level, Category: skill.CategoryTechnical}
}
