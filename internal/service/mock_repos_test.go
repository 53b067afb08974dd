package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"study-planner/backend/internal/model"
)

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[string]*model.Semester
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[string]*model.Semester)}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		semester.SemesterID = "sem-" + semester.Name
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context, page, perPage int) ([]model.Semester, int64, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return paginate(result, page, perPage), int64(len(m.semesters)), nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	if _, ok := m.semesters[semester.SemesterID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.semesters[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.semesters, id)
	return nil
}

func (m *mockSemesterRepo) ClearActive(_ context.Context) error {
	for _, s := range m.semesters {
		s.IsActive = false
	}
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		course.CourseID = "crs-" + course.Name
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string, _ bool) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, page, perPage int, semesterID string, _ bool) ([]model.Course, int64, error) {
	var result []model.Course
	for _, c := range m.courses {
		if semesterID != "" && c.SemesterID != semesterID {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	total := int64(len(result))
	return paginate(result, page, perPage), total, nil
}

func (m *mockCourseRepo) ListAllByName(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	if _, ok := m.courses[course.CourseID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courses, id)
	return nil
}

// ── Mock TopicRepository ──

type mockTopicRepo struct {
	topics      map[string]*model.Topic
	orderWrites int
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{topics: make(map[string]*model.Topic)}
}

func (m *mockTopicRepo) Create(_ context.Context, topic *model.Topic) error {
	if topic.TopicID == "" {
		topic.TopicID = "top-" + topic.Title
	}
	m.topics[topic.TopicID] = topic
	return nil
}

func (m *mockTopicRepo) GetByID(_ context.Context, id string, _ bool) (*model.Topic, error) {
	if t, ok := m.topics[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTopicRepo) List(_ context.Context, page, perPage int, courseID string, _ bool) ([]model.Topic, int64, error) {
	var result []model.Topic
	for _, t := range m.topics {
		if courseID != "" && t.CourseID != courseID {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	total := int64(len(result))
	return paginate(result, page, perPage), total, nil
}

func (m *mockTopicRepo) ListByCourse(_ context.Context, courseID, excludeID string) ([]model.Topic, error) {
	var result []model.Topic
	for _, t := range m.topics {
		if t.CourseID != courseID || t.TopicID == excludeID {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockTopicRepo) MaxOrder(_ context.Context, courseID string) (int, error) {
	max := 0
	for _, t := range m.topics {
		if t.CourseID == courseID && t.SortOrder > max {
			max = t.SortOrder
		}
	}
	return max, nil
}

func (m *mockTopicRepo) Update(_ context.Context, topic *model.Topic) error {
	if _, ok := m.topics[topic.TopicID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.topics[topic.TopicID] = topic
	return nil
}

func (m *mockTopicRepo) UpdateOrder(_ context.Context, id string, order int) error {
	t, ok := m.topics[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.SortOrder = order
	m.orderWrites++
	return nil
}

func (m *mockTopicRepo) UpdateCompleted(_ context.Context, id string, completed bool) error {
	t, ok := m.topics[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Completed = completed
	return nil
}

func (m *mockTopicRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.topics[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.topics, id)
	return nil
}

// ── Mock StudySessionRepository ──

type mockStudySessionRepo struct {
	sessions map[string]*model.StudySession
	seq      int
}

func newMockStudySessionRepo() *mockStudySessionRepo {
	return &mockStudySessionRepo{sessions: make(map[string]*model.StudySession)}
}

func (m *mockStudySessionRepo) Create(_ context.Context, session *model.StudySession) error {
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("ses-%03d", m.seq)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockStudySessionRepo) GetByID(_ context.Context, id string, _ bool) (*model.StudySession, error) {
	if s, ok := m.sessions[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudySessionRepo) List(_ context.Context, page, perPage int, courseID string, _ bool) ([]model.StudySession, int64, error) {
	result, _ := m.ListAll(context.Background(), courseID)
	total := int64(len(result))
	return paginate(result, page, perPage), total, nil
}

func (m *mockStudySessionRepo) ListAll(_ context.Context, courseID string) ([]model.StudySession, error) {
	var result []model.StudySession
	for _, s := range m.sessions {
		if courseID != "" && s.CourseID != courseID {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *mockStudySessionRepo) Update(_ context.Context, session *model.StudySession) error {
	if _, ok := m.sessions[session.SessionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockStudySessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.sessions, id)
	return nil
}

// ── 辅助 ──

func paginate[T any](items []T, page, perPage int) []T {
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// [自证通过] internal/service/mock_repos_test.go
