package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/studyshare/materials-api/internal/core/domain"
)

// In-memory fakes shared by the service tests. They count calls so tests can
// assert on side effects (or their absence).

type memAuthRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newMemAuthRepo() *memAuthRepo {
	return &memAuthRepo{users: make(map[string]*domain.User)}
}

func (r *memAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	created := *user
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.Email] = &created
	clone := created
	return &clone, nil
}

func (r *memAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type memSubjectRepo struct {
	subjects map[string]*domain.Subject
	nextID   int
	pushErr  error // forces PushMaterial failures
	pushes   int
	pulls    int
}

func newMemSubjectRepo() *memSubjectRepo {
	return &memSubjectRepo{subjects: make(map[string]*domain.Subject)}
}

func (r *memSubjectRepo) Insert(_ context.Context, s *domain.Subject) (*domain.Subject, error) {
	r.nextID++
	created := *s
	created.ID = fmt.Sprintf("subj-%d", r.nextID)
	r.subjects[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *memSubjectRepo) FindByID(_ context.Context, id string) (*domain.Subject, error) {
	s, ok := r.subjects[id]
	if !ok {
		return nil, domain.ErrSubjectNotFound
	}
	clone := *s
	clone.MaterialIDs = append([]string(nil), s.MaterialIDs...)
	return &clone, nil
}

func (r *memSubjectRepo) List(_ context.Context) ([]*domain.Subject, error) {
	out := make([]*domain.Subject, 0, len(r.subjects))
	for _, s := range r.subjects {
		clone := *s
		clone.MaterialIDs = append([]string(nil), s.MaterialIDs...)
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memSubjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.subjects[id]; !ok {
		return domain.ErrSubjectNotFound
	}
	delete(r.subjects, id)
	return nil
}

func (r *memSubjectRepo) PushMaterial(_ context.Context, subjectID, materialID string) error {
	if r.pushErr != nil {
		return r.pushErr
	}
	s, ok := r.subjects[subjectID]
	if !ok {
		return domain.ErrSubjectNotFound
	}
	s.MaterialIDs = append(s.MaterialIDs, materialID)
	r.pushes++
	return nil
}

func (r *memSubjectRepo) PullMaterial(_ context.Context, subjectID, materialID string) error {
	s, ok := r.subjects[subjectID]
	if !ok {
		return domain.ErrSubjectNotFound
	}
	kept := s.MaterialIDs[:0]
	for _, id := range s.MaterialIDs {
		if id != materialID {
			kept = append(kept, id)
		}
	}
	s.MaterialIDs = kept
	r.pulls++
	return nil
}

type memMaterialRepo struct {
	materials map[string]*domain.Material
	nextID    int
	inserts   int
	deletes   int
}

func newMemMaterialRepo() *memMaterialRepo {
	return &memMaterialRepo{materials: make(map[string]*domain.Material)}
}

func (r *memMaterialRepo) Insert(_ context.Context, m *domain.Material) (*domain.Material, error) {
	r.nextID++
	r.inserts++
	created := *m
	created.ID = fmt.Sprintf("mat-%d", r.nextID)
	r.materials[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *memMaterialRepo) FindByID(_ context.Context, id string) (*domain.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, domain.ErrMaterialNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *memMaterialRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Material, error) {
	out := make([]*domain.Material, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.materials[id]; ok {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memMaterialRepo) FindBySubject(_ context.Context, subjectID string) ([]*domain.Material, error) {
	out := make([]*domain.Material, 0)
	for _, m := range r.materials {
		if m.SubjectID == subjectID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memMaterialRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.materials[id]; !ok {
		return domain.ErrMaterialNotFound
	}
	delete(r.materials, id)
	r.deletes++
	return nil
}

type stubBlobStore struct {
	objects      map[string][]byte
	uploads      int
	deletes      map[string]int
	presigns     int
	failDeletes  bool
	failUploads  bool
	failPresigns bool
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{
		objects: make(map[string][]byte),
		deletes: make(map[string]int),
	}
}

func (s *stubBlobStore) Upload(_ context.Context, key string, content io.Reader, _ int64, _ string) (string, error) {
	if s.failUploads {
		return "", fmt.Errorf("blob store unavailable")
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.uploads++
	s.objects[key] = data
	return "https://blobs.test/" + key, nil
}

func (s *stubBlobStore) PresignGet(_ context.Context, key string) (string, error) {
	if s.failPresigns {
		return "", fmt.Errorf("presign failed")
	}
	s.presigns++
	return fmt.Sprintf("https://blobs.test/%s?signed=%d", key, s.presigns), nil
}

func (s *stubBlobStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubBlobStore) Delete(_ context.Context, key string) error {
	s.deletes[key]++
	if s.failDeletes {
		return fmt.Errorf("blob deletion refused")
	}
	delete(s.objects, key)
	return nil
}

func (s *stubBlobStore) totalDeletes() int {
	n := 0
	for _, c := range s.deletes {
		n += c
	}
	return n
}

type memURLCache struct {
	entries map[string]string
	hits    int
	sets    int
}

func newMemURLCache() *memURLCache {
	return &memURLCache{entries: make(map[string]string)}
}

func (c *memURLCache) Get(_ context.Context, materialID string) (string, bool, error) {
	url, ok := c.entries[materialID]
	if ok {
		c.hits++
	}
	return url, ok, nil
}

func (c *memURLCache) Set(_ context.Context, materialID, url string) error {
	c.sets++
	c.entries[materialID] = url
	return nil
}

func (c *memURLCache) Invalidate(_ context.Context, materialID string) error {
	delete(c.entries, materialID)
	return nil
}
