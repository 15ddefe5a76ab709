package services

import (
	"context"
	"errors"
	"sync"

	"filevault/internal/domain/file"
	"filevault/internal/domain/user"
	filevault_errors "filevault/pkg/errors"

	"github.com/google/uuid"
)

// fakeObjectStore keeps objects in a map and can be told to fail.
type fakeObjectStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failPut    bool
	failDelete bool
	deleted    []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Put(_ context.Context, data []byte, _ string, keyHint string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return "", errors.New("put refused")
	}
	f.objects[keyHint] = data
	return "https://bucket.example.com/" + keyHint, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("delete refused")
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeObjectStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func (f *fakeObjectStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeFileRepo is an in-memory FileRepository.
type fakeFileRepo struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]file.File
	failCreate bool
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{byID: map[uuid.UUID]file.File{}}
}

func (r *fakeFileRepo) Create(_ context.Context, f *file.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("create refused")
	}
	for _, existing := range r.byID {
		if existing.InternalName == f.InternalName {
			return filevault_errors.ErrAlreadyExists
		}
	}
	r.byID[f.ID] = *f
	return nil
}

func (r *fakeFileRepo) GetByInternalName(_ context.Context, internalName string) (file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.byID {
		if f.InternalName == internalName {
			return f, nil
		}
	}
	return file.File{}, filevault_errors.ErrNotFound
}

func (r *fakeFileRepo) GetByID(_ context.Context, id uuid.UUID) (file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return file.File{}, filevault_errors.ErrNotFound
	}
	return f, nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return filevault_errors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]user.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return filevault_errors.ErrAlreadyExists
		}
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, filevault_errors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, filevault_errors.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return filevault_errors.ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return filevault_errors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
