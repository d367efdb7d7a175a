package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
	pkgerrors "github.com/Rajyalaxmi29/incamp-dept-hub/pkg/errors"
)

// memoryStore 进程内存储，所有 Repository 共享同一把锁
type memoryStore struct {
	mu       sync.RWMutex
	ps       map[string]model.ProblemStatement
	messages []model.Message
	alerts   []model.Alert
	users    map[string]model.User
	depts    map[string]model.Department
}

// NewMemoryRepository 创建基于内存的 Repository 聚合（进程退出即丢失）
func NewMemoryRepository() *Repository {
	s := &memoryStore{
		ps:    make(map[string]model.ProblemStatement),
		users: make(map[string]model.User),
		depts: make(map[string]model.Department),
	}
	return &Repository{
		ProblemStatement: &memoryPSRepo{s},
		Message:          &memoryMessageRepo{s},
		Alert:            &memoryAlertRepo{s},
		User:             &memoryUserRepo{s},
		Department:       &memoryDepartmentRepo{s},
	}
}

// ── 问题陈述 ──

type memoryPSRepo struct{ s *memoryStore }

func (r *memoryPSRepo) Create(_ context.Context, ps *model.ProblemStatement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ps[ps.PSID]; ok {
		return pkgerrors.ErrDuplicateID
	}
	r.s.ps[ps.PSID] = *ps
	return nil
}

func (r *memoryPSRepo) GetByID(_ context.Context, id string) (*model.ProblemStatement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ps, ok := r.s.ps[id]
	if !ok {
		return nil, pkgerrors.ErrRecordNotFound
	}
	return &ps, nil
}

func (r *memoryPSRepo) List(_ context.Context) ([]model.ProblemStatement, error) {
	r.s.mu.RLock()
	list := make([]model.ProblemStatement, 0, len(r.s.ps))
	for _, ps := range r.s.ps {
		list = append(list, ps)
	}
	r.s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if !list[i].LastUpdated.Equal(list[j].LastUpdated) {
			return list[i].LastUpdated.After(list[j].LastUpdated)
		}
		return list[i].PSID < list[j].PSID
	})
	return list, nil
}

func (r *memoryPSRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.ps)), nil
}

func (r *memoryPSRepo) Update(_ context.Context, ps *model.ProblemStatement, expected model.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, err := r.s.expect(ps.PSID, expected)
	if err != nil {
		return err
	}
	cur.Title = ps.Title
	cur.Category = ps.Category
	cur.Theme = ps.Theme
	cur.Description = ps.Description
	cur.FacultyOwner = ps.FacultyOwner
	cur.LastUpdated = ps.LastUpdated
	r.s.ps[ps.PSID] = cur
	return nil
}

func (r *memoryPSRepo) DeleteDraft(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, err := r.s.expect(id, model.StatusDraft); err != nil {
		return err
	}
	delete(r.s.ps, id)
	return nil
}

func (r *memoryPSRepo) Transition(_ context.Context, t model.StatusTransition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, err := r.s.expect(t.PSID, t.From)
	if err != nil {
		return err
	}
	r.s.ps[t.PSID] = applyTransition(cur, t)
	return nil
}

func (r *memoryPSRepo) TransitionBatch(_ context.Context, ts []model.StatusTransition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// 先全部校验，再统一写入
	next := make([]model.ProblemStatement, 0, len(ts))
	seen := make(map[string]bool, len(ts))
	for _, t := range ts {
		if seen[t.PSID] {
			return pkgerrors.ErrStatusConflict
		}
		seen[t.PSID] = true

		cur, err := r.s.expect(t.PSID, t.From)
		if err != nil {
			return err
		}
		next = append(next, applyTransition(cur, t))
	}
	for _, ps := range next {
		r.s.ps[ps.PSID] = ps
	}
	return nil
}

func (r *memoryPSRepo) TransitionWithMessage(_ context.Context, t model.StatusTransition, msg *model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, err := r.s.expect(t.PSID, t.From)
	if err != nil {
		return err
	}
	if r.s.hasMessage(msg.MessageID) {
		return pkgerrors.ErrDuplicateID
	}
	r.s.ps[t.PSID] = applyTransition(cur, t)
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

func (r *memoryPSRepo) NextID(_ context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("PS-%d-", year)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids []string
	for id := range r.s.ps {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	return nextSequenceID(prefix, ids), nil
}

// expect 调用方需持有写锁
func (s *memoryStore) expect(id string, status model.Status) (model.ProblemStatement, error) {
	cur, ok := s.ps[id]
	if !ok {
		return model.ProblemStatement{}, pkgerrors.ErrRecordNotFound
	}
	if cur.Status != status {
		return model.ProblemStatement{}, pkgerrors.ErrStatusConflict
	}
	return cur, nil
}

func applyTransition(ps model.ProblemStatement, t model.StatusTransition) model.ProblemStatement {
	ps.Status = t.To
	ps.LastUpdated = t.On
	if t.AssignedSPOC != "" {
		ps.AssignedSPOC = t.AssignedSPOC
	}
	return ps
}

// ── 消息 ──

type memoryMessageRepo struct{ s *memoryStore }

func (r *memoryMessageRepo) Create(_ context.Context, msg *model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.hasMessage(msg.MessageID) {
		return pkgerrors.ErrDuplicateID
	}
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

// hasMessage 调用方需持有锁
func (s *memoryStore) hasMessage(id string) bool {
	for _, m := range s.messages {
		if m.MessageID == id {
			return true
		}
	}
	return false
}

func (r *memoryMessageRepo) List(_ context.Context) ([]model.Message, error) {
	r.s.mu.RLock()
	list := append([]model.Message(nil), r.s.messages...)
	r.s.mu.RUnlock()

	sortMessages(list)
	return list, nil
}

func (r *memoryMessageRepo) ListByPS(_ context.Context, psID string) ([]model.Message, error) {
	r.s.mu.RLock()
	var list []model.Message
	for _, m := range r.s.messages {
		if m.PSID == psID {
			list = append(list, m)
		}
	}
	r.s.mu.RUnlock()

	sortMessages(list)
	return list, nil
}

func sortMessages(list []model.Message) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
}

// ── 提醒 ──

type memoryAlertRepo struct{ s *memoryStore }

func (r *memoryAlertRepo) Create(_ context.Context, alert *model.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.alerts = append(r.s.alerts, *alert)
	return nil
}

func (r *memoryAlertRepo) List(_ context.Context) ([]model.Alert, error) {
	r.s.mu.RLock()
	list := append([]model.Alert(nil), r.s.alerts...)
	r.s.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}

// ── 用户 ──

type memoryUserRepo struct{ s *memoryStore }

func (r *memoryUserRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.UserID]; ok {
		return pkgerrors.ErrDuplicateID
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return pkgerrors.ErrDuplicateID
		}
	}
	u := *user
	u.Department = nil
	r.s.users[user.UserID] = u
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, pkgerrors.ErrRecordNotFound
	}
	return r.s.withDepartment(u), nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return r.s.withDepartment(u), nil
		}
	}
	return nil, pkgerrors.ErrRecordNotFound
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return pkgerrors.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return nil
}

func (s *memoryStore) withDepartment(u model.User) *model.User {
	if d, ok := s.depts[u.DepartmentID]; ok {
		u.Department = &d
	}
	return &u
}

// ── 部门 ──

type memoryDepartmentRepo struct{ s *memoryStore }

func (r *memoryDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.depts[dept.DepartmentID]; ok {
		return pkgerrors.ErrDuplicateID
	}
	r.s.depts[dept.DepartmentID] = *dept
	return nil
}

func (r *memoryDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.depts[id]
	if !ok {
		return nil, pkgerrors.ErrRecordNotFound
	}
	return &d, nil
}
