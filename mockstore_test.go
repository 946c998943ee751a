package main

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// mockSweetStore implements SweetStore in memory for handler tests.
type mockSweetStore struct {
	mu     sync.Mutex
	nextID int
	sweets map[int]SweetModel
}

func newMockSweetStore() *mockSweetStore {
	return &mockSweetStore{sweets: make(map[int]SweetModel)}
}

func (m *mockSweetStore) Create(draft SweetDraft) (SweetModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	quantity := 0
	if draft.Quantity != nil {
		quantity = *draft.Quantity
	}
	now := time.Now()
	sweet := SweetModel{
		ID:          m.nextID,
		Name:        draft.Name,
		Category:    draft.Category,
		Price:       *draft.Price,
		Quantity:    quantity,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.sweets[sweet.ID] = sweet
	return sweet, nil
}

func (m *mockSweetStore) GetByID(id int) (SweetModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sweet, ok := m.sweets[id]
	if !ok {
		return SweetModel{}, ErrSweetNotFound
	}
	return sweet, nil
}

func (m *mockSweetStore) List() ([]SweetModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int, 0, len(m.sweets))
	for id := range m.sweets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	list := []SweetModel{}
	for _, id := range ids {
		list = append(list, m.sweets[id])
	}
	return list, nil
}

func (m *mockSweetStore) Search(filter SweetFilter) ([]SweetModel, error) {
	all, _ := m.List()
	matched := []SweetModel{}
	for _, sweet := range all {
		if filter.Name != "" && !strings.Contains(strings.ToLower(sweet.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && sweet.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && sweet.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && sweet.Price > *filter.MaxPrice {
			continue
		}
		matched = append(matched, sweet)
	}
	return matched, nil
}

func (m *mockSweetStore) Update(id int, patch SweetPatch) (SweetModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sweet, ok := m.sweets[id]
	if !ok {
		return SweetModel{}, ErrSweetNotFound
	}
	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Quantity != nil {
		sweet.Quantity = *patch.Quantity
	}
	if patch.Description != nil {
		sweet.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		sweet.ImageURL = *patch.ImageURL
	}
	sweet.UpdatedAt = time.Now()
	m.sweets[id] = sweet
	return sweet, nil
}

func (m *mockSweetStore) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sweets[id]; !ok {
		return ErrSweetNotFound
	}
	delete(m.sweets, id)
	return nil
}

func (m *mockSweetStore) Purchase(id, n int) (SweetModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sweet, ok := m.sweets[id]
	if !ok {
		return SweetModel{}, ErrSweetNotFound
	}
	if sweet.Quantity < n {
		return SweetModel{}, InsufficientStockError{Available: sweet.Quantity}
	}
	sweet.Quantity -= n
	sweet.UpdatedAt = time.Now()
	m.sweets[id] = sweet
	return sweet, nil
}

func (m *mockSweetStore) Restock(id, n int) (SweetModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sweet, ok := m.sweets[id]
	if !ok {
		return SweetModel{}, ErrSweetNotFound
	}
	sweet.Quantity += n
	sweet.UpdatedAt = time.Now()
	m.sweets[id] = sweet
	return sweet, nil
}

// mockUserStore implements UserStore in memory.
type mockUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[string]User // keyed by email
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]User)}
}

func (m *mockUserStore) Create(username, email, passwordHash, role string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[email]; exists {
		return User{}, ErrEmailTaken
	}
	for _, u := range m.users {
		if u.Username == username {
			return User{}, ErrUsernameTaken
		}
	}
	m.nextID++
	user := User{
		ID:        m.nextID,
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		Role:      role,
		CreatedAt: time.Now(),
	}
	m.users[email] = user
	return user, nil
}

func (m *mockUserStore) FindByEmail(email string) (User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[email]
	return user, ok, nil
}
