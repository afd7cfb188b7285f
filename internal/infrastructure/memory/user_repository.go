// Package memory repositorios en memoria (el login usa un único usuario de demostración).
package memory

import (
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository usuarios indexados por ID y email (email sin distinguir mayúsculas).
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

// NewDemoUserRepository repositorio con el usuario de demostración; la contraseña se hashea con bcrypt.
func NewDemoUserRepository(id, email, password, name string) (*UserRepository, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	r := NewUserRepository()
	r.Add(&entity.User{ID: id, Email: email, PasswordHash: string(hash), Name: name})
	return r, nil
}

// Add agrega o reemplaza un usuario.
func (r *UserRepository) Add(u *entity.User) {
	cp := *u
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[cp.ID] = &cp
	r.byEmail[strings.ToLower(cp.Email)] = &cp
}

func (r *UserRepository) FindByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.byID[id]), nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.byEmail[strings.ToLower(email)]), nil
}

func clone(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
