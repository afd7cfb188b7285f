package auth

import (
	"fmt"
	"strings"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/repository"
	"github.com/jhoicas/bsgoods-inventory/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase pantalla de login: verifica credenciales y emite el token de sesión.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	validator *validation.Validator
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, v *validation.Validator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, validator: v, jwtCfg: jwtCfg}
}

// Login valida el formulario, verifica email/password y retorna token + usuario.
// Email desconocido y contraseña incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.validator.Login(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.FindByEmail(strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Name, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	out := toUserResponse(user)
	return &out, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
