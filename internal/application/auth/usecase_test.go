package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-erp/internal/application/auth"
	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/pkg/jwt"
)

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error   { return r.Create(u) }
func (r *fakeUserRepo) List() ([]*entity.User, error) { return nil, nil }

func newUseCase() (*auth.UseCase, *fakeUserRepo) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	uc := auth.NewUseCase(repo, auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "almacen-erp"})
	return uc, repo
}

func TestRegister_Exitoso(t *testing.T) {
	uc, repo := newUseCase()

	user, err := uc.Register(dto.RegisterRequest{
		Username: "jperez",
		Password: "clave123",
		FullName: "Juan Pérez",
		Role:     entity.RoleBodeguero,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleBodeguero, user.Role)
	assert.True(t, user.IsActive)
	// El hash queda en la entidad, nunca en la respuesta.
	stored, _ := repo.GetByUsername("jperez")
	assert.NotEqual(t, "clave123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Username: "jperez", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestRegister_RolPorDefecto(t *testing.T) {
	uc, _ := newUseCase()
	user, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSolicitante, user.Role)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123", Role: "superusuario"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "jperez", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := newUseCase()
	resp, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)

	repo.users[resp.ID].IsActive = false
	_, err = uc.Login(dto.LoginRequest{Username: "jperez", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
