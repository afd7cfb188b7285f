package icons_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
)

func TestDefault_IconoPorDefectoEstaEnElCatalogo(t *testing.T) {
	r := icons.Default()

	assert.Equal(t, entity.IconID("Package"), r.DefaultIcon())
	assert.True(t, r.Contains(r.DefaultIcon()))
	assert.NotEmpty(t, r.All())
}

func TestResolve(t *testing.T) {
	r := icons.Default()

	id, ok := r.Resolve("")
	assert.True(t, ok)
	assert.Equal(t, r.DefaultIcon(), id)

	id, ok = r.Resolve("Laptop")
	assert.True(t, ok)
	assert.Equal(t, entity.IconID("Laptop"), id)

	_, ok = r.Resolve("Unicorn")
	assert.False(t, ok)
}

func TestNew_DefaultInvalidoUsaElPrimero(t *testing.T) {
	r, ok := icons.New([]icons.Icon{{ID: "A", Label: "a"}, {ID: "B", Label: "b"}}, "Z")

	assert.False(t, ok)
	assert.Equal(t, entity.IconID("A"), r.DefaultIcon())
}
