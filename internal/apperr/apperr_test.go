package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInvalid, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.HTTPStatus())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("no such order")))
	assert.Equal(t, KindInvalid, KindOf(fmt.Errorf("outer: %w", Invalid("bad quantity"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("driver: bad connection")))
}

func TestFrom(t *testing.T) {
	orig := Forbidden("not yours")
	assert.Same(t, orig, From(orig))

	wrapped := From(errors.New("driver: bad connection"))
	assert.Equal(t, KindInternal, wrapped.Kind)
	assert.Equal(t, "something went wrong, please try again later", wrapped.Message)
	assert.NotNil(t, wrapped.Err)
}

func TestErrorFormatting(t *testing.T) {
	plain := Invalid("quantity must be at least 1")
	assert.Equal(t, "quantity must be at least 1", plain.Error())

	cause := errors.New("sql: no rows")
	wrapped := Wrap(KindInternal, "loading product", cause)
	assert.Equal(t, "loading product: sql: no rows", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}
