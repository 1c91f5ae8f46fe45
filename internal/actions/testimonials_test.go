package actions

import (
	"context"
	"testing"

	"github.com/geocoder89/mocktail/internal/domain/role"
	"github.com/geocoder89/mocktail/internal/domain/testimonial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTestimonials struct {
	rows map[string]testimonial.Testimonial
}

func newFakeTestimonials(rows ...testimonial.Testimonial) *fakeTestimonials {
	f := &fakeTestimonials{rows: map[string]testimonial.Testimonial{}}
	for _, r := range rows {
		f.rows[r.ID] = r
	}
	return f
}

func (f *fakeTestimonials) GetByID(_ context.Context, id string) (testimonial.Testimonial, error) {
	t, ok := f.rows[id]
	if !ok {
		return testimonial.Testimonial{}, testimonial.ErrNotFound
	}
	return t, nil
}

func (f *fakeTestimonials) Create(_ context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTestimonials) Update(_ context.Context, t testimonial.Testimonial) (testimonial.Testimonial, error) {
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTestimonials) Delete(_ context.Context, id string) (testimonial.Testimonial, error) {
	t, ok := f.rows[id]
	if !ok {
		return testimonial.Testimonial{}, testimonial.ErrNotFound
	}
	delete(f.rows, id)
	return t, nil
}

func validTestimonial() testimonial.Input {
	return testimonial.Input{Author: "Ana", Quote: "Best mojito ever", Rating: 5, Published: true}
}

func TestTestimonials_EditorCannotDelete(t *testing.T) {
	store := newFakeTestimonials(testimonial.Testimonial{ID: "t1", Author: "Ana"})
	a := NewTestimonials(store, newTestDeps().Deps)

	res := a.Delete(as("ed", role.Editor), "t1")

	assert.Equal(t, CodeUnauthorized, res.Code)
	assert.Contains(t, store.rows, "t1", "row must be kept")
}

func TestTestimonials_AuthorizationBeforeValidation(t *testing.T) {
	a := NewTestimonials(newFakeTestimonials(), newTestDeps().Deps)

	res := a.Create(context.Background(), testimonial.Input{Rating: 9})

	assert.Equal(t, CodeUnauthorized, res.Code)
}

func TestTestimonials_RatingBounds(t *testing.T) {
	store := newFakeTestimonials()
	a := NewTestimonials(store, newTestDeps().Deps)

	tests := []struct {
		rating int
		want   string
	}{
		{rating: 0, want: "rating is required"},
		{rating: -1, want: "rating must be at least 1"},
		{rating: 6, want: "rating must be at most 5"},
	}
	for _, tt := range tests {
		in := validTestimonial()
		in.Rating = tt.rating

		res := a.Create(as("ed", role.Editor), in)

		assert.Equal(t, CodeValidation, res.Code)
		assert.Equal(t, tt.want, res.Error)
	}
	assert.Empty(t, store.rows)

	res := a.Create(as("ed", role.Editor), validTestimonial())
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 5, res.Data.Rating)
}

func TestTestimonials_ImageCleanup(t *testing.T) {
	store := newFakeTestimonials(testimonial.Testimonial{ID: "t1", Author: "Ana", ImageKey: strPtr("testimonials/ana.jpg")})
	deps := newTestDeps()
	a := NewTestimonials(store, deps.Deps)

	in := validTestimonial()
	in.ImageKey = strPtr("testimonials/ana.jpg")
	res := a.Update(as("ed", role.Editor), "t1", in)
	require.True(t, res.Success, res.Error)
	assert.Empty(t, deps.uploads.keys, "unchanged image must be kept")

	in.ImageKey = nil
	res = a.Update(as("ed", role.Editor), "t1", in)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, []string{"testimonials/ana.jpg"}, deps.uploads.keys)

	deps.uploads.keys = nil
	del := a.Delete(as("super", role.SuperAdmin), "t1")
	require.True(t, del.Success, del.Error)
	assert.Empty(t, deps.uploads.keys, "image already removed on update")
	assert.Equal(t, 3, deps.catalog.invalidations)
}
