package store

import (
	"context"
	"strconv"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/course"
)

const coursesEndpoint = "/cursos"

// Courses returns a copy of the cursos collection.
func (s *Store) Courses() []course.Curso { return s.courses.snapshot() }

// FindCourse looks a curso up in the local collection.
func (s *Store) FindCourse(id string) (course.Curso, bool) { return s.courses.find(id) }

// GetCourses replaces the cursos collection with the server's.
func (s *Store) GetCourses(ctx context.Context) error {
	_, err := read(ctx, s, "getCourses", core.Request{Endpoint: coursesEndpoint}, &s.courses)
	return err
}

// SearchCourses searches cursos by nome. page optionally carries the page number then the page size
// (0 and 10 when omitted); both are always sent, as given.
func (s *Store) SearchCourses(ctx context.Context, nome string, page ...int) ([]course.Curso, error) {
	pageNum, size := course.DefaultPage, course.DefaultSize
	if len(page) > 0 {
		pageNum = page[0]
	}
	if len(page) > 1 {
		size = page[1]
	}

	q := sparseQuery("nome", nome)
	q.Set("page", strconv.Itoa(pageNum))
	q.Set("size", strconv.Itoa(size))

	req := core.Request{Endpoint: withQuery(coursesEndpoint, q)}
	return read(ctx, s, "searchCourse", req, &s.courses)
}

func (s *Store) AddCourse(ctx context.Context, c course.Curso) (course.Curso, error) {
	return create(ctx, s, "addCourse", coursesEndpoint, &s.courses, c)
}

func (s *Store) EditCourse(ctx context.Context, id string, c course.Curso) (course.Curso, error) {
	return edit(ctx, s, "editCourse", coursesEndpoint, id, &s.courses, c)
}

func (s *Store) DeleteCourse(ctx context.Context, id string) (course.Curso, error) {
	return destroy(ctx, s, "deleteCourse", coursesEndpoint, id, &s.courses)
}
