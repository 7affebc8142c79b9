package apitest

import "github.com/shrimpsizemoose/gradehub/internal/models"

var (
	Alice = models.Student{ID: 1, FirstName: "Alice", LastName: "Smith", Username: "asmith", Email: "alice@example.com"}
	Bob   = models.Student{ID: 2, FirstName: "Bob", LastName: "Jones", Username: "bjones", Email: "bob@example.com"}
	Carol = models.Student{ID: 3, FirstName: "Carol", LastName: "White", Username: "cwhite", Email: "carol@example.com"}

	CS101 = models.Module{Code: "CS101", Name: "Programming", MNC: true}
	MA201 = models.Module{Code: "MA201", Name: "Linear Algebra", MNC: false}
)

// SeedCourse loads three students, two modules, registrations for
// everyone on both modules and four grades:
//
//	Alice CS101 70, Bob CS101 85, Alice MA201 90, Carol MA201 60
func (b *Backend) SeedCourse() {
	b.SeedStudents(Alice, Bob, Carol)
	b.SeedModules(CS101, MA201)

	id := 100
	for _, s := range []models.Student{Alice, Bob, Carol} {
		for _, m := range []models.Module{CS101, MA201} {
			b.SeedRegistrations(models.Registration{ID: id, Student: s, Module: m})
			id++
		}
	}

	b.SeedGrades(
		models.Grade{ID: 200, Score: 70, Student: Alice, Module: CS101},
		models.Grade{ID: 201, Score: 85, Student: Bob, Module: CS101},
		models.Grade{ID: 202, Score: 90, Student: Alice, Module: MA201},
		models.Grade{ID: 203, Score: 60, Student: Carol, Module: MA201},
	)
}
