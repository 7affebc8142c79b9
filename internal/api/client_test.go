package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/gradehub/internal/api/apitest"
	"github.com/shrimpsizemoose/gradehub/internal/models"
)

func newTestClient(t *testing.T) (*Client, *apitest.Backend) {
	t.Helper()
	backend := apitest.New(t)
	backend.SeedCourse()

	client, err := New(Config{BaseURL: backend.URL()})
	require.NoError(t, err)
	return client, backend
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "plain http", baseURL: "http://localhost:8080"},
		{name: "with path prefix", baseURL: "https://grades.example.com/api"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "no scheme", baseURL: "localhost:8080", wantErr: true},
		{name: "unsupported scheme", baseURL: "ftp://example.com", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(Config{BaseURL: tc.baseURL})
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.baseURL, c.BaseURL())
		})
	}
}

func TestClient_List(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	t.Run("grades keep server order and embedded refs", func(t *testing.T) {
		grades, err := client.ListGrades(ctx)
		require.NoError(t, err)
		require.Len(t, grades, 4)
		assert.Equal(t, 200, grades[0].ID)
		assert.Equal(t, apitest.Alice, grades[0].Student)
		assert.Equal(t, apitest.CS101, grades[0].Module)
	})

	t.Run("students", func(t *testing.T) {
		students, err := client.ListStudents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Student{apitest.Alice, apitest.Bob, apitest.Carol}, students)
	})

	t.Run("modules", func(t *testing.T) {
		modules, err := client.ListModules(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.Module{apitest.CS101, apitest.MA201}, modules)
	})

	t.Run("registrations for one student", func(t *testing.T) {
		regs, err := client.ListStudentRegistrations(ctx, apitest.Bob.ID)
		require.NoError(t, err)
		require.Len(t, regs, 2)
		for _, r := range regs {
			assert.Equal(t, apitest.Bob.ID, r.Student.ID)
		}
	})
}

func TestClient_Mutations(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	t.Run("create grade posts to addGrade", func(t *testing.T) {
		g, err := client.CreateGrade(ctx, models.NewGrade{StudentID: apitest.Bob.ID, ModuleCode: "MA201", Score: 77})
		require.NoError(t, err)
		assert.Equal(t, 77, g.Score)
		assert.Equal(t, apitest.Bob, g.Student)
		assert.Equal(t, 1, backend.Calls("POST /grades/addGrade"))
	})

	t.Run("update score", func(t *testing.T) {
		g, err := client.UpdateGradeScore(ctx, 200, 95)
		require.NoError(t, err)
		assert.Equal(t, 95, g.Score)
	})

	t.Run("delete grade", func(t *testing.T) {
		require.NoError(t, client.DeleteGrade(ctx, 203))
		for _, g := range backend.Grades() {
			assert.NotEqual(t, 203, g.ID)
		}
	})

	t.Run("create module posts to modules/add", func(t *testing.T) {
		m, err := client.CreateModule(ctx, models.Module{Code: "PH100", Name: "Physics", MNC: true})
		require.NoError(t, err)
		assert.Equal(t, "PH100", m.Code)
		assert.Equal(t, 1, backend.Calls("POST /modules/add"))
	})

	t.Run("student lifecycle", func(t *testing.T) {
		s, err := client.CreateStudent(ctx, models.Student{FirstName: "Dan", LastName: "Brown", Username: "dbrown", Email: "dan@example.com"})
		require.NoError(t, err)
		require.NotZero(t, s.ID)

		s.Email = "dan.brown@example.com"
		updated, err := client.UpdateStudent(ctx, *s)
		require.NoError(t, err)
		assert.Equal(t, "dan.brown@example.com", updated.Email)

		got, err := client.GetStudent(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, *updated, *got)

		require.NoError(t, client.DeleteStudent(ctx, s.ID))
		_, err = client.GetStudent(ctx, s.ID)
		assert.True(t, IsNotFound(err))
	})

	t.Run("create registration", func(t *testing.T) {
		_, err := client.CreateModule(ctx, models.Module{Code: "CH110", Name: "Chemistry"})
		require.NoError(t, err)
		reg, err := client.CreateRegistration(ctx, models.NewRegistration{StudentID: apitest.Carol.ID, ModuleCode: "CH110"})
		require.NoError(t, err)
		assert.Equal(t, apitest.Carol, reg.Student)
		assert.Equal(t, "CH110", reg.Module.Code)
	})
}

func TestClient_Errors(t *testing.T) {
	client, backend := newTestClient(t)
	ctx := context.Background()

	t.Run("server message is surfaced", func(t *testing.T) {
		_, err := client.CreateRegistration(ctx, models.NewRegistration{StudentID: apitest.Alice.ID, ModuleCode: "CS101"})
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, http.StatusConflict, te.Status)
		assert.Equal(t, "Student is already registered for this module", te.Message)

		msg, ok := ServerMessage(err)
		assert.True(t, ok)
		assert.Equal(t, te.Message, msg)
	})

	t.Run("status without body", func(t *testing.T) {
		_, err := client.CreateModule(ctx, apitest.CS101)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, http.StatusConflict, te.Status)
		assert.Empty(t, te.Message)
		assert.Contains(t, te.Error(), "Conflict")

		_, ok := ServerMessage(err)
		assert.False(t, ok)
	})

	t.Run("injected failure", func(t *testing.T) {
		backend.Fail("GET /grades", http.StatusInternalServerError, "boom")
		defer backend.Recover("GET /grades")

		_, err := client.ListGrades(ctx)
		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, http.StatusInternalServerError, te.Status)
		assert.Equal(t, "boom", te.Message)
	})

	t.Run("dropped connection is a network error", func(t *testing.T) {
		backend.Fail("DELETE /grades/{id}", 0, "")
		defer backend.Recover("DELETE /grades/{id}")

		err := client.DeleteGrade(ctx, 200)
		var ne *NetworkError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, http.MethodDelete, ne.Op)

		var te *TransportError
		assert.False(t, errors.As(err, &te))
	})

	t.Run("unreachable backend", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c, err := New(Config{BaseURL: url})
		require.NoError(t, err)
		_, err = c.ListStudents(ctx)
		var ne *NetworkError
		assert.ErrorAs(t, err, &ne)
	})

	t.Run("malformed body is a network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"an array"}`))
		}))
		defer srv.Close()

		c, err := New(Config{BaseURL: srv.URL})
		require.NoError(t, err)
		_, err = c.ListGrades(ctx)
		var ne *NetworkError
		assert.ErrorAs(t, err, &ne)
	})
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, UserAgent: "gradehub-test"})
	require.NoError(t, err)

	_, err = c.ListModules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "gradehub-test", got.Get("User-Agent"))
	assert.Len(t, got.Get(requestIDHeader), 36)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestClient_WithHTTPClient(t *testing.T) {
	backend := apitest.New(t)
	backend.SeedCourse()

	transport := &countingTransport{}
	c, err := New(Config{BaseURL: backend.URL()}, WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)

	modules, err := c.ListModules(context.Background())
	require.NoError(t, err)
	assert.Len(t, modules, 2)
	assert.Equal(t, int32(1), transport.calls.Load())
	assert.Equal(t, 1, backend.TotalCalls())
}

func TestClient_BasePathPrefix(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{"id": 7, "score": 50}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL + "/api/v1"})
	require.NoError(t, err)

	g, err := c.UpdateGradeScore(context.Background(), 7, 50)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/grades/7", path)
	assert.Equal(t, 50, g.Score)
}
