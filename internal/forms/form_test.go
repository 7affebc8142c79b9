package forms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/gradehub/internal/api"
	"github.com/shrimpsizemoose/gradehub/internal/api/apitest"
	"github.com/shrimpsizemoose/gradehub/internal/models"
	"github.com/shrimpsizemoose/gradehub/internal/views"
)

// fast keeps the success notice short enough to watch it expire.
var fast = Options{SuccessReset: 20 * time.Millisecond}

type countingRefresher struct {
	calls atomic.Int32
	next  Refresher
}

func (c *countingRefresher) Refresh(ctx context.Context) error {
	c.calls.Add(1)
	return c.next.Refresh(ctx)
}

func TestGradeForm_RoundTrip(t *testing.T) {
	backend := apitest.New(t)
	backend.SeedCourse()
	client, err := api.New(api.Config{BaseURL: backend.URL()})
	require.NoError(t, err)
	ctx := context.Background()

	screen := views.NewGrades(client)
	require.NoError(t, screen.Load(ctx))
	refresher := &countingRefresher{next: screen}

	form := NewGradeForm(client, refresher, fast)
	defer form.Close()
	form.Set(GradeDraft{StudentID: Int(apitest.Bob.ID), ModuleCode: "MA201", Score: Int(85)})

	require.NoError(t, form.Submit(ctx))

	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, 2, backend.Calls("GET /grades"))

	st := form.State()
	assert.Equal(t, Success, st.Status)
	assert.Equal(t, GradeDraft{}, st.Draft)

	grades := screen.State().Grades
	require.Len(t, grades, 5)
	added := grades[len(grades)-1]
	assert.Equal(t, 85, added.Score)
	assert.Equal(t, apitest.Bob, added.Student)
	assert.Equal(t, "MA201", added.Module.Code)

	assert.Eventually(t, func() bool {
		return form.State().Status == Idle
	}, time.Second, 5*time.Millisecond)
}

func TestGradeForm_ServerRejection(t *testing.T) {
	backend := apitest.New(t)
	backend.SeedCourse()
	backend.SeedModules(models.Module{Code: "PH100", Name: "Physics"})
	client, err := api.New(api.Config{BaseURL: backend.URL()})
	require.NoError(t, err)

	refresher := new(MockRefresher)
	form := NewGradeForm(client, refresher, fast)
	draft := GradeDraft{StudentID: Int(apitest.Alice.ID), ModuleCode: "PH100", Score: Int(75)}
	form.Set(draft)

	err = form.Submit(context.Background())
	var te *api.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadRequest, te.Status)

	st := form.State()
	assert.Equal(t, Failed, st.Status)
	assert.Equal(t, "Student must be registered for this module before receiving a grade", st.Message)
	assert.Equal(t, draft, st.Draft, "draft is kept for correction")
	refresher.AssertNotCalled(t, "Refresh")

	form.Edit(func(d *GradeDraft) { d.ModuleCode = "CS101" })
	assert.Equal(t, Idle, form.State().Status)
	assert.Empty(t, form.State().Message)
}

func TestGradeForm_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		draft   GradeDraft
		message string
	}{
		{
			name:    "nothing picked",
			draft:   GradeDraft{Score: Int(50)},
			message: "Please select both a student and a module",
		},
		{
			name:    "module missing",
			draft:   GradeDraft{StudentID: Int(1), Score: Int(50)},
			message: "Please select both a student and a module",
		},
		{
			name:    "score missing",
			draft:   GradeDraft{StudentID: Int(1), ModuleCode: "CS101"},
			message: "Score is required",
		},
		{
			name:    "score too high",
			draft:   GradeDraft{StudentID: Int(1), ModuleCode: "CS101", Score: Int(101)},
			message: "Score must be between 0 and 100",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := new(MockBackend)
			form := NewGradeForm(backend, nil, fast)
			form.Set(tc.draft)

			err := form.Submit(context.Background())
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.message, verr.Message)
			assert.Equal(t, Failed, form.State().Status)
			assert.Equal(t, tc.message, form.State().Message)

			backend.AssertNotCalled(t, "CreateGrade", mock.Anything)
		})
	}
}

func TestGradeForm_ZeroScoreIsAScore(t *testing.T) {
	backend := new(MockBackend)
	backend.On("CreateGrade", models.NewGrade{StudentID: 1, ModuleCode: "CS101", Score: 0}).
		Return(&models.Grade{ID: 9}, nil).Once()

	form := NewGradeForm(backend, nil, fast)
	defer form.Close()
	form.Set(GradeDraft{StudentID: Int(1), ModuleCode: "CS101", Score: Int(0)})

	require.NoError(t, form.Submit(context.Background()))
	backend.AssertExpectations(t)
}

func TestScoreEditForm_Boundaries(t *testing.T) {
	grade := models.Grade{ID: 200, Score: 70}

	testCases := []struct {
		score int
		valid bool
	}{
		{score: -1, valid: false},
		{score: 0, valid: true},
		{score: 100, valid: true},
		{score: 101, valid: false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("score %d", tc.score), func(t *testing.T) {
			backend := new(MockBackend)
			refresher := new(MockRefresher)
			if tc.valid {
				backend.On("UpdateGradeScore", 200, tc.score).
					Return(&models.Grade{ID: 200, Score: tc.score}, nil).Once()
				refresher.On("Refresh").Return(nil).Once()
			}

			form := NewScoreEditForm(backend, refresher, grade, fast)
			defer form.Close()
			assert.Equal(t, ScoreEdit{GradeID: 200, Score: Int(70)}, form.State().Draft)

			form.Edit(func(d *ScoreEdit) { d.Score = Int(tc.score) })
			err := form.Submit(context.Background())

			if tc.valid {
				require.NoError(t, err, "score %d", tc.score)
				assert.Equal(t, Success, form.State().Status)
			} else {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr, "score %d", tc.score)
				assert.Equal(t, []string{"Score"}, verr.Fields)
				assert.Equal(t, "Score must be between 0 and 100", form.State().Message)
				backend.AssertNotCalled(t, "UpdateGradeScore", mock.Anything, mock.Anything)
				refresher.AssertNotCalled(t, "Refresh")
			}
			backend.AssertExpectations(t)
			refresher.AssertExpectations(t)
		})
	}
}

func TestScoreEditForm_NoNetworkOnInvalid(t *testing.T) {
	backend := apitest.New(t)
	backend.SeedCourse()
	client, err := api.New(api.Config{BaseURL: backend.URL()})
	require.NoError(t, err)

	form := NewScoreEditForm(client, nil, models.Grade{ID: 200, Score: 70}, fast)
	for _, score := range []int{-1, 101} {
		form.Edit(func(d *ScoreEdit) { d.Score = Int(score) })
		var verr *ValidationError
		require.ErrorAs(t, form.Submit(context.Background()), &verr)
	}
	assert.Zero(t, backend.TotalCalls())
}

func TestScoreEditForm_MissingScore(t *testing.T) {
	backend := new(MockBackend)
	form := NewScoreEditForm(backend, nil, models.Grade{ID: 200, Score: 70}, fast)
	defer form.Close()

	form.Edit(func(d *ScoreEdit) { d.Score = nil })
	var verr *ValidationError
	require.ErrorAs(t, form.Submit(context.Background()), &verr)
	assert.Equal(t, []string{"Score"}, verr.Fields)
	assert.Equal(t, "Score is required", form.State().Message)
	backend.AssertNotCalled(t, "UpdateGradeScore", mock.Anything, mock.Anything)
}

func TestForm_RejectsReentrantSubmit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	backend := new(MockBackend)
	backend.On("DeleteGrade", 5).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil).Once()

	form := NewDeleteGradeDialog(backend, nil, 5, fast)
	defer form.Close()

	done := make(chan error, 1)
	go func() {
		done <- form.Submit(context.Background())
	}()

	<-entered
	assert.Equal(t, Submitting, form.State().Status)
	assert.ErrorIs(t, form.Submit(context.Background()), ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Success, form.State().Status)
	backend.AssertNumberOfCalls(t, "DeleteGrade", 1)
}

func TestForm_ResetWhileSubmittingKeepsGuard(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	backend := new(MockBackend)
	backend.On("DeleteGrade", 5).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil).Once()

	form := NewDeleteGradeDialog(backend, nil, 5, fast)
	defer form.Close()

	done := make(chan error, 1)
	go func() {
		done <- form.Submit(context.Background())
	}()
	<-entered

	form.Reset()
	assert.Equal(t, Submitting, form.State().Status)
	assert.Equal(t, DeleteTarget{}, form.State().Draft)

	form.Set(DeleteTarget{ID: 6})
	assert.Equal(t, Submitting, form.State().Status)
	assert.ErrorIs(t, form.Submit(context.Background()), ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Success, form.State().Status)
	backend.AssertNumberOfCalls(t, "DeleteGrade", 1)
}

func TestForm_RefreshRunsAfterMutation(t *testing.T) {
	var order []string

	backend := new(MockBackend)
	backend.On("DeleteGrade", 7).
		Run(func(mock.Arguments) { order = append(order, "delete") }).
		Return(nil).Once()
	refresher := new(MockRefresher)
	refresher.On("Refresh").
		Run(func(mock.Arguments) { order = append(order, "refresh") }).
		Return(nil).Once()

	form := NewDeleteGradeDialog(backend, refresher, 7, fast)
	defer form.Close()
	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, []string{"delete", "refresh"}, order)
}

func TestForm_FailedRefreshDoesNotFailSubmit(t *testing.T) {
	backend := new(MockBackend)
	backend.On("CreateModule", models.Module{Code: "PH100", Name: "Physics", MNC: true}).
		Return(&models.Module{Code: "PH100"}, nil).Once()
	refresher := new(MockRefresher)
	refresher.On("Refresh").Return(errors.New("backend went away")).Once()

	form := NewModuleForm(backend, refresher, fast)
	defer form.Close()
	form.Set(ModuleDraft{Code: "PH100", Name: "Physics", MNC: true})

	require.NoError(t, form.Submit(context.Background()))
	assert.Equal(t, Success, form.State().Status)
	refresher.AssertExpectations(t)
}

func TestForm_FallbackMessage(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "status without message", err: &api.TransportError{Status: http.StatusConflict}},
		{name: "network failure", err: &api.NetworkError{Op: "POST", URL: "http://x/modules/add", Err: errors.New("connection refused")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := new(MockBackend)
			backend.On("CreateModule", mock.Anything).Return(nil, tc.err).Once()

			form := NewModuleForm(backend, nil, fast)
			form.Set(ModuleDraft{Code: "CS101", Name: "Programming"})

			err := form.Submit(context.Background())
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, "Failed to add module", form.State().Message)
			assert.Equal(t, "CS101", form.State().Draft.Code)
		})
	}
}

func TestForm_SuccessRevertsOnlyOnce(t *testing.T) {
	backend := new(MockBackend)
	backend.On("DeleteGrade", 1).Return(nil)

	form := NewDeleteGradeDialog(backend, nil, 1, Options{SuccessReset: 50 * time.Millisecond})
	defer form.Close()

	require.NoError(t, form.Submit(context.Background()))
	assert.Equal(t, Success, form.State().Status)

	// the draft was cleared, so a second submit is invalid and replaces the notice
	var verr *ValidationError
	require.ErrorAs(t, form.Submit(context.Background()), &verr)
	assert.Equal(t, Failed, form.State().Status)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, Failed, form.State().Status, "stale timer must not clear an error")
}

func TestForm_Reset(t *testing.T) {
	form := NewRegistrationForm(new(MockBackend), nil, fast)
	form.Set(RegistrationDraft{ModuleCode: "CS101"})
	require.Error(t, form.Submit(context.Background()))

	form.Reset()
	st := form.State()
	assert.Equal(t, Idle, st.Status)
	assert.Empty(t, st.Message)
	assert.Equal(t, RegistrationDraft{}, st.Draft)
}
