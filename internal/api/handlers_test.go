package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// mockStore implements Storage with overridable behavior per test.
type mockStore struct {
	listTasksFn      func(ctx context.Context) ([]types.TaskRow, error)
	createTaskFn     func(ctx context.Context, in types.NewTask) (*types.TaskRow, error)
	updateTaskFn     func(ctx context.Context, id int64, patch types.TaskPatch) (*types.TaskRow, error)
	deleteTaskFn     func(ctx context.Context, id int64) error
	reorderTasksFn   func(ctx context.Context, ids []int64) error
	listCategoriesFn func(ctx context.Context) ([]types.Category, error)
	createCategoryFn func(ctx context.Context, name string) (*types.Category, error)
	pingErr          error
}

func (m *mockStore) ListTasks(ctx context.Context) ([]types.TaskRow, error) {
	return m.listTasksFn(ctx)
}

func (m *mockStore) CreateTask(ctx context.Context, in types.NewTask) (*types.TaskRow, error) {
	return m.createTaskFn(ctx, in)
}

func (m *mockStore) UpdateTask(ctx context.Context, id int64, patch types.TaskPatch) (*types.TaskRow, error) {
	return m.updateTaskFn(ctx, id, patch)
}

func (m *mockStore) DeleteTask(ctx context.Context, id int64) error {
	return m.deleteTaskFn(ctx, id)
}

func (m *mockStore) ReorderTasks(ctx context.Context, ids []int64) error {
	return m.reorderTasksFn(ctx, ids)
}

func (m *mockStore) ListCategories(ctx context.Context) ([]types.Category, error) {
	return m.listCategoriesFn(ctx)
}

func (m *mockStore) CreateCategory(ctx context.Context, name string) (*types.Category, error) {
	return m.createCategoryFn(ctx, name)
}

func (m *mockStore) Ping(ctx context.Context) error { return m.pingErr }

// do runs one request through a fully registered echo instance.
func do(t *testing.T, store Storage, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	logger := log.New()
	e := echo.New()
	Register(e, store, logger)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetTasks(t *testing.T) {
	due := "2026-09-02"
	store := &mockStore{
		listTasksFn: func(ctx context.Context) ([]types.TaskRow, error) {
			return []types.TaskRow{
				{Task: types.Task{ID: 2, Title: "due soon", DueDate: &due}, CategoryName: "Work"},
				{Task: types.Task{ID: 1, Title: "dateless"}},
			}, nil
		},
	}

	rec := do(t, store, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []types.TaskRow
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Work", rows[0].CategoryName)
	assert.Equal(t, "", rows[1].CategoryName)
}

func TestGetTasksStoreFailure(t *testing.T) {
	store := &mockStore{
		listTasksFn: func(ctx context.Context) ([]types.TaskRow, error) {
			return nil, errors.New("db gone")
		},
	}

	rec := do(t, store, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"server error"}`, rec.Body.String(), "store detail must not leak")
}

func TestPostTask(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		storeErr   error
		wantStatus int
		wantCatID  *int64
	}{
		{
			name:       "valid body creates",
			body:       `{"title":"ship report","category_id":3,"due_date":"2026-09-01"}`,
			wantStatus: http.StatusCreated,
			wantCatID:  i64(3),
		},
		{
			name:       "category id as string is coerced",
			body:       `{"title":"from a form","category_id":"7"}`,
			wantStatus: http.StatusCreated,
			wantCatID:  i64(7),
		},
		{
			name:       "empty category string means none",
			body:       `{"title":"uncategorized","category_id":""}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "validation error maps to 400",
			body:       `{"title":"  "}`,
			storeErr:   types.ErrTitleRequired,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "past deadline maps to 400",
			body:       `{"title":"late","due_date":"2020-01-01"}`,
			storeErr:   types.ErrDeadlinePast,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json maps to 400",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIn types.NewTask
			store := &mockStore{
				createTaskFn: func(ctx context.Context, in types.NewTask) (*types.TaskRow, error) {
					gotIn = in
					if tt.storeErr != nil {
						return nil, tt.storeErr
					}
					return &types.TaskRow{Task: types.Task{ID: 1, Title: in.Title}}, nil
				},
			}

			rec := do(t, store, http.MethodPost, "/api/tasks", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, tt.wantCatID, gotIn.CategoryID)
			}
			if tt.storeErr != nil {
				var resp errorResponse
				require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.storeErr.Error(), resp.Message)
			}
		})
	}
}

func TestPutTask(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		storeErr   error
		wantStatus int
		wantPatch  func(t *testing.T, patch types.TaskPatch)
	}{
		{
			name:       "status as number toggles",
			path:       "/api/tasks/5",
			body:       `{"status":1}`,
			wantStatus: http.StatusOK,
			wantPatch: func(t *testing.T, patch types.TaskPatch) {
				require.NotNil(t, patch.Status)
				assert.True(t, *patch.Status)
			},
		},
		{
			name:       "status as bool toggles",
			path:       "/api/tasks/5",
			body:       `{"status":false}`,
			wantStatus: http.StatusOK,
			wantPatch: func(t *testing.T, patch types.TaskPatch) {
				require.NotNil(t, patch.Status)
				assert.False(t, *patch.Status)
			},
		},
		{
			name:       "null category clears it",
			path:       "/api/tasks/5",
			body:       `{"category_id":null}`,
			wantStatus: http.StatusOK,
			wantPatch: func(t *testing.T, patch types.TaskPatch) {
				assert.True(t, patch.ClearCategory)
				assert.Nil(t, patch.CategoryID)
			},
		},
		{
			name:       "unknown keys are ignored",
			path:       "/api/tasks/5",
			body:       `{"title":"kept","sneaky":"dropped"}`,
			wantStatus: http.StatusOK,
			wantPatch: func(t *testing.T, patch types.TaskPatch) {
				require.NotNil(t, patch.Title)
				assert.Equal(t, "kept", *patch.Title)
			},
		},
		{
			name:       "empty patch maps to 400",
			path:       "/api/tasks/5",
			body:       `{"sneaky":"only"}`,
			storeErr:   types.ErrEmptyPatch,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing row maps to 404",
			path:       "/api/tasks/9999",
			body:       `{"status":1}`,
			storeErr:   types.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-numeric id maps to 404",
			path:       "/api/tasks/abc",
			body:       `{"status":1}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPatch types.TaskPatch
			store := &mockStore{
				updateTaskFn: func(ctx context.Context, id int64, patch types.TaskPatch) (*types.TaskRow, error) {
					gotPatch = patch
					if tt.storeErr != nil {
						return nil, tt.storeErr
					}
					return &types.TaskRow{Task: types.Task{ID: id}}, nil
				},
			}

			rec := do(t, store, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantPatch != nil {
				tt.wantPatch(t, gotPatch)
			}
		})
	}
}

func TestDeleteTask(t *testing.T) {
	var gotID int64
	store := &mockStore{
		deleteTaskFn: func(ctx context.Context, id int64) error {
			gotID = id
			return nil
		},
	}

	rec := do(t, store, http.MethodDelete, "/api/tasks/12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), gotID)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestReorderTasks(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		storeErr   error
		wantStatus int
		wantIDs    []int64
	}{
		{
			name:       "numeric ids pass through",
			body:       `{"ids":[3,1,2]}`,
			wantStatus: http.StatusOK,
			wantIDs:    []int64{3, 1, 2},
		},
		{
			name:       "string ids are coerced",
			body:       `{"ids":["3","1"]}`,
			wantStatus: http.StatusOK,
			wantIDs:    []int64{3, 1},
		},
		{
			name:       "unknown id maps to 400",
			body:       `{"ids":[3,9999]}`,
			storeErr:   types.ErrUnknownID,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "transaction failure maps to 500",
			body:       `{"ids":[3,1]}`,
			storeErr:   errors.New("commit failed"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIDs []int64
			store := &mockStore{
				reorderTasksFn: func(ctx context.Context, ids []int64) error {
					gotIDs = ids
					return tt.storeErr
				},
			}

			rec := do(t, store, http.MethodPost, "/api/tasks/reorder", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantIDs != nil {
				assert.Equal(t, tt.wantIDs, gotIDs)
			}
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"success":true}`, rec.Body.String())
			}
		})
	}
}

func TestCategories(t *testing.T) {
	store := &mockStore{
		listCategoriesFn: func(ctx context.Context) ([]types.Category, error) {
			return []types.Category{{ID: 1, Name: "Errands"}, {ID: 2, Name: "Work"}}, nil
		},
		createCategoryFn: func(ctx context.Context, name string) (*types.Category, error) {
			if strings.TrimSpace(name) == "" {
				return nil, types.ErrNameRequired
			}
			return &types.Category{ID: 3, Name: name}, nil
		},
	}

	rec := do(t, store, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, store, http.MethodPost, "/api/categories", `{"name":"Side projects"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, store, http.MethodPost, "/api/categories", `{"name":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"name is required"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(t, &mockStore{}, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, &mockStore{pingErr: errors.New("pool closed")}, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func i64(n int64) *int64 { return &n }
