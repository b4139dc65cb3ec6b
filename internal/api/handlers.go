// Package api exposes the taskdeck HTTP/JSON surface: task CRUD, the bulk
// reorder operation, categories, and the liveness probe.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// Storage is the store surface the handlers depend on. The SQLite backend
// implements it; tests substitute a mock.
type Storage interface {
	ListTasks(ctx context.Context) ([]types.TaskRow, error)
	CreateTask(ctx context.Context, in types.NewTask) (*types.TaskRow, error)
	UpdateTask(ctx context.Context, id int64, patch types.TaskPatch) (*types.TaskRow, error)
	DeleteTask(ctx context.Context, id int64) error
	ReorderTasks(ctx context.Context, ids []int64) error
	ListCategories(ctx context.Context) ([]types.Category, error)
	CreateCategory(ctx context.Context, name string) (*types.Category, error)
	Ping(ctx context.Context) error
}

// successResponse acknowledges mutations that return no row.
type successResponse struct {
	Success bool `json:"success"`
}

// healthResponse is the liveness probe body.
type healthResponse struct {
	OK bool `json:"ok"`
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, logger *log.Logger) {
	e.GET("/health", health(store))

	g := e.Group("/api")
	g.GET("/tasks", getTasks(store, logger))
	g.POST("/tasks", postTask(store, logger))
	g.POST("/tasks/reorder", reorderTasks(store, logger))
	g.PUT("/tasks/:id", putTask(store, logger))
	g.DELETE("/tasks/:id", deleteTask(store, logger))
	g.GET("/categories", getCategories(store, logger))
	g.POST("/categories", postCategory(store, logger))
}

func health(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, healthResponse{OK: false})
		}
		return c.JSON(http.StatusOK, healthResponse{OK: true})
	}
}

func getTasks(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := store.ListTasks(c.Request().Context())
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func postTask(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, err := decodeNewTask(c.Request().Body)
		if err != nil {
			return writeInvalidBody(c)
		}
		row, err := store.CreateTask(c.Request().Context(), in)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, row)
	}
}

func putTask(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := taskID(c)
		if err != nil {
			return writeError(c, logger, types.ErrNotFound)
		}
		patch, err := decodeTaskPatch(c.Request().Body)
		if err != nil {
			return writeInvalidBody(c)
		}
		row, err := store.UpdateTask(c.Request().Context(), id, patch)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, row)
	}
}

func deleteTask(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := taskID(c)
		if err != nil {
			return writeError(c, logger, types.ErrNotFound)
		}
		if err := store.DeleteTask(c.Request().Context(), id); err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func reorderTasks(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ids, err := decodeReorder(c.Request().Body)
		if err != nil {
			return writeInvalidBody(c)
		}
		if err := store.ReorderTasks(c.Request().Context(), ids); err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func getCategories(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		categories, err := store.ListCategories(c.Request().Context())
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusOK, categories)
	}
}

func postCategory(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, err := decodeNewCategory(c.Request().Body)
		if err != nil {
			return writeInvalidBody(c)
		}
		cat, err := store.CreateCategory(c.Request().Context(), in.Name)
		if err != nil {
			return writeError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, cat)
	}
}

// taskID parses the :id path parameter.
func taskID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
