package api

// Request body decoding. Write bodies are decoded strictly sized via sonic;
// the partial-update body is read as raw JSON keyed by the fixed field
// whitelist so that a present-but-null key can clear a nullable column.

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/dukaforge/taskdeck/pkg/types"
)

// maxBodyBytes caps request bodies; task payloads are tiny.
const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid body")

func decodeBody(r io.Reader, v any) error {
	dec := sonic.ConfigStd.NewDecoder(io.LimitReader(r, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errBadBody
	}
	return nil
}

type newTaskRequest struct {
	Title      string                 `json:"title"`
	CategoryID sonic.NoCopyRawMessage `json:"category_id"`
	DueDate    *string                `json:"due_date"`
}

// decodeNewTask accepts the creation body. category_id may arrive as a
// number, a numeric string (HTML select values are strings), an empty
// string, or null; everything but a number is treated as no category.
func decodeNewTask(r io.Reader) (types.NewTask, error) {
	var req newTaskRequest
	if err := decodeBody(r, &req); err != nil {
		return types.NewTask{}, err
	}
	catID, err := parseOptionalID(req.CategoryID)
	if err != nil {
		return types.NewTask{}, err
	}
	return types.NewTask{
		Title:      req.Title,
		CategoryID: catID,
		DueDate:    req.DueDate,
	}, nil
}

// decodeTaskPatch builds a TaskPatch from the update body. Only the five
// whitelisted keys are consulted; unknown keys are ignored, so a body of
// unrecognized fields yields an empty patch and fails validation downstream.
func decodeTaskPatch(r io.Reader) (types.TaskPatch, error) {
	var raw map[string]sonic.NoCopyRawMessage
	if err := decodeBody(r, &raw); err != nil {
		return types.TaskPatch{}, err
	}

	var patch types.TaskPatch
	for key, value := range raw {
		switch key {
		case "title":
			var title string
			if err := sonic.Unmarshal(value, &title); err != nil {
				return types.TaskPatch{}, errBadBody
			}
			patch.Title = &title
		case "status":
			status, err := parseStatus(value)
			if err != nil {
				return types.TaskPatch{}, err
			}
			patch.Status = &status
		case "category_id":
			id, err := parseOptionalID(value)
			if err != nil {
				return types.TaskPatch{}, err
			}
			if id == nil {
				patch.ClearCategory = true
			} else {
				patch.CategoryID = id
			}
		case "due_date":
			if isNull(value) {
				patch.ClearDueDate = true
				continue
			}
			var date string
			if err := sonic.Unmarshal(value, &date); err != nil {
				return types.TaskPatch{}, errBadBody
			}
			if date == "" {
				patch.ClearDueDate = true
			} else {
				patch.DueDate = &date
			}
		case "position":
			var pos int64
			if err := sonic.Unmarshal(value, &pos); err != nil {
				return types.TaskPatch{}, errBadBody
			}
			patch.Position = &pos
		}
	}
	return patch, nil
}

type reorderRequest struct {
	IDs []sonic.NoCopyRawMessage `json:"ids"`
}

// decodeReorder accepts the reorder body. Ids may arrive as numbers or
// numeric strings (DOM dataset values are strings).
func decodeReorder(r io.Reader) ([]int64, error) {
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := parseOptionalID(raw)
		if err != nil || id == nil {
			return nil, errBadBody
		}
		ids = append(ids, *id)
	}
	return ids, nil
}

type newCategoryRequest struct {
	Name string `json:"name"`
}

func decodeNewCategory(r io.Reader) (newCategoryRequest, error) {
	var req newCategoryRequest
	err := decodeBody(r, &req)
	return req, err
}

// parseOptionalID reads an id that may be a JSON number, a quoted numeric
// string, an empty string, null, or absent. Empty and null map to nil.
func parseOptionalID(raw []byte) (*int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return nil, errBadBody
		}
		if s == "" {
			return nil, nil
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errBadBody
		}
		return &id, nil
	}
	var id int64
	if err := sonic.Unmarshal(raw, &id); err != nil {
		return nil, errBadBody
	}
	return &id, nil
}

// parseStatus accepts a JSON bool or a 0/1 number; the original browser
// client sends checkbox state as 0 or 1.
func parseStatus(raw []byte) (bool, error) {
	var b bool
	if err := sonic.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var n float64
	if err := sonic.Unmarshal(raw, &n); err != nil {
		return false, errBadBody
	}
	return n != 0, nil
}

func isNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
