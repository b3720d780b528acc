// file: internals/helpers/pagination.go
package helper

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"iescms_backend/internals/helpers/apperr"
)

/* ===============================
   Cursor pagination
   cursor = id row terakhir yang sudah dikirim
=================================*/

type CursorPagination struct {
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	Count      int    `json:"count"`
	NextCursor string `json:"next_cursor"`
	HasNext    bool   `json:"has_next"`
}

func NewCursorPagination(limit int, total int64, nextCursor string) *CursorPagination {
	return &CursorPagination{
		Limit:      limit,
		Total:      total,
		NextCursor: nextCursor,
		HasNext:    nextCursor != "",
	}
}

type CursorPaging struct {
	Limit  int
	LastID string
}

// ResolveCursor membaca ?limit= & ?last_id= (alias ?lastId= / ?cursor=).
// - limit kosong → defaultLimit, > maxLimit dipotong (0 = tanpa batas)
// - limit <= 0 diteruskan apa adanya, biar service yang menolak
func ResolveCursor(c *fiber.Ctx, defaultLimit, maxLimit int) (CursorPaging, error) {
	out := CursorPaging{Limit: defaultLimit}

	if s := strings.TrimSpace(c.Query("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return out, apperr.InvalidArgument("limit", "limit must be an integer")
		}
		out.Limit = n
	}
	if maxLimit > 0 && out.Limit > maxLimit {
		out.Limit = maxLimit
	}

	for _, key := range []string{"last_id", "lastId", "cursor"} {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			out.LastID = v
			break
		}
	}
	return out, nil
}

// ParseOptionalUUID: "" → nil; format salah → InvalidArgument(field).
func ParseOptionalUUID(s, field string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, apperr.InvalidArgument(field, "invalid uuid")
	}
	return &id, nil
}

// ParamUUID ambil path param uuid. Format salah → NotFound (id tidak mungkin ada).
func ParamUUID(c *fiber.Ctx, name, resource string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NotFound(resource, raw)
	}
	return id, nil
}

/* ===============================
   Internal helpers
=================================*/

func lenOf(v any) int {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len()
	default:
		return 0
	}
}
