package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/chrisueda/sakewalk/internal/model"
)

// isUniqueConstraintError checks if an error is a unique index violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "already exists")
}

// asObject narrows a decoded row to a map, the shape every SELECT row has
func asObject(row interface{}) (map[string]interface{}, bool) {
	m, ok := row.(map[string]interface{})
	return m, ok
}

// recordID converts a SurrealDB record ID to its "table:id" string form.
// The client may hand back a models.RecordID, a plain string, or a raw map
// depending on the query shape.
func recordID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case models.RecordID:
		return fmt.Sprintf("%s:%v", id.Table, id.ID)
	case *models.RecordID:
		if id != nil {
			return fmt.Sprintf("%s:%v", id.Table, id.ID)
		}
		return ""
	case map[string]interface{}:
		tb, _ := id["tb"].(string)
		inner := id["id"]
		if s, ok := inner.(string); ok && tb != "" {
			return tb + ":" + s
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	}
	return 0
}

func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return 0
}

func getStringSlice(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getIntSlice(m map[string]interface{}, key string) []int {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case int:
			out = append(out, v)
		case int64:
			out = append(out, int(v))
		case uint64:
			out = append(out, int(v))
		case float64:
			out = append(out, int(v))
		}
	}
	return out
}

func getTime(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return v
	case models.CustomDateTime:
		return v.Time
	case *models.CustomDateTime:
		if v != nil {
			return v.Time
		}
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// getPoint reads a geometry point. Coordinate order on the wire is
// longitude, then latitude.
func getPoint(m map[string]interface{}, key string) model.GeoPoint {
	switch v := m[key].(type) {
	case models.GeometryPoint:
		return model.GeoPoint{Lng: v.Longitude, Lat: v.Latitude}
	case *models.GeometryPoint:
		if v != nil {
			return model.GeoPoint{Lng: v.Longitude, Lat: v.Latitude}
		}
	case map[string]interface{}:
		if coords, ok := v["coordinates"].([]interface{}); ok && len(coords) == 2 {
			return model.GeoPoint{Lng: toFloat(coords[0]), Lat: toFloat(coords[1])}
		}
	}
	return model.GeoPoint{}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// geometry converts a model point to the client's geometry type for query vars
func geometry(p model.GeoPoint) models.GeometryPoint {
	return models.GeometryPoint{Longitude: p.Lng, Latitude: p.Lat}
}
