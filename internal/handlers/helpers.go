package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ekoval/storefront/internal/logging"
	"github.com/ekoval/storefront/internal/mykafka"
)

func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return uint(id), nil
}

// parseQuantity accepts a JSON number or a numeric string and requires a
// positive integer either way.
func parseQuantity(v any) (int, error) {
	switch q := v.(type) {
	case float64:
		if q != float64(int(q)) {
			return 0, fmt.Errorf("quantity must be an integer")
		}
		return int(q), nil
	case string:
		n, err := strconv.Atoi(q)
		if err != nil {
			return 0, fmt.Errorf("quantity must be a number")
		}
		return n, nil
	case json.Number:
		n, err := q.Int64()
		if err != nil {
			return 0, fmt.Errorf("quantity must be an integer")
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("quantity is required")
	}
}
