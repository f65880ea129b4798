package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseIntForm(c *gin.Context, key string) int {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func parseBoolForm(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.PostForm(key))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// setFlash queues a one-shot message delivered on the next rendered page.
func setFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	_ = session.Save()
}

// takeFlash pops the queued message of the given kind, if any.
func takeFlash(c *gin.Context, kind string) string {
	session := sessions.Default(c)
	flashes := session.Flashes(kind)
	_ = session.Save()
	if len(flashes) == 0 {
		return ""
	}
	if msg, ok := flashes[0].(string); ok {
		return msg
	}
	return ""
}
