package internal

import (
	"fmt"
	"qa-board/repositories"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mama165/sdk-go/database"
)

const InspectEndpoint = "/inspect"

// InspectMapper renders one badger entry for the debug inspector.
// Unknown prefixes fall back to the raw size summary.
func InspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)

	switch {
	case strings.HasPrefix(key, "question:"):
		var q repositories.DiskQuestion
		if err := json.Unmarshal(val, &q); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "QUESTION"
		row.Detail = fmt.Sprintf("[%s] %s", q.Status, q.Message)
		if q.WasEscalated {
			row.Detail += " (escalated)"
		}
	case strings.HasPrefix(key, "answer:"):
		var a repositories.DiskAnswer
		if err := json.Unmarshal(val, &a); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "ANSWER"
		row.Detail = fmt.Sprintf("#%d %s: %s", a.QuestionID, a.UserName, a.Message)
	case strings.HasPrefix(key, "user:email:"):
		var u repositories.User
		if err := json.Unmarshal(val, &u); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		// Never surface the password hash.
		row.Type = "USER"
		row.Detail = fmt.Sprintf("%s <%s> %v", u.Username, u.Email, u.Roles)
	case strings.HasPrefix(key, "user:"):
		row.Type = "INDEX"
		row.Detail = string(val)
	case strings.HasPrefix(key, "blacklist:"):
		row.Type = "CENSORED"
		row.Detail = strings.TrimPrefix(key, "blacklist:")
	}
	return row
}
